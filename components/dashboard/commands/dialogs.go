package commands

import (
	"context"
	"errors"
	"fmt"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-shopping-dashboard/components/dashboard"
)

var errMissingPage = errors.New("dialog command requires page")

// dialogPage is the slice of the dashboard page the dialog commands drive.
type dialogPage interface {
	Dialog(id dashboard.DialogID) (dashboard.ButtonDialogProps, bool)
	OpenDialog(id dashboard.DialogID)
	Snapshot() dashboard.State
}

// OpenDialogInput names the dialog a card interaction opens.
type OpenDialogInput struct {
	Dialog dashboard.DialogID
}

// CloseDialogInput names the dialog to dismiss.
type CloseDialogInput struct {
	Dialog dashboard.DialogID
}

// PressDialogButtonInput selects a button inside a dialog.
type PressDialogButtonInput struct {
	Dialog dashboard.DialogID
	Index  int
}

// OpenDialogCommand opens one of the page dialogs.
type OpenDialogCommand struct {
	page      dialogPage
	telemetry Telemetry
}

// NewOpenDialogCommand creates a command bound to a page.
func NewOpenDialogCommand(page dialogPage, telemetry Telemetry) *OpenDialogCommand {
	return &OpenDialogCommand{page: page, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[OpenDialogInput] = (*OpenDialogCommand)(nil)

// Execute opens the dialog.
func (c *OpenDialogCommand) Execute(ctx context.Context, msg OpenDialogInput) error {
	if c.page == nil {
		return errMissingPage
	}
	if err := validateDialog(msg.Dialog); err != nil {
		return err
	}
	c.page.OpenDialog(msg.Dialog)
	c.telemetry.Record(ctx, "dashboard.dialog.open", map[string]any{
		"dialog": string(msg.Dialog),
	})
	return nil
}

// CloseDialogCommand runs a dialog's close affordance.
type CloseDialogCommand struct {
	page      dialogPage
	telemetry Telemetry
}

// NewCloseDialogCommand creates a command bound to a page.
func NewCloseDialogCommand(page dialogPage, telemetry Telemetry) *CloseDialogCommand {
	return &CloseDialogCommand{page: page, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[CloseDialogInput] = (*CloseDialogCommand)(nil)

// Execute closes the dialog without touching any of its buttons.
func (c *CloseDialogCommand) Execute(ctx context.Context, msg CloseDialogInput) error {
	if c.page == nil {
		return errMissingPage
	}
	props, ok := c.page.Dialog(msg.Dialog)
	if !ok {
		return fmt.Errorf("unknown dialog %q", msg.Dialog)
	}
	dashboard.ButtonDialog(props).Close()
	c.telemetry.Record(ctx, "dashboard.dialog.close", map[string]any{
		"dialog": string(msg.Dialog),
	})
	return nil
}

// PressDialogButtonCommand presses a dialog button, which closes the dialog
// and sets the page navigation target.
type PressDialogButtonCommand struct {
	page      dialogPage
	telemetry Telemetry
}

// NewPressDialogButtonCommand creates a command bound to a page.
func NewPressDialogButtonCommand(page dialogPage, telemetry Telemetry) *PressDialogButtonCommand {
	return &PressDialogButtonCommand{page: page, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[PressDialogButtonInput] = (*PressDialogButtonCommand)(nil)

// Execute presses the button.
func (c *PressDialogButtonCommand) Execute(ctx context.Context, msg PressDialogButtonInput) error {
	if c.page == nil {
		return errMissingPage
	}
	props, ok := c.page.Dialog(msg.Dialog)
	if !ok {
		return fmt.Errorf("unknown dialog %q", msg.Dialog)
	}
	if err := dashboard.ButtonDialog(props).Press(msg.Index); err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.dialog.press", map[string]any{
		"dialog":     string(msg.Dialog),
		"index":      msg.Index,
		"navigation": c.page.Snapshot().Navigation,
	})
	return nil
}

func validateDialog(id dashboard.DialogID) error {
	if _, ok := dashboard.ParseDialogID(string(id)); !ok {
		return fmt.Errorf("unknown dialog %q", id)
	}
	return nil
}
