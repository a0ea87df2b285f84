package gorouter

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/goliatone/go-shopping-dashboard/components/dashboard"
	"github.com/goliatone/go-shopping-dashboard/components/dashboard/commands"
)

// CloseAction is the dialog action that dismisses a dialog.
const CloseAction = "close"

// response is a transport-neutral handler result.
type response struct {
	Status      int
	ContentType string
	Body        []byte
	Location    string
	Payload     any
}

type handlers struct {
	controller *dashboard.Controller
	telemetry  dashboard.Telemetry
}

func newHandlers(controller *dashboard.Controller, telemetry dashboard.Telemetry) handlers {
	if telemetry == nil {
		telemetry = dashboard.TelemetryFunc(func(context.Context, string, map[string]any) {})
	}
	return handlers{controller: controller, telemetry: telemetry}
}

func (h handlers) page(ctx context.Context, viewer dashboard.ViewerContext, dialog string) response {
	req := dashboard.PageRequest{Viewer: viewer}
	if dialog != "" {
		id, ok := dashboard.ParseDialogID(dialog)
		if !ok {
			return errorResponse(http.StatusBadRequest, fmt.Errorf("unknown dialog %q", dialog))
		}
		req.Dialog = id
	}

	var buf bytes.Buffer
	result, err := h.controller.RenderTemplate(ctx, req, &buf)
	if err != nil {
		return errorResponse(http.StatusInternalServerError, err)
	}
	if result.Redirect != "" {
		h.unauthorized(ctx, viewer)
		return redirect(result.Redirect)
	}
	return response{
		Status:      http.StatusOK,
		ContentType: "text/html; charset=utf-8",
		Body:        buf.Bytes(),
	}
}

func (h handlers) state(ctx context.Context, viewer dashboard.ViewerContext) response {
	result, err := h.controller.Load(ctx, dashboard.PageRequest{Viewer: viewer})
	if err != nil {
		return errorResponse(http.StatusInternalServerError, err)
	}
	if result.Redirect != "" {
		h.unauthorized(ctx, viewer)
		return redirect(result.Redirect)
	}
	return response{Status: http.StatusOK, Payload: result.State}
}

// dialogAction replays a dialog interaction on a request-scoped page and
// redirects to wherever it navigated.
func (h handlers) dialogAction(ctx context.Context, viewer dashboard.ViewerContext, dialog, action string) response {
	id, ok := dashboard.ParseDialogID(dialog)
	if !ok {
		return errorResponse(http.StatusNotFound, fmt.Errorf("unknown dialog %q", dialog))
	}
	ctx = dashboard.ContextWithViewer(ctx, viewer)

	page := dashboard.NewPage(nil, dashboard.WithPageTelemetry(h.telemetry))
	defer page.Unmount()
	if err := commands.NewOpenDialogCommand(page, h.telemetry).Execute(ctx, commands.OpenDialogInput{Dialog: id}); err != nil {
		return errorResponse(http.StatusBadRequest, err)
	}

	if action == CloseAction {
		if err := commands.NewCloseDialogCommand(page, h.telemetry).Execute(ctx, commands.CloseDialogInput{Dialog: id}); err != nil {
			return errorResponse(http.StatusBadRequest, err)
		}
		target := h.controller.Links().Dashboard
		if target == "" {
			target = dashboard.RootPath
		}
		return redirect(target)
	}

	index, err := strconv.Atoi(action)
	if err != nil {
		return errorResponse(http.StatusBadRequest, fmt.Errorf("invalid dialog action %q", action))
	}
	if err := commands.NewPressDialogButtonCommand(page, h.telemetry).Execute(ctx, commands.PressDialogButtonInput{Dialog: id, Index: index}); err != nil {
		return errorResponse(http.StatusBadRequest, err)
	}
	return redirect(page.Snapshot().Navigation)
}

func (h handlers) unauthorized(ctx context.Context, viewer dashboard.ViewerContext) {
	h.telemetry.Record(ctx, "dashboard.viewer.unauthorized", map[string]any{
		"request_id": viewer.RequestID,
	})
}
