package dashboard

import (
	"fmt"

	"github.com/ettle/strcase"
)

const (
	defaultCardHeight     = "200px"
	defaultIconName       = "shop"
	defaultMiniCardText   = "#ffffff"
	defaultDetailTitle    = "Recent Items"
	defaultCloseLabel     = "Close"
	defaultNavbarBrand    = "Dashboard"
	defaultNavbarIcon     = "cart4"
	defaultNavbarMenuIcon = "list"
	defaultLogoutIcon     = "door-open"
	// LogoutPath is where the navbar logout button sends the viewer.
	LogoutPath = "/logout"
)

// componentClass derives the CSS class used by templates (MiniCard -> mini-card).
func componentClass(name string) string {
	return strcase.ToKebab(name)
}

// CardProps configures a summary card. Optional fields fall back to the
// package defaults when empty.
type CardProps struct {
	BackgroundColor     string
	IconBackgroundColor string
	MainText            string
	SubText             string
	IconName            string
	Height              string
	DirectLink          string
	// ActionLink is the href of the menu affordance; OnClick is its in-process handler.
	ActionLink string
	OnClick    func()
}

// CardView is the resolved card handed to templates.
type CardView struct {
	Class               string
	BackgroundColor     string
	IconBackgroundColor string
	MainText            string
	SubText             string
	IconName            string
	Height              string
	DirectLink          string
	ActionLink          string
	MenuIcon            string

	onClick func()
}

// Card resolves card props into a view.
func Card(props CardProps) CardView {
	return CardView{
		Class:               componentClass("Card"),
		BackgroundColor:     props.BackgroundColor,
		IconBackgroundColor: props.IconBackgroundColor,
		MainText:            props.MainText,
		SubText:             props.SubText,
		IconName:            orDefault(props.IconName, defaultIconName),
		Height:              orDefault(props.Height, defaultCardHeight),
		DirectLink:          props.DirectLink,
		ActionLink:          props.ActionLink,
		MenuIcon:            "three-dots",
		onClick:             props.OnClick,
	}
}

// Interactive reports whether the menu affordance does anything.
func (v CardView) Interactive() bool {
	return v.onClick != nil || v.ActionLink != ""
}

// Click triggers the card's menu handler. A card without one ignores clicks.
func (v CardView) Click() {
	if v.onClick != nil {
		v.onClick()
	}
}

// MiniCardProps configures the compact card variant.
type MiniCardProps struct {
	BackgroundColor     string
	IconBackgroundColor string
	MainText            string
	SubText             string
	TextColor           string
	IconName            string
	DirectLink          string
}

// MiniCardView is the resolved mini card.
type MiniCardView struct {
	Class               string
	BackgroundColor     string
	IconBackgroundColor string
	MainText            string
	SubText             string
	TextColor           string
	IconName            string
	DirectLink          string
}

// MiniCard resolves mini card props into a view.
func MiniCard(props MiniCardProps) MiniCardView {
	return MiniCardView{
		Class:               componentClass("MiniCard"),
		BackgroundColor:     props.BackgroundColor,
		IconBackgroundColor: props.IconBackgroundColor,
		MainText:            props.MainText,
		SubText:             props.SubText,
		TextColor:           orDefault(props.TextColor, defaultMiniCardText),
		IconName:            orDefault(props.IconName, defaultIconName),
		DirectLink:          props.DirectLink,
	}
}

// DetailPanelProps lists records in the recent items panel.
type DetailPanelProps struct {
	Title   string
	Records []Item
}

// DetailRow is one rendered record.
type DetailRow struct {
	Name  string
	Price string
}

// DetailPanelView is the resolved panel. Rows keep input order.
type DetailPanelView struct {
	Class string
	Title string
	Rows  []DetailRow
}

// DetailPanel renders one row per record, unsorted and unfiltered.
func DetailPanel(props DetailPanelProps) DetailPanelView {
	rows := make([]DetailRow, len(props.Records))
	for i, record := range props.Records {
		rows[i] = DetailRow{Name: record.Name, Price: FormatAmount(record.Price)}
	}
	return DetailPanelView{
		Class: componentClass("DetailPanel"),
		Title: orDefault(props.Title, defaultDetailTitle),
		Rows:  rows,
	}
}

// ButtonVariant is the visual style of a dialog button.
type ButtonVariant string

const (
	VariantText    ButtonVariant = "text"
	VariantDefault ButtonVariant = "default"
	VariantDanger  ButtonVariant = "danger"
	VariantPrimary ButtonVariant = "primary"
	VariantSuccess ButtonVariant = "success"
	VariantNeutral ButtonVariant = "neutral"
	VariantWarning ButtonVariant = "warning"
)

var buttonVariants = []ButtonVariant{
	VariantText, VariantDefault, VariantDanger, VariantPrimary,
	VariantSuccess, VariantNeutral, VariantWarning,
}

// Valid reports whether the variant is one of the supported styles.
func (v ButtonVariant) Valid() bool {
	for _, candidate := range buttonVariants {
		if v == candidate {
			return true
		}
	}
	return false
}

// ParseButtonVariant validates a variant name.
func ParseButtonVariant(value string) (ButtonVariant, error) {
	v := ButtonVariant(value)
	if !v.Valid() {
		return "", fmt.Errorf("dashboard: unknown button variant %q", value)
	}
	return v, nil
}

// ButtonProps describes one dialog button.
type ButtonProps struct {
	Text    string
	Variant ButtonVariant
	Href    string
	OnClick func()
}

// ButtonDialogProps configures a modal with a close affordance and action buttons.
type ButtonDialogProps struct {
	Open      bool
	Title     string
	Text      string
	Buttons   []ButtonProps
	CloseHref string
	OnClose   func()
}

// ButtonView is a resolved dialog button.
type ButtonView struct {
	Text    string
	Variant ButtonVariant
	Class   string
	Href    string
}

// ButtonDialogView is the resolved dialog.
type ButtonDialogView struct {
	Class        string
	Open         bool
	Title        string
	Text         string
	CloseLabel   string
	CloseVariant ButtonVariant
	CloseHref    string
	Buttons      []ButtonView

	onClose  func()
	handlers []func()
}

// ButtonDialog resolves dialog props into a view. Buttons keep input order.
func ButtonDialog(props ButtonDialogProps) ButtonDialogView {
	view := ButtonDialogView{
		Class:        componentClass("ButtonDialog"),
		Open:         props.Open,
		Title:        props.Title,
		Text:         props.Text,
		CloseLabel:   defaultCloseLabel,
		CloseVariant: VariantDanger,
		CloseHref:    props.CloseHref,
		Buttons:      make([]ButtonView, len(props.Buttons)),
		onClose:      props.OnClose,
		handlers:     make([]func(), len(props.Buttons)),
	}
	for i, button := range props.Buttons {
		variant := button.Variant
		if !variant.Valid() {
			variant = VariantDefault
		}
		view.Buttons[i] = ButtonView{
			Text:    button.Text,
			Variant: variant,
			Class:   "button-" + componentClass(string(variant)),
			Href:    button.Href,
		}
		view.handlers[i] = button.OnClick
	}
	return view
}

// Close runs the close handler only.
func (v ButtonDialogView) Close() {
	if v.onClose != nil {
		v.onClose()
	}
}

// Press runs the handler of the button at index.
func (v ButtonDialogView) Press(index int) error {
	if index < 0 || index >= len(v.handlers) {
		return fmt.Errorf("dashboard: dialog button %d out of range (%d buttons)", index, len(v.handlers))
	}
	if handler := v.handlers[index]; handler != nil {
		handler()
	}
	return nil
}

// NavbarProps configures the top navigation bar.
type NavbarProps struct {
	Brand      string
	HomeLink   string
	LogoutLink string
	OnLogout   func()
}

// NavbarView is the resolved navbar.
type NavbarView struct {
	Class      string
	Brand      string
	BrandIcon  string
	HomeLink   string
	MenuIcon   string
	LogoutIcon string
	LogoutLink string

	onLogout func()
}

// Navbar resolves navbar props into a view.
func Navbar(props NavbarProps) NavbarView {
	return NavbarView{
		Class:      componentClass("Navbar"),
		Brand:      orDefault(props.Brand, defaultNavbarBrand),
		BrandIcon:  defaultNavbarIcon,
		HomeLink:   props.HomeLink,
		MenuIcon:   defaultNavbarMenuIcon,
		LogoutIcon: defaultLogoutIcon,
		LogoutLink: orDefault(props.LogoutLink, LogoutPath),
		onLogout:   props.OnLogout,
	}
}

// Logout runs the logout handler, if any.
func (v NavbarView) Logout() {
	if v.onLogout != nil {
		v.onLogout()
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
