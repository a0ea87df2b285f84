package dashboard

import (
	"context"
	"strconv"
	"strings"
)

// Card colors.
const (
	totalCardColor       = "#602786"
	totalCardIconColor   = "#562f6f"
	priceCardColor       = "#3b5fe2"
	priceCardIconColor   = "#2f48a2"
	averageCardColor     = "#ffffff"
	averageCardIconColor = "#FFC107"
	averageCardTextColor = "#000000"
)

// ViewLinks carries the routes the rendered page links back to. Dashboard is
// the page route, e.g. "/shopping/dashboard/".
type ViewLinks struct {
	Dashboard string
}

// DialogOpenHref links to the page with the dialog open.
func (l ViewLinks) DialogOpenHref(id DialogID) string {
	if l.Dashboard == "" {
		return ""
	}
	return l.Dashboard + "?dialog=" + string(id)
}

// DialogActionHref links to a dialog action: "close" or a button index.
func (l ViewLinks) DialogActionHref(id DialogID, action string) string {
	if l.Dashboard == "" {
		return ""
	}
	return ensureTrailingSlash(l.Dashboard) + "dialogs/" + string(id) + "/" + action
}

// ViewOptions configures BuildView.
type ViewOptions struct {
	Links      ViewLinks
	Locale     string
	Translator TranslationService
}

// PageView is everything a template needs to draw the dashboard.
type PageView struct {
	Navbar       NavbarView
	Cards        []CardView
	MiniCards    []MiniCardView
	Chart        BarChartProps
	ChartView    BarChartView
	RecentItems  DetailPanelView
	Dialogs      []ButtonDialogView
	Loaded       map[Slice]bool
	Errors       map[Slice]string
	Unauthorized bool
	Navigation   string
}

// OpenDialog returns the open dialog, if any.
func (v PageView) OpenDialog() (ButtonDialogView, bool) {
	for _, dialog := range v.Dialogs {
		if dialog.Open {
			return dialog, true
		}
	}
	return ButtonDialogView{}, false
}

// BuildView maps a snapshot onto component views. It has no side effects;
// interactive handlers are only attached by Page.View.
func BuildView(ctx context.Context, state State, opts ViewOptions) PageView {
	return buildView(ctx, state, opts, nil)
}

// View builds the page view with card and dialog handlers dispatching into p.
func (p *Page) View(ctx context.Context, opts ViewOptions) PageView {
	return buildView(ctx, p.Snapshot(), opts, p)
}

func buildView(ctx context.Context, state State, opts ViewOptions, page *Page) PageView {
	tr := func(key, fallback string) string {
		return translateOrFallback(ctx, opts.Translator, key, opts.Locale, fallback, nil)
	}

	summary := state.Summary
	if summary == nil {
		summary = &DashboardCurrent{}
	}

	total := CardProps{
		BackgroundColor:     totalCardColor,
		IconBackgroundColor: totalCardIconColor,
		MainText:            FormatOptionalNumber(summary.Total, tr("dashboard.card.total.missing", ShoppingListNotFound)),
		SubText:             tr("dashboard.card.total.subtext", "Total items on current shopping list"),
		DirectLink:          PathItemsMine,
		ActionLink:          opts.Links.DialogOpenHref(DialogItems),
	}
	price := CardProps{
		BackgroundColor:     priceCardColor,
		IconBackgroundColor: priceCardIconColor,
		MainText:            FormatOptionalAmount(summary.TotalPrice),
		SubText:             tr("dashboard.card.price.subtext", "Price of shopping list"),
		IconName:            "wallet2",
		DirectLink:          PathListCurrent,
		ActionLink:          opts.Links.DialogOpenHref(DialogList),
	}
	if page != nil {
		total.OnClick = func() { page.OpenDialog(DialogItems) }
		price.OnClick = func() { page.OpenDialog(DialogList) }
	}

	view := PageView{
		Navbar: Navbar(NavbarProps{
			Brand:    tr("dashboard.navbar.brand", defaultNavbarBrand),
			HomeLink: opts.Links.Dashboard,
		}),
		Cards: []CardView{Card(total), Card(price)},
		MiniCards: []MiniCardView{
			MiniCard(MiniCardProps{
				BackgroundColor:     priceCardColor,
				IconBackgroundColor: priceCardIconColor,
				MainText:            FormatOptionalAmount(summary.BudgetRemaining),
				SubText:             tr("dashboard.card.budget.subtext", "Budget remaining"),
				IconName:            "wallet2",
				DirectLink:          PathBudgets,
			}),
			MiniCard(MiniCardProps{
				BackgroundColor:     averageCardColor,
				IconBackgroundColor: averageCardIconColor,
				MainText:            FormatOptionalAmount(summary.AverageItemPrice),
				SubText:             tr("dashboard.card.average.subtext", "Average item price"),
				TextColor:           averageCardTextColor,
				IconName:            "cash-stack",
				DirectLink:          PathMetrics,
			}),
		},
		Chart: BarChartProps{
			Title:    tr("dashboard.chart.title", defaultChartTitle),
			Labels:   state.Chart.Labels,
			Datasets: state.Chart.Datasets,
		},
		RecentItems: DetailPanel(DetailPanelProps{
			Title:   tr("dashboard.recent.title", defaultDetailTitle),
			Records: state.RecentItems,
		}),
		Loaded:       state.Loaded,
		Errors:       state.Errors,
		Unauthorized: state.Unauthorized,
		Navigation:   state.Navigation,
	}

	for _, id := range []DialogID{DialogItems, DialogList} {
		props := dialogProps(id, state.DialogOpen(id), opts.Links)
		props.Title = tr("dashboard.dialog."+string(id)+".title", props.Title)
		props.Text = tr("dashboard.dialog."+string(id)+".text", props.Text)
		for i := range props.Buttons {
			props.Buttons[i].Text = tr("dashboard.dialog."+string(id)+".button."+strconv.Itoa(i), props.Buttons[i].Text)
		}
		if page != nil {
			page.attachDialogHandlers(id, &props)
		}
		view.Dialogs = append(view.Dialogs, ButtonDialog(props))
	}
	return view
}

// dialogProps builds the static part of a dialog: texts, variants and hrefs.
func dialogProps(id DialogID, open bool, links ViewLinks) ButtonDialogProps {
	def := dialogDefs[id]
	buttons := make([]ButtonProps, len(def.buttons))
	for i, b := range def.buttons {
		buttons[i] = ButtonProps{
			Text:    b.text,
			Variant: b.variant,
			Href:    links.DialogActionHref(id, strconv.Itoa(i)),
		}
	}
	return ButtonDialogProps{
		Open:      open,
		Title:     def.title,
		Text:      def.text,
		Buttons:   buttons,
		CloseHref: links.DialogActionHref(id, "close"),
	}
}

// DialogTarget returns the navigation target of a dialog button.
func DialogTarget(id DialogID, index int) (string, bool) {
	def, ok := dialogDefs[id]
	if !ok || index < 0 || index >= len(def.buttons) {
		return "", false
	}
	return def.buttons[index].target, true
}

// DashboardPath joins a base path and namespace into the page route.
func DashboardPath(base, namespace string) string {
	parts := []string{}
	for _, part := range []string{base, namespace, "dashboard"} {
		if part = strings.Trim(part, "/"); part != "" {
			parts = append(parts, part)
		}
	}
	return "/" + strings.Join(parts, "/") + "/"
}
