package dashboard

import (
	"context"
	"errors"
	"io"
)

const defaultTemplate = "dashboard"

var errMissingRenderer = errors.New("dashboard: template renderer not configured")

// PageFactory builds a fresh page for one viewer request.
type PageFactory func(ctx context.Context, viewer ViewerContext) (*Page, error)

// NewPageFactory builds pages around a per-viewer data source, typically a
// client carrying the viewer's session cookie.
func NewPageFactory(source func(ViewerContext) DataSource, opts ...PageOption) PageFactory {
	return func(_ context.Context, viewer ViewerContext) (*Page, error) {
		if source == nil {
			return nil, errMissingSource
		}
		return NewPage(source(viewer), opts...), nil
	}
}

// ControllerOptions wires the controller's collaborators.
type ControllerOptions struct {
	Pages      PageFactory
	Renderer   Renderer
	Charts     ChartRenderer
	Template   string
	Links      ViewLinks
	Translator TranslationService
	Telemetry  Telemetry
}

// Controller loads a page per request and renders it.
type Controller struct {
	pages      PageFactory
	renderer   Renderer
	charts     ChartRenderer
	template   string
	links      ViewLinks
	translator TranslationService
	telemetry  Telemetry
}

// PageRequest describes one page load.
type PageRequest struct {
	Viewer ViewerContext
	Dialog DialogID
}

// PageResult is the outcome of a load. A non-empty Redirect means nothing
// should be rendered and the viewer must be sent there instead.
type PageResult struct {
	State    State
	View     PageView
	Redirect string
}

// NewController applies defaults to the options.
func NewController(opts ControllerOptions) *Controller {
	c := &Controller{
		pages:      opts.Pages,
		renderer:   opts.Renderer,
		charts:     opts.Charts,
		template:   orDefault(opts.Template, defaultTemplate),
		links:      opts.Links,
		translator: opts.Translator,
		telemetry:  normalizeTelemetry(opts.Telemetry),
	}
	if c.charts == nil {
		c.charts = NewBarChartRenderer()
	}
	return c
}

// Links returns the routes the controller renders into pages.
func (c *Controller) Links() ViewLinks {
	return c.links
}

// Load runs the three fetches for the viewer and builds the view. Fetch
// failures degrade to fallbacks and are reported through telemetry.
func (c *Controller) Load(ctx context.Context, req PageRequest) (PageResult, error) {
	if c.pages == nil {
		return PageResult{}, errMissingSource
	}
	ctx = ContextWithViewer(ctx, req.Viewer)
	page, err := c.pages(ctx, req.Viewer)
	if err != nil {
		return PageResult{}, err
	}
	defer page.Unmount()

	state, err := page.Load(ctx)
	if err != nil && !page.Snapshot().anyLoadedOrFailed() {
		return PageResult{}, err
	}
	if err != nil {
		c.telemetry.Record(ctx, "dashboard.page.degraded", map[string]any{
			"error": err.Error(),
		})
	}
	if state.Unauthorized {
		return PageResult{State: state, Redirect: state.Navigation}, nil
	}
	if req.Dialog != "" {
		page.OpenDialog(req.Dialog)
		state = page.Snapshot()
	}

	view := BuildView(ctx, state, ViewOptions{
		Links:      c.links,
		Locale:     req.Viewer.Locale,
		Translator: c.translator,
	})
	chart, err := c.charts.Render(req.Viewer, view.Chart)
	if err != nil {
		c.telemetry.Record(ctx, "dashboard.chart.error", map[string]any{
			"error": err.Error(),
		})
		chart = BarChartView{Class: componentClass("BarChart"), Title: view.Chart.Title, Empty: true}
	}
	view.ChartView = chart

	return PageResult{State: state, View: view}, nil
}

// RenderTemplate loads the page and renders it into out. On a redirect
// result nothing is written.
func (c *Controller) RenderTemplate(ctx context.Context, req PageRequest, out io.Writer) (PageResult, error) {
	if c.renderer == nil {
		return PageResult{}, errMissingRenderer
	}
	result, err := c.Load(ctx, req)
	if err != nil || result.Redirect != "" {
		return result, err
	}
	if _, err := c.renderer.Render(c.template, templatePayload(result), out); err != nil {
		return result, err
	}
	return result, nil
}

func templatePayload(result PageResult) map[string]any {
	dialog, hasDialog := result.View.OpenDialog()
	return map[string]any{
		"navbar":       result.View.Navbar,
		"cards":        result.View.Cards,
		"mini_cards":   result.View.MiniCards,
		"chart":        result.View.ChartView,
		"recent_items": result.View.RecentItems,
		"dialog":       dialog,
		"has_dialog":   hasDialog,
		"errors":       result.View.Errors,
	}
}

// anyLoadedOrFailed distinguishes a page that ran its fetches from one that
// never started.
func (s State) anyLoadedOrFailed() bool {
	return len(s.Loaded) > 0 || len(s.Errors) > 0 || s.Unauthorized
}
