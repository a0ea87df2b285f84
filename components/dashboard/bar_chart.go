package dashboard

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/render"
	"github.com/go-echarts/go-echarts/v2/types"
)

const (
	defaultChartHeight = "360px"
	defaultChartTitle  = "Budget and price overview"
)

var sharedChartCache = NewChartCache(5 * time.Minute)

// ThemeResolver selects a chart theme per viewer.
type ThemeResolver func(ViewerContext) string

// BarChartProps is the input of the history bar chart.
type BarChartProps struct {
	Title    string
	Labels   []string
	Datasets []ChartDataset
	Height   string
}

// BarChartView is the rendered chart handed to templates.
type BarChartView struct {
	Class string
	Title string
	Theme string
	HTML  string
	Empty bool
}

// BarChartRenderer renders server-side ECharts markup for the history chart.
type BarChartRenderer struct {
	cache         RenderCache
	theme         string
	themeResolver ThemeResolver
	assetsHost    string
	height        string
}

// BarChartOption customizes renderer behavior.
type BarChartOption func(*BarChartRenderer)

// WithChartCache injects a render cache. A nil cache disables caching.
func WithChartCache(cache RenderCache) BarChartOption {
	return func(r *BarChartRenderer) {
		r.cache = cache
	}
}

// WithChartTheme sets a static theme (defaults to Westeros).
func WithChartTheme(theme string) BarChartOption {
	return func(r *BarChartRenderer) {
		r.theme = theme
	}
}

// WithChartThemeResolver resolves themes dynamically per viewer.
func WithChartThemeResolver(resolver ThemeResolver) BarChartOption {
	return func(r *BarChartRenderer) {
		r.themeResolver = resolver
	}
}

// WithChartAssetsHost rewrites the assets host so ECharts JS loads from a CDN.
func WithChartAssetsHost(host string) BarChartOption {
	return func(r *BarChartRenderer) {
		r.assetsHost = host
	}
}

// WithChartHeight overrides the canvas height.
func WithChartHeight(height string) BarChartOption {
	return func(r *BarChartRenderer) {
		r.height = height
	}
}

// NewBarChartRenderer builds a renderer using the shared in-memory cache.
func NewBarChartRenderer(opts ...BarChartOption) *BarChartRenderer {
	r := &BarChartRenderer{
		cache:  sharedChartCache,
		theme:  types.ThemeWesteros,
		height: defaultChartHeight,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render converts chart props into go-echarts markup.
func (r *BarChartRenderer) Render(viewer ViewerContext, props BarChartProps) (BarChartView, error) {
	if len(props.Labels) > 0 {
		for _, ds := range props.Datasets {
			if len(ds.Data) != len(props.Labels) {
				return BarChartView{}, fmt.Errorf("dashboard: series %q has %d values for %d labels", ds.Label, len(ds.Data), len(props.Labels))
			}
		}
	}
	title := orDefault(props.Title, defaultChartTitle)
	height := orDefault(props.Height, r.height)
	theme := r.resolveTheme(viewer)

	renderFn := func() (string, error) {
		return r.render(title, height, theme, props)
	}

	var (
		markup string
		err    error
	)
	if r.cache != nil {
		key := fmt.Sprintf("bar:%s:%s:%s", theme, height, configHash(map[string]any{
			"title":    title,
			"labels":   props.Labels,
			"datasets": props.Datasets,
		}))
		markup, err = r.cache.GetOrRender(key, renderFn)
	} else {
		markup, err = renderFn()
	}
	if err != nil {
		return BarChartView{}, err
	}

	return BarChartView{
		Class: componentClass("BarChart"),
		Title: title,
		Theme: theme,
		HTML:  markup,
		Empty: len(props.Datasets) == 0,
	}, nil
}

func (r *BarChartRenderer) render(title, height, theme string, props BarChartProps) (string, error) {
	bar := charts.NewBar()
	bar.SetGlobalOptions(r.globalChartOptions(title, height, theme)...)
	bar.SetXAxis(props.Labels)
	for _, ds := range props.Datasets {
		bar.AddSeries(ds.Label, toBarData(props.Labels, ds.Data),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: ds.BackgroundColor}),
		)
	}
	return renderChart(bar)
}

type snippetRenderer interface {
	RenderSnippet() render.ChartSnippet
	GetAssets() opts.Assets
}

// renderChart emits the chart's script assets, container element and init
// script, without the standalone page wrapper.
func renderChart(chart snippetRenderer) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("dashboard: render chart: %v", r)
		}
	}()
	snippet := chart.RenderSnippet()

	var b strings.Builder
	for _, src := range chart.GetAssets().JSAssets.Values {
		b.WriteString(`<script src="` + html.EscapeString(src) + `"></script>` + "\n")
	}
	b.WriteString(snippet.Element)
	b.WriteString(snippet.Script)
	return b.String(), nil
}

func (r *BarChartRenderer) globalChartOptions(title, height, theme string) []charts.GlobalOpts {
	initOpts := opts.Initialization{
		Theme:  theme,
		Width:  "100%",
		Height: height,
	}
	if r.assetsHost != "" {
		initOpts.AssetsHost = ensureTrailingSlash(r.assetsHost)
	}
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(initOpts),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "top"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func (r *BarChartRenderer) resolveTheme(viewer ViewerContext) string {
	if r.themeResolver != nil {
		if theme := r.themeResolver(viewer); theme != "" {
			return theme
		}
	}
	if r.theme != "" {
		return r.theme
	}
	return types.ThemeWesteros
}

func toBarData(labels []string, values []float64) []opts.BarData {
	data := make([]opts.BarData, len(values))
	for i, value := range values {
		name := ""
		if i < len(labels) {
			name = labels[i]
		}
		data[i] = opts.BarData{
			Name:  name,
			Value: value,
		}
	}
	return data
}

func ensureTrailingSlash(value string) string {
	if value == "" || strings.HasSuffix(value, "/") {
		return value
	}
	return value + "/"
}
