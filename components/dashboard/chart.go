package dashboard

const (
	// BudgetColor fills the "Budget" series.
	BudgetColor = "#602786"
	// PriceColor fills the "Price" series.
	PriceColor = "#3b5fe2"
	// DefaultSeriesColor fills any other series.
	DefaultSeriesColor = "#ffffff"

	budgetSeriesLabel = "Budget"
	priceSeriesLabel  = "Price"
)

// ChartData is the bar chart input: a label axis plus colored datasets.
type ChartData struct {
	Labels   []string       `json:"labels" yaml:"labels"`
	Datasets []ChartDataset `json:"datasets" yaml:"datasets"`
}

// ChartDataset is a history series with its fill color resolved.
type ChartDataset struct {
	Label           string    `json:"label" yaml:"label"`
	Data            []float64 `json:"data" yaml:"data"`
	BackgroundColor string    `json:"backgroundColor" yaml:"background_color"`
}

// SeriesColor returns the fill color for a series label. Matching is exact and
// case-sensitive.
func SeriesColor(label string) string {
	switch label {
	case budgetSeriesLabel:
		return BudgetColor
	case priceSeriesLabel:
		return PriceColor
	default:
		return DefaultSeriesColor
	}
}

// ColorizeHistory maps a history payload to chart data, assigning one color per
// series. The input is not modified.
func ColorizeHistory(history DashboardHistory) ChartData {
	datasets := make([]ChartDataset, len(history.Data))
	for i, ds := range history.Data {
		datasets[i] = ChartDataset{
			Label:           ds.Label,
			Data:            append([]float64(nil), ds.Data...),
			BackgroundColor: SeriesColor(ds.Label),
		}
	}
	return ChartData{
		Labels:   append([]string(nil), history.Labels...),
		Datasets: datasets,
	}
}
