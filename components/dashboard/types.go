package dashboard

import "context"

// DataSource fetches the three payloads the dashboard page is built from.
// Implementations must be safe for concurrent use; the page calls every
// method from its own goroutine.
type DataSource interface {
	SummarySource
	HistorySource
	RecentItemsSource
}

// SummarySource fetches the current summary snapshot.
type SummarySource interface {
	FetchCurrentSummary(ctx context.Context) (Result[DashboardCurrent], error)
}

// HistorySource fetches the spend vs. budget history series.
type HistorySource interface {
	FetchHistory(ctx context.Context) (Result[DashboardHistory], error)
}

// RecentItemsSource fetches the most recently added items.
type RecentItemsSource interface {
	FetchRecentItems(ctx context.Context) (Result[RecentItems], error)
}

// DashboardCurrent is the summary snapshot. Every field is nullable because the
// backend reports null when there is no current shopping list or budget.
type DashboardCurrent struct {
	Total            *float64 `json:"total" yaml:"total"`
	TotalPrice       *float64 `json:"total_price" yaml:"total_price"`
	BudgetRemaining  *float64 `json:"budget_remaining" yaml:"budget_remaining"`
	AverageItemPrice *float64 `json:"average_item_price" yaml:"average_item_price"`
}

// DashboardHistory holds one or more series aligned to a shared label axis.
type DashboardHistory struct {
	Labels []string         `json:"labels" yaml:"labels"`
	Data   []HistoryDataset `json:"data" yaml:"data"`
}

// HistoryDataset is a named series of values, one per history label.
type HistoryDataset struct {
	Label string    `json:"label" yaml:"label"`
	Data  []float64 `json:"data" yaml:"data"`
}

// RecentItems wraps the recent item list returned by the backend.
type RecentItems struct {
	Items []Item `json:"items" yaml:"items"`
}

// Item is a named, priced record.
type Item struct {
	Name  string  `json:"name" yaml:"name"`
	Price float64 `json:"price" yaml:"price"`
}

// ViewerContext captures the request information used while rendering.
type ViewerContext struct {
	RequestID string
	Locale    string
	Cookie    string
}

// Float is a helper for building nullable summary values.
func Float(v float64) *float64 {
	return &v
}

// CloneCurrent returns a deep copy of the summary snapshot.
func CloneCurrent(c DashboardCurrent) DashboardCurrent {
	return DashboardCurrent{
		Total:            cloneFloat(c.Total),
		TotalPrice:       cloneFloat(c.TotalPrice),
		BudgetRemaining:  cloneFloat(c.BudgetRemaining),
		AverageItemPrice: cloneFloat(c.AverageItemPrice),
	}
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

// CloneHistory returns a deep copy of the history payload.
func CloneHistory(h DashboardHistory) DashboardHistory {
	out := DashboardHistory{
		Labels: append([]string(nil), h.Labels...),
		Data:   make([]HistoryDataset, len(h.Data)),
	}
	for i, ds := range h.Data {
		out.Data[i] = HistoryDataset{Label: ds.Label, Data: append([]float64(nil), ds.Data...)}
	}
	return out
}

// CloneRecentItems returns a copy of the recent items payload.
func CloneRecentItems(r RecentItems) RecentItems {
	return RecentItems{Items: append([]Item(nil), r.Items...)}
}
