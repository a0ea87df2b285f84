package shopping

import (
	"context"
	"sync"

	dashboard "github.com/goliatone/go-shopping-dashboard/components/dashboard"
)

// MockData seeds deterministic dashboard payloads for tests or local demos.
type MockData struct {
	Summary      dashboard.DashboardCurrent
	History      dashboard.DashboardHistory
	RecentItems  dashboard.RecentItems
	Unauthorized bool
}

// DefaultMockData is the demo fixture served by `shopdash serve --mock`.
func DefaultMockData() MockData {
	return MockData{
		Summary: dashboard.DashboardCurrent{
			Total:            dashboard.Float(12),
			TotalPrice:       dashboard.Float(845.5),
			BudgetRemaining:  dashboard.Float(1154.5),
			AverageItemPrice: dashboard.Float(70.46),
		},
		History: dashboard.DashboardHistory{
			Labels: []string{"May", "Jun", "Jul", "Aug", "Sep", "Oct"},
			Data: []dashboard.HistoryDataset{
				{Label: "Budget", Data: []float64{2000, 2000, 2200, 2200, 2000, 2000}},
				{Label: "Price", Data: []float64{1820, 1950, 2310, 1705, 1890, 845.5}},
			},
		},
		RecentItems: dashboard.RecentItems{Items: []dashboard.Item{
			{Name: "Full cream milk 2L", Price: 38.99},
			{Name: "Brown bread", Price: 17.5},
			{Name: "Free range eggs x18", Price: 64.99},
			{Name: "Filter coffee 250g", Price: 89.99},
			{Name: "Bananas 1kg", Price: 24.99},
		}},
	}
}

// MockClient implements dashboard.DataSource using in-memory fixtures.
type MockClient struct {
	data MockData
	mu   sync.RWMutex
}

var _ dashboard.DataSource = (*MockClient)(nil)

// NewMockClient builds a mock client from the provided fixtures.
func NewMockClient(data MockData) *MockClient {
	return &MockClient{data: data}
}

// SetData swaps the fixtures.
func (c *MockClient) SetData(data MockData) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = data
}

// FetchCurrentSummary returns a copy of the summary fixture.
func (c *MockClient) FetchCurrentSummary(context.Context) (dashboard.Result[dashboard.DashboardCurrent], error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.data.Unauthorized {
		return dashboard.Unauthorized[dashboard.DashboardCurrent](), nil
	}
	return dashboard.Ok(dashboard.CloneCurrent(c.data.Summary)), nil
}

// FetchHistory returns a copy of the history fixture.
func (c *MockClient) FetchHistory(context.Context) (dashboard.Result[dashboard.DashboardHistory], error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.data.Unauthorized {
		return dashboard.Unauthorized[dashboard.DashboardHistory](), nil
	}
	return dashboard.Ok(dashboard.CloneHistory(c.data.History)), nil
}

// FetchRecentItems returns a copy of the recent items fixture.
func (c *MockClient) FetchRecentItems(context.Context) (dashboard.Result[dashboard.RecentItems], error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.data.Unauthorized {
		return dashboard.Unauthorized[dashboard.RecentItems](), nil
	}
	return dashboard.Ok(dashboard.CloneRecentItems(c.data.RecentItems)), nil
}
