package shopping

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	dashboard "github.com/goliatone/go-shopping-dashboard/components/dashboard"
)

// Backend paths, relative to the configured base URL.
const (
	OverviewPath    = "/apis/shopping/api/v1/dashboard/overview"
	HistoryPath     = "/apis/shopping/api/v1/dashboard/history"
	RecentItemsPath = "/apis/shopping/api/v1/dashboard/recent/items"
)

// DefaultTimeout bounds every backend call when no HTTP client is supplied.
const DefaultTimeout = 10 * time.Second

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// errUnauthorized never leaves the package; callers see the Unauthorized result variant.
var errUnauthorized = errors.New("shopping: unauthorized")

// HTTPConfig configures the backend client.
type HTTPConfig struct {
	BaseURL    string
	HTTPClient *http.Client
	Headers    map[string]string
	Timeout    time.Duration
}

// HTTPClient reads the dashboard payloads from the shopping backend.
type HTTPClient struct {
	baseURL   string
	client    *http.Client
	headers   map[string]string
	cookie    string
	validator *PayloadValidator
}

var _ dashboard.DataSource = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the backend at cfg.BaseURL.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("shopping: base url is required")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	headers := make(map[string]string, len(cfg.Headers))
	for k, v := range cfg.Headers {
		headers[k] = v
	}
	return &HTTPClient{
		baseURL:   baseURL,
		client:    httpClient,
		headers:   headers,
		validator: NewPayloadValidator(),
	}, nil
}

// WithCookie returns a copy that forwards the viewer's Cookie header.
func (c *HTTPClient) WithCookie(cookie string) *HTTPClient {
	clone := *c
	clone.cookie = cookie
	return &clone
}

// FetchCurrentSummary reads the current summary snapshot.
func (c *HTTPClient) FetchCurrentSummary(ctx context.Context) (dashboard.Result[dashboard.DashboardCurrent], error) {
	var out dashboard.DashboardCurrent
	if err := c.get(ctx, OverviewPath, SchemaOverview, &out); err != nil {
		if errors.Is(err, errUnauthorized) {
			return dashboard.Unauthorized[dashboard.DashboardCurrent](), nil
		}
		return dashboard.Result[dashboard.DashboardCurrent]{}, err
	}
	return dashboard.Ok(out), nil
}

// FetchHistory reads the history series. Every series must carry one value per label.
func (c *HTTPClient) FetchHistory(ctx context.Context) (dashboard.Result[dashboard.DashboardHistory], error) {
	var out dashboard.DashboardHistory
	if err := c.get(ctx, HistoryPath, SchemaHistory, &out); err != nil {
		if errors.Is(err, errUnauthorized) {
			return dashboard.Unauthorized[dashboard.DashboardHistory](), nil
		}
		return dashboard.Result[dashboard.DashboardHistory]{}, err
	}
	if err := checkHistory(out); err != nil {
		return dashboard.Result[dashboard.DashboardHistory]{}, err
	}
	return dashboard.Ok(out), nil
}

// FetchRecentItems reads the recently added items. Prices may arrive as JSON
// numbers or as decimal strings such as "25.00".
func (c *HTTPClient) FetchRecentItems(ctx context.Context) (dashboard.Result[dashboard.RecentItems], error) {
	var payload recentItemsPayload
	if err := c.get(ctx, RecentItemsPath, SchemaRecentItems, &payload); err != nil {
		if errors.Is(err, errUnauthorized) {
			return dashboard.Unauthorized[dashboard.RecentItems](), nil
		}
		return dashboard.Result[dashboard.RecentItems]{}, err
	}
	out, err := payload.toRecentItems()
	if err != nil {
		return dashboard.Result[dashboard.RecentItems]{}, err
	}
	return dashboard.Ok(out), nil
}

type recentItemsPayload struct {
	Items []itemPayload `json:"items"`
}

type itemPayload struct {
	Name  string          `json:"name"`
	Price jsoniter.Number `json:"price"`
}

func (p recentItemsPayload) toRecentItems() (dashboard.RecentItems, error) {
	items := make([]dashboard.Item, len(p.Items))
	for i, item := range p.Items {
		price, err := item.Price.Float64()
		if err != nil {
			return dashboard.RecentItems{}, fmt.Errorf("shopping: item %q price %q: %w", item.Name, item.Price.String(), err)
		}
		items[i] = dashboard.Item{Name: item.Name, Price: price}
	}
	return dashboard.RecentItems{Items: items}, nil
}

func (c *HTTPClient) get(ctx context.Context, path, schema string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("shopping: build request: %w", err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("shopping: http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return errUnauthorized
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("shopping: read response: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("shopping: remote error %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var doc any
	if err := jsonAPI.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("shopping: decode response: %w", err)
	}
	if err := c.validator.Validate(schema, doc); err != nil {
		return err
	}
	if err := jsonAPI.Unmarshal(body, target); err != nil {
		return fmt.Errorf("shopping: decode response: %w", err)
	}
	return nil
}

func checkHistory(h dashboard.DashboardHistory) error {
	for _, series := range h.Data {
		if len(series.Data) != len(h.Labels) {
			return fmt.Errorf("shopping: history series %q has %d values for %d labels", series.Label, len(series.Data), len(h.Labels))
		}
	}
	return nil
}
