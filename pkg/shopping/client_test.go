package shopping

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *HTTPClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL + "/"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestHTTPClientFetchCurrentSummary(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Fatalf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != OverviewPath {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Accept"); got != "application/json" {
			t.Fatalf("expected json accept header, got %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Fatalf("expected json content type, got %q", got)
		}
		_, _ = w.Write([]byte(`{"total":10,"total_price":300,"budget_remaining":150,"average_item_price":null}`))
	})

	result, err := client.FetchCurrentSummary(context.Background())
	if err != nil {
		t.Fatalf("fetch summary: %v", err)
	}
	if result.IsUnauthorized() {
		t.Fatalf("expected ok result")
	}
	summary := result.Data
	if *summary.Total != 10 || *summary.TotalPrice != 300 || *summary.BudgetRemaining != 150 {
		t.Fatalf("unexpected summary: %#v", summary)
	}
	if summary.AverageItemPrice != nil {
		t.Fatalf("expected null average, got %v", *summary.AverageItemPrice)
	}
}

func TestHTTPClientRoundTrip(t *testing.T) {
	fixtures := DefaultMockData()
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		var payload any
		switch r.URL.Path {
		case OverviewPath:
			payload = fixtures.Summary
		case HistoryPath:
			payload = fixtures.History
		case RecentItemsPath:
			payload = fixtures.RecentItems
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(payload)
	})
	ctx := context.Background()

	history, err := client.FetchHistory(ctx)
	if err != nil {
		t.Fatalf("fetch history: %v", err)
	}
	if len(history.Data.Labels) != 6 || history.Data.Data[1].Label != "Price" || history.Data.Data[1].Data[5] != 845.5 {
		t.Fatalf("history did not round-trip: %#v", history.Data)
	}

	recent, err := client.FetchRecentItems(ctx)
	if err != nil {
		t.Fatalf("fetch recent items: %v", err)
	}
	if len(recent.Data.Items) != 5 || recent.Data.Items[2].Name != "Free range eggs x18" {
		t.Fatalf("recent items did not round-trip: %#v", recent.Data)
	}

	summary, err := client.FetchCurrentSummary(ctx)
	if err != nil {
		t.Fatalf("fetch summary: %v", err)
	}
	if *summary.Data.AverageItemPrice != 70.46 {
		t.Fatalf("summary did not round-trip: %#v", summary.Data)
	}
}

func TestHTTPClientUnauthorizedSkipsBody(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("<html>not json</html>"))
	})

	summary, err := client.FetchCurrentSummary(context.Background())
	if err != nil {
		t.Fatalf("expected no error on 401, got %v", err)
	}
	if !summary.IsUnauthorized() {
		t.Fatalf("expected unauthorized result")
	}
	history, err := client.FetchHistory(context.Background())
	if err != nil || !history.IsUnauthorized() {
		t.Fatalf("expected unauthorized history, got %v %v", history.Outcome, err)
	}
	recent, err := client.FetchRecentItems(context.Background())
	if err != nil || !recent.IsUnauthorized() {
		t.Fatalf("expected unauthorized recent items, got %v %v", recent.Outcome, err)
	}
}

func TestHTTPClientRemoteError(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := client.FetchRecentItems(context.Background())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "shopping: remote error 502: boom") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHTTPClientAcceptsDecimalStringPrices(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[{"name":"Milk","price":"25.00"},{"name":"Bread","price":18.5}]}`))
	})

	recent, err := client.FetchRecentItems(context.Background())
	if err != nil {
		t.Fatalf("fetch recent items: %v", err)
	}
	if len(recent.Data.Items) != 2 {
		t.Fatalf("expected 2 items, got %#v", recent.Data)
	}
	if recent.Data.Items[0].Price != 25 || recent.Data.Items[1].Price != 18.5 {
		t.Fatalf("prices not decoded: %#v", recent.Data.Items)
	}
}

func TestHTTPClientRejectsInvalidPayloads(t *testing.T) {
	cases := map[string]struct {
		body  string
		fetch func(*HTTPClient) error
	}{
		"not json": {
			body: "<html></html>",
			fetch: func(c *HTTPClient) error {
				_, err := c.FetchCurrentSummary(context.Background())
				return err
			},
		},
		"schema violation": {
			body: `{"items":[{"name":"Milk","price":"cheap"}]}`,
			fetch: func(c *HTTPClient) error {
				_, err := c.FetchRecentItems(context.Background())
				return err
			},
		},
		"misaligned history": {
			body: `{"labels":["Jan","Feb"],"data":[{"label":"Budget","data":[1]}]}`,
			fetch: func(c *HTTPClient) error {
				_, err := c.FetchHistory(context.Background())
				return err
			},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			})
			if err := tc.fetch(client); err == nil {
				t.Fatalf("expected error for %s", name)
			}
		})
	}
}

func TestHTTPClientForwardsCookieAndHeaders(t *testing.T) {
	var seen atomic.Value
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.Store(r.Header.Get("Cookie") + "|" + r.Header.Get("X-Client"))
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	t.Cleanup(server.Close)

	base, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL, Headers: map[string]string{"X-Client": "shopdash"}})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	viewer := base.WithCookie("session=abc")
	if _, err := viewer.FetchRecentItems(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got := seen.Load(); got != "session=abc|shopdash" {
		t.Fatalf("unexpected forwarded headers %v", got)
	}
	if base.cookie != "" {
		t.Fatalf("WithCookie must not modify the original client")
	}
}

func TestNewHTTPClientConfig(t *testing.T) {
	if _, err := NewHTTPClient(HTTPConfig{}); err == nil {
		t.Fatalf("expected error without base url")
	}
	client, err := NewHTTPClient(HTTPConfig{BaseURL: "http://backend", Timeout: 3 * time.Second})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if client.client.Timeout != 3*time.Second {
		t.Fatalf("expected configured timeout, got %s", client.client.Timeout)
	}
	client, _ = NewHTTPClient(HTTPConfig{BaseURL: "http://backend"})
	if client.client.Timeout != DefaultTimeout {
		t.Fatalf("expected default timeout, got %s", client.client.Timeout)
	}
}

func TestHTTPClientCancelledContext(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.FetchCurrentSummary(ctx); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}
