package console

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/poslane/poslane/internal/dashboard"
	"github.com/poslane/poslane/internal/platform/kv"
	"github.com/poslane/poslane/internal/upstream"
)

// fakeBackend emulates the remote inventory backend: three product pages,
// aggregate endpoints, and a delete that always fails.
func fakeBackend(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/FindProducts":
			page := 1
			if cursor := r.URL.Query().Get("cursor"); cursor != "" {
				_, err := fmt.Sscanf(cursor, "c%d", &page)
				require.NoError(t, err)
			}
			hasMore := page < 3
			next := ""
			if hasMore {
				next = fmt.Sprintf("c%d", page+1)
			}
			fmt.Fprintf(w, `{"data":[{"id":"p-%d","name":"Product %d","quantity":%d}],"next_cursor":%q,"has_more":%t}`,
				page, page, page*20, next, hasMore)
		case strings.HasPrefix(r.URL.Path, "/DeleteStock/"):
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"batch in use"}`))
		case r.URL.Path == "/TotalProducts":
			_, _ = w.Write([]byte(`{"total_products":3}`))
		case r.URL.Path == "/LowStockCount":
			_, _ = w.Write([]byte(`{"low_stock_count":1}`))
		case r.URL.Path == "/AverageStock":
			_, _ = w.Write([]byte(`{"average_stock":40}`))
		case r.URL.Path == "/OutOfStockCount":
			_, _ = w.Write([]byte(`{"out_of_stock_count":0}`))
		case r.URL.Path == "/TotalStockQuantity":
			_, _ = w.Write([]byte(`{"total_quantity":120}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func newConsole(t *testing.T, backendURL string) *httptest.Server {
	t.Helper()
	logger := slog.Default()
	client := upstream.NewClient(backendURL, logger)
	ctrl := dashboard.NewController(upstream.NewMetricsService(client), kv.NewMemory(), logger, nil)

	handler := NewHandler(HandlerParams{
		Logger:     logger,
		Products:   upstream.NewProductService(client),
		Stocks:     upstream.NewStockService(client),
		Brands:     upstream.NewBrandService(client),
		Categories: upstream.NewCategoryService(client),
		Receipts:   upstream.NewGRNService(client),
		Suppliers:  upstream.NewSupplierService(client),
		Sales:      upstream.NewSaleService(client),
		Returns:    upstream.NewReturnService(client),
		Dashboard:  ctrl,
	})

	r := chi.NewRouter()
	r.Route("/api", handler.MountRoutes)
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

// sessionClient keeps the console session cookie across requests.
func sessionClient(t *testing.T, base string) func(method, path string, body string) (*http.Response, []byte) {
	t.Helper()
	var cookies []*http.Cookie
	return func(method, path, body string) (*http.Response, []byte) {
		req, err := http.NewRequest(method, base+path, strings.NewReader(body))
		require.NoError(t, err)
		if body != "" {
			req.Header.Set("Content-Type", "application/json")
		}
		for _, c := range cookies {
			req.AddCookie(c)
		}
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		if set := resp.Cookies(); len(set) > 0 {
			cookies = set
		}
		payload, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		_ = resp.Body.Close()
		return resp, payload
	}
}

func TestProductListNavigation(t *testing.T) {
	backend := fakeBackend(t)
	console := newConsole(t, backend.URL)
	do := sessionClient(t, console.URL)

	resp, body := do(http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view pageView[productRow]
	require.NoError(t, json.Unmarshal(body, &view))
	require.Equal(t, 1, view.Page)
	require.True(t, view.HasMore)
	require.Equal(t, "p-1", view.Items[0].ID)
	require.Equal(t, "Active", view.Items[0].Status)

	resp, body = do(http.MethodGet, "/api/products?action=next", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &view))
	require.Equal(t, 2, view.Page)
	require.Equal(t, "p-2", view.Items[0].ID)

	resp, body = do(http.MethodGet, "/api/products?action=prev", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &view))
	require.Equal(t, 1, view.Page)
	require.Equal(t, "p-1", view.Items[0].ID)
}

func TestPreviousOnFirstPageRejected(t *testing.T) {
	backend := fakeBackend(t)
	console := newConsole(t, backend.URL)
	do := sessionClient(t, console.URL)

	do(http.MethodGet, "/api/products", "")
	resp, _ := do(http.MethodGet, "/api/products?action=prev", "")
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestDeleteSurfacesBackendMessage(t *testing.T) {
	backend := fakeBackend(t)
	console := newConsole(t, backend.URL)
	do := sessionClient(t, console.URL)

	resp, body := do(http.MethodDelete, "/api/stocks/b-1", "")
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.Contains(t, string(body), "batch in use")
}

func TestCreateProductValidationError(t *testing.T) {
	backend := fakeBackend(t)
	console := newConsole(t, backend.URL)
	do := sessionClient(t, console.URL)

	payload := `{"name":"Rice","category_id":"c-1","brand_id":"b-1","subcategories":[]}`
	resp, body := do(http.MethodPost, "/api/products", payload)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, string(body), "at least one subcategory is required")
}

func TestDashboardServesAndCaches(t *testing.T) {
	backend := fakeBackend(t)
	console := newConsole(t, backend.URL)
	do := sessionClient(t, console.URL)

	resp, body := do(http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view dashboardView
	require.NoError(t, json.Unmarshal(body, &view))
	require.Equal(t, 3, view.TotalItems)
	require.InDelta(t, 120, view.TotalStockQty, 0.001)
	require.False(t, view.Cached)

	resp, body = do(http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &view))
	require.True(t, view.Cached)

	// Forced refresh bypasses the cache and reports live values.
	resp, body = do(http.MethodGet, "/api/dashboard?refresh=1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &view))
	require.False(t, view.Cached)
}
