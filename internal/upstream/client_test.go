package upstream

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClientUsesConfiguredTimeout(t *testing.T) {
	client := NewClientWithTimeout("http://127.0.0.1:0", 5*time.Second, testLogger())
	require.Equal(t, 5*time.Second, client.httpClient.Timeout)

	// Unset and nonsense values fall back to the default.
	require.Equal(t, DefaultTimeout, NewClient("http://127.0.0.1:0", testLogger()).httpClient.Timeout)
	require.Equal(t, DefaultTimeout, NewClientWithTimeout("http://127.0.0.1:0", -1, testLogger()).httpClient.Timeout)
}

func TestListCoercesUnsupportedPageSize(t *testing.T) {
	var gotPerPage string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPerPage = r.URL.Query().Get("per_page")
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	svc := NewProductService(NewClient(server.URL, testLogger()))
	_, err := svc.List(context.Background(), ListRequest{PerPage: 999})
	require.NoError(t, err)
	require.Equal(t, "15", gotPerPage)
}

func TestListOmitsBlankCursor(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	svc := NewProductService(NewClient(server.URL, testLogger()))

	_, err := svc.List(context.Background(), ListRequest{PerPage: 25, Cursor: "   "})
	require.NoError(t, err)
	_, present := gotQuery["cursor"]
	require.False(t, present, "whitespace cursor must be omitted, not sent empty")

	_, err = svc.List(context.Background(), ListRequest{PerPage: 25, Cursor: "tok-9"})
	require.NoError(t, err)
	require.Equal(t, "tok-9", gotQuery.Get("cursor"))
}

func TestDeleteSurfacesJSONErrorVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"batch in use"}`))
	}))
	defer server.Close()

	svc := NewStockService(NewClient(server.URL, testLogger()))
	err := svc.Remove(context.Background(), "b-1")
	require.Error(t, err)
	require.Equal(t, "batch in use", err.Error())
}

func TestErrorExtractionTiers(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"json error field", `{"error":"no such product"}`, "no such product"},
		{"json message field", `{"message":"supplier locked"}`, "supplier locked"},
		{"plain text body", `upstream exploded`, "upstream exploded"},
		{"empty body", ``, "backend request failed with status 500"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := extractError(http.StatusInternalServerError, []byte(tc.body))
			require.Equal(t, tc.want, err.Error())
		})
	}
}

func TestCreateProductRejectedClientSideWithoutHTTPCall(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	svc := NewProductService(NewClient(server.URL, testLogger()))
	_, err := svc.Create(context.Background(), ProductForm{
		Name:          "Rice",
		CategoryID:    "c-1",
		BrandID:       "b-1",
		Subcategories: []SubcategoryForm{},
	})
	require.ErrorIs(t, err, ErrNoSubcategories)
	require.False(t, called, "invalid form must not reach the backend")
}

func TestCreateProductValidatesExpiryDate(t *testing.T) {
	svc := NewProductService(NewClient("http://127.0.0.1:0", testLogger()))
	_, err := svc.Create(context.Background(), ProductForm{
		Name:       "Rice",
		CategoryID: "c-1",
		BrandID:    "b-1",
		Subcategories: []SubcategoryForm{
			{Name: "5kg", Quantity: 1, Price: 10, ExpiryDate: "next tuesday"},
		},
	})
	require.ErrorIs(t, err, ErrBadExpiryDate)
}

func TestCreateProductSendsIdempotencyKey(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Idempotency-Key")
		_, _ = w.Write([]byte(`{"data":{"id":"p-1","name":"Rice"}}`))
	}))
	defer server.Close()

	svc := NewProductService(NewClient(server.URL, testLogger()))
	created, err := svc.Create(context.Background(), ProductForm{
		Name:       "Rice",
		CategoryID: "c-1",
		BrandID:    "b-1",
		Subcategories: []SubcategoryForm{
			{Name: "5kg", Quantity: 1, Price: 10, ExpiryDate: "2026-12-01"},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, gotKey)
	require.Equal(t, "p-1", created.ID)
}

func TestSearchUsesDedicatedEndpoint(t *testing.T) {
	var gotPath, gotQ, gotLimit string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQ = r.URL.Query().Get("q")
		gotLimit = r.URL.Query().Get("limit")
		_, _ = w.Write([]byte(`{"data":[{"id":"br-1","name":"Acme"}]}`))
	}))
	defer server.Close()

	svc := NewBrandService(NewClient(server.URL, testLogger()))
	brands, err := svc.Search(context.Background(), "ac", 10)
	require.NoError(t, err)
	require.Equal(t, "/api/brands/search", gotPath)
	require.Equal(t, "ac", gotQ)
	require.Equal(t, "10", gotLimit)
	require.Len(t, brands, 1)
	require.Equal(t, "Acme", brands[0].Name)
}

func TestRemoveAcceptsEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	svc := NewProductService(NewClient(server.URL, testLogger()))
	require.NoError(t, svc.Remove(context.Background(), "p-1"))
}

func TestMetricsServiceParsesSingleFieldObjects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/TotalProducts":
			_, _ = w.Write([]byte(`{"total_products":120}`))
		case "/LowStockCount":
			_, _ = w.Write([]byte(`{"low_stock_count":7}`))
		case "/AverageStock":
			_, _ = w.Write([]byte(`{"average_stock":33.5}`))
		case "/OutOfStockCount":
			_, _ = w.Write([]byte(`{"out_of_stock_count":2}`))
		case "/TotalStockQuantity":
			_, _ = w.Write([]byte(`{"total_quantity":4020}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	svc := NewMetricsService(NewClient(server.URL, testLogger()))
	counts, err := svc.StockCounts(context.Background())
	require.NoError(t, err)
	require.Equal(t, 120, counts.TotalItems)
	require.Equal(t, 7, counts.LowStockCount)
	require.InDelta(t, 33.5, counts.AverageStock, 0.001)
	require.Equal(t, 2, counts.OutOfStockCount)

	qty, err := svc.TotalStockQuantity(context.Background())
	require.NoError(t, err)
	require.InDelta(t, 4020, qty, 0.001)
}
