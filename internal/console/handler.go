package console

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/poslane/poslane/internal/audit"
	"github.com/poslane/poslane/internal/browse"
	"github.com/poslane/poslane/internal/dashboard"
	"github.com/poslane/poslane/internal/platform/httpx"
	"github.com/poslane/poslane/internal/upstream"
)

// Handler serves the console API consumed by the admin frontend.
type Handler struct {
	logger     *slog.Logger
	products   *upstream.ProductService
	stocks     *upstream.StockService
	brands     *upstream.BrandService
	categories *upstream.CategoryService
	receipts   *upstream.GRNService
	suppliers  *upstream.SupplierService
	sales      *upstream.SaleService
	returns    *upstream.ReturnService
	dashboard  *dashboard.Controller
	audit      *audit.Recorder
	sessions   *Registry
}

// HandlerParams groups Handler dependencies.
type HandlerParams struct {
	Logger     *slog.Logger
	Products   *upstream.ProductService
	Stocks     *upstream.StockService
	Brands     *upstream.BrandService
	Categories *upstream.CategoryService
	Receipts   *upstream.GRNService
	Suppliers  *upstream.SupplierService
	Sales      *upstream.SaleService
	Returns    *upstream.ReturnService
	Dashboard  *dashboard.Controller
	Audit      *audit.Recorder
	Sessions   *Registry
}

// NewHandler constructs the console handler.
func NewHandler(params HandlerParams) *Handler {
	logger := params.Logger
	if logger == nil {
		logger = slog.Default()
	}
	sessions := params.Sessions
	if sessions == nil {
		sessions = NewRegistry(0)
	}
	return &Handler{
		logger:     logger,
		products:   params.Products,
		stocks:     params.Stocks,
		brands:     params.Brands,
		categories: params.Categories,
		receipts:   params.Receipts,
		suppliers:  params.Suppliers,
		sales:      params.Sales,
		returns:    params.Returns,
		dashboard:  params.Dashboard,
		audit:      params.Audit,
		sessions:   sessions,
	}
}

// MountRoutes attaches console routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/dashboard", h.getDashboard)

	r.Get("/products", h.listProducts)
	r.Post("/products", h.createProduct)
	r.Delete("/products/{id}", h.deleteProduct)

	r.Get("/stocks", h.listStocks)
	r.Delete("/stocks/{id}", h.deleteStock)

	r.Get("/brands", h.listBrands)
	r.Get("/brands/search", h.searchBrands)
	r.Post("/brands", h.createBrand)
	r.Delete("/brands/{id}", h.deleteBrand)

	r.Get("/categories", h.listCategories)
	r.Get("/categories/search", h.searchCategories)
	r.Post("/categories", h.createCategory)
	r.Delete("/categories/{id}", h.deleteCategory)

	r.Get("/grns", h.listReceipts)
	r.Post("/grns", h.createReceipt)
	r.Delete("/grns/{id}", h.deleteReceipt)

	r.Get("/suppliers", h.listSuppliers)
	r.Post("/suppliers", h.createSupplier)
	r.Delete("/suppliers/{id}", h.deleteSupplier)

	r.Get("/sales", h.listSales)
	r.Post("/checkout", h.checkout)

	r.Get("/returns", h.listReturns)
	r.Post("/returns", h.createReturn)
}

// listAction drives one list controller transition from request parameters
// and responds with the resulting snapshot. Fetch failures land in the
// snapshot's error field so the frontend can render its inline banner with
// a retry affordance; only invalid navigation is a request error.
func listAction[T any](h *Handler, w http.ResponseWriter, r *http.Request, ctrl *browse.Controller[T], render func(browse.Snapshot[T]) any) {
	ctx := r.Context()
	query := r.URL.Query()

	var err error
	switch action := query.Get("action"); action {
	case "", "first":
		if size := query.Get("per_page"); size != "" {
			if n, convErr := strconv.Atoi(size); convErr == nil {
				ctrl.UpdatePageSize(n)
			}
		}
		err = ctrl.LoadFirst(ctx, listFilter(query))
	case "next":
		err = ctrl.Next(ctx)
	case "prev":
		err = ctrl.Previous(ctx)
	case "more":
		err = ctrl.LoadMore(ctx)
	case "retry":
		err = ctrl.Retry(ctx)
	default:
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "unknown action "+action)
		return
	}

	switch err {
	case nil:
	case browse.ErrNoNextPage, browse.ErrNoPreviousPage, browse.ErrBusy:
		httpx.Problem(w, http.StatusConflict, "Invalid Navigation", err.Error())
		return
	default:
		// Fetch errors are part of the view state; fall through and render
		// the errored snapshot.
		h.logger.Warn("list fetch failed", slog.Any("error", err))
	}

	httpx.JSON(w, http.StatusOK, render(ctrl.Snapshot()))
}

// listFilter keeps only backend filter parameters, stripping the
// controller's own action/per_page knobs.
func listFilter(query url.Values) url.Values {
	filter := url.Values{}
	for key, values := range query {
		switch key {
		case "action", "per_page":
			continue
		}
		filter[key] = values
	}
	if len(filter) == 0 {
		return nil
	}
	return filter
}

// respondUpstreamError maps a service error to a problem response. The
// message reaches the user verbatim whenever present; form dialogs render it
// inline and keep their field values.
func (h *Handler) respondUpstreamError(w http.ResponseWriter, err error) {
	var backendErr *upstream.BackendError
	if errors.As(err, &backendErr) {
		httpx.Problem(w, backendErr.Status, "Backend Error", backendErr.Message)
		return
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		httpx.Problem(w, http.StatusBadGateway, "Backend Unreachable", err.Error())
		return
	}
	// Remaining errors are client-side validation failures.
	httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
}
