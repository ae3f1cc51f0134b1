package console

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/poslane/poslane/internal/browse"
	"github.com/poslane/poslane/internal/catalog"
	"github.com/poslane/poslane/internal/platform/httpx"
	"github.com/poslane/poslane/internal/upstream"
)

const defaultSearchLimit = 10

func (h *Handler) brandController(sess *Session) *browse.Controller[catalog.Brand] {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.brands == nil {
		sess.brands = browse.New(h.brands.List, upstream.DefaultPerPage, h.logger)
	}
	return sess.brands
}

func (h *Handler) listBrands(w http.ResponseWriter, r *http.Request) {
	ctrl := h.brandController(h.sessions.Acquire(w, r))
	listAction(h, w, r, ctrl, func(snap browse.Snapshot[catalog.Brand]) any {
		return pageViewFrom(snap, brandRowFrom)
	})
}

func (h *Handler) searchBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.brands.Search(r.Context(), r.URL.Query().Get("q"), searchLimit(r))
	if err != nil {
		h.respondUpstreamError(w, err)
		return
	}
	rows := make([]brandRow, 0, len(brands))
	for _, b := range brands {
		rows = append(rows, brandRowFrom(b))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows})
}

func (h *Handler) createBrand(w http.ResponseWriter, r *http.Request) {
	var form upstream.BrandForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	created, err := h.brands.Create(r.Context(), form)
	if err != nil {
		h.respondUpstreamError(w, err)
		return
	}
	h.recordAction(r, "create", "brand", created.ID, map[string]any{"name": form.Name})
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) deleteBrand(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.brands.Remove(r.Context(), id); err != nil {
		h.respondUpstreamError(w, err)
		return
	}
	h.recordAction(r, "delete", "brand", id, nil)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) categoryController(sess *Session) *browse.Controller[catalog.Category] {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.categories == nil {
		sess.categories = browse.New(h.categories.List, upstream.DefaultPerPage, h.logger)
	}
	return sess.categories
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	ctrl := h.categoryController(h.sessions.Acquire(w, r))
	listAction(h, w, r, ctrl, func(snap browse.Snapshot[catalog.Category]) any {
		return pageViewFrom(snap, categoryRowFrom)
	})
}

func (h *Handler) searchCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.Search(r.Context(), r.URL.Query().Get("q"), searchLimit(r))
	if err != nil {
		h.respondUpstreamError(w, err)
		return
	}
	rows := make([]categoryRow, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, categoryRowFrom(c))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": rows})
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	var form upstream.CategoryForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	created, err := h.categories.Create(r.Context(), form)
	if err != nil {
		h.respondUpstreamError(w, err)
		return
	}
	h.recordAction(r, "create", "category", created.ID, map[string]any{"name": form.Name})
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.categories.Remove(r.Context(), id); err != nil {
		h.respondUpstreamError(w, err)
		return
	}
	h.recordAction(r, "delete", "category", id, nil)
	w.WriteHeader(http.StatusNoContent)
}

func searchLimit(r *http.Request) int {
	if n, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && n > 0 {
		return n
	}
	return defaultSearchLimit
}
