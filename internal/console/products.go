package console

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/poslane/poslane/internal/audit"
	"github.com/poslane/poslane/internal/browse"
	"github.com/poslane/poslane/internal/catalog"
	"github.com/poslane/poslane/internal/platform/httpx"
	"github.com/poslane/poslane/internal/upstream"
)

func (h *Handler) productController(sess *Session) *browse.Controller[catalog.Product] {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.products == nil {
		sess.products = browse.New(h.products.List, upstream.DefaultPerPage, h.logger)
	}
	return sess.products
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	ctrl := h.productController(h.sessions.Acquire(w, r))
	listAction(h, w, r, ctrl, func(snap browse.Snapshot[catalog.Product]) any {
		return pageViewFrom(snap, productRowFrom)
	})
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var form upstream.ProductForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	created, err := h.products.Create(r.Context(), form)
	if err != nil {
		h.respondUpstreamError(w, err)
		return
	}
	h.recordAction(r, "create", "product", created.ID, map[string]any{"name": form.Name})
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.products.Remove(r.Context(), id); err != nil {
		h.respondUpstreamError(w, err)
		return
	}
	h.recordAction(r, "delete", "product", id, nil)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) recordAction(r *http.Request, action, entity, entityID string, meta map[string]any) {
	if h.audit == nil {
		return
	}
	entry := audit.Entry{Actor: r.RemoteAddr, Action: action, Entity: entity, EntityID: entityID, Meta: meta}
	if err := h.audit.Record(r.Context(), entry); err != nil {
		h.logger.Warn("record audit entry", slog.Any("error", err))
	}
}
