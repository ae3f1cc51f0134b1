package console

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/poslane/poslane/internal/browse"
	"github.com/poslane/poslane/internal/catalog"
	"github.com/poslane/poslane/internal/platform/httpx"
	"github.com/poslane/poslane/internal/upstream"
)

func (h *Handler) receiptController(sess *Session) *browse.Controller[catalog.GoodsReceipt] {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.receipts == nil {
		sess.receipts = browse.New(h.receipts.List, upstream.DefaultPerPage, h.logger)
	}
	return sess.receipts
}

func (h *Handler) listReceipts(w http.ResponseWriter, r *http.Request) {
	ctrl := h.receiptController(h.sessions.Acquire(w, r))
	listAction(h, w, r, ctrl, func(snap browse.Snapshot[catalog.GoodsReceipt]) any {
		return pageViewFrom(snap, receiptRowFrom)
	})
}

func (h *Handler) createReceipt(w http.ResponseWriter, r *http.Request) {
	var form upstream.GoodsReceiptForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	created, err := h.receipts.Create(r.Context(), form)
	if err != nil {
		h.respondUpstreamError(w, err)
		return
	}
	h.recordAction(r, "create", "goods_receipt", created.ID, map[string]any{"supplier_id": form.SupplierID})
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) deleteReceipt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.receipts.Remove(r.Context(), id); err != nil {
		h.respondUpstreamError(w, err)
		return
	}
	h.recordAction(r, "delete", "goods_receipt", id, nil)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) supplierController(sess *Session) *browse.Controller[catalog.Supplier] {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.suppliers == nil {
		sess.suppliers = browse.New(h.suppliers.List, upstream.DefaultPerPage, h.logger)
	}
	return sess.suppliers
}

func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	ctrl := h.supplierController(h.sessions.Acquire(w, r))
	listAction(h, w, r, ctrl, func(snap browse.Snapshot[catalog.Supplier]) any {
		return pageViewFrom(snap, supplierRowFrom)
	})
}

func (h *Handler) createSupplier(w http.ResponseWriter, r *http.Request) {
	var form upstream.SupplierForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	created, err := h.suppliers.Create(r.Context(), form)
	if err != nil {
		h.respondUpstreamError(w, err)
		return
	}
	h.recordAction(r, "create", "supplier", created.ID, map[string]any{"name": form.Name})
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) deleteSupplier(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.suppliers.Remove(r.Context(), id); err != nil {
		h.respondUpstreamError(w, err)
		return
	}
	h.recordAction(r, "delete", "supplier", id, nil)
	w.WriteHeader(http.StatusNoContent)
}
