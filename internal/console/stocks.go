package console

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/poslane/poslane/internal/browse"
	"github.com/poslane/poslane/internal/catalog"
	"github.com/poslane/poslane/internal/upstream"
)

func (h *Handler) stockController(sess *Session) *browse.Controller[catalog.StockBatch] {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.stocks == nil {
		sess.stocks = browse.New(h.stocks.List, upstream.DefaultPerPage, h.logger)
	}
	return sess.stocks
}

func (h *Handler) listStocks(w http.ResponseWriter, r *http.Request) {
	ctrl := h.stockController(h.sessions.Acquire(w, r))
	listAction(h, w, r, ctrl, func(snap browse.Snapshot[catalog.StockBatch]) any {
		return pageViewFrom(snap, stockRowFrom)
	})
}

func (h *Handler) deleteStock(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.stocks.Remove(r.Context(), id); err != nil {
		h.respondUpstreamError(w, err)
		return
	}
	h.recordAction(r, "delete", "stock_batch", id, nil)
	w.WriteHeader(http.StatusNoContent)
}
