package console

import (
	"net/http"

	"github.com/poslane/poslane/internal/browse"
	"github.com/poslane/poslane/internal/catalog"
	"github.com/poslane/poslane/internal/checkout"
	"github.com/poslane/poslane/internal/platform/httpx"
	"github.com/poslane/poslane/internal/upstream"
)

func (h *Handler) saleController(sess *Session) *browse.Controller[catalog.Sale] {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.sales == nil {
		sess.sales = browse.New(h.sales.List, upstream.DefaultPerPage, h.logger)
	}
	return sess.sales
}

func (h *Handler) listSales(w http.ResponseWriter, r *http.Request) {
	ctrl := h.saleController(h.sessions.Acquire(w, r))
	listAction(h, w, r, ctrl, func(snap browse.Snapshot[catalog.Sale]) any {
		return pageViewFrom(snap, saleRowFrom)
	})
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Lines []checkout.Line `json:"lines"`
	}
	if err := httpx.DecodeJSON(r, &body); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	sale, totals, err := checkout.Submit(r.Context(), h.sales, body.Lines)
	if err != nil {
		h.respondUpstreamError(w, err)
		return
	}
	h.recordAction(r, "checkout", "sale", sale.ID, map[string]any{"total": totals.Total})
	httpx.JSON(w, http.StatusCreated, map[string]any{
		"sale":   saleRowFrom(sale),
		"totals": totals,
	})
}

func (h *Handler) returnController(sess *Session) *browse.Controller[catalog.Return] {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.returns == nil {
		sess.returns = browse.New(h.returns.List, upstream.DefaultPerPage, h.logger)
	}
	return sess.returns
}

func (h *Handler) listReturns(w http.ResponseWriter, r *http.Request) {
	ctrl := h.returnController(h.sessions.Acquire(w, r))
	listAction(h, w, r, ctrl, func(snap browse.Snapshot[catalog.Return]) any {
		return pageViewFrom(snap, returnRowFrom)
	})
}

func (h *Handler) createReturn(w http.ResponseWriter, r *http.Request) {
	var form upstream.ReturnForm
	if err := httpx.DecodeJSON(r, &form); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	created, err := h.returns.Create(r.Context(), form)
	if err != nil {
		h.respondUpstreamError(w, err)
		return
	}
	h.recordAction(r, "create", "return", created.ID, map[string]any{"sale_id": form.SaleID})
	httpx.JSON(w, http.StatusCreated, created)
}
