package console

import (
	"log/slog"
	"net/http"

	"github.com/poslane/poslane/internal/dashboard"
	"github.com/poslane/poslane/internal/platform/httpx"
)

type dashboardView struct {
	TotalItems      int     `json:"total_items"`
	TotalStockQty   float64 `json:"total_stock_qty"`
	LowStockCount   int     `json:"low_stock_count"`
	AverageStock    float64 `json:"average_stock"`
	OutOfStockCount int     `json:"out_of_stock_count"`
	TotalItemsLabel string  `json:"total_items_label"`
	StockQtyLabel   string  `json:"stock_qty_label"`
	Cached          bool    `json:"cached"`
	FetchedAt       string  `json:"fetched_at,omitempty"`
}

// getDashboard serves the metric cards. `?refresh=1` forces a foreground
// fetch bypassing the cache.
func (h *Handler) getDashboard(w http.ResponseWriter, r *http.Request) {
	var (
		snap      dashboard.Snapshot
		fromCache bool
		err       error
	)
	if r.URL.Query().Get("refresh") == "1" {
		snap, err = h.dashboard.Refresh(r.Context())
	} else {
		snap, fromCache, err = h.dashboard.Load(r.Context())
	}
	if err != nil {
		h.logger.Warn("dashboard metrics unavailable", slog.Any("error", err))
		h.respondUpstreamError(w, err)
		return
	}

	view := dashboardView{
		TotalItems:      snap.TotalItems,
		TotalStockQty:   snap.TotalStockQty,
		LowStockCount:   snap.LowStockCount,
		AverageStock:    snap.AverageStock,
		OutOfStockCount: snap.OutOfStockCount,
		TotalItemsLabel: dashboard.FormatCount(snap.TotalItems),
		StockQtyLabel:   dashboard.FormatQuantity(snap.TotalStockQty),
		Cached:          fromCache,
	}
	if !snap.FetchedAt.IsZero() {
		view.FetchedAt = snap.FetchedAt.Format(http.TimeFormat)
	}
	httpx.JSON(w, http.StatusOK, view)
}
