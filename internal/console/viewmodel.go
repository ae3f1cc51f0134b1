package console

import (
	"time"

	"github.com/poslane/poslane/internal/browse"
	"github.com/poslane/poslane/internal/catalog"
)

// pageView is the JSON rendering of a list controller snapshot.
type pageView[R any] struct {
	Items   []R    `json:"items"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
	HasMore bool   `json:"has_more"`
	State   string `json:"state"`
	Error   string `json:"error,omitempty"`
}

func pageViewFrom[T, R any](snap browse.Snapshot[T], row func(T) R) pageView[R] {
	view := pageView[R]{
		Items:   make([]R, 0, len(snap.Items)),
		Page:    snap.PageNumber,
		PerPage: snap.PerPage,
		HasMore: snap.HasMore,
		State:   string(snap.State),
		Error:   snap.Err,
	}
	for _, item := range snap.Items {
		view.Items = append(view.Items, row(item))
	}
	return view
}

type productRow struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	SKU      string  `json:"sku,omitempty"`
	Category string  `json:"category"`
	Brand    string  `json:"brand"`
	Price    float64 `json:"price"`
	Quantity float64 `json:"quantity"`
	Status   string  `json:"status"`
}

func productRowFrom(p catalog.Product) productRow {
	return productRow{
		ID:       p.ID,
		Name:     p.Name,
		SKU:      p.SKU,
		Category: p.CategoryName,
		Brand:    p.BrandName,
		Price:    p.Price,
		Quantity: p.Quantity,
		// Product pages use the two-tier classifier; stock pages use the
		// four-tier one. The rules are deliberately not shared.
		Status: catalog.CoarseStockStatus(p.Quantity),
	}
}

type stockRow struct {
	ID           string  `json:"id"`
	ProductName  string  `json:"product_name"`
	BatchNumber  string  `json:"batch_number"`
	Quantity     float64 `json:"quantity"`
	UnitCost     float64 `json:"unit_cost"`
	SellingPrice float64 `json:"selling_price"`
	ExpiryDate   string  `json:"expiry_date,omitempty"`
	Status       string  `json:"status"`
	Expiry       string  `json:"expiry"`
}

func stockRowFrom(b catalog.StockBatch) stockRow {
	row := stockRow{
		ID:           b.ID,
		ProductName:  b.ProductName,
		BatchNumber:  b.BatchNumber,
		Quantity:     b.Quantity,
		UnitCost:     b.UnitCost,
		SellingPrice: b.SellingPrice,
		Status:       catalog.DetailedStockStatus(b.Quantity),
		Expiry:       catalog.ExpiryStatus(b.ExpiryDate, time.Now().UTC()),
	}
	if !b.ExpiryDate.IsZero() {
		row.ExpiryDate = b.ExpiryDate.Format("2006-01-02")
	}
	return row
}

type brandRow struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func brandRowFrom(b catalog.Brand) brandRow {
	return brandRow{ID: b.ID, Name: b.Name}
}

type categoryRow struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func categoryRowFrom(c catalog.Category) categoryRow {
	return categoryRow{ID: c.ID, Name: c.Name}
}

type supplierRow struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

func supplierRowFrom(s catalog.Supplier) supplierRow {
	return supplierRow{ID: s.ID, Name: s.Name, Phone: s.Phone, Email: s.Email, Address: s.Address}
}

type receiptRow struct {
	ID           string  `json:"id"`
	Number       string  `json:"number"`
	SupplierName string  `json:"supplier_name"`
	TotalValue   float64 `json:"total_value"`
	ReceivedAt   string  `json:"received_at,omitempty"`
	LineCount    int     `json:"line_count"`
}

func receiptRowFrom(g catalog.GoodsReceipt) receiptRow {
	row := receiptRow{
		ID:           g.ID,
		Number:       g.Number,
		SupplierName: g.SupplierName,
		TotalValue:   g.TotalValue,
		LineCount:    len(g.Lines),
	}
	if !g.ReceivedAt.IsZero() {
		row.ReceivedAt = g.ReceivedAt.Format("2006-01-02")
	}
	return row
}

type saleRow struct {
	ID        string  `json:"id"`
	Number    string  `json:"number"`
	Total     float64 `json:"total"`
	LineCount int     `json:"line_count"`
	CreatedAt string  `json:"created_at,omitempty"`
}

func saleRowFrom(s catalog.Sale) saleRow {
	row := saleRow{ID: s.ID, Number: s.Number, Total: s.Total, LineCount: len(s.Lines)}
	if !s.CreatedAt.IsZero() {
		row.CreatedAt = s.CreatedAt.Format(time.RFC3339)
	}
	return row
}

type returnRow struct {
	ID        string  `json:"id"`
	SaleID    string  `json:"sale_id"`
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	Reason    string  `json:"reason,omitempty"`
}

func returnRowFrom(r catalog.Return) returnRow {
	return returnRow{ID: r.ID, SaleID: r.SaleID, ProductID: r.ProductID, Quantity: r.Quantity, Reason: r.Reason}
}
