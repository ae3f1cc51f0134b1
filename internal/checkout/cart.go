// Package checkout computes cart totals and margins and submits completed
// sales to the backend.
package checkout

import (
	"context"
	"errors"

	"github.com/poslane/poslane/internal/catalog"
	"github.com/poslane/poslane/internal/upstream"
)

// ErrEmptyCart indicates a submit without any lines.
var ErrEmptyCart = errors.New("checkout: cart is empty")

// Line is one product in the cart.
type Line struct {
	ProductID   string  `json:"product_id"`
	Name        string  `json:"name"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	UnitCost    float64 `json:"unit_cost"`
	DiscountPct float64 `json:"discount_pct"`
	TaxPct      float64 `json:"tax_pct"`
}

// Totals summarises a cart.
type Totals struct {
	Gross     float64 `json:"gross"`
	Discount  float64 `json:"discount"`
	Tax       float64 `json:"tax"`
	Total     float64 `json:"total"`
	Cost      float64 `json:"cost"`
	MarginPct float64 `json:"margin_pct"`
}

// LineTotals computes the discount, tax, and total for a single line.
func LineTotals(line Line) (discount, tax, total float64) {
	gross := line.Quantity * line.UnitPrice
	discount = gross * (line.DiscountPct / 100)
	net := gross - discount
	tax = net * (line.TaxPct / 100)
	total = net + tax
	return discount, tax, total
}

// CartTotals sums every line and derives the margin over cost. Margin is
// computed on the pre-tax net amount.
func CartTotals(lines []Line) Totals {
	var t Totals
	var net float64
	for _, line := range lines {
		discount, tax, total := LineTotals(line)
		gross := line.Quantity * line.UnitPrice
		t.Gross += gross
		t.Discount += discount
		t.Tax += tax
		t.Total += total
		t.Cost += line.Quantity * line.UnitCost
		net += gross - discount
	}
	if net > 0 {
		t.MarginPct = (net - t.Cost) / net * 100
	}
	return t
}

// SaleSubmitter posts a completed sale. Implemented by upstream.SaleService.
type SaleSubmitter interface {
	Create(ctx context.Context, form upstream.SaleForm) (catalog.Sale, error)
}

// Submit validates the cart, computes totals, and records the sale.
func Submit(ctx context.Context, sales SaleSubmitter, lines []Line) (catalog.Sale, Totals, error) {
	if len(lines) == 0 {
		return catalog.Sale{}, Totals{}, ErrEmptyCart
	}
	totals := CartTotals(lines)
	form := upstream.SaleForm{Total: totals.Total}
	for _, line := range lines {
		form.Lines = append(form.Lines, upstream.SaleLineForm{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	sale, err := sales.Create(ctx, form)
	if err != nil {
		return catalog.Sale{}, totals, err
	}
	return sale, totals, nil
}
