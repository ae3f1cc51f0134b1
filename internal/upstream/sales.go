package upstream

import (
	"context"
	"fmt"

	"github.com/poslane/poslane/internal/catalog"
)

// SaleLineForm is one sold item on a sale payload.
type SaleLineForm struct {
	ProductID string  `json:"product_id" validate:"required"`
	Quantity  float64 `json:"quantity" validate:"gt=0"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
}

// SaleForm is the payload for recording a completed checkout.
type SaleForm struct {
	Lines []SaleLineForm `json:"lines" validate:"min=1,dive"`
	Total float64        `json:"total" validate:"gte=0"`
}

// SaleService wraps the backend's sales endpoints.
type SaleService struct {
	client *Client
}

// NewSaleService constructs a SaleService.
func NewSaleService(client *Client) *SaleService {
	return &SaleService{client: client}
}

// List fetches one page of sales.
func (s *SaleService) List(ctx context.Context, req ListRequest) (Page[catalog.Sale], error) {
	body, err := s.client.get(ctx, "/FindSales", req.query(s.client.logger))
	if err != nil {
		return Page[catalog.Sale]{}, fmt.Errorf("fetch sales: %w", err)
	}
	return decodePage(s.client.logger, body, catalog.SaleFromRaw, func(sl catalog.Sale) bool { return sl.Deleted }), nil
}

// Create records a sale.
func (s *SaleService) Create(ctx context.Context, form SaleForm) (catalog.Sale, error) {
	if err := validate.Struct(form); err != nil {
		return catalog.Sale{}, fmt.Errorf("sale form invalid: %w", err)
	}
	body, err := s.client.postJSON(ctx, "/CreateSale", form)
	if err != nil {
		return catalog.Sale{}, err
	}
	return decodeEntity(s.client.logger, body, catalog.SaleFromRaw), nil
}
