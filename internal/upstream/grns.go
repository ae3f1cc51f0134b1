package upstream

import (
	"context"
	"fmt"

	"github.com/poslane/poslane/internal/catalog"
)

// GoodsReceiptLineForm is one line on a goods-received note payload.
type GoodsReceiptLineForm struct {
	ProductID string  `json:"product_id" validate:"required"`
	Expected  float64 `json:"expected_quantity" validate:"gte=0"`
	Received  float64 `json:"received_quantity" validate:"gt=0"`
	UnitCost  float64 `json:"unit_cost" validate:"gte=0"`
}

// GoodsReceiptForm is the payload for recording a goods-received note.
type GoodsReceiptForm struct {
	SupplierID string                 `json:"supplier_id" validate:"required"`
	Lines      []GoodsReceiptLineForm `json:"lines" validate:"min=1,dive"`
}

// GRNService wraps the backend's goods-received-note endpoints.
type GRNService struct {
	client *Client
}

// NewGRNService constructs a GRNService.
func NewGRNService(client *Client) *GRNService {
	return &GRNService{client: client}
}

// List fetches one page of goods-received notes.
func (s *GRNService) List(ctx context.Context, req ListRequest) (Page[catalog.GoodsReceipt], error) {
	body, err := s.client.get(ctx, "/FindGRNs", req.query(s.client.logger))
	if err != nil {
		return Page[catalog.GoodsReceipt]{}, fmt.Errorf("fetch goods receipts: %w", err)
	}
	return decodePage(s.client.logger, body, catalog.GoodsReceiptFromRaw, func(g catalog.GoodsReceipt) bool { return g.Deleted }), nil
}

// Get fetches a single goods-received note by id.
func (s *GRNService) Get(ctx context.Context, id string) (catalog.GoodsReceipt, error) {
	body, err := s.client.get(ctx, "/FindGRN/"+id, nil)
	if err != nil {
		return catalog.GoodsReceipt{}, fmt.Errorf("fetch goods receipt %s: %w", id, err)
	}
	return decodeEntity(s.client.logger, body, catalog.GoodsReceiptFromRaw), nil
}

// Create records a goods-received note.
func (s *GRNService) Create(ctx context.Context, form GoodsReceiptForm) (catalog.GoodsReceipt, error) {
	if err := validate.Struct(form); err != nil {
		return catalog.GoodsReceipt{}, fmt.Errorf("goods receipt form invalid: %w", err)
	}
	body, err := s.client.postJSON(ctx, "/CreateGRN", form)
	if err != nil {
		return catalog.GoodsReceipt{}, err
	}
	return decodeEntity(s.client.logger, body, catalog.GoodsReceiptFromRaw), nil
}

// Remove deletes a goods-received note.
func (s *GRNService) Remove(ctx context.Context, id string) error {
	return s.client.delete(ctx, "/DeleteGRN/"+id)
}
