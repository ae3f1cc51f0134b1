package upstream

import (
	"context"
	"fmt"

	"github.com/poslane/poslane/internal/catalog"
)

// ReturnForm is the payload for recording a customer return.
type ReturnForm struct {
	SaleID    string  `json:"sale_id" validate:"required"`
	ProductID string  `json:"product_id" validate:"required"`
	Quantity  float64 `json:"quantity" validate:"gt=0"`
	Reason    string  `json:"reason"`
}

// ReturnService wraps the backend's customer return endpoints.
type ReturnService struct {
	client *Client
}

// NewReturnService constructs a ReturnService.
func NewReturnService(client *Client) *ReturnService {
	return &ReturnService{client: client}
}

// List fetches one page of returns.
func (s *ReturnService) List(ctx context.Context, req ListRequest) (Page[catalog.Return], error) {
	body, err := s.client.get(ctx, "/FindReturns", req.query(s.client.logger))
	if err != nil {
		return Page[catalog.Return]{}, fmt.Errorf("fetch returns: %w", err)
	}
	return decodePage(s.client.logger, body, catalog.ReturnFromRaw, func(r catalog.Return) bool { return r.Deleted }), nil
}

// Create records a return.
func (s *ReturnService) Create(ctx context.Context, form ReturnForm) (catalog.Return, error) {
	if err := validate.Struct(form); err != nil {
		return catalog.Return{}, fmt.Errorf("return form invalid: %w", err)
	}
	body, err := s.client.postJSON(ctx, "/CreateReturn", form)
	if err != nil {
		return catalog.Return{}, err
	}
	return decodeEntity(s.client.logger, body, catalog.ReturnFromRaw), nil
}
