package upstream

import (
	"context"
	"fmt"

	"github.com/poslane/poslane/internal/catalog"
)

// SupplierForm is the payload for creating a supplier.
type SupplierForm struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
}

// SupplierService wraps the backend's supplier endpoints.
type SupplierService struct {
	client *Client
}

// NewSupplierService constructs a SupplierService.
func NewSupplierService(client *Client) *SupplierService {
	return &SupplierService{client: client}
}

// List fetches one page of suppliers.
func (s *SupplierService) List(ctx context.Context, req ListRequest) (Page[catalog.Supplier], error) {
	body, err := s.client.get(ctx, "/FindSuppliers", req.query(s.client.logger))
	if err != nil {
		return Page[catalog.Supplier]{}, fmt.Errorf("fetch suppliers: %w", err)
	}
	return decodePage(s.client.logger, body, catalog.SupplierFromRaw, func(sp catalog.Supplier) bool { return sp.Deleted }), nil
}

// Create creates a supplier.
func (s *SupplierService) Create(ctx context.Context, form SupplierForm) (catalog.Supplier, error) {
	if err := validate.Struct(form); err != nil {
		return catalog.Supplier{}, fmt.Errorf("supplier form invalid: %w", err)
	}
	body, err := s.client.postJSON(ctx, "/CreateSupplier", form)
	if err != nil {
		return catalog.Supplier{}, err
	}
	return decodeEntity(s.client.logger, body, catalog.SupplierFromRaw), nil
}

// Remove deletes a supplier.
func (s *SupplierService) Remove(ctx context.Context, id string) error {
	return s.client.delete(ctx, "/DeleteSupplier/"+id)
}
