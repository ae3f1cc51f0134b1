package upstream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/poslane/poslane/internal/catalog"
)

var validate = validator.New()

// Product creation failures detected client-side, before any HTTP call.
var (
	ErrNoSubcategories = errors.New("at least one subcategory is required")
	ErrBadExpiryDate   = errors.New("subcategory expiry date must be an ISO date")
)

// ProductForm is the payload for creating a product.
type ProductForm struct {
	Name          string           `json:"name" validate:"required"`
	SKU           string           `json:"sku"`
	CategoryID    string           `json:"category_id" validate:"required"`
	BrandID       string           `json:"brand_id" validate:"required"`
	Price         float64          `json:"price" validate:"gte=0"`
	Cost          float64          `json:"cost" validate:"gte=0"`
	Subcategories []SubcategoryForm `json:"subcategories"`
}

// SubcategoryForm is one subcategory line on a product creation payload.
type SubcategoryForm struct {
	Name       string  `json:"name" validate:"required"`
	Quantity   float64 `json:"quantity" validate:"gt=0"`
	Price      float64 `json:"price" validate:"gt=0"`
	ExpiryDate string  `json:"expiry_date" validate:"required"`
}

// Validate checks the form client-side so obviously bad payloads never
// reach the backend.
func (f ProductForm) Validate() error {
	if len(f.Subcategories) == 0 {
		return ErrNoSubcategories
	}
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("product form invalid: %w", err)
	}
	for _, sub := range f.Subcategories {
		if _, err := time.Parse("2006-01-02", sub.ExpiryDate); err != nil {
			if _, err := time.Parse(time.RFC3339, sub.ExpiryDate); err != nil {
				return fmt.Errorf("%w: %q", ErrBadExpiryDate, sub.ExpiryDate)
			}
		}
	}
	return nil
}

// ProductService wraps the backend's product endpoints.
type ProductService struct {
	client *Client
}

// NewProductService constructs a ProductService.
func NewProductService(client *Client) *ProductService {
	return &ProductService{client: client}
}

// List fetches one page of products.
func (s *ProductService) List(ctx context.Context, req ListRequest) (Page[catalog.Product], error) {
	body, err := s.client.get(ctx, "/FindProducts", req.query(s.client.logger))
	if err != nil {
		return Page[catalog.Product]{}, fmt.Errorf("fetch products: %w", err)
	}
	return decodePage(s.client.logger, body, catalog.ProductFromRaw, func(p catalog.Product) bool { return p.Deleted }), nil
}

// Get fetches a single product by id.
func (s *ProductService) Get(ctx context.Context, id string) (catalog.Product, error) {
	body, err := s.client.get(ctx, "/FindProduct/"+id, nil)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("fetch product %s: %w", id, err)
	}
	return decodeEntity(s.client.logger, body, catalog.ProductFromRaw), nil
}

// Create validates the form and creates the product.
func (s *ProductService) Create(ctx context.Context, form ProductForm) (catalog.Product, error) {
	if err := form.Validate(); err != nil {
		return catalog.Product{}, err
	}
	body, err := s.client.postJSON(ctx, "/CreateProduct", form)
	if err != nil {
		return catalog.Product{}, err
	}
	return decodeEntity(s.client.logger, body, catalog.ProductFromRaw), nil
}

// Remove deletes a product. Success is the absence of an error; the backend
// may return an empty body.
func (s *ProductService) Remove(ctx context.Context, id string) error {
	return s.client.delete(ctx, "/DeleteProduct/"+id)
}
