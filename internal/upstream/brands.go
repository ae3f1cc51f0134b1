package upstream

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/poslane/poslane/internal/catalog"
)

// BrandForm is the payload for creating a brand.
type BrandForm struct {
	Name string `json:"name" validate:"required"`
}

// BrandService wraps the backend's brand endpoints.
type BrandService struct {
	client *Client
}

// NewBrandService constructs a BrandService.
func NewBrandService(client *Client) *BrandService {
	return &BrandService{client: client}
}

// List fetches one page of brands.
func (s *BrandService) List(ctx context.Context, req ListRequest) (Page[catalog.Brand], error) {
	body, err := s.client.get(ctx, "/FindBrands", req.query(s.client.logger))
	if err != nil {
		return Page[catalog.Brand]{}, fmt.Errorf("fetch brands: %w", err)
	}
	return decodePage(s.client.logger, body, catalog.BrandFromRaw, func(b catalog.Brand) bool { return b.Deleted }), nil
}

// Search queries the lightweight autocomplete endpoint. It is a separate
// contract from List: capped by limit, not paginated by cursor.
func (s *BrandService) Search(ctx context.Context, query string, limit int) ([]catalog.Brand, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))
	body, err := s.client.get(ctx, "/api/brands/search", q)
	if err != nil {
		return nil, fmt.Errorf("search brands: %w", err)
	}
	page := decodePage(s.client.logger, body, catalog.BrandFromRaw, func(b catalog.Brand) bool { return b.Deleted })
	return page.Items, nil
}

// Create creates a brand.
func (s *BrandService) Create(ctx context.Context, form BrandForm) (catalog.Brand, error) {
	if err := validate.Struct(form); err != nil {
		return catalog.Brand{}, fmt.Errorf("brand form invalid: %w", err)
	}
	body, err := s.client.postJSON(ctx, "/CreateBrand", form)
	if err != nil {
		return catalog.Brand{}, err
	}
	return decodeEntity(s.client.logger, body, catalog.BrandFromRaw), nil
}

// Remove deletes a brand.
func (s *BrandService) Remove(ctx context.Context, id string) error {
	return s.client.delete(ctx, "/DeleteBrand/"+id)
}
