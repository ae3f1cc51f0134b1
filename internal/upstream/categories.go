package upstream

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/poslane/poslane/internal/catalog"
)

// CategoryForm is the payload for creating a category.
type CategoryForm struct {
	Name string `json:"name" validate:"required"`
}

// CategoryService wraps the backend's category endpoints.
type CategoryService struct {
	client *Client
}

// NewCategoryService constructs a CategoryService.
func NewCategoryService(client *Client) *CategoryService {
	return &CategoryService{client: client}
}

// List fetches one page of categories.
func (s *CategoryService) List(ctx context.Context, req ListRequest) (Page[catalog.Category], error) {
	body, err := s.client.get(ctx, "/FindCategories", req.query(s.client.logger))
	if err != nil {
		return Page[catalog.Category]{}, fmt.Errorf("fetch categories: %w", err)
	}
	return decodePage(s.client.logger, body, catalog.CategoryFromRaw, func(c catalog.Category) bool { return c.Deleted }), nil
}

// Search queries the autocomplete endpoint, capped by limit.
func (s *CategoryService) Search(ctx context.Context, query string, limit int) ([]catalog.Category, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(limit))
	body, err := s.client.get(ctx, "/api/categories/search", q)
	if err != nil {
		return nil, fmt.Errorf("search categories: %w", err)
	}
	page := decodePage(s.client.logger, body, catalog.CategoryFromRaw, func(c catalog.Category) bool { return c.Deleted })
	return page.Items, nil
}

// Create creates a category.
func (s *CategoryService) Create(ctx context.Context, form CategoryForm) (catalog.Category, error) {
	if err := validate.Struct(form); err != nil {
		return catalog.Category{}, fmt.Errorf("category form invalid: %w", err)
	}
	body, err := s.client.postJSON(ctx, "/CreateCategory", form)
	if err != nil {
		return catalog.Category{}, err
	}
	return decodeEntity(s.client.logger, body, catalog.CategoryFromRaw), nil
}

// Remove deletes a category.
func (s *CategoryService) Remove(ctx context.Context, id string) error {
	return s.client.delete(ctx, "/DeleteCategory/"+id)
}
