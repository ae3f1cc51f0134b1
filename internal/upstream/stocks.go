package upstream

import (
	"context"
	"fmt"

	"github.com/poslane/poslane/internal/catalog"
)

// StockService wraps the backend's stock batch endpoints.
type StockService struct {
	client *Client
}

// NewStockService constructs a StockService.
func NewStockService(client *Client) *StockService {
	return &StockService{client: client}
}

// List fetches one page of stock batches.
func (s *StockService) List(ctx context.Context, req ListRequest) (Page[catalog.StockBatch], error) {
	body, err := s.client.get(ctx, "/FindStocks", req.query(s.client.logger))
	if err != nil {
		return Page[catalog.StockBatch]{}, fmt.Errorf("fetch stocks: %w", err)
	}
	return decodePage(s.client.logger, body, catalog.StockBatchFromRaw, func(b catalog.StockBatch) bool { return b.Deleted }), nil
}

// Remove deletes a stock batch.
func (s *StockService) Remove(ctx context.Context, id string) error {
	return s.client.delete(ctx, "/DeleteStock/"+id)
}
