package upstream

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/poslane/poslane/internal/catalog"
)

// StockCounts groups the stock-status aggregates served by the dedicated
// count endpoints.
type StockCounts struct {
	TotalItems      int
	LowStockCount   int
	AverageStock    float64
	OutOfStockCount int
}

// MetricsService wraps the backend's single-purpose aggregate endpoints.
// Each returns a one-field JSON object.
type MetricsService struct {
	client *Client
}

// NewMetricsService constructs a MetricsService.
func NewMetricsService(client *Client) *MetricsService {
	return &MetricsService{client: client}
}

// StockCounts fetches the stock-status count group.
func (s *MetricsService) StockCounts(ctx context.Context) (StockCounts, error) {
	total, err := s.fetchNumber(ctx, "/TotalProducts", "total_products", "total")
	if err != nil {
		return StockCounts{}, err
	}
	low, err := s.fetchNumber(ctx, "/LowStockCount", "low_stock_count", "count")
	if err != nil {
		return StockCounts{}, err
	}
	average, err := s.fetchNumber(ctx, "/AverageStock", "average_stock", "average")
	if err != nil {
		return StockCounts{}, err
	}
	out, err := s.fetchNumber(ctx, "/OutOfStockCount", "out_of_stock_count", "count")
	if err != nil {
		return StockCounts{}, err
	}
	return StockCounts{
		TotalItems:      int(total),
		LowStockCount:   int(low),
		AverageStock:    average,
		OutOfStockCount: int(out),
	}, nil
}

// TotalStockQuantity fetches the total on-hand quantity across all batches.
func (s *MetricsService) TotalStockQuantity(ctx context.Context) (float64, error) {
	return s.fetchNumber(ctx, "/TotalStockQuantity", "total_quantity", "total")
}

// TotalGoodsReceipts fetches the all-time goods-received-note count.
func (s *MetricsService) TotalGoodsReceipts(ctx context.Context) (int, error) {
	n, err := s.fetchNumber(ctx, "/TotalGRNs", "total_grns", "total")
	return int(n), err
}

func (s *MetricsService) fetchNumber(ctx context.Context, path string, fields ...string) (float64, error) {
	body, err := s.client.get(ctx, path, nil)
	if err != nil {
		return 0, fmt.Errorf("fetch %s: %w", path, err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		s.client.logger.Warn("unparseable aggregate response, treating as zero", "path", path)
		return 0, nil
	}
	return catalog.Raw(decoded).Float(fields...), nil
}
