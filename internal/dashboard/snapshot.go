// Package dashboard maintains the aggregate metric cards shown on the
// console dashboard, backed by a TTL cache in the shared key-value store.
package dashboard

import (
	"time"
)

// CacheTTL is how long a cached metrics record stays servable.
const CacheTTL = 15 * time.Minute

// cacheKey is the single storage key holding the serialized snapshot.
const cacheKey = "poslane:dashboard:metrics"

// Snapshot is the merged dashboard metrics record. The count fields and the
// total quantity come from two distinct endpoint groups but are cached as
// one record; FetchedAt drives expiry.
type Snapshot struct {
	TotalItems      int       `json:"total_items"`
	TotalStockQty   float64   `json:"total_stock_qty"`
	LowStockCount   int       `json:"low_stock_count"`
	AverageStock    float64   `json:"average_stock"`
	OutOfStockCount int       `json:"out_of_stock_count"`
	FetchedAt       time.Time `json:"fetched_at"`
}

// Fresh reports whether the record is still within its TTL at now.
func (s Snapshot) Fresh(now time.Time) bool {
	return !s.FetchedAt.IsZero() && now.Sub(s.FetchedAt) < CacheTTL
}
