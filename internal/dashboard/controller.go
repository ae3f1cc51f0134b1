package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/poslane/poslane/internal/platform/kv"
	"github.com/poslane/poslane/internal/upstream"
)

// StatsSource fetches the two backend aggregate groups. Implemented by
// upstream.MetricsService.
type StatsSource interface {
	StockCounts(ctx context.Context) (upstream.StockCounts, error)
	TotalStockQuantity(ctx context.Context) (float64, error)
}

// Controller serves dashboard metrics with stale-while-revalidate
// semantics: a fresh cached record renders immediately and triggers a
// non-blocking refresh, while a stale or missing record blocks on a fetch.
// The cached record is shared across instances with last-write-wins.
type Controller struct {
	source  StatsSource
	store   kv.Store
	logger  *slog.Logger
	metrics *CacheMetrics

	group singleflight.Group

	// now and launch are replaced in tests.
	now    func() time.Time
	launch func(fn func())
}

// NewController wires a metrics controller. metrics may be nil.
func NewController(source StatsSource, store kv.Store, logger *slog.Logger, metrics *CacheMetrics) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		source:  source,
		store:   store,
		logger:  logger,
		metrics: metrics,
		now:     func() time.Time { return time.Now().UTC() },
		launch:  func(fn func()) { go fn() },
	}
}

// Load returns the metrics to render. The second result reports whether the
// values came from cache; callers mark the view "cached" and the numbers are
// updated in place once the background refresh lands.
func (c *Controller) Load(ctx context.Context) (Snapshot, bool, error) {
	cached, found := c.readCache(ctx)
	if found && cached.Fresh(c.now()) {
		c.metrics.Hit()
		c.launch(func() {
			if _, err := c.Refresh(context.Background()); err != nil {
				c.logger.Warn("background metrics refresh failed", slog.Any("error", err))
			}
		})
		return cached, true, nil
	}
	if found {
		// Lazy expiration: a stale record is removed as soon as it is seen.
		if err := c.store.Delete(ctx, cacheKey); err != nil {
			c.logger.Warn("delete stale metrics record", slog.Any("error", err))
		}
	}
	c.metrics.Miss()
	snap, err := c.Refresh(ctx)
	return snap, false, err
}

// Refresh forces a foreground fetch, bypassing the cache check, and rewrites
// the cache on success. Concurrent refreshes collapse into one flight.
func (c *Controller) Refresh(ctx context.Context) (Snapshot, error) {
	result, err, _ := c.group.Do("refresh", func() (any, error) {
		return c.fetchAndStore(ctx)
	})
	snap, _ := result.(Snapshot)
	return snap, err
}

// fetchAndStore pulls both aggregate groups and merges them into the cached
// record. A partial failure keeps the other group's previously cached fields
// intact instead of overwriting the whole record.
func (c *Controller) fetchAndStore(ctx context.Context) (Snapshot, error) {
	snap, _ := c.readCache(ctx)

	var countsErr, qtyErr error
	if counts, err := c.source.StockCounts(ctx); err != nil {
		countsErr = fmt.Errorf("stock counts: %w", err)
	} else {
		snap.TotalItems = counts.TotalItems
		snap.LowStockCount = counts.LowStockCount
		snap.AverageStock = counts.AverageStock
		snap.OutOfStockCount = counts.OutOfStockCount
	}
	if qty, err := c.source.TotalStockQuantity(ctx); err != nil {
		qtyErr = fmt.Errorf("total quantity: %w", err)
	} else {
		snap.TotalStockQty = qty
	}

	if countsErr != nil && qtyErr != nil {
		return snap, errors.Join(countsErr, qtyErr)
	}

	snap.FetchedAt = c.now()
	if err := c.writeCache(ctx, snap); err != nil {
		c.logger.Warn("write metrics cache", slog.Any("error", err))
	}
	if countsErr != nil {
		return snap, countsErr
	}
	return snap, qtyErr
}

func (c *Controller) readCache(ctx context.Context) (Snapshot, bool) {
	raw, err := c.store.Get(ctx, cacheKey)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			c.logger.Warn("read metrics cache", slog.Any("error", err))
		}
		return Snapshot{}, false
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		c.logger.Warn("corrupt metrics record, discarding", slog.Any("error", err))
		_ = c.store.Delete(ctx, cacheKey)
		return Snapshot{}, false
	}
	return snap, true
}

func (c *Controller) writeCache(ctx context.Context, snap Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, cacheKey, raw)
}
