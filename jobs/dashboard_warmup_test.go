package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"github.com/poslane/poslane/internal/dashboard"
	"github.com/poslane/poslane/internal/platform/kv"
	"github.com/poslane/poslane/internal/upstream"
)

type staticSource struct{}

func (staticSource) StockCounts(ctx context.Context) (upstream.StockCounts, error) {
	return upstream.StockCounts{TotalItems: 12, LowStockCount: 3, AverageStock: 20, OutOfStockCount: 1}, nil
}

func (staticSource) TotalStockQuantity(ctx context.Context) (float64, error) {
	return 240, nil
}

func TestDashboardWarmupRefreshesCache(t *testing.T) {
	store := kv.NewMemory()
	ctrl := dashboard.NewController(staticSource{}, store, nil, nil)
	job := NewDashboardWarmupJob(ctrl, nil, nil)
	// Pin the clock; the run must be timed on the injected source alone.
	fixed := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	job.clock = func() time.Time { return fixed }

	task, err := NewDashboardWarmupTask(DashboardWarmupPayload{Reason: "test"})
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))

	snap, fromCache, err := ctrl.Load(context.Background())
	require.NoError(t, err)
	require.True(t, fromCache)
	require.Equal(t, 12, snap.TotalItems)
	require.InDelta(t, 240, snap.TotalStockQty, 0.001)
}

func TestDashboardWarmupRejectsMalformedPayload(t *testing.T) {
	ctrl := dashboard.NewController(staticSource{}, kv.NewMemory(), nil, nil)
	job := NewDashboardWarmupJob(ctrl, nil, nil)

	task := asynq.NewTask(TaskDashboardWarmup, []byte("{"))
	require.ErrorIs(t, job.Handle(context.Background(), task), asynq.SkipRetry)
}
