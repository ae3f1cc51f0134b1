package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/poslane/poslane/internal/dashboard"
	jobmetrics "github.com/poslane/poslane/internal/jobs"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// DashboardWarmupJob refreshes the dashboard cache ahead of expiry so
// console users rarely hit a cold cache.
type DashboardWarmupJob struct {
	Dashboard *dashboard.Controller
	Logger    *slog.Logger
	Metrics   *jobmetrics.Metrics
	clock     func() time.Time
}

// NewDashboardWarmupJob wires dependencies for the warmup handler.
func NewDashboardWarmupJob(ctrl *dashboard.Controller, logger *slog.Logger, metrics *jobmetrics.Metrics) *DashboardWarmupJob {
	return &DashboardWarmupJob{
		Dashboard: ctrl,
		Logger:    logger,
		Metrics:   metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes dashboard warmup tasks.
func (j *DashboardWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Dashboard == nil {
		return errors.New("dashboard warmup: handler not configured")
	}
	var payload DashboardWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.Reason == "" {
		payload.Reason = "scheduled"
	}

	tracker := j.metrics().Track(TaskDashboardWarmup)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger().With(slog.String("reason", payload.Reason))
	logger.Info("starting dashboard warmup")

	runCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	start := j.now()
	if _, err := j.Dashboard.Refresh(runCtx); err != nil {
		resultErr = err
		logger.Error("refresh dashboard cache", slog.Any("error", err))
		return resultErr
	}

	logger.Info("completed dashboard warmup", slog.Duration("duration", j.now().Sub(start)))
	return resultErr
}

func (j *DashboardWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskDashboardWarmup))
	}
	return slog.Default().With(slog.String("job", TaskDashboardWarmup))
}

func (j *DashboardWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

func (j *DashboardWarmupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
