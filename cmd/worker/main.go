package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/poslane/poslane/internal/app"
	"github.com/poslane/poslane/internal/dashboard"
	jobmetrics "github.com/poslane/poslane/internal/jobs"
	"github.com/poslane/poslane/internal/platform/kv"
	"github.com/poslane/poslane/internal/upstream"
	"github.com/poslane/poslane/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}

	backend := upstream.NewClientWithTimeout(cfg.BackendURL, cfg.BackendTimeout, logger)
	dashboardCtrl := dashboard.NewController(
		upstream.NewMetricsService(backend),
		kv.NewRedis(redisClient),
		logger,
		nil,
	)

	warmupJob := jobs.NewDashboardWarmupJob(dashboardCtrl, logger, jobmetrics.NewMetrics(nil))

	warmupTask, err := jobs.NewDashboardWarmupTask(jobs.DashboardWarmupPayload{Reason: "scheduled"})
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskDashboardWarmup, Handler: warmupJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{
				Spec:    fmt.Sprintf("@every %s", cfg.DashboardWarmupInterval),
				Task:    warmupTask,
				Options: []asynq.Option{asynq.MaxRetry(3)},
			},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
