package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/poslane/poslane/internal/app"
	"github.com/poslane/poslane/internal/audit"
	"github.com/poslane/poslane/internal/console"
	"github.com/poslane/poslane/internal/dashboard"
	"github.com/poslane/poslane/internal/observability"
	"github.com/poslane/poslane/internal/platform/db"
	"github.com/poslane/poslane/internal/platform/kv"
	"github.com/poslane/poslane/internal/upstream"
	"github.com/poslane/poslane/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("redis ping", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	// Audit persistence is optional; without a DSN actions are not recorded.
	var auditRecorder *audit.Recorder
	if cfg.PGDSN != "" {
		pool, err := db.Connect(ctx, cfg.PGDSN)
		if err != nil {
			logger.Error("connect postgres", slog.Any("error", err))
			os.Exit(1)
		}
		defer pool.Close()
		auditRecorder = audit.NewRecorder(pool)
	}

	backend := upstream.NewClientWithTimeout(cfg.BackendURL, cfg.BackendTimeout, logger)
	metrics := observability.NewMetrics()

	dashboardCtrl := dashboard.NewController(
		upstream.NewMetricsService(backend),
		kv.NewRedis(redisClient),
		logger,
		dashboard.NewCacheMetrics(metrics.Registerer()),
	)

	consoleHandler := console.NewHandler(console.HandlerParams{
		Logger:     logger,
		Products:   upstream.NewProductService(backend),
		Stocks:     upstream.NewStockService(backend),
		Brands:     upstream.NewBrandService(backend),
		Categories: upstream.NewCategoryService(backend),
		Receipts:   upstream.NewGRNService(backend),
		Suppliers:  upstream.NewSupplierService(backend),
		Sales:      upstream.NewSaleService(backend),
		Returns:    upstream.NewReturnService(backend),
		Dashboard:  dashboardCtrl,
		Audit:      auditRecorder,
		Sessions:   console.NewRegistry(cfg.SessionTTL),
	})

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:  logger,
		Config:  cfg,
		Console: consoleHandler,
		Jobs:    jobHandler,
		Metrics: metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
