package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/secureapi/secureapi/internal/api"
	"github.com/secureapi/secureapi/internal/config"
	"github.com/secureapi/secureapi/internal/observability"
	"github.com/secureapi/secureapi/internal/readiness"
)

func main() {
	cfg, err := config.LoadFromEnv("secure-api")
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg, os.Stdout)
	metrics := observability.NewMetrics(cfg.App.Name, cfg.App.Version, logger)

	var checks []readiness.Check
	if cfg.Database.DSN != "" {
		db, err := readiness.OpenDatabase(context.Background(), cfg.Database)
		if err != nil {
			logger.Error("failed to open database", slog.Any("error", err))
			os.Exit(1)
		}
		defer func() { _ = db.Close() }()
		checks = append(checks, readiness.Database(db))
	}
	if cfg.Cache.Addr != "" {
		cache := readiness.OpenCache(cfg.Cache)
		defer func() { _ = cache.Close() }()
		checks = append(checks, readiness.Cache(cache))
	}
	if cfg.ObjectStore.Endpoint != "" {
		store, err := readiness.OpenObjectStore(cfg.ObjectStore)
		if err != nil {
			logger.Error("failed to initialize object store", slog.Any("error", err))
			os.Exit(1)
		}
		checks = append(checks, readiness.ObjectStore(store, cfg.ObjectStore.Bucket))
	}

	deps := api.Dependencies{
		Logger:  logger,
		Metrics: metrics,
	}
	if len(checks) > 0 {
		deps.Readiness = readiness.Combine(checks...)
	}

	handler := api.NewHandler(cfg, deps)
	server := &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting server",
			slog.String("addr", cfg.HTTP.Address),
			slog.Bool("metrics_enabled", cfg.Metrics.Enabled),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Info("shutting down server")
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
		_ = server.Close()
		os.Exit(1)
	}
}
