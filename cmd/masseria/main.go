package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"masseria/internal/app/confirm"
	"masseria/internal/app/session"
	"masseria/internal/infra/cache"
	"masseria/internal/infra/config"
	ginserver "masseria/internal/infra/http/gin"
	"masseria/internal/infra/obs"
	"masseria/internal/infra/remote"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	var snapshots remote.SnapshotCache
	if cfg.RedisAddr != "" {
		store, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL, logger)
		if err != nil {
			logger.Warn("redis unavailable, availability snapshots not cached", "addr", cfg.RedisAddr, "error", err)
		} else {
			defer store.Close()
			snapshots = store
			logger.Info("redis connected", "addr", cfg.RedisAddr)
		}
	}

	client, err := remote.NewClient(remote.Config{
		BaseURL: cfg.BookingAPIURL,
		Timeout: cfg.RemoteTimeout,
	}, snapshots, logger)
	if err != nil {
		logger.Error("remote client init failed", "error", err)
		os.Exit(1)
	}

	store := session.NewStore()
	poller := &confirm.Poller{
		Checker:     client,
		Interval:    cfg.ConfirmPollInterval,
		MaxAttempts: cfg.ConfirmMaxAttempts,
		Logger:      logger,
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: func() error { return nil },
	}, ginserver.Handlers{
		Catalog: ginserver.CatalogHandler{
			API:        client,
			WindowDays: cfg.AvailabilityWindowDays,
		},
		Session: ginserver.SessionHandler{
			Store:      store,
			API:        client,
			Logger:     logger,
			WindowDays: cfg.AvailabilityWindowDays,
		},
		Confirm: ginserver.ConfirmHandler{Poller: poller},
	})

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "booking_api", cfg.BookingAPIURL)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
