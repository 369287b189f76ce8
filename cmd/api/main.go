// Package main is the entry point for the Personal Finance API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/personal-finance/backend/config"
	"github.com/personal-finance/backend/internal/infra/db"
	"github.com/personal-finance/backend/internal/infra/dependency"
	"github.com/personal-finance/backend/internal/integration/adapters"
	"github.com/personal-finance/backend/internal/integration/entrypoint/middleware"
)

func main() {
	// Load .env file if it exists (development only)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	slog.Info("Starting Personal Finance API",
		"environment", cfg.Server.Environment,
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
	)

	database, err := db.NewPostgresConnection(&cfg.Database, cfg.Log.SlogLevel())
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Error("Failed to close database connection", "error", err)
		}
	}()

	if err := database.Migrate(); err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database migrations completed successfully")

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Error("Failed to close redis client", "error", err)
			}
		}()
		slog.Info("Real-time notifications enabled", "addr", cfg.Redis.Addr, "channel", cfg.Redis.Channel)
	} else {
		slog.Warn("REDIS_ADDR not set, real-time notifications disabled")
	}

	// A nil *redis.Client must not reach the injector as a non-nil interface
	var injector *dependency.Injector
	if redisClient != nil {
		injector = dependency.NewInjector(cfg, database.DB(), redisClient, adapters.NewSystemClock())
	} else {
		injector = dependency.NewInjector(cfg, database.DB(), nil, adapters.NewSystemClock())
	}

	if cfg.Scheduler.Enabled {
		if err := injector.Scheduler.Start(); err != nil {
			slog.Error("Failed to start recurring scheduler", "error", err)
			os.Exit(1)
		}
	} else {
		slog.Warn("Recurring scheduler disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if injector.RateLimiter != nil {
		go cleanupRateLimiter(ctx, injector)
	}

	engine := injector.Router.Setup(cfg.Server.Environment)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		slog.Info("Server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := injector.Scheduler.Stop(shutdownCtx); err != nil {
		slog.Error("Recurring scheduler did not stop cleanly", "error", err)
	}

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited properly")
}

// cleanupRateLimiter drops expired rate limit windows until ctx is done.
func cleanupRateLimiter(ctx context.Context, injector *dependency.Injector) {
	interval := injector.Config.RateLimit.Window
	if interval <= 0 {
		interval = middleware.DefaultWindow
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			injector.RateLimiter.Cleanup()
		}
	}
}
