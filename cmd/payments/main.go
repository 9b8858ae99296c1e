package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/zenka/payments/internal/cache"
	"github.com/zenka/payments/internal/config"
	"github.com/zenka/payments/internal/db"
	"github.com/zenka/payments/internal/events"
	"github.com/zenka/payments/internal/handlers"
	"github.com/zenka/payments/internal/provider"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("payments api exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting payments api",
		"port", cfg.Server.Port,
		"provider", cfg.Provider.Name,
		"log_level", cfg.Logger.Level,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		return err
	}
	defer database.Close()

	if cfg.Database.MigrateOnStartup {
		if err := db.Migrate(&cfg.Database, logger); err != nil {
			return err
		}
	}

	deps := handlers.Dependencies{DB: database}

	if cfg.Redis.Addr != "" {
		c, closeCache, err := cache.NewRedisCache(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer closeCache() //nolint:errcheck // Best effort on shutdown
		deps.Cache = c
		logger.Info("redis cache enabled", "addr", cfg.Redis.Addr)
	}

	if cfg.NSQ.Address != "" {
		publisher, err := events.NewNSQPublisher(cfg.NSQ, logger)
		if err != nil {
			return err
		}
		defer publisher.Stop()
		deps.Publisher = publisher
		logger.Info("settlement events enabled", "nsqd", cfg.NSQ.Address, "topic", cfg.NSQ.Topic)
	}

	deps.Provider, err = provider.New(cfg.Provider, deps.Cache, logger)
	if err != nil {
		return err
	}

	router, err := handlers.NewRouter(deps, cfg, logger)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
	return nil
}
