// Package main is the entry point for the StockWolf API server.
// It stores users, watchlists and portfolios in a document store and proxies
// the upstream quote service to value them.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/stockwolf/stockwolf-api/internal/config"
	"github.com/stockwolf/stockwolf-api/internal/di"
	"github.com/stockwolf/stockwolf-api/internal/server"
	"github.com/stockwolf/stockwolf-api/pkg/logger"
)

// main orchestrates startup:
// 1. Loads configuration from environment variables (.env supported)
// 2. Initializes logging
// 3. Wires the store, quote client, services and jobs
// 4. Starts the HTTP server and the scheduler
// 5. Waits for a shutdown signal and shuts down gracefully
func main() {
	cfg, err := config.Load()
	if err != nil {
		// Use fallback logger if config fails
		fallbackLog := logger.New(logger.Config{
			Level:  "info",
			Pretty: true,
		})
		fallbackLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().
		Int("port", cfg.Port).
		Str("store", cfg.Store.Backend).
		Bool("dev_mode", cfg.DevMode).
		Msg("Starting StockWolf API")

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	container, jobs, err := di.Wire(startupCtx, cfg, log)
	cancelStartup()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}

	srv := server.New(server.Config{
		Log:          log,
		Port:         cfg.Port,
		DevMode:      cfg.DevMode,
		StoreBackend: cfg.Store.Backend,
		Metrics:      container.Metrics,
		Users:        container.UserHandler,
		Watchlists:   container.WatchlistHandler,
		Market:       container.MarketHandler,
		Portfolio:    container.PortfolioHandler,
	})
	for _, job := range jobs.All() {
		srv.SystemHandlers().RegisterJob(job)
	}

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	container.Scheduler.Start()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	// Stops the scheduler before the store goes away
	if err := container.Close(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to release resources")
	}

	log.Info().Msg("Server stopped")
}
