// Package di provides dependency injection wiring and initialization.
package di

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stockwolf/stockwolf-api/internal/config"
)

// Wire initializes all dependencies and returns a fully configured container.
// Order of operations:
// 1. Open the document store
// 2. Initialize repositories
// 3. Initialize clients, services and handlers
// 4. Register jobs
func Wire(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Container, *JobInstances, error) {
	container, err := InitializeDatabases(ctx, cfg, log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize databases: %w", err)
	}

	InitializeRepositories(container, log)

	if err := InitializeServices(ctx, container, cfg, log); err != nil {
		container.Close(ctx)
		return nil, nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	jobs, err := RegisterJobs(container, cfg, log)
	if err != nil {
		container.Close(ctx)
		return nil, nil, fmt.Errorf("failed to register jobs: %w", err)
	}

	log.Info().Msg("Dependency injection wiring completed successfully")
	return container, jobs, nil
}

// Close stops the scheduler and releases the store and cache connections.
// The first error is returned; every resource is closed regardless.
func (c *Container) Close(ctx context.Context) error {
	if c.Scheduler != nil {
		c.Scheduler.Stop()
	}

	var first error
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			first = fmt.Errorf("failed to close redis: %w", err)
		}
	}
	if c.Store != nil {
		if err := c.Store.Close(ctx); err != nil && first == nil {
			first = fmt.Errorf("failed to close store: %w", err)
		}
	}
	return first
}
