// Package di provides dependency injection for the document store.
package di

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stockwolf/stockwolf-api/internal/config"
	"github.com/stockwolf/stockwolf-api/internal/database"
)

// InitializeDatabases opens the configured document store
func InitializeDatabases(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Container, error) {
	container := &Container{}

	switch cfg.Store.Backend {
	case config.BackendMongo:
		store, err := database.ConnectMongo(ctx, cfg.Store.MongoURI, cfg.Store.MongoDatabase, log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mongo: %w", err)
		}
		container.Store = store

	case config.BackendSQLite:
		db, err := database.New(database.Config{
			Path:    cfg.Store.DatabasePath,
			Profile: database.ProfileStandard,
			Name:    "stockwolf",
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sqlite database: %w", err)
		}
		if err := db.Migrate(); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to migrate sqlite database: %w", err)
		}
		container.SQLiteDB = db
		container.Store = database.NewSQLiteStore(db, log)

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	log.Info().Str("backend", cfg.Store.Backend).Msg("Document store initialized")
	return container, nil
}
