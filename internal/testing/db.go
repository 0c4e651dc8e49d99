// Package testing provides testing utilities and helpers for the stockwolf API.
package testing

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stockwolf/stockwolf-api/internal/database"
)

// NewTestStore creates a migrated SQLite document store in a temporary directory.
// Returns the store and a cleanup function that closes it; the cleanup is also
// registered with t.Cleanup and is safe to call twice.
func NewTestStore(t *testing.T) (*database.SQLiteStore, func()) {
	t.Helper()

	db, err := database.New(database.Config{
		Path:    filepath.Join(t.TempDir(), "stockwolf_test.db"),
		Profile: database.ProfileCache,
		Name:    "test",
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	if err := db.Migrate(); err != nil {
		_ = db.Close()
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	store := database.NewSQLiteStore(db, SilentLogger())
	closed := false
	cleanup := func() {
		if !closed {
			closed = true
			_ = store.Close(context.Background())
		}
	}
	t.Cleanup(cleanup)

	return store, cleanup
}

// SilentLogger returns a logger that drops everything
func SilentLogger() zerolog.Logger {
	return zerolog.New(nil).Level(zerolog.Disabled)
}
