// Package testutil provides test helpers: an in-memory snapshot database and
// fixture builders for app records.
package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/playdash/internal/model"
	"github.com/Veraticus/playdash/internal/service"
	"github.com/Veraticus/playdash/internal/storage"
)

// TestDB represents a test database with associated test utilities.
type TestDB struct {
	Storage service.Storage
	t       *testing.T
	Apps    []model.AppRecord
}

// SetupTestDB creates a new in-memory test database seeded with apps.
// It automatically handles migrations and cleanup.
//
// Example:
//
//	db := testutil.SetupTestDB(t, testutil.ScenarioApps())
func SetupTestDB(t *testing.T, apps []model.AppRecord) *TestDB {
	t.Helper()

	return SetupTestDBWithOptions(t, TestDBOptions{Apps: apps})
}

// TestDBOptions provides configuration options for test database setup.
type TestDBOptions struct {
	CustomSetup    func(context.Context, service.Storage) error
	Source         string
	Apps           []model.AppRecord
	SkipMigrations bool
}

// SetupTestDBWithOptions creates a test database with custom options.
func SetupTestDBWithOptions(t *testing.T, opts TestDBOptions) *TestDB {
	t.Helper()

	// Create in-memory SQLite storage
	store, err := storage.NewSQLiteStorage(storage.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	ctx := context.Background()

	// Register cleanup
	t.Cleanup(func() {
		_ = store.Close()
	})

	// Run migrations unless skipped
	if !opts.SkipMigrations {
		if err := store.Migrate(ctx); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Seed apps
	if len(opts.Apps) > 0 {
		source := opts.Source
		if source == "" {
			source = "testutil"
		}
		if _, err := store.SaveApps(ctx, source, opts.Apps, nil); err != nil {
			t.Fatalf("failed to seed apps: %v", err)
		}
	}

	// Run custom setup
	if opts.CustomSetup != nil {
		if err := opts.CustomSetup(ctx, store); err != nil {
			t.Fatalf("custom setup failed: %v", err)
		}
	}

	return &TestDB{
		Storage: store,
		Apps:    opts.Apps,
		t:       t,
	}
}

// MustLoadApps reads the stored snapshot or fails the test.
func (db *TestDB) MustLoadApps() []model.AppRecord {
	db.t.Helper()

	apps, err := db.Storage.LoadApps(context.Background())
	if err != nil {
		db.t.Fatalf("failed to load apps: %v", err)
	}
	return apps
}
