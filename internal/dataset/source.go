package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/Veraticus/playdash/internal/model"
)

// Source produces the records the Data Store is built from.
type Source interface {
	Load(ctx context.Context) ([]model.AppRecord, error)
	Describe() string
}

// AppReader is the storage capability SQLiteSource needs.
type AppReader interface {
	LoadApps(ctx context.Context) ([]model.AppRecord, error)
}

// CSVSource reads records from a cleaned CSV file.
type CSVSource struct {
	Path string
}

// Load reads and parses the CSV file.
func (s CSVSource) Load(ctx context.Context) ([]model.AppRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer func() { _ = f.Close() }()

	records, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.Path, err)
	}
	return records, nil
}

// Describe names the source for logs.
func (s CSVSource) Describe() string {
	return "csv:" + s.Path
}

// SQLiteSource reads records from a SQLite snapshot.
type SQLiteSource struct {
	Reader AppReader
	Path   string
}

// Load reads every stored app.
func (s SQLiteSource) Load(ctx context.Context) ([]model.AppRecord, error) {
	records, err := s.Reader.LoadApps(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load apps from database: %w", err)
	}
	return records, nil
}

// Describe names the source for logs.
func (s SQLiteSource) Describe() string {
	return "sqlite:" + s.Path
}

// Open loads records from src and builds the Data Store.
func Open(ctx context.Context, src Source) (*Store, error) {
	records, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}

	store := NewStore(records)
	slog.Info("Loaded dataset",
		"source", src.Describe(),
		"records", store.Len(),
		"categories", len(store.Vocabulary(model.FieldCategory)))

	return store, nil
}
