package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/Veraticus/playdash/internal/common"
	"github.com/Veraticus/playdash/internal/config"
	"github.com/Veraticus/playdash/internal/dataset"
	"github.com/Veraticus/playdash/internal/encoding"
	"github.com/Veraticus/playdash/internal/model"
	"github.com/Veraticus/playdash/internal/predict"
	"github.com/Veraticus/playdash/internal/storage"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
	formatCSV  = "csv"
	formatYAML = "yaml"
)

// filterFlags maps each filter field to its command-line flag.
var filterFlags = []struct {
	field model.Field
	flag  string
}{
	{model.FieldCategory, "category"},
	{model.FieldType, "type"},
	{model.FieldContentRating, "content-rating"},
	{model.FieldInstallBand, "install-band"},
}

func loadSettings() (*config.Settings, error) {
	return config.LoadSettings(viper.GetViper())
}

// openStorage opens the SQLite snapshot and brings its schema up to date.
func openStorage(ctx context.Context, dbPath string) (*storage.SQLiteStorage, error) {
	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// loadStore builds the Data Store from the configured source.
func loadStore(ctx context.Context, s *config.Settings) (*dataset.Store, error) {
	switch s.DataSource {
	case config.SourceSQLite:
		db, err := openStorage(ctx, s.DatabasePath)
		if err != nil {
			return nil, err
		}
		defer func() { _ = db.Close() }()

		store, err := dataset.Open(ctx, dataset.SQLiteSource{Reader: db, Path: s.DatabasePath})
		if err != nil {
			return nil, err
		}
		if store.Len() == 0 {
			slog.Warn("Database snapshot is empty; run 'playdash import' first", "database", s.DatabasePath)
		}
		return store, nil

	default:
		store, err := dataset.Open(ctx, dataset.CSVSource{Path: s.DataPath})
		if errors.Is(err, fs.ErrNotExist) {
			return nil, common.NewUserError(
				fmt.Sprintf("dataset not found at %s; set data.path or pass --data", s.DataPath), err)
		}
		return store, err
	}
}

// loadEncodingTable picks the encoding table by precedence: the model artifact's
// embedded encodings, then the encodings file, then the table derived from the store.
// art may be nil.
func loadEncodingTable(art *predict.Artifact, s *config.Settings, store *dataset.Store) (*encoding.Table, error) {
	table, err := pickEncodingTable(art, s, store)
	if err != nil {
		return nil, err
	}

	slog.Info("Using encoding table",
		"source", table.Source(),
		"categories", table.Len(model.FieldCategory),
		"genres", table.Len(model.FieldPrimaryGenre))
	return table, nil
}

func pickEncodingTable(art *predict.Artifact, s *config.Settings, store *dataset.Store) (*encoding.Table, error) {
	if art != nil {
		table, err := art.EncodingTable()
		if err != nil {
			return nil, err
		}
		if table != nil {
			return table, nil
		}
	}

	if s.EncodingsPath != "" {
		return encoding.Load(s.EncodingsPath)
	}

	return encoding.Build(store), nil
}

// loadArtifact reads the model artifact. A missing file yields nil without error
// when optional is set.
func loadArtifact(s *config.Settings, optional bool) (*predict.Artifact, error) {
	art, err := predict.LoadArtifact(s.ModelPath)
	if err != nil {
		if optional && errors.Is(err, fs.ErrNotExist) {
			slog.Debug("No model artifact found", "model", s.ModelPath)
			return nil, nil
		}
		return nil, err
	}
	return art, nil
}

// loadPredictor loads the model and its encoding table and wires the prediction service.
// A positive model.cache_ttl enables the output cache; callers Close the service.
func loadPredictor(s *config.Settings, store *dataset.Store) (*predict.Service, error) {
	art, err := loadArtifact(s, false)
	if err != nil {
		return nil, err
	}

	m, err := art.Model()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.ModelPath, err)
	}

	table, err := loadEncodingTable(art, s, store)
	if err != nil {
		return nil, err
	}

	var opts []predict.Option
	if s.CacheTTL > 0 {
		opts = append(opts, predict.WithCache(s.CacheTTL))
	}

	slog.Info("Loaded model", "model", m.Name(), "path", s.ModelPath, "cache_ttl", s.CacheTTL)
	return predict.NewService(m, table, opts...), nil
}

func addFilterFlags(cmd *cobra.Command) {
	for _, f := range filterFlags {
		cmd.Flags().String(f.flag, model.All, fmt.Sprintf("filter by %s", f.field.Label()))
	}
}

// selectionFromFlags reads the filter flags. Values outside the store's vocabulary are
// kept (they simply match nothing) but logged.
func selectionFromFlags(cmd *cobra.Command, store *dataset.Store) model.FilterSelection {
	var sel model.FilterSelection
	for _, f := range filterFlags {
		value, _ := cmd.Flags().GetString(f.flag)
		if value == "" {
			value = model.All
		}
		if value != model.All && !contains(store.FilterOptions(f.field), value) {
			slog.Warn("Filter value not present in dataset", "filter", f.field.Label(), "value", value)
		}
		sel = sel.With(f.field, value)
	}
	return sel
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func checkFormat(format string, allowed ...string) error {
	if contains(allowed, format) {
		return nil
	}
	return fmt.Errorf("unsupported format %q (want one of %v)", format, allowed)
}
