package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/playdash/internal/common"
	"github.com/Veraticus/playdash/internal/model"
)

// SaveApps replaces the stored snapshot with apps and records the import.
// The whole replacement runs in one transaction; progress, when set, is called after
// each row is written.
func (s *SQLiteStorage) SaveApps(ctx context.Context, source string, apps []model.AppRecord, progress func(done, total int)) (*model.ImportRecord, error) {
	// Validate inputs
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(source, "source"); err != nil {
		return nil, err
	}
	if err := validateApps(apps); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM apps`); err != nil {
		return nil, fmt.Errorf("failed to clear previous snapshot: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO apps (
			app, category, rating, reviews, size_kb, installs_num, type, price_num,
			content_rating, primary_genre, app_age_years, install_band, price_category
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range apps {
		a := &apps[i]
		_, err := stmt.ExecContext(ctx,
			a.App, a.Category, nullFloat(a.Rating), a.Reviews, nullFloat(a.SizeKB), nullInt(a.InstallsNum),
			a.Type, a.PriceNum, a.ContentRating, a.PrimaryGenre, a.AppAgeYears, a.InstallBand, a.PriceCategory,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert app %q: %w", a.App, err)
		}
		if progress != nil {
			progress(i+1, len(apps))
		}
	}

	imported := &model.ImportRecord{
		Source:     source,
		Rows:       len(apps),
		ImportedAt: time.Now().UTC().Truncate(time.Second),
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO imports (source, row_count, imported_at) VALUES (?, ?, ?)`,
		imported.Source, imported.Rows, imported.ImportedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record import: %w", err)
	}
	if imported.ID, err = res.LastInsertId(); err != nil {
		return nil, fmt.Errorf("failed to read import id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit snapshot: %w", err)
	}

	slog.Info("Saved app snapshot", "source", source, "rows", len(apps))
	return imported, nil
}

// LoadApps returns every stored app in insertion order.
func (s *SQLiteStorage) LoadApps(ctx context.Context) ([]model.AppRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT app, category, rating, reviews, size_kb, installs_num, type, price_num,
			content_rating, primary_genre, app_age_years, install_band, price_category
		FROM apps
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query apps: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var apps []model.AppRecord
	for rows.Next() {
		var (
			a        model.AppRecord
			rating   sql.NullFloat64
			sizeKB   sql.NullFloat64
			installs sql.NullInt64
		)
		if err := rows.Scan(
			&a.App, &a.Category, &rating, &a.Reviews, &sizeKB, &installs, &a.Type, &a.PriceNum,
			&a.ContentRating, &a.PrimaryGenre, &a.AppAgeYears, &a.InstallBand, &a.PriceCategory,
		); err != nil {
			return nil, fmt.Errorf("failed to scan app: %w", err)
		}
		if rating.Valid {
			a.Rating = model.Float(rating.Float64)
		}
		if sizeKB.Valid {
			a.SizeKB = model.Float(sizeKB.Float64)
		}
		if installs.Valid {
			a.InstallsNum = model.Int(installs.Int64)
		}
		apps = append(apps, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating apps: %w", err)
	}

	return apps, nil
}

// CountApps returns the number of stored apps.
func (s *SQLiteStorage) CountApps(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM apps`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count apps: %w", err)
	}
	return count, nil
}

// LatestImport returns the most recent import, or common.ErrNotFound when the
// database has never been populated.
func (s *SQLiteStorage) LatestImport(ctx context.Context) (*model.ImportRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var rec model.ImportRecord
	err := s.db.QueryRowContext(ctx, `
		SELECT id, source, row_count, imported_at
		FROM imports
		ORDER BY id DESC
		LIMIT 1
	`).Scan(&rec.ID, &rec.Source, &rec.Rows, &rec.ImportedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no dataset has been imported", common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest import: %w", err)
	}
	return &rec, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func nullInt(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
