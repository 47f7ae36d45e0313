// Package service defines the interfaces shared between the application layers.
package service

import (
	"context"

	"github.com/Veraticus/playdash/internal/engine"
	"github.com/Veraticus/playdash/internal/model"
)

// Storage defines the contract for the dataset snapshot store.
type Storage interface {
	// Schema
	Migrate(ctx context.Context) error

	// Snapshot operations
	SaveApps(ctx context.Context, source string, apps []model.AppRecord, progress func(done, total int)) (*model.ImportRecord, error)
	LoadApps(ctx context.Context) ([]model.AppRecord, error)
	CountApps(ctx context.Context) (int, error)
	LatestImport(ctx context.Context) (*model.ImportRecord, error)

	Close() error
}

// ReportWriter publishes a dashboard report to an external destination and returns
// a link to the published copy.
type ReportWriter interface {
	Write(ctx context.Context, report engine.Report) (string, error)
}
