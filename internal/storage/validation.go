// Package storage provides the SQLite snapshot of the app dataset.
package storage

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Veraticus/playdash/internal/model"
)

// Validation errors.
var (
	ErrNilContext   = errors.New("context cannot be nil")
	ErrEmptyString  = errors.New("string parameter cannot be empty")
	ErrNilParameter = errors.New("parameter cannot be nil")
	ErrEmptySlice   = errors.New("slice cannot be empty")
	ErrInvalidApp   = errors.New("invalid app record")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateApps validates a slice of app records.
func validateApps(apps []model.AppRecord) error {
	if apps == nil {
		return fmt.Errorf("%w: apps", ErrNilParameter)
	}
	if len(apps) == 0 {
		return fmt.Errorf("%w: apps", ErrEmptySlice)
	}

	for i := range apps {
		if err := validateApp(&apps[i]); err != nil {
			return fmt.Errorf("app at index %d: %w", i, err)
		}
	}
	return nil
}

// validateApp validates a single app record.
func validateApp(app *model.AppRecord) error {
	if app == nil {
		return fmt.Errorf("%w: app", ErrNilParameter)
	}
	if strings.TrimSpace(app.App) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidApp)
	}
	if app.Reviews < 0 {
		return fmt.Errorf("%w: negative reviews", ErrInvalidApp)
	}
	if app.InstallsNum != nil && *app.InstallsNum < 0 {
		return fmt.Errorf("%w: negative installs", ErrInvalidApp)
	}

	checks := []struct {
		value *float64
		name  string
	}{
		{app.Rating, "rating"},
		{app.SizeKB, "size"},
		{&app.PriceNum, "price"},
		{&app.AppAgeYears, "app age"},
	}
	for _, c := range checks {
		if c.value == nil {
			continue
		}
		if v := *c.value; v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: %s must be a non-negative number", ErrInvalidApp, c.name)
		}
	}
	return nil
}
