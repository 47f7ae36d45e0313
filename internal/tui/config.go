package tui

import (
	"github.com/Veraticus/playdash/internal/engine"
	"github.com/Veraticus/playdash/internal/model"
	"github.com/Veraticus/playdash/internal/predict"
	"github.com/Veraticus/playdash/internal/tui/themes"
)

// Store is the read-only data the dashboard renders. *dataset.Store satisfies it.
type Store interface {
	All() engine.View
	FilterOptions(f model.Field) []string
}

// Config holds TUI configuration.
type Config struct {
	Theme     themes.Theme
	Store     Store
	Predictor *predict.Service
	Selection model.FilterSelection
	Width     int
	Height    int
	ShowHelp  bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:    themes.Default,
		Width:    120,
		Height:   40,
		ShowHelp: true,
	}
}

// WithStore sets the data store.
func WithStore(store Store) Option {
	return func(c *Config) {
		c.Store = store
	}
}

// WithPredictor sets the prediction service. Without one the predict tab is disabled.
func WithPredictor(p *predict.Service) Option {
	return func(c *Config) {
		c.Predictor = p
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithSelection sets the filters applied at startup.
func WithSelection(sel model.FilterSelection) Option {
	return func(c *Config) {
		c.Selection = sel
	}
}

// WithHelp toggles the help bar.
func WithHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}
