package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/Veraticus/playdash/internal/common"
	"github.com/spf13/viper"
)

// Data source kinds.
const (
	SourceCSV    = "csv"
	SourceSQLite = "sqlite"
)

// Default locations used when the config file and environment leave a key unset.
const (
	DefaultDataPath  = "googleplaystore_cleaned.csv"
	DefaultModelPath = "playstore_rf_model.json"
	DefaultCacheTTL  = 15 * time.Minute
)

// Settings holds the resolved runtime configuration.
type Settings struct {
	DataPath      string
	DataSource    string
	DatabasePath  string
	ModelPath     string
	EncodingsPath string
	Theme         string
	CacheTTL      time.Duration
}

// SetDefaults registers default values with viper.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("data.path", DefaultDataPath)
	v.SetDefault("data.source", SourceCSV)
	v.SetDefault("database.path", filepath.Join(DataDir(), "playdash.db"))
	v.SetDefault("model.path", DefaultModelPath)
	v.SetDefault("model.cache_ttl", DefaultCacheTTL)
	v.SetDefault("tui.theme", "default")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// LoadSettings reads settings from viper (config file or PLAYDASH_ env vars)
// and expands every path.
func LoadSettings(v *viper.Viper) (*Settings, error) {
	s := &Settings{
		DataPath:      ExpandPath(v.GetString("data.path")),
		DataSource:    v.GetString("data.source"),
		DatabasePath:  ExpandPath(v.GetString("database.path")),
		ModelPath:     ExpandPath(v.GetString("model.path")),
		EncodingsPath: ExpandPath(v.GetString("encodings.path")),
		Theme:         v.GetString("tui.theme"),
		CacheTTL:      v.GetDuration("model.cache_ttl"),
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks that required settings are present and consistent.
func (s *Settings) Validate() error {
	switch s.DataSource {
	case SourceCSV:
		if s.DataPath == "" {
			return fmt.Errorf("%w: data.path", common.ErrMissingConfig)
		}
	case SourceSQLite:
		if s.DatabasePath == "" {
			return fmt.Errorf("%w: database.path", common.ErrMissingConfig)
		}
	default:
		return fmt.Errorf("%w: data.source must be %q or %q, got %q",
			common.ErrInvalidConfig, SourceCSV, SourceSQLite, s.DataSource)
	}
	if s.ModelPath == "" {
		return fmt.Errorf("%w: model.path", common.ErrMissingConfig)
	}
	if s.CacheTTL < 0 {
		return fmt.Errorf("%w: model.cache_ttl must not be negative", common.ErrInvalidConfig)
	}
	return nil
}
