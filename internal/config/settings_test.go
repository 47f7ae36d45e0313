package config

import (
	"testing"
	"time"

	"github.com/Veraticus/playdash/internal/common"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_Defaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	s, err := LoadSettings(v)
	require.NoError(t, err)

	assert.Equal(t, DefaultDataPath, s.DataPath)
	assert.Equal(t, SourceCSV, s.DataSource)
	assert.Equal(t, DefaultModelPath, s.ModelPath)
	assert.Equal(t, "default", s.Theme)
	assert.Empty(t, s.EncodingsPath)
	assert.Equal(t, DefaultCacheTTL, s.CacheTTL)
	assert.NotContains(t, s.DatabasePath, "$HOME")
}

func TestLoadSettings_ExpandsPaths(t *testing.T) {
	t.Setenv("PLAYDASH_TEST_DIR", "/data")

	v := viper.New()
	SetDefaults(v)
	v.Set("data.path", "$PLAYDASH_TEST_DIR/apps.csv")
	v.Set("encodings.path", "$PLAYDASH_TEST_DIR/encodings.yaml")

	s, err := LoadSettings(v)
	require.NoError(t, err)
	assert.Equal(t, "/data/apps.csv", s.DataPath)
	assert.Equal(t, "/data/encodings.yaml", s.EncodingsPath)
}

func TestLoadSettings_CacheTTL(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("model.cache_ttl", "90s")

	s, err := LoadSettings(v)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, s.CacheTTL)

	v.Set("model.cache_ttl", "-1m")
	_, err = LoadSettings(v)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantErr  error
	}{
		{
			name:     "csv source",
			settings: Settings{DataSource: SourceCSV, DataPath: "apps.csv", ModelPath: "m.json"},
		},
		{
			name:     "sqlite source",
			settings: Settings{DataSource: SourceSQLite, DatabasePath: "apps.db", ModelPath: "m.json"},
		},
		{
			name:     "csv without path",
			settings: Settings{DataSource: SourceCSV, ModelPath: "m.json"},
			wantErr:  common.ErrMissingConfig,
		},
		{
			name:     "unknown source",
			settings: Settings{DataSource: "parquet", DataPath: "apps.parquet", ModelPath: "m.json"},
			wantErr:  common.ErrInvalidConfig,
		},
		{
			name:     "missing model",
			settings: Settings{DataSource: SourceCSV, DataPath: "apps.csv"},
			wantErr:  common.ErrMissingConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
