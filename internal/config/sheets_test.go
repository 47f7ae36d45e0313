package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoadSheetsConfig(t *testing.T) {
	t.Run("viper keys", func(t *testing.T) {
		v := viper.New()
		v.Set("sheets.client_id", "id")
		v.Set("sheets.client_secret", "secret")
		v.Set("sheets.refresh_token", "refresh")
		v.Set("sheets.spreadsheet_name", "Quarterly")
		v.Set("sheets.batch_size", 250)

		c := LoadSheetsConfig(v)
		assert.Equal(t, "id", c.ClientID)
		assert.Equal(t, "Quarterly", c.SpreadsheetName)
		assert.Equal(t, "UTC", c.TimeZone)
		assert.Equal(t, 250, c.BatchSize)
		assert.Equal(t, 3, c.RetryAttempts)
		assert.NoError(t, c.Validate())
	})

	t.Run("google env fallback", func(t *testing.T) {
		t.Setenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH", "/keys/sa.json")
		t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "sheet-1")

		v := viper.New()
		v.Set("sheets.spreadsheet_id", "from-viper")

		c := LoadSheetsConfig(v)
		assert.Equal(t, "/keys/sa.json", c.ServiceAccountPath)
		assert.Equal(t, "from-viper", c.SpreadsheetID)
		assert.Equal(t, "Play Store Dashboard", c.SpreadsheetName)
	})

	t.Run("no credentials", func(t *testing.T) {
		c := LoadSheetsConfig(viper.New())
		assert.Error(t, c.Validate())
	})
}
