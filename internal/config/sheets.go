package config

import (
	"os"

	"github.com/Veraticus/playdash/internal/sheets"
	"github.com/spf13/viper"
)

// LoadSheetsConfig reads the Google Sheets export settings. Precedence: viper keys
// (config file or PLAYDASH_SHEETS_* env vars), then GOOGLE_SHEETS_* env vars, then
// sheets.DefaultConfig. The result is not validated.
func LoadSheetsConfig(v *viper.Viper) sheets.Config {
	c := sheets.DefaultConfig()

	pick := func(key, env string) string {
		if val := v.GetString(key); val != "" {
			return val
		}
		return os.Getenv(env)
	}

	c.ServiceAccountPath = ExpandPath(pick("sheets.service_account", "GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH"))
	c.ClientID = pick("sheets.client_id", "GOOGLE_SHEETS_CLIENT_ID")
	c.ClientSecret = pick("sheets.client_secret", "GOOGLE_SHEETS_CLIENT_SECRET")
	c.RefreshToken = pick("sheets.refresh_token", "GOOGLE_SHEETS_REFRESH_TOKEN")
	c.TokenFile = ExpandPath(v.GetString("sheets.token_file"))
	c.SpreadsheetID = pick("sheets.spreadsheet_id", "GOOGLE_SHEETS_SPREADSHEET_ID")

	if name := pick("sheets.spreadsheet_name", "GOOGLE_SHEETS_SPREADSHEET_NAME"); name != "" {
		c.SpreadsheetName = name
	}
	if tz := v.GetString("sheets.timezone"); tz != "" {
		c.TimeZone = tz
	}
	if v.IsSet("sheets.batch_size") {
		c.BatchSize = v.GetInt("sheets.batch_size")
	}
	if v.IsSet("sheets.retry_attempts") {
		c.RetryAttempts = v.GetInt("sheets.retry_attempts")
	}

	return c
}
