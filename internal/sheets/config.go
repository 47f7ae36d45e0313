// Package sheets publishes dashboard reports to Google Sheets.
package sheets

import (
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/playdash/internal/common"
)

// Config holds the configuration for the Google Sheets writer.
type Config struct {
	// OAuth2 client credentials plus either a refresh token or a saved token file.
	ClientID     string
	ClientSecret string
	RefreshToken string
	TokenFile    string

	// ServiceAccountPath is a JSON key file. Mutually exclusive with OAuth2.
	ServiceAccountPath string

	// SpreadsheetID targets an existing spreadsheet; otherwise a new one named
	// SpreadsheetName is created.
	SpreadsheetID   string
	SpreadsheetName string
	TimeZone        string

	BatchSize     int
	RetryAttempts int
	RetryDelay    time.Duration

	EnableFormatting bool
	IncludeApps      bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SpreadsheetName:  "Play Store Dashboard",
		TimeZone:         "UTC",
		EnableFormatting: true,
		BatchSize:        1000,
		RetryAttempts:    3,
		RetryDelay:       time.Second,
	}
}

func (c *Config) hasOAuth() bool {
	return c.ClientID != "" && c.ClientSecret != "" && (c.RefreshToken != "" || c.TokenFile != "")
}

// Validate reports every problem with c. Missing credentials wrap
// common.ErrMissingConfig; other problems wrap common.ErrInvalidConfig.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{common.ErrInvalidConfig}, args...)...))
	}

	switch oauth, sa := c.hasOAuth(), c.ServiceAccountPath != ""; {
	case !oauth && !sa:
		errs = append(errs, fmt.Errorf("%w: no authentication method configured: set sheets.service_account or sheets.client_id, sheets.client_secret and a refresh token",
			common.ErrMissingConfig))
	case oauth && sa:
		invalid("multiple authentication methods configured; use either OAuth2 or service account")
	}

	if c.SpreadsheetID == "" && c.SpreadsheetName == "" {
		invalid("spreadsheet name is required when no spreadsheet id is given")
	}
	if c.BatchSize <= 0 {
		invalid("batch size must be positive, got %d", c.BatchSize)
	}
	if c.RetryAttempts < 0 {
		invalid("retry attempts cannot be negative, got %d", c.RetryAttempts)
	}
	if c.RetryDelay < 0 {
		invalid("retry delay cannot be negative, got %s", c.RetryDelay)
	}

	return errors.Join(errs...)
}
