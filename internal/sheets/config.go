// Package sheets exports computed reports to Google Sheets.
package sheets

import (
	"errors"
	"time"
)

// Configuration errors.
var (
	ErrNoAuth        = errors.New("no authentication method configured")
	ErrMultipleAuth  = errors.New("multiple authentication methods configured; use either OAuth2 or service account")
	ErrBatchSize     = errors.New("batch size must be positive")
	ErrRetryAttempts = errors.New("retry attempts cannot be negative")
	ErrRetryDelay    = errors.New("retry delay cannot be negative")
)

// DefaultSpreadsheetName names spreadsheets created by the exporter.
const DefaultSpreadsheetName = "Tally Reports"

// Config holds the configuration for the Google Sheets writer.
type Config struct {
	ClientID           string
	ClientSecret       string
	RefreshToken       string
	ServiceAccountPath string
	SpreadsheetID      string
	SpreadsheetName    string
	TimeZone           string
	CurrencyPattern    string
	BatchSize          int
	RetryAttempts      int
	RetryDelay         time.Duration
	EnableFormatting   bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		SpreadsheetName:  DefaultSpreadsheetName,
		EnableFormatting: true,
		TimeZone:         "UTC",
		CurrencyPattern:  "$#,##0.00",
		BatchSize:        1000,
		RetryAttempts:    3,
		RetryDelay:       time.Second,
	}
}

// HasOAuth reports whether complete OAuth2 credentials are present.
func (c *Config) HasOAuth() bool {
	return c.ClientID != "" && c.ClientSecret != "" && c.RefreshToken != ""
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	hasServiceAccount := c.ServiceAccountPath != ""

	switch {
	case !c.HasOAuth() && !hasServiceAccount:
		return ErrNoAuth
	case c.HasOAuth() && hasServiceAccount:
		return ErrMultipleAuth
	case c.BatchSize <= 0:
		return ErrBatchSize
	case c.RetryAttempts < 0:
		return ErrRetryAttempts
	case c.RetryDelay < 0:
		return ErrRetryDelay
	}

	return nil
}
