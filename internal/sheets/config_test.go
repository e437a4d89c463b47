package sheets

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	valid := func(mutate func(*Config)) Config {
		c := Config{BatchSize: 100, RetryAttempts: 3, RetryDelay: time.Second}
		mutate(&c)
		return c
	}
	oauth := func(c *Config) {
		c.ClientID, c.ClientSecret, c.RefreshToken = "client", "secret", "token"
	}

	tests := []struct {
		name    string
		wantErr error
		config  Config
	}{
		{name: "oauth", config: valid(oauth)},
		{name: "service account", config: valid(func(c *Config) { c.ServiceAccountPath = "/key.json" })},
		{name: "missing auth", config: valid(func(*Config) {}), wantErr: ErrNoAuth},
		{
			name:    "partial oauth",
			config:  valid(func(c *Config) { c.ClientID, c.RefreshToken = "client", "token" }),
			wantErr: ErrNoAuth,
		},
		{
			name: "both auth methods",
			config: valid(func(c *Config) {
				oauth(c)
				c.ServiceAccountPath = "/key.json"
			}),
			wantErr: ErrMultipleAuth,
		},
		{
			name: "zero batch size",
			config: valid(func(c *Config) {
				oauth(c)
				c.BatchSize = 0
			}),
			wantErr: ErrBatchSize,
		},
		{
			name: "negative retries",
			config: valid(func(c *Config) {
				oauth(c)
				c.RetryAttempts = -1
			}),
			wantErr: ErrRetryAttempts,
		},
		{
			name: "negative delay",
			config: valid(func(c *Config) {
				oauth(c)
				c.RetryDelay = -time.Second
			}),
			wantErr: ErrRetryDelay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, DefaultSpreadsheetName, c.SpreadsheetName)
	assert.True(t, c.EnableFormatting)
	assert.Equal(t, 1000, c.BatchSize)
	assert.Equal(t, 3, c.RetryAttempts)
	assert.ErrorIs(t, c.Validate(), ErrNoAuth)
}
