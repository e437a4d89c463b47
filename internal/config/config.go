package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables that override configuration keys.
const EnvPrefix = "TALLY"

// DefaultConfigDir returns the directory holding config.yaml and saved tokens.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "tally")
	}
	return filepath.Join(home, ".config", "tally")
}

// DefaultDatabasePath returns the default ledger database location.
func DefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "tally.db")
	}
	return filepath.Join(home, ".local", "share", "tally", "tally.db")
}

// SetDefaults registers default values for every configuration key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", DefaultDatabasePath())
	v.SetDefault("currency.symbol", "$")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("sheets.spreadsheet_name", "Tally Reports")
}

// DatabasePath returns the configured database path with ~ and variables expanded.
func DatabasePath(v *viper.Viper) string {
	return ExpandPath(v.GetString("database.path"))
}
