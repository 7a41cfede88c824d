// Package config loads runtime settings for the RecoverLink CLI.
package config

import (
	"path/filepath"
	"time"
)

// Config holds runtime settings for the RecoverLink CLI.
//
// Fields:
//   - DataDir: directory holding the keyring and the local database.
//   - KeyringPath: path to the encrypted keyring file.
//   - DatabasePath: path to the local SQLite database.
//   - CodeTTL: validity window for pairing codes.
//   - DisplayName: default sender name attached to outgoing payloads.
type Config struct {
	DataDir      string        `env:"RECOVERLINK_DATA_DIR"`
	KeyringPath  string        `env:"RECOVERLINK_KEYRING"`
	DatabasePath string        `env:"RECOVERLINK_DATABASE"`
	CodeTTL      time.Duration `env:"RECOVERLINK_CODE_TTL"`
	DisplayName  string        `env:"RECOVERLINK_DISPLAY_NAME"`
}

// LoadDefaults populates c with sensible defaults. Paths are left empty and
// resolved against DataDir after all sources have been applied.
func (c *Config) LoadDefaults() {
	c.DataDir = "."
	c.CodeTTL = 7 * 24 * time.Hour
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), environment variables, and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	cfg.resolvePaths()
	return cfg
}

// resolvePaths fills in file paths that were not set explicitly.
func (c *Config) resolvePaths() {
	if c.KeyringPath == "" {
		c.KeyringPath = filepath.Join(c.DataDir, "keyring.json")
	}
	if c.DatabasePath == "" {
		c.DatabasePath = filepath.Join(c.DataDir, "recoverlink.db")
	}
}
