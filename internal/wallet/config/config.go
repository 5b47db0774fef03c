// Package config loads the runtime settings of the wallet CLI. Sources are
// layered: defaults, then a JSON file, then environment variables, then
// command-line flags — later sources take precedence.
package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Config holds runtime settings for the CardVault CLI.
//
// The S3 fields configure the app-scoped bucket backing the cloud document;
// leave the bucket empty to run without any cloud binding. Passphrase, when
// set, enables at-rest encryption of the cloud document.
type Config struct {
	DatabasePath string `env:"CARDVAULT_DB_PATH"`

	S3Endpoint  string `env:"CARDVAULT_S3_ENDPOINT"`
	S3Region    string `env:"CARDVAULT_S3_REGION"`
	S3Bucket    string `env:"CARDVAULT_S3_BUCKET"`
	S3AccessKey string `env:"CARDVAULT_S3_ACCESS_KEY"`
	S3SecretKey string `env:"CARDVAULT_S3_SECRET_KEY"`

	Passphrase string `env:"CARDVAULT_PASSPHRASE"`

	OnlineCheckURL      string        `env:"CARDVAULT_ONLINE_CHECK_URL"`
	OnlineCheckInterval time.Duration `env:"CARDVAULT_ONLINE_CHECK_INTERVAL"`
}

// LoadDefaults populates c with sensible defaults. The database lands in the
// user's XDG data directory unless overridden.
func (c *Config) LoadDefaults() {
	if path, err := xdg.DataFile(filepath.Join("cardvault", "cardvault.db")); err == nil {
		c.DatabasePath = path
	} else {
		c.DatabasePath = "cardvault.db"
	}
	c.S3Region = "us-east-1"
	c.OnlineCheckURL = "https://s3.amazonaws.com"
	c.OnlineCheckInterval = 3 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present), the environment, and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// CloudConfigured reports whether a cloud bucket has been set up at all.
func (c *Config) CloudConfigured() bool {
	return c.S3Bucket != ""
}
