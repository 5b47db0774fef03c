package config

import (
	"log"

	"github.com/caarlos0/env/v11"
)

// parseEnv overlays cfg with CARDVAULT_* environment variables. Unset
// variables leave the corresponding fields untouched, so earlier layers
// (defaults, JSON) survive.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		log.Printf("error parsing environment: %v", err)
	}
}
