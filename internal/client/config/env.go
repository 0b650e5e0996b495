package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment,
// first loading a .env file from the working directory when one exists.
//
// Recognized variables:
//
//	BESWAN_API_URL         backend base URL
//	BESWAN_DATA_DIR        local data directory
//	BESWAN_REQUEST_TIMEOUT per-request timeout, time.ParseDuration format
func parseEnv(cfg *Config) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	if v := os.Getenv("BESWAN_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("BESWAN_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("BESWAN_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}
