// Package config holds runtime settings for the beswan CLI.
package config

import "time"

// Config holds runtime settings for the client.
//
// Fields:
//   - APIBaseURL: root of the backend REST API, including the version prefix.
//   - DataDir: directory for the client-local sqlite store.
//   - RequestTimeout: per-request HTTP timeout.
//   - DraftDebounce: how long form edits are coalesced before a draft write.
//   - DraftMaxAge: how long a saved draft stays restorable.
type Config struct {
	APIBaseURL     string
	DataDir        string
	RequestTimeout time.Duration
	DraftDebounce  time.Duration
	DraftMaxAge    time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080/api/v1"
	c.DataDir = "beswan-data"
	c.RequestTimeout = 30 * time.Second
	c.DraftDebounce = 800 * time.Millisecond
	c.DraftMaxAge = 7 * 24 * time.Hour
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (including an optional .env file), a JSON file (if
// -c/-config points at one) and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
