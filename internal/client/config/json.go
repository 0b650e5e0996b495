package config

import (
	"encoding/json"
	"os"

	"github.com/beswanhub/beswan-cli/internal/flagx"
	"github.com/beswanhub/beswan-cli/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so intervals can be written either as strings like "800ms"
// or as integer nanoseconds.
type JSONConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	DataDir        string         `json:"data_dir"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	DraftDebounce  timex.Duration `json:"draft_debounce"`
	DraftMaxAge    timex.Duration `json:"draft_max_age"`
}

// parseJSON overlays Config with values loaded from the JSON file named by
// the -c/-config flags. Absent file path means no JSON overlay. Zero-valued
// fields in the file leave the current config value untouched.
func parseJSON(cfg *Config) {
	path := flagx.JSONConfigFlags()
	if path == "" {
		return
	}

	var jc JSONConfig

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.DraftDebounce.Duration != 0 {
		cfg.DraftDebounce = jc.DraftDebounce.Duration
	}
	if jc.DraftMaxAge.Duration != 0 {
		cfg.DraftMaxAge = jc.DraftMaxAge.Duration
	}
}
