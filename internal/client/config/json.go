package config

import (
	"encoding/json"
	"os"

	"github.com/avasilyev/cmskeeper/internal/flagx"
	"github.com/avasilyev/cmskeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so the file can specify timeouts either as strings like
// "15s" or as integer nanoseconds.
type JsonConfig struct {
	BaseURL      string         `json:"base_url"`
	DatabasePath string         `json:"database_path"`
	KeyPath      string         `json:"key_path"`
	LogLevel     string         `json:"log_level"`
	HTTPTimeout  timex.Duration `json:"http_timeout"`
}

// parseJson overlays cfg with values from the JSON file named by the -c or
// -config flag. Absent file means no overlay; unset fields keep their current
// values. Read or unmarshal errors panic (caller recovers if desired).
func parseJson(cfg *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BaseURL != "" {
		cfg.BaseURL = jc.BaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.KeyPath != "" {
		cfg.KeyPath = jc.KeyPath
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
	if jc.HTTPTimeout.Duration > 0 {
		cfg.HTTPTimeout = jc.HTTPTimeout.Duration
	}
}
