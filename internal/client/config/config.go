// Package config loads runtime settings for the cmskeeper CLI.
//
// Sources are applied in order — defaults, JSON file, environment, flags —
// with later sources taking precedence.
package config

import "time"

// Config holds runtime settings for the cmskeeper CLI.
//
// Fields:
//   - BaseURL: root of the CMS backend, e.g. http://localhost:1337.
//   - DatabasePath: location of the local vault database.
//   - KeyPath: location of the vault key file.
//   - LogLevel: minimum log level (trace, debug, info, warn, error).
//   - HTTPTimeout: per-request timeout for backend calls.
type Config struct {
	BaseURL      string
	DatabasePath string
	KeyPath      string
	LogLevel     string
	HTTPTimeout  time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:1337"
	c.DatabasePath = "cmskeeper.db"
	c.KeyPath = "cmskeeper.key"
	c.LogLevel = "info"
	c.HTTPTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if a config file was given), environment variables, and command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
