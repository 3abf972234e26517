package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// envConfig mirrors Config for the go-envconfig overlay. No defaults are
// declared here: an absent variable leaves the current value untouched.
type envConfig struct {
	BaseURL      string        `env:"CMSKEEPER_BASE_URL"`
	DatabasePath string        `env:"CMSKEEPER_DB"`
	KeyPath      string        `env:"CMSKEEPER_KEY"`
	LogLevel     string        `env:"CMSKEEPER_LOG_LEVEL"`
	HTTPTimeout  time.Duration `env:"CMSKEEPER_HTTP_TIMEOUT"`
}

func parseEnv(cfg *Config) {
	var ec envConfig
	if err := envconfig.Process(context.Background(), &ec); err != nil {
		panic(err)
	}

	if ec.BaseURL != "" {
		cfg.BaseURL = ec.BaseURL
	}
	if ec.DatabasePath != "" {
		cfg.DatabasePath = ec.DatabasePath
	}
	if ec.KeyPath != "" {
		cfg.KeyPath = ec.KeyPath
	}
	if ec.LogLevel != "" {
		cfg.LogLevel = ec.LogLevel
	}
	if ec.HTTPTimeout > 0 {
		cfg.HTTPTimeout = ec.HTTPTimeout
	}
}
