package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all agent configuration. It is constructed once at startup
// and must not be mutated afterward; core operations receive it by value.
type Config struct {
	Read    ReadConfig
	Safety  SafetyConfig
	Logging LogConfig
}

// ReadConfig holds file read size ceilings.
type ReadConfig struct {
	// MaxBytes is the ceiling for files owned by the privileged account.
	MaxBytes uint64 `envconfig:"READ_MAX" default:"52428800"`
	// MaxUserBytes is the ceiling for files owned by anyone else.
	MaxUserBytes uint64 `envconfig:"READ_USER_MAX" default:"10485760"`
}

// SafetyConfig holds permission and forensic toggles.
type SafetyConfig struct {
	// AllowUnsafe permits loading files with unsafe permissions.
	AllowUnsafe bool `envconfig:"ALLOW_UNSAFE" default:"false"`
	// DisableForensic disables atime/mtime restoration after reads.
	DisableForensic bool `envconfig:"DISABLE_FORENSIC" default:"true"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Read.MaxUserBytes > cfg.Read.MaxBytes {
		return nil, fmt.Errorf("READ_USER_MAX (%d) exceeds READ_MAX (%d)",
			cfg.Read.MaxUserBytes, cfg.Read.MaxBytes)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Read: ReadConfig{
			MaxBytes:     50 * 1024 * 1024,
			MaxUserBytes: 10 * 1024 * 1024,
		},
		Safety: SafetyConfig{
			AllowUnsafe:     false,
			DisableForensic: true,
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}
