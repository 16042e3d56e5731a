// Package config loads the server configuration from a YAML file with
// defaults sensible for local development.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"fellowgoer.app/internal/appconf"
)

// Config holds every runtime knob of the server. Values are validated once
// at load time so the rest of the program can trust them.
type Config struct {
	Env      string `yaml:"env" validate:"required,oneof=development test production"`
	Port     int    `yaml:"port" validate:"required,gt=0,lte=65535"`
	DBPath   string `yaml:"db_path" validate:"required"`
	FeedDir  string `yaml:"feed_dir"`
	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	JWTSecret string `yaml:"jwt_secret" validate:"required,min=16"`

	AllowedOrigins []string `yaml:"allowed_origins" validate:"dive,url"`

	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig caps requests per client IP.
type RateLimitConfig struct {
	Enabled           bool    `yaml:"enabled"`
	RequestsPerSecond float64 `yaml:"requests_per_second" validate:"gte=0"`
	Burst             int     `yaml:"burst" validate:"gte=0"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Env:      "development",
		Port:     8080,
		DBPath:   "fellowgoer.db",
		LogLevel: "info",
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 20,
			Burst:             40,
		},
	}
}

// Load reads path, layers it over Default, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("error parsing config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints. Load calls this; callers that build a
// Config by hand (flags, tests) must call it themselves.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Environment converts the env string into the typed enum.
func (c Config) Environment() appconf.Environment {
	return appconf.EnvFromString(c.Env)
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
