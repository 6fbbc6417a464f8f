// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all application configuration
type Config struct {
	Port    string `env:"PORT" env-default:"8080"`
	BaseURL string `env:"BASE_URL" env-default:"http://localhost:8080"`
	DataDir string `env:"DATA_DIR" env-default:"./data"`

	// DatabaseURL selects the catalog store: a postgresql:// URL, or empty
	// for the in-memory repository.
	DatabaseURL string `env:"DATABASE_URL" env-default:""`

	LogLevel  string `env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `env:"LOG_FORMAT" env-default:"text"`
}

// Load reads configuration from environment variables and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates the configuration and returns detailed errors
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("PORT must be a valid number, got: %s", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("PORT must be between 1 and 65535, got: %d", port))
	}

	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		errors = append(errors, fmt.Sprintf("BASE_URL is not a valid URL: %s", c.BaseURL))
	}

	if c.DataDir == "" {
		errors = append(errors, "DATA_DIR cannot be empty")
	}

	if c.DatabaseURL != "" && !strings.HasPrefix(c.DatabaseURL, "postgres://") && !strings.HasPrefix(c.DatabaseURL, "postgresql://") {
		errors = append(errors, "DATABASE_URL must be empty or a postgresql:// URL")
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: debug, info, warn, error, got: %s", c.LogLevel))
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: text, json, got: %s", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}
	return nil
}

// UsePostgres reports whether a Postgres catalog store is configured.
func (c *Config) UsePostgres() bool {
	return c.DatabaseURL != ""
}
