package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the configuration for the cakeshelf service.
// Environment variables are parsed from the CAKESHELF_ prefix,
// e.g. CAKESHELF_HTTP_PORT, CAKESHELF_POSTGRES_DSN.
type Config struct {
	// HTTP Configuration
	HTTPPort int `envconfig:"HTTP_PORT" default:"8080"`

	// Storage driver: postgres or sqlite
	DBDriver    string `envconfig:"DB_DRIVER" default:"postgres"`
	PostgresDSN string `envconfig:"POSTGRES_DSN" default:""`
	SQLitePath  string `envconfig:"SQLITE_PATH" default:"data/cakeshelf.db"`

	// CORS
	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	// Health probing
	HealthIntervalSeconds     int `envconfig:"HEALTH_INTERVAL_SECONDS" default:"30"`
	HealthProbeTimeoutSeconds int `envconfig:"HEALTH_PROBE_TIMEOUT_SECONDS" default:"2"`
}

// ResolveDefaults validates the driver choice and its required settings.
func (c *Config) ResolveDefaults() error {
	switch c.DBDriver {
	case "postgres":
		if c.PostgresDSN == "" {
			return fmt.Errorf("CAKESHELF_POSTGRES_DSN is required when DB_DRIVER is postgres")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return fmt.Errorf("CAKESHELF_SQLITE_PATH is required when DB_DRIVER is sqlite")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER: %s", c.DBDriver)
	}
	return nil
}

// New creates a new Config by parsing environment variables.
func New() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("CAKESHELF", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GetHTTPAddr returns the HTTP server address.
func (c *Config) GetHTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}
