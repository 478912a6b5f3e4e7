package config

import (
	"os"
	"strconv"

	"gopower/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Sweep    SweepConfig
	Export   ExportConfig
}

// DatabaseConfig holds calculation-history database settings. The database
// is optional: with no URL the services run stateless.
type DatabaseConfig struct {
	URL     string
	SSLMode string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	APIPort string
	UIPort  string
	GinMode string
}

// SweepConfig bounds the grid sweeps used for chart and surface rendering
type SweepConfig struct {
	MaxPoints int // cap on rows x cols per sweep request
	Workers   int // concurrent sweep rows
}

// ExportConfig holds spreadsheet export settings
type ExportConfig struct {
	Dir string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{
			URL:     os.Getenv("DATABASE_URL"),
			SSLMode: getEnvOrDefault("SSL_MODE", "disable"),
		},
		Server: ServerConfig{
			APIPort: getEnvOrDefault("PORT", "8080"),
			UIPort:  getEnvOrDefault("UI_PORT", "8081"),
			GinMode: getEnvOrDefault("GIN_MODE", "release"),
		},
		Sweep: SweepConfig{
			MaxPoints: getEnvIntOrDefault("SWEEP_MAX_POINTS", 10000),
			Workers:   getEnvIntOrDefault("SWEEP_WORKERS", 4),
		},
		Export: ExportConfig{
			Dir: getEnvOrDefault("EXPORT_DIR", "."),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Sweep.MaxPoints < 1 {
		return errors.ConfigInvalid("SWEEP_MAX_POINTS must be positive")
	}
	if config.Sweep.Workers < 1 {
		return errors.ConfigInvalid("SWEEP_WORKERS must be positive")
	}
	if config.Server.APIPort == "" {
		return errors.ConfigInvalid("PORT must not be empty")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
