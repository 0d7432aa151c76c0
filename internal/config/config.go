package config

import (
	"os"
	"strconv"

	"oxbio/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Analysis AnalysisConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DatabaseConfig holds database connection settings. The URL is optional:
// without it the dataset registry runs in memory.
type DatabaseConfig struct {
	URL string
}

// StorageConfig holds file system paths and upload limits
type StorageConfig struct {
	UploadsDir   string
	ArtifactsDir string
	MaxUploadMB  int64
}

// AnalysisConfig holds engine runtime settings
type AnalysisConfig struct {
	// Slots caps the number of analysis runs executing at once. Each run is
	// single-threaded and owns its state; the cap only bounds memory.
	Slots int64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvOrDefault("PORT", "8080"),
			GinMode: getEnvOrDefault("GIN_MODE", "debug"),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Storage: StorageConfig{
			UploadsDir:   getEnvOrDefault("UPLOADS_DIR", "uploads/datasets"),
			ArtifactsDir: getEnvOrDefault("ARTIFACTS_DIR", "artifacts/analysis"),
			MaxUploadMB:  int64(getEnvIntOrDefault("MAX_UPLOAD_MB", 50)),
		},
		Analysis: AnalysisConfig{
			Slots: int64(getEnvIntOrDefault("ANALYSIS_SLOTS", 4)),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Server.Port == "" {
		return errors.ConfigInvalid("server port is required")
	}
	if config.Storage.UploadsDir == "" {
		return errors.ConfigInvalid("uploads directory is required")
	}
	if config.Storage.ArtifactsDir == "" {
		return errors.ConfigInvalid("artifacts directory is required")
	}
	if config.Storage.MaxUploadMB <= 0 {
		return errors.ConfigInvalid("max upload size must be positive")
	}
	if config.Analysis.Slots <= 0 {
		return errors.ConfigInvalid("analysis slots must be positive")
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
