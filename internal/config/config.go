package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fadedpez/termitaire/internal/logging"
	"github.com/joho/godotenv"
)

// Storage backends
const (
	BackendMemory        = "memory"
	BackendFile          = "file"
	BackendSQLite        = "sqlite"
	BackendElasticsearch = "elasticsearch"
)

// Config holds all configuration for the application
type Config struct {
	// Environment
	Environment string // "development" or "production"
	LogLevel    logging.Level

	// Storage
	DataDir        string
	StorageBackend string
	SQLitePath     string
	SaveFile       string
	MaxGameAge     time.Duration

	// Elasticsearch configuration
	ESURL         string
	ESUsername    string
	ESPassword    string
	ESIndexPrefix string
}

// Load reads the configuration from environment variables, after an
// optional .env file in the working directory
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Only return error if file exists but couldn't be loaded
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	// Get working directory for resource paths
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := FromEnv(wd)
	if err != nil {
		return nil, err
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// FromEnv builds and validates a Config from the process environment,
// resolving default paths against wd
func FromEnv(wd string) (*Config, error) {
	dataDir := getEnvWithDefault("DATA_DIR", filepath.Join(wd, "data"))

	level, err := logging.ParseLevel(getEnvWithDefault("LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	maxAge, err := time.ParseDuration(getEnvWithDefault("MAX_GAME_AGE", "168h"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_GAME_AGE: %w", err)
	}

	cfg := &Config{
		Environment:    getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:       level,
		DataDir:        dataDir,
		StorageBackend: getEnvWithDefault("STORAGE_BACKEND", BackendSQLite),
		SQLitePath:     getEnvWithDefault("SQLITE_PATH", filepath.Join(dataDir, "termitaire.db")),
		SaveFile:       getEnvWithDefault("SAVE_FILE", filepath.Join(dataDir, "games.json")),
		MaxGameAge:     maxAge,
		ESURL:          os.Getenv("ES_URL"),
		ESUsername:     os.Getenv("ES_USERNAME"),
		ESPassword:     os.Getenv("ES_PASSWORD"),
		ESIndexPrefix:  getEnvWithDefault("ES_INDEX_PREFIX", "termitaire"),
	}

	// Validate required fields
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks if all required configuration is present
func (c *Config) validate() error {
	switch c.StorageBackend {
	case BackendMemory, BackendFile, BackendSQLite:
	case BackendElasticsearch:
		if c.ESURL == "" {
			return fmt.Errorf("ES_URL is required for the %s backend", BackendElasticsearch)
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	if c.MaxGameAge < 0 {
		return fmt.Errorf("MAX_GAME_AGE must not be negative")
	}
	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// getEnvWithDefault returns environment variable value or default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
