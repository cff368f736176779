// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir            string // Base directory for the portfolio, history and log files
	PortfolioPath      string // JSON file with the ordered purchase records
	HistoryPath        string // JSON file with the portfolio value snapshots
	OpportunityLogPath string // Append-only log of detected buy opportunities
	PriceCachePath     string // SQLite cache of fetched daily closes
	MonitorInterval    int    // Seconds between opportunity evaluation cycles
	OversoldThreshold  float64
	LogLevel           string
	Port               int
	DevMode            bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	dataDir := getEnv("DATA_DIR", "./data")

	// Always resolve to absolute path
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	// Ensure directory exists
	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:            absDataDir,
		PortfolioPath:      filepath.Join(absDataDir, "cartera.json"),
		HistoryPath:        filepath.Join(absDataDir, "historial.json"),
		OpportunityLogPath: filepath.Join(absDataDir, "oportunidades.log"),
		PriceCachePath:     filepath.Join(absDataDir, "price_cache.db"),
		MonitorInterval:    getEnvAsInt("MONITOR_INTERVAL_SECONDS", 60),
		OversoldThreshold:  getEnvAsFloat("OVERSOLD_THRESHOLD", 30),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		Port:               getEnvAsInt("GO_PORT", 8001),
		DevMode:            getEnvAsBool("DEV_MODE", false),
	}

	// Validate required fields
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.MonitorInterval <= 0 {
		return fmt.Errorf("MONITOR_INTERVAL_SECONDS must be greater than 0")
	}

	if c.OversoldThreshold <= 0 || c.OversoldThreshold >= 100 {
		return fmt.Errorf("OVERSOLD_THRESHOLD must be between 0 and 100")
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
