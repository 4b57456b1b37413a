package config

import (
	"os"
	"strconv"
	"time"

	"mpf/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Sheet   SheetConfig
	Paths   PathConfig
	Scoring ScoringConfig
}

// SheetConfig holds remote spreadsheet settings
type SheetConfig struct {
	SpreadsheetID string
	Range         string
	FetchTimeout  time.Duration
}

// PathConfig holds file system paths
type PathConfig struct {
	TokenFile string
	BackupCSV string
	DBFile    string
	ExportDir string
}

// ScoringConfig holds accuracy scoring settings
type ScoringConfig struct {
	SizeTolerance float64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Sheet: SheetConfig{
			SpreadsheetID: os.Getenv("SPREADSHEET_ID"),
			Range:         getEnvOrDefault("WORKSHEET_RANGE", "IMPFDcurrent"),
			FetchTimeout:  getEnvDurationOrDefault("FETCH_TIMEOUT", 30*time.Second),
		},
		Paths: PathConfig{
			TokenFile: getEnvOrDefault("TOKEN_FILE", ".cred/token.json"),
			BackupCSV: getEnvOrDefault("BACKUP_CSV", "data/raw/data.csv"),
			DBFile:    getEnvOrDefault("DB_FILE", "data/processed/data.db"),
			ExportDir: getEnvOrDefault("EXPORT_DIR", "."),
		},
		Scoring: ScoringConfig{
			SizeTolerance: getEnvFloatOrDefault("SIZE_TOLERANCE", 0.5),
		},
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func validateConfig(config *Config) error {
	if config.Sheet.Range == "" {
		return errors.ConfigInvalid("worksheet range is required")
	}
	if config.Paths.BackupCSV == "" {
		return errors.ConfigInvalid("backup CSV path is required")
	}
	if config.Scoring.SizeTolerance < 0 {
		return errors.ConfigInvalid("size tolerance must not be negative")
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

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
