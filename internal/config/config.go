package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for optional settings.
const (
	defaultFeedURL   = "https://incidents.fire.ca.gov/umbraco/api/IncidentApi/List"
	defaultSheetName = "incidents"
	defaultBatchSize = 500
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	// Feed boundary.
	FeedURL      string
	FetchTimeout time.Duration

	// Store boundary (Google Sheets).
	SpreadsheetID   string
	SheetName       string
	CredentialsFile string
	BatchSize       int

	// Optional YAML file overriding the built-in county enumeration.
	CountyEnumSource string

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is loaded first if
// present, so local runs need no exported environment.
func Load() (*Config, error) {
	cfg, err := LoadFeedOnly()
	if err != nil {
		return nil, err
	}
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("SPREADSHEET_ID is required")
	}
	if cfg.SheetName == "" {
		return nil, errors.New("SHEET_NAME is required")
	}
	return cfg, nil
}

// LoadFeedOnly reads configuration without requiring the store settings.
// Used by dry-run commands that never open the store.
func LoadFeedOnly() (*Config, error) {
	godotenv.Load() //nolint:errcheck // a missing .env file is not an error

	fetchTimeout, err := parseDurationEnv("FETCH_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	batchSize, err := parseBatchSize()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		FeedURL:      envOrDefault("FEED_URL", defaultFeedURL),
		FetchTimeout: fetchTimeout,

		SpreadsheetID:   os.Getenv("SPREADSHEET_ID"),
		SheetName:       envOrDefault("SHEET_NAME", defaultSheetName),
		CredentialsFile: envOrDefault("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		BatchSize:       batchSize,

		CountyEnumSource: os.Getenv("COUNTY_ENUM_SOURCE"),

		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
	}

	if cfg.FeedURL == "" {
		return nil, errors.New("FEED_URL is required")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := envOrDefault(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parseBatchSize() (int, error) {
	raw := os.Getenv("BATCH_SIZE")
	if raw == "" {
		return defaultBatchSize, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid BATCH_SIZE")
	}
	return n, nil
}
