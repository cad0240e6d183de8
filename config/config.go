// Package config loads the dashboard settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Source modes.
const (
	SourceSynthetic = "synthetic"
	SourceLive      = "live"
	// SourceLiveFallback reads live prices and simulates them when they are not available.
	SourceLiveFallback = "live+synthetic"
)

// Config holds the settings of the dash commands.
type Config struct {
	// HTTP server settings
	Addr     string
	LogLevel string
	LogFile  string

	// Chart settings
	Currency string
	Refresh  time.Duration
	Source   string

	// Live source settings
	EODHDKey  string
	Portfolio string
	Baseline  string

	// Explain command
	GeminiKey string
}

// Load reads configuration from environment variables and optional .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("failed to load .env file", "error", err)
	}

	refresh, err := getEnvDurationOrDefault("DASH_REFRESH", 5*time.Minute)
	if err != nil {
		return nil, err
	}
	cfg := &Config{
		Addr:      getEnvOrDefault("DASH_ADDR", ":8080"),
		LogLevel:  getEnvOrDefault("DASH_LOG_LEVEL", "info"),
		LogFile:   getEnvOrDefault("DASH_LOG_FILE", "logs/dash.log"),
		Currency:  strings.ToUpper(getEnvOrDefault("DASH_CURRENCY", "USD")),
		Refresh:   refresh,
		Source:    strings.ToLower(getEnvOrDefault("DASH_SOURCE", SourceSynthetic)),
		EODHDKey:  os.Getenv("EODHD_API_KEY"),
		Portfolio: os.Getenv("DASH_PORTFOLIO"),
		Baseline:  os.Getenv("DASH_BASELINE"),
		GeminiKey: os.Getenv("GEMINI_API_KEY"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that have no sensible fallback.
func (c *Config) Validate() error {
	switch c.Source {
	case SourceSynthetic, SourceLive, SourceLiveFallback:
	default:
		return fmt.Errorf("invalid DASH_SOURCE %q, want %q, %q or %q", c.Source, SourceSynthetic, SourceLive, SourceLiveFallback)
	}
	if c.Source != SourceSynthetic && c.EODHDKey == "" {
		return fmt.Errorf("DASH_SOURCE=%s requires EODHD_API_KEY", c.Source)
	}
	if c.Refresh <= 0 {
		return fmt.Errorf("invalid DASH_REFRESH %v, it must be positive", c.Refresh)
	}
	return nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvDurationOrDefault reads a duration ("90s", "5m") or a number of
// seconds. A set but invalid value is an error.
func getEnvDurationOrDefault(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d, nil
	}
	// plain seconds
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q, want a duration like 30s or a number of seconds", key, val)
	}
	return time.Duration(i) * time.Second, nil
}
