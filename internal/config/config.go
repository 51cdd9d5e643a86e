package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// ImageBasePath is the URL prefix snapshots are resolved against.
	ImageBasePath = "/images/"
	// VideoBasePath is the URL prefix video files are resolved against.
	VideoBasePath = "/rec/"

	ColorStrategyGrouped = "grouped"
	ColorStrategyRandom  = "random"
)

type Config struct {
	Port            int
	MediaDirectory  string
	QueryEndpoint   string
	QueryTimeout    time.Duration
	RefreshEnabled  bool
	RefreshInterval time.Duration // Co ile ponawiać ostatnie zapytanie
	ColorStrategy   string
	ShowQueryErrors bool
	DisplayTimeZone string

	DatabasePath         string
	JournalFlushInterval time.Duration
	JournalBufferLimit   int

	LogDirectory string
	LogLevel     string
}

// Load reads an optional .env file and then builds the Config from the environment.
func Load() *Config {
	envFile := getEnv("ENV_FILE", ".env")
	// Brak pliku .env nie jest błędem
	_ = godotenv.Load(envFile)

	return &Config{
		Port:                 getEnvAsInt("PORT", 8080),
		MediaDirectory:       getEnv("MEDIA_DIR", filepath.Join(".", "media")),
		QueryEndpoint:        getEnv("QUERY_ENDPOINT", "http://localhost:8081/api"),
		QueryTimeout:         getEnvAsDuration("QUERY_TIMEOUT", 10*time.Second),
		RefreshEnabled:       getEnvAsBool("REFRESH_ENABLED", true),
		RefreshInterval:      getEnvAsDuration("REFRESH_INTERVAL", 30*time.Second),
		ColorStrategy:        getEnv("COLOR_STRATEGY", ColorStrategyGrouped),
		ShowQueryErrors:      getEnvAsBool("SHOW_QUERY_ERRORS", false),
		DisplayTimeZone:      getEnv("DISPLAY_TZ", "Local"),
		DatabasePath:         getEnv("DB_PATH", filepath.Join(".", "data", "gallery.db")),
		JournalFlushInterval: getEnvAsDuration("JOURNAL_FLUSH_INTERVAL", 10*time.Second),
		JournalBufferLimit:   getEnvAsInt("JOURNAL_BUFFER_LIMIT", 100),
		LogDirectory:         getEnv("LOG_DIR", filepath.Join(".", "logs")),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
	}
}

// Validate checks settings that would otherwise fail at runtime.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if strings.TrimSpace(c.QueryEndpoint) == "" {
		return errors.New("query endpoint is required")
	}
	if c.ColorStrategy != ColorStrategyGrouped && c.ColorStrategy != ColorStrategyRandom {
		return fmt.Errorf("unknown color strategy %q (expected: %s|%s)", c.ColorStrategy, ColorStrategyGrouped, ColorStrategyRandom)
	}
	if c.RefreshEnabled && c.RefreshInterval <= 0 {
		return errors.New("refresh interval must be positive")
	}
	if c.QueryTimeout <= 0 {
		return errors.New("query timeout must be positive")
	}
	if c.JournalFlushInterval <= 0 {
		return errors.New("journal flush interval must be positive")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves DisplayTimeZone; "Local" and "" mean the host zone.
func (c *Config) Location() (*time.Location, error) {
	if c.DisplayTimeZone == "" || c.DisplayTimeZone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.DisplayTimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid display time zone %q: %w", c.DisplayTimeZone, err)
	}
	return loc, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("15s") or a bare number of seconds.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}
