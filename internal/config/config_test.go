package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	cfg := Load()

	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if !cfg.RefreshEnabled {
		t.Error("refresh should be enabled by default")
	}
	if cfg.RefreshInterval != 30*time.Second {
		t.Errorf("expected 30s refresh interval, got %v", cfg.RefreshInterval)
	}
	if cfg.ColorStrategy != ColorStrategyGrouped {
		t.Errorf("expected grouped strategy, got %s", cfg.ColorStrategy)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("PORT", "9090")
	t.Setenv("REFRESH_INTERVAL", "15")
	t.Setenv("QUERY_TIMEOUT", "2s")
	t.Setenv("REFRESH_ENABLED", "false")
	t.Setenv("COLOR_STRATEGY", "random")

	cfg := Load()

	if cfg.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Port)
	}
	if cfg.RefreshInterval != 15*time.Second {
		t.Errorf("expected 15s, got %v", cfg.RefreshInterval)
	}
	if cfg.QueryTimeout != 2*time.Second {
		t.Errorf("expected 2s, got %v", cfg.QueryTimeout)
	}
	if cfg.RefreshEnabled {
		t.Error("refresh should be disabled")
	}
	if cfg.ColorStrategy != ColorStrategyRandom {
		t.Errorf("expected random strategy, got %s", cfg.ColorStrategy)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	envPath := filepath.Join(t.TempDir(), "gallery.env")
	if err := os.WriteFile(envPath, []byte("MEDIA_DIR=/srv/media\nSHOW_QUERY_ERRORS=true\n"), 0644); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}
	t.Setenv("ENV_FILE", envPath)
	// godotenv does not override variables that are already set
	t.Setenv("MEDIA_DIR", "")
	os.Unsetenv("MEDIA_DIR")
	t.Cleanup(func() {
		os.Unsetenv("MEDIA_DIR")
		os.Unsetenv("SHOW_QUERY_ERRORS")
	})

	cfg := Load()

	if cfg.MediaDirectory != "/srv/media" {
		t.Errorf("expected media dir from .env, got %s", cfg.MediaDirectory)
	}
	if !cfg.ShowQueryErrors {
		t.Error("expected SHOW_QUERY_ERRORS from .env")
	}
}

func TestValidate_Invalid(t *testing.T) {
	base := func() *Config {
		return &Config{
			Port:                 8080,
			QueryEndpoint:        "http://localhost/api",
			QueryTimeout:         time.Second,
			RefreshEnabled:       true,
			RefreshInterval:      time.Second,
			ColorStrategy:        ColorStrategyGrouped,
			JournalFlushInterval: time.Second,
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad port", func(c *Config) { c.Port = 0 }},
		{"empty endpoint", func(c *Config) { c.QueryEndpoint = " " }},
		{"unknown strategy", func(c *Config) { c.ColorStrategy = "rainbow" }},
		{"zero refresh", func(c *Config) { c.RefreshInterval = 0 }},
		{"zero timeout", func(c *Config) { c.QueryTimeout = 0 }},
		{"bad zone", func(c *Config) { c.DisplayTimeZone = "Mars/Olympus" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	cfg := base()
	cfg.RefreshEnabled = false
	cfg.RefreshInterval = 0
	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled refresh should not need an interval: %v", err)
	}
}
