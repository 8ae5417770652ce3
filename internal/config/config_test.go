package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/peekknuf/skatergrade/internal/config"
)

var allKeys = []string{
	"LOG_LEVEL", "DATA", "MIN_ICETIME", "DELIMITER", "SERVER_ADDR", "REQUEST_TIMEOUT", "SHUTDOWN_TIMEOUT",
	"ALLOWED_ORIGINS", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB", "REDIS_TTL",
	"EXPORT_DIR", "SQLITE_PATH", "EXPORT_PRETTY",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(config.EnvPrefix+k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level 'info', got '%s'", cfg.LogLevel)
	}
	if cfg.Data.Path != "skaters.csv" {
		t.Errorf("Expected default data path 'skaters.csv', got '%s'", cfg.Data.Path)
	}
	if cfg.Data.MinIceTimeMinutes != 500 {
		t.Errorf("Expected default min ice time 500, got %v", cfg.Data.MinIceTimeMinutes)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Expected default server addr ':8080', got '%s'", cfg.Server.Addr)
	}
	if cfg.Server.RequestTimeout != 15*time.Second {
		t.Errorf("Expected 15s request timeout, got %v", cfg.Server.RequestTimeout)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "*" {
		t.Errorf("Expected wildcard origin, got %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Redis.Addr != "" || cfg.Redis.TTL != 0 {
		t.Errorf("Expected redis disabled by default, got %+v", cfg.Redis)
	}
	if cfg.Export.OutDir != "static_data" || !cfg.Export.Pretty {
		t.Errorf("Unexpected export defaults: %+v", cfg.Export)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("SKATERGRADE_DATA", "data/2024.csv")
	t.Setenv("SKATERGRADE_MIN_ICETIME", "0")
	t.Setenv("SKATERGRADE_DELIMITER", ";")
	t.Setenv("SKATERGRADE_SERVER_ADDR", ":9090")
	t.Setenv("SKATERGRADE_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("SKATERGRADE_REDIS_ADDR", "redis.example.com:6379")
	t.Setenv("SKATERGRADE_REDIS_DB", "2")
	t.Setenv("SKATERGRADE_REDIS_TTL", "24h")
	t.Setenv("SKATERGRADE_EXPORT_PRETTY", "false")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Data.Path != "data/2024.csv" {
		t.Errorf("Expected data path 'data/2024.csv', got '%s'", cfg.Data.Path)
	}
	// "0" is set explicitly and disables the filter.
	if cfg.Data.MinIceTimeMinutes != 0 {
		t.Errorf("Expected min ice time 0, got %v", cfg.Data.MinIceTimeMinutes)
	}
	if cfg.Data.Delimiter != ";" {
		t.Errorf("Expected delimiter ';', got '%s'", cfg.Data.Delimiter)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("Expected server addr ':9090', got '%s'", cfg.Server.Addr)
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("Unexpected origins: %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Redis.Addr != "redis.example.com:6379" || cfg.Redis.DB != 2 || cfg.Redis.TTL != 24*time.Hour {
		t.Errorf("Unexpected redis config: %+v", cfg.Redis)
	}
	if cfg.Export.Pretty {
		t.Error("Expected pretty export disabled")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := map[string]string{
		"SKATERGRADE_MIN_ICETIME":   "lots",
		"SKATERGRADE_REDIS_DB":      "one",
		"SKATERGRADE_REDIS_TTL":     "forever",
		"SKATERGRADE_EXPORT_PRETTY": "maybe",
	}
	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			if _, err := config.Load(); err == nil {
				t.Errorf("Expected error for %s=%s", key, value)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	// godotenv skips variables that exist, even when empty.
	os.Unsetenv("SKATERGRADE_SERVER_ADDR")
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "SKATERGRADE_SERVER_ADDR=:7070\nSKATERGRADE_LOG_LEVEL=debug\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}
	// Already-set variables win over the file.
	t.Setenv("SKATERGRADE_LOG_LEVEL", "warn")

	if err := config.LoadDotEnv(path, true); err != nil {
		t.Fatalf("LoadDotEnv() failed: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("Expected addr from .env, got '%s'", cfg.Server.Addr)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("Expected environment to override .env, got '%s'", cfg.LogLevel)
	}

	if err := config.LoadDotEnv(filepath.Join(dir, "missing.env"), false); err != nil {
		t.Errorf("Expected missing optional file to be ignored, got %v", err)
	}
	if err := config.LoadDotEnv(filepath.Join(dir, "missing.env"), true); err == nil {
		t.Error("Expected error for missing required file")
	}
}
