package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "SKATERGRADE_"

// DataConfig locates the season table
type DataConfig struct {
	Path              string
	MinIceTimeMinutes float64 // 0 disables the ice time filter
	Delimiter         string  // empty detects the separator from the header
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	AllowedOrigins  []string
}

// RedisConfig holds Redis connection configuration for the export sink
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// ExportConfig holds export destinations
type ExportConfig struct {
	OutDir     string
	SQLitePath string
	Pretty     bool
}

// Config holds all application configuration
type Config struct {
	LogLevel string
	Data     DataConfig
	Server   ServerConfig
	Redis    RedisConfig
	Export   ExportConfig
}

// LoadDotEnv reads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error
// unless required is set.
func LoadDotEnv(path string, required bool) error {
	if err := godotenv.Load(path); err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	minIce, err := getFloat("MIN_ICETIME", 500)
	if err != nil {
		return nil, err
	}
	redisDB, err := getInt("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	pretty, err := getBool("EXPORT_PRETTY", true)
	if err != nil {
		return nil, err
	}

	durations := map[string]time.Duration{
		"REQUEST_TIMEOUT":  15 * time.Second,
		"SHUTDOWN_TIMEOUT": 10 * time.Second,
		"REDIS_TTL":        0,
	}
	for key, def := range durations {
		d, err := getDuration(key, def)
		if err != nil {
			return nil, err
		}
		durations[key] = d
	}

	return &Config{
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Data: DataConfig{
			Path:              getEnv("DATA", "skaters.csv"),
			MinIceTimeMinutes: minIce,
			Delimiter:         getEnv("DELIMITER", ""),
		},
		Server: ServerConfig{
			Addr:            getEnv("SERVER_ADDR", ":8080"),
			RequestTimeout:  durations["REQUEST_TIMEOUT"],
			ShutdownTimeout: durations["SHUTDOWN_TIMEOUT"],
			AllowedOrigins:  getList("ALLOWED_ORIGINS", []string{"*"}),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
			TTL:      durations["REDIS_TTL"],
		},
		Export: ExportConfig{
			OutDir:     getEnv("EXPORT_DIR", "static_data"),
			SQLitePath: getEnv("SQLITE_PATH", ""),
			Pretty:     pretty,
		},
	}, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(EnvPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) (float64, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
	}
	return v, nil
}

func getInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
	}
	return v, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
	}
	return v, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
	}
	return v, nil
}

// getList splits a comma-separated variable, dropping empty items
func getList(key string, defaultValue []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
