// Package config loads splitcosts configuration from environment variables
// and an optional .env file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	// LogLevel is the minimum level written to stderr.
	LogLevel slog.Level

	// ColumnWidth is the report column width.
	ColumnWidth int

	// Strict makes an imbalanced sheet a fatal error.
	Strict bool

	// MetricsFile, when set, receives the run metrics in Prometheus text format.
	MetricsFile string

	// Delimiter separates the fields of the expense sheet.
	Delimiter rune
}

// Load loads configuration from environment variables.
// It loads .env from the current directory if present; an explicit envPath
// must exist.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Ignore error if not found
		_ = godotenv.Load()
	}

	level, err := parseLevel(getEnvOrDefault("LOG_LEVEL", "warn"))
	if err != nil {
		return nil, err
	}

	width, err := parseIntEnv("SPLITCOSTS_COLUMN_WIDTH", 15)
	if err != nil {
		return nil, err
	}
	if width <= 0 {
		return nil, fmt.Errorf("invalid SPLITCOSTS_COLUMN_WIDTH: must be positive, got %d", width)
	}

	strict, err := parseBoolEnv("SPLITCOSTS_STRICT", false)
	if err != nil {
		return nil, err
	}

	delimiter, err := parseDelimiter(getEnvOrDefault("SPLITCOSTS_DELIMITER", ","))
	if err != nil {
		return nil, err
	}

	return &Config{
		LogLevel:    level,
		ColumnWidth: width,
		Strict:      strict,
		MetricsFile: os.Getenv("SPLITCOSTS_METRICS_FILE"),
		Delimiter:   delimiter,
	}, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL: %q", s)
	}
}

// parseDelimiter accepts a single character, or "tab".
func parseDelimiter(s string) (rune, error) {
	if strings.EqualFold(s, "tab") || s == `\t` {
		return '\t', nil
	}

	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) || r == utf8.RuneError {
		return 0, fmt.Errorf("invalid SPLITCOSTS_DELIMITER: must be a single character, got %q", s)
	}
	switch r {
	case '"', '\r', '\n':
		return 0, fmt.Errorf("invalid SPLITCOSTS_DELIMITER: %q cannot separate fields", s)
	}
	return r, nil
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %s", key, value)
	}
	return parsed, nil
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean value for %s: %s", key, value)
	}
	return parsed, nil
}
