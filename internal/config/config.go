// Package config loads and validates application configuration from
// environment variables, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Storage backends selectable with STORAGE.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// Storage selects where the catalog and saved plans live:
	// "postgres" (default) or "memory".
	Storage string

	// DatabaseURL is the Postgres connection string. Required for postgres storage.
	DatabaseURL string

	// CatalogFile is an optional YAML catalog for memory storage.
	// When empty the embedded seed catalog is used.
	CatalogFile string

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// RateLimitRPS and RateLimitBurst shape the per-client token bucket on
	// plan generation routes. Default to 2 requests/s with bursts of 5.
	RateLimitRPS   float64
	RateLimitBurst int

	// MigrateOnStart applies pending migrations before serving. Postgres only.
	MigrateOnStart bool
}

// LoadDotEnv loads variables from the given .env files (default ".env")
// without overriding variables that are already set. Missing files are
// not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config.LoadDotEnv: %s: %w", f, err)
		}
	}
	return nil
}

// Load reads configuration from environment variables and returns a Config.
// Every problem is reported at once: missing required variables first, then
// malformed values.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		Storage:     strings.ToLower(getEnv("STORAGE", StoragePostgres)),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		CatalogFile: os.Getenv("CATALOG_FILE"),
	}

	var missing, problems []string

	switch cfg.Storage {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	case StorageMemory:
	default:
		problems = append(problems, fmt.Sprintf("STORAGE must be %q or %q, got %q", StoragePostgres, StorageMemory, cfg.Storage))
	}

	var err error
	if cfg.MaxBodyBytes, err = parseEnv("MAX_BODY_BYTES", int64(1<<20), parsePositiveInt64); err != nil {
		problems = append(problems, err.Error())
	}
	if cfg.RateLimitRPS, err = parseEnv("RATE_LIMIT_RPS", 2.0, parsePositiveFloat); err != nil {
		problems = append(problems, err.Error())
	}
	if cfg.RateLimitBurst, err = parseEnv("RATE_LIMIT_BURST", 5, parsePositiveInt); err != nil {
		problems = append(problems, err.Error())
	}
	if cfg.MigrateOnStart, err = parseEnv("MIGRATE_ON_START", false, strconv.ParseBool); err != nil {
		problems = append(problems, err.Error())
	}

	if len(missing) > 0 {
		problems = append([]string{"required environment variables not set: " + strings.Join(missing, ", ")}, problems...)
	}
	if len(problems) > 0 {
		return Config{}, errors.New(strings.Join(problems, "; "))
	}
	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// parseEnv parses the variable named by key, or returns fallback if it is unset.
func parseEnv[T any](key string, fallback T, parse func(string) (T, error)) (T, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := parse(raw)
	if err != nil {
		return fallback, fmt.Errorf("%s: invalid value %q", key, raw)
	}
	return v, nil
}

func parsePositiveInt64(s string) (int64, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err == nil && n <= 0 {
		err = errors.New("must be positive")
	}
	return n, err
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err == nil && n <= 0 {
		err = errors.New("must be positive")
	}
	return n, err
}

func parsePositiveFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err == nil && f <= 0 {
		err = errors.New("must be positive")
	}
	return f, err
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
