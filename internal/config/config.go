// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// TripTimeout is the shared deadline for one trip generation request,
	// covering every proposal. Defaults to 30s. Set TRIP_TIMEOUT.
	TripTimeout time.Duration

	// TripProposals is how many proposals each generation produces.
	// Defaults to 2. Set TRIP_PROPOSALS.
	TripProposals int

	// TripMaxAttempts caps how many times the composition chain restarts
	// per proposal before giving up. Defaults to 40. Set TRIP_MAX_ATTEMPTS.
	TripMaxAttempts int

	// TripRetryBackoff is the pause between composition attempts.
	// Defaults to 25ms. Set TRIP_RETRY_BACKOFF.
	TripRetryBackoff time.Duration

	// SearchRadiusKm bounds how far from a destination's center rooms and
	// activities are searched. Defaults to 25. Set SEARCH_RADIUS_KM.
	SearchRadiusKm float64
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or the
// first tuning variable that does not parse.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	var err error
	if cfg.TripTimeout, err = getDuration("TRIP_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.TripProposals, err = getInt("TRIP_PROPOSALS", 2); err != nil {
		return Config{}, err
	}
	if cfg.TripMaxAttempts, err = getInt("TRIP_MAX_ATTEMPTS", 40); err != nil {
		return Config{}, err
	}
	if cfg.TripRetryBackoff, err = getDuration("TRIP_RETRY_BACKOFF", 25*time.Millisecond); err != nil {
		return Config{}, err
	}
	if cfg.SearchRadiusKm, err = getFloat("SEARCH_RADIUS_KM", 25); err != nil {
		return Config{}, err
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

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid duration %q", key, v)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid integer %q", key, v)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: invalid number %q", key, v)
	}
	return f, nil
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
