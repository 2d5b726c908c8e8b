// Package config loads and validates application configuration from environment variables.
package config

import (
	"os"
	"strings"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Optional: when unset,
	// itineraries persist to a JSON file under DataDir instead.
	DatabaseURL string

	// DataDir is the directory for file-backed persistence. Defaults to
	// "data". Ignored when DatabaseURL is set.
	DataDir string

	// GeminiAPIKey authenticates the travel-assistant upstream. Optional:
	// when unset, the assistant answers with a local fallback message.
	GeminiAPIKey string

	// WeatherBaseURL overrides the Open-Meteo endpoint, mainly for tests.
	// Defaults to the public API.
	WeatherBaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string
}

// Load reads configuration from environment variables and returns a Config.
// Every variable has a workable default or is optional, so Load never fails
// on a bare environment.
func Load() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DataDir:        getEnv("DATA_DIR", "data"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		WeatherBaseURL: getEnv("WEATHER_BASE_URL", "https://api.open-meteo.com"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
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
