// Package config loads application configuration from the environment.
// A local .env file is honored when present; real environment variables win.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the server process.
type Config struct {
	Port          string // HTTP listen port
	DataPath      string // bbolt data file location
	Env           string // "development" or "production"
	LogLevel      string // zerolog level name
	SessionCookie string // session cookie name
}

// Load reads configuration, falling back to defaults suitable for local
// development. Missing .env is not an error (production uses real env vars).
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "8080"),
		DataPath:      getEnv("DATA_PATH", "onboardbox.db"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		SessionCookie: getEnv("SESSION_COOKIE", "onboardbox_session"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
