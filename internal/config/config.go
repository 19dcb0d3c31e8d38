// Package config provides runtime configuration values for the service.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the service's runtime knobs.
type Config struct {
	HTTPAddr           string
	UserServiceURL     string
	UserServiceTimeout time.Duration
}

// Load collects configuration from the environment with defaults, overlaying
// a .env file when one is present.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		HTTPAddr:           getenv("HTTP_ADDR", ":8081"),
		UserServiceURL:     getenv("USER_SERVICE_URL", "http://localhost:8080"),
		UserServiceTimeout: durenv("USER_SERVICE_TIMEOUT", 5*time.Second),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func durenv(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
