package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/subosito/gotenv"
)

const defaultBaseURL = "https://fullstackclub-finance-dashboard-api.onrender.com/api"

type Config struct {
	// Remote API
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Token persistence
	TokenFile string

	// Logging
	LogLevel string
}

// Load reads configuration from the environment, loading a .env file
// first when one exists.
func Load() *Config {
	_ = gotenv.Load()

	return &Config{
		APIBaseURL:  getEnv("API_BASE_URL", defaultBaseURL),
		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 30*time.Second),
		TokenFile:   getEnv("TOKEN_FILE", defaultTokenFile()),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
}

func (c *Config) Validate() error {
	var errors []string

	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, fmt.Sprintf("invalid API base URL '%s'", c.APIBaseURL))
	}

	if c.HTTPTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("invalid HTTP timeout '%s': must be positive", c.HTTPTimeout))
	}

	if c.TokenFile == "" {
		errors = append(errors, "token file path cannot be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errors, "; "))
	}
	return nil
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./tokens.json"
	}
	return filepath.Join(home, ".fintrack", "tokens.json")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
