// Package config loads the console's settings from the environment.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	CORS      CORSConfig
	Admin     AdminConfig
	PriceFeed PriceFeedConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
	// EncryptionKey is an optional base64 fernet key. When set, stored values
	// are encrypted at rest.
	EncryptionKey string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// AdminConfig holds the admin gate configuration.
type AdminConfig struct {
	Password string
}

// PriceFeedConfig holds the external price source configuration.
type PriceFeedConfig struct {
	URL      string
	Coin     string
	Currency string
	Interval time.Duration
}

const (
	defaultPriceFeedURL      = "https://api.coingecko.com/api/v3/simple/price"
	defaultPriceFeedInterval = 30 * time.Second
)

var defaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost",
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	interval, err := parseInterval(getEnv("PRICE_FEED_INTERVAL", ""))
	if err != nil {
		return nil, err
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path:          getEnv("DB_PATH", "./data/admin_console.db"),
			EncryptionKey: getEnv("STORE_ENCRYPTION_KEY", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseOrigins(getEnv("CORS_ALLOWED_ORIGINS", "")),
		},
		Admin: AdminConfig{
			Password: getEnv("ADMIN_PASSWORD", "admin123"),
		},
		PriceFeed: PriceFeedConfig{
			URL:      getEnv("PRICE_FEED_URL", defaultPriceFeedURL),
			Coin:     getEnv("PRICE_FEED_COIN", "bitcoin"),
			Currency: getEnv("PRICE_FEED_CURRENCY", "usd"),
			Interval: interval,
		},
	}

	if config.Database.EncryptionKey != "" {
		if _, err := fernet.DecodeKey(config.Database.EncryptionKey); err != nil {
			return nil, fmt.Errorf("invalid STORE_ENCRYPTION_KEY: %w", err)
		}
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// parseInterval parses the price polling interval. Empty selects the default.
func parseInterval(raw string) (time.Duration, error) {
	if raw == "" {
		return defaultPriceFeedInterval, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid PRICE_FEED_INTERVAL %q: %w", raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid PRICE_FEED_INTERVAL %q: must be positive", raw)
	}
	return d, nil
}

// parseOrigins splits a comma-separated origin list. Empty selects the defaults.
func parseOrigins(raw string) []string {
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return append([]string(nil), defaultAllowedOrigins...)
	}
	return origins
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
