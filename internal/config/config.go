package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	CatalogSourceLoyverse = "loyverse"
	CatalogSourceMemory   = "memory"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Catalog  CatalogConfig
	Loyverse LoyverseConfig
	LogLevel string
}

type ServerConfig struct {
	Port               string
	Host               string
	ReadTimeout        int
	WriteTimeout       int
	ShutdownTimeout    int
	CORSAllowedOrigins []string
}

type AuthConfig struct {
	APIKeys []string // Keys accepted on order endpoints; empty disables the check
}

type CatalogConfig struct {
	Source          string        // "loyverse" or "memory"
	CategoryTimeout time.Duration // Per-category budget when building the menu
}

type LoyverseConfig struct {
	BaseURL        string
	APIToken       string
	DefaultStoreID string
	Timeout        time.Duration
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			Host:               getEnv("HOST", "0.0.0.0"),
			ReadTimeout:        getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:       getEnvAsInt("WRITE_TIMEOUT", 60),
			ShutdownTimeout:    getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Auth: AuthConfig{
			APIKeys: getEnvAsSlice("API_KEYS", nil),
		},
		Catalog: CatalogConfig{
			Source:          strings.ToLower(getEnv("CATALOG_SOURCE", CatalogSourceLoyverse)),
			CategoryTimeout: getEnvAsDuration("MENU_CATEGORY_TIMEOUT", 10*time.Second),
		},
		Loyverse: LoyverseConfig{
			BaseURL:        getEnv("LOYVERSE_API_URL", "https://api.loyverse.com/v1.0"),
			APIToken:       getEnv("LOYVERSE_API_TOKEN", ""),
			DefaultStoreID: getEnv("LOYVERSE_STORE_ID", ""),
			Timeout:        getEnvAsDuration("LOYVERSE_TIMEOUT", 15*time.Second),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Catalog.Source {
	case CatalogSourceLoyverse:
		if c.Loyverse.BaseURL == "" {
			return fmt.Errorf("LOYVERSE_API_URL is required")
		}
		if c.Loyverse.APIToken == "" {
			return fmt.Errorf("LOYVERSE_API_TOKEN is required when CATALOG_SOURCE=loyverse")
		}
	case CatalogSourceMemory:
	default:
		return fmt.Errorf("invalid CATALOG_SOURCE: %s (must be loyverse or memory)", c.Catalog.Source)
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration accepts Go durations ("2s") or plain seconds ("2")
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(valueStr); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
