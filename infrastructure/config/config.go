package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Logging
	LogLevel string

	// Kernel limits
	DefaultTraversalDepth int
	MaxNodes              int
	MaxEdges              int

	// Feature flags
	EnableCORS bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		DefaultTraversalDepth: getEnvInt("DEFAULT_TRAVERSAL_DEPTH", 10),
		MaxNodes:              getEnvInt("MAX_NODES", 0), // 0 keeps the domain default
		MaxEdges:              getEnvInt("MAX_EDGES", 0),

		EnableCORS: getEnvBool("ENABLE_CORS", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.DefaultTraversalDepth < 1 {
		return fmt.Errorf("DEFAULT_TRAVERSAL_DEPTH must be positive, got %d", c.DefaultTraversalDepth)
	}
	if c.MaxNodes < 0 || c.MaxEdges < 0 {
		return fmt.Errorf("MAX_NODES and MAX_EDGES cannot be negative")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
