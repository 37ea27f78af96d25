// Package config provides configuration management functionality.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      int           // HTTP listen port
	LogLevel  string        // debug, info, warn, error
	DevMode   bool          // Pretty logging, relaxed CORS
	RedisAddr string        // Optional; empty selects the in-memory cache
	CacheTTL  time.Duration // TTL for cached full-evaluation reports
}

// Load reads configuration from environment variables. A .env file is
// honored when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	return &Config{
		Port:      getEnvInt("FINCORE_PORT", 8090),
		LogLevel:  getEnv("FINCORE_LOG_LEVEL", "info"),
		DevMode:   getEnvBool("FINCORE_DEV_MODE", false),
		RedisAddr: getEnv("FINCORE_REDIS_ADDR", ""),
		CacheTTL:  time.Duration(getEnvInt("FINCORE_CACHE_TTL_SECONDS", 300)) * time.Second,
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}
