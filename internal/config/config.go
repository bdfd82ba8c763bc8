package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Addr string

	// Database
	DBPath string

	// Auth
	JWTSecret  string
	SessionTTL time.Duration

	// Logging
	LogLevel string
}

func Load() (*Config, error) {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()

	addr := ":" + getEnv("PORT", "8080")

	ttlHours, err := strconv.Atoi(getEnv("SESSION_TTL_HOURS", "24"))
	if err != nil || ttlHours <= 0 {
		ttlHours = 24
	}

	config := &Config{
		Addr:       addr,
		DBPath:     getEnv("DB_PATH", "./data/campusboard.db"),
		JWTSecret:  getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		SessionTTL: time.Duration(ttlHours) * time.Hour,
		LogLevel:   getEnv("LOG_LEVEL", "info"),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
