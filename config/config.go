// config/config.go - Application configuration
package config

import (
	"log"
	"os"
	"strconv"
)

// Config is the explicit runtime configuration for the server. It is built
// once at startup and handed to the components that need it; nothing else
// reads the environment directly.
type Config struct {
	Port        string
	AppEnv      string
	CORSOrigins string

	JWTSecret     string
	TokenTTLHours int

	// Gamification tunables
	MaxHearts       int
	HeartRegenHours float64
}

// Load reads configuration from the environment and fails fast on values
// the server cannot run without.
func Load() *Config {
	cfg := &Config{
		Port:            getEnv("PORT", "8000"),
		AppEnv:          getEnv("APP_ENV", "development"),
		CORSOrigins:     getEnv("CORS_ORIGINS", "http://localhost:3000"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		TokenTTLHours:   getEnvInt("TOKEN_TTL_HOURS", 168), // 7 days
		MaxHearts:       getEnvInt("MAX_HEARTS", 5),
		HeartRegenHours: getEnvFloat("HEART_REGEN_HOURS", 5),
	}

	if cfg.JWTSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}

	if cfg.AppEnv == "production" && cfg.CORSOrigins == "http://localhost:3000" {
		log.Println("WARNING: CORS_ORIGINS not properly configured for production")
	}

	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
