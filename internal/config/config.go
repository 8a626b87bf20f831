package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration
type Config struct {
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	HTTPPort      string
	JWTSecret     string
	HostUsername  string
	HostPassword  string
	SessionTTL    time.Duration
	// QuestionCatalogPath and TemplateCatalogPath point at optional
	// YAML catalogs overriding the built-in flows.
	QuestionCatalogPath string
	TemplateCatalogPath string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		MongoURI:            getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:       getEnv("MONGO_DATABASE", "checkflow"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:            getEnv("HTTP_PORT", "8080"),
		JWTSecret:           getEnv("JWT_SECRET", "super-secret-key-change-in-production"),
		HostUsername:        getEnv("HOST_USERNAME", "admin"),
		HostPassword:        getEnv("HOST_PASSWORD", "password123"),
		SessionTTL:          getDuration("SESSION_TTL_MINUTES", 30),
		QuestionCatalogPath: getEnv("QUESTION_CATALOG", ""),
		TemplateCatalogPath: getEnv("TEMPLATE_CATALOG", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getDuration(key string, defaultMinutes int) time.Duration {
	if val := os.Getenv(key); val != "" {
		if minutes, err := strconv.Atoi(val); err == nil && minutes > 0 {
			return time.Duration(minutes) * time.Minute
		}
	}
	return time.Duration(defaultMinutes) * time.Minute
}
