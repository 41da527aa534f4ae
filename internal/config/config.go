package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration values.
type Config struct {
	HTTPPort        string
	DatabaseDSN     string
	Environment     string
	LogLevel        string
	StoreName       string
	CatalogCSV      string
	AllowedOrigins  string
	RedisAddr       string
	RateLimit       int
	Secret          string
	AdminUser       string
	AdminHash       string
	ShutdownTimeout time.Duration
}

const defaultDSN = "file:medstore.db?_pragma=foreign_keys(1)&_time_format=sqlite"

// Load reads configuration from environment variables with reasonable defaults.
func Load() Config {
	port := getEnv("HTTP_PORT", "8080")
	// Validate that port is numeric.
	if _, err := strconv.Atoi(port); err != nil {
		log.Printf("invalid HTTP_PORT value %q, defaulting to 8080", port)
		port = "8080"
	}

	return Config{
		HTTPPort:        port,
		DatabaseDSN:     getEnv("DATABASE_DSN", defaultDSN),
		Environment:     getEnv("APP_ENV", "development"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		StoreName:       getEnv("STORE_NAME", "Gopal Medical Store"),
		CatalogCSV:      os.Getenv("CATALOG_CSV"),
		AllowedOrigins:  getEnv("ALLOWED_ORIGINS", "*"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RateLimit:       getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
		Secret:          getEnv("SECRET", "dev_secret"),
		AdminUser:       getEnv("ADMIN_USER", "admin"),
		AdminHash:       os.Getenv("ADMIN_PASSWORD_HASH"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// AuthEnabled reports whether an admin password hash was configured.
func (c Config) AuthEnabled() bool {
	return c.AdminHash != ""
}

// Origins splits AllowedOrigins on commas.
func (c Config) Origins() []string {
	var origins []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil && value > 0 {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}
