package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string

	// MongoURI overrides the URI otherwise assembled from DBUser, DBPass and DBHost.
	MongoURI    string
	DBUser      string
	DBPass      string
	DBHost      string
	DBName      string
	DBOpTimeout time.Duration

	// RedisURL enables the list cache. Empty disables it.
	RedisURL string
	CacheTTL time.Duration

	// AllowedOrigins controls HTTP CORS.
	// Empty slice means all origins are permitted.
	AllowedOrigins []string

	// PaymentSecretKey is read for parity with the deployed environment.
	// No route uses it.
	PaymentSecretKey string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // .env is optional

	return &Config{
		ServerPort:       getEnv("PORT", "5001"),
		GinMode:          getEnv("GIN_MODE", "debug"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "pretty"),
		MongoURI:         getEnv("MONGODB_URI", ""),
		DBUser:           getEnv("DB_USER", ""),
		DBPass:           getEnv("DB_PASS", ""),
		DBHost:           getEnv("DB_HOST", "localhost:27017"),
		DBName:           getEnv("DB_NAME", "shapeShedDB"),
		DBOpTimeout:      time.Duration(getEnvInt("DB_OP_TIMEOUT_SECONDS", 10)) * time.Second,
		RedisURL:         getEnv("REDIS_URL", ""),
		CacheTTL:         time.Duration(getEnvInt("CACHE_TTL_SECONDS", 30)) * time.Second,
		AllowedOrigins:   parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
		PaymentSecretKey: getEnv("PAYMENT_SECRET_KEY", ""),
	}
}

// DatabaseURI returns the MongoDB connection string. An explicit MONGODB_URI
// wins; otherwise credentials and host are combined into an Atlas SRV URI.
// A host without credentials is treated as a plain local deployment.
func (c *Config) DatabaseURI() string {
	if c.MongoURI != "" {
		return c.MongoURI
	}
	if c.DBUser == "" {
		return fmt.Sprintf("mongodb://%s", c.DBHost)
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority",
		url.QueryEscape(c.DBUser), url.QueryEscape(c.DBPass), c.DBHost)
}

// MigrationURI returns DatabaseURI with the database name set as the path,
// which the migrate MongoDB driver requires.
func (c *Config) MigrationURI() (string, error) {
	u, err := url.Parse(c.DatabaseURI())
	if err != nil {
		return "", fmt.Errorf("parse database URI: %w", err)
	}
	u.Path = "/" + c.DBName
	return u.String(), nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return fallback
	}
	return n
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
