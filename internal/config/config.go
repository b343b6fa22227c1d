package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port               string
	MongoDBURI         string
	MongoDBPassword    string
	MongoDBDatabase    string
	MongoDBRetries     int
	Environment        string
	LogLevel           string
	CORSAllowedOrigins []string
	MaxUploadBytes     int64
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:               getEnvWithDefault("PORT", "8080"),
		MongoDBURI:         os.Getenv("MONGODB_URI"),
		MongoDBPassword:    os.Getenv("MONGODB_PASSWORD"),
		MongoDBDatabase:    getEnvWithDefault("MONGODB_DATABASE", "event_management_db"),
		Environment:        getEnvWithDefault("ENVIRONMENT", "development"),
		LogLevel:           getEnvWithDefault("LOG_LEVEL", "info"),
		CORSAllowedOrigins: splitList(getEnvWithDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
	}

	// Validate required fields
	if cfg.MongoDBURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}

	var err error
	if cfg.MaxUploadBytes, err = getInt64(os.Getenv("MAX_UPLOAD_BYTES"), 32<<20); err != nil {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES: %w", err)
	}
	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}

	retries, err := getInt64(os.Getenv("MONGODB_CONNECT_RETRIES"), 5)
	if err != nil {
		return nil, fmt.Errorf("MONGODB_CONNECT_RETRIES: %w", err)
	}
	cfg.MongoDBRetries = int(retries)

	return cfg, nil
}

// MongoURI returns the connection string with a <password> placeholder filled in.
func (c *Config) MongoURI() string {
	if c.MongoDBPassword == "" {
		return c.MongoDBURI
	}
	return strings.Replace(c.MongoDBURI, "<password>", c.MongoDBPassword, 1)
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt64(raw string, defaultValue int64) (int64, error) {
	if strings.TrimSpace(raw) == "" {
		return defaultValue, nil
	}
	return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// SlogLevel maps LOG_LEVEL to a slog level; unknown values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
