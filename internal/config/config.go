// Package config loads server settings from the environment
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends accepted by STORAGE_TYPE
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// MaxDatabaseConns caps the postgres pool size
const MaxDatabaseConns = 1000

var (
	ErrUnknownStorage      = errors.New("unknown storage type")
	ErrMissingDatabaseURL  = errors.New("DATABASE_URL required when STORAGE_TYPE=postgres")
	ErrMissingRedisURL     = errors.New("REDIS_URL required when STORAGE_TYPE=redis")
	ErrInvalidLogFormat    = errors.New("LOG_FORMAT must be json or text")
	ErrInvalidServerPort   = errors.New("HTTP_PORT must be between 1 and 65535")
	ErrInvalidTokenExpiry  = errors.New("JWT_EXPIRY must be positive")
	ErrInvalidDatabaseSize = errors.New("DATABASE_MAX_CONNS must be between 1 and 1000")
)

type Config struct {
	HTTPHost string
	HTTPPort int

	LogLevel  string
	LogFormat string

	JWTSecret string
	JWTExpiry time.Duration

	StorageType      string
	DatabaseURL      string
	DatabaseMaxConns int
	AutoMigrate      bool
	RedisURL         string
	SeedData         bool

	AllowedOrigins []string
	AuthRateLimit  int
}

// Load reads a .env file when present, then the process environment
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPHost:       getEnv("HTTP_HOST", ""),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:      strings.ToLower(getEnv("LOG_FORMAT", "json")),
		JWTSecret:      os.Getenv("JWT_SECRET_KEY"),
		StorageType:    strings.ToLower(getEnv("STORAGE_TYPE", StorageMemory)),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "*")),
	}

	var err error
	if cfg.HTTPPort, err = getInt("HTTP_PORT", 8000); err != nil {
		return nil, err
	}
	if cfg.JWTExpiry, err = getDuration("JWT_EXPIRY", 7*24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.DatabaseMaxConns, err = getInt("DATABASE_MAX_CONNS", 10); err != nil {
		return nil, err
	}
	if cfg.AutoMigrate, err = getBool("AUTO_MIGRATE", true); err != nil {
		return nil, err
	}
	if cfg.SeedData, err = getBool("SEED_DATA", true); err != nil {
		return nil, err
	}
	if cfg.AuthRateLimit, err = getInt("AUTH_RATE_LIMIT", 30); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the chosen backend has what it needs
func (c *Config) Validate() error {
	switch c.StorageType {
	case StorageMemory:
	case StoragePostgres:
		if c.DatabaseURL == "" {
			return ErrMissingDatabaseURL
		}
	case StorageRedis:
		if c.RedisURL == "" {
			return ErrMissingRedisURL
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorage, c.StorageType)
	}

	if c.LogFormat != "json" && c.LogFormat != "text" {
		return ErrInvalidLogFormat
	}
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return ErrInvalidServerPort
	}
	if c.JWTExpiry <= 0 {
		return ErrInvalidTokenExpiry
	}
	if c.DatabaseMaxConns < 1 || c.DatabaseMaxConns > MaxDatabaseConns {
		return ErrInvalidDatabaseSize
	}
	return nil
}

// UsingDevelopmentSecret reports whether JWT_SECRET_KEY was left unset,
// in which case the auth service falls back to its built-in secret
func (c *Config) UsingDevelopmentSecret() bool {
	return c.JWTSecret == ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func getBool(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for part := range strings.SplitSeq(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
