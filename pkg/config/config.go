package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/unburdy/scheduling-module/pkg/database"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, err.Error())
	}
	return strings.Join(messages, "; ")
}

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  database.Config
	Redis     RedisConfig
	Lock      LockConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Host string
	Mode string // gin mode: debug, release, test
}

// RedisConfig holds redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LockConfig holds distributed lock configuration
type LockConfig struct {
	OwnershipTTL    time.Duration // how long a holder may keep the lock
	AcquireDeadline time.Duration // how long acquisition may block
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret     string
	ExpiryHour int
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled bool
}

// Load loads configuration from environment variables with defaults
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "0.0.0.0"),
			Mode: getEnv("GIN_MODE", "debug"),
		},
		Database: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "password"),
			DBName:   getEnv("DB_NAME", "scheduling"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Lock: LockConfig{
			OwnershipTTL:    getEnvAsDuration("LOCK_OWNERSHIP_TTL", 20*time.Second),
			AcquireDeadline: getEnvAsDuration("LOCK_ACQUIRE_DEADLINE", 20*time.Second),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", "your-super-secret-jwt-key-change-in-production"),
			ExpiryHour: getEnvAsInt("JWT_EXPIRY_HOUR", 24),
		},
		RateLimit: RateLimitConfig{
			Enabled: getEnvAsBool("RATE_LIMIT_ENABLED", true),
		},
	}
}

// Validate checks the configuration for production readiness
func (c Config) Validate() error {
	var errs ValidationErrors

	if c.Lock.OwnershipTTL <= 0 {
		errs = append(errs, ValidationError{Field: "LOCK_OWNERSHIP_TTL", Message: "must be positive"})
	}
	if c.Lock.AcquireDeadline <= 0 {
		errs = append(errs, ValidationError{Field: "LOCK_ACQUIRE_DEADLINE", Message: "must be positive"})
	}
	if c.Server.Mode == "release" && strings.Contains(c.JWT.Secret, "change-in-production") {
		errs = append(errs, ValidationError{Field: "JWT_SECRET", Message: "default secret not allowed in release mode"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvAsInt gets an environment variable as integer with a fallback value
func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// getEnvAsBool gets an environment variable as boolean with a fallback value
func getEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// getEnvAsDuration gets an environment variable as duration with a fallback value
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
