package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	EventStore EventStoreConfig
	Redis      RedisConfig
	Auth       AuthConfig
	Dashboard  DashboardConfig
}

type ServerConfig struct {
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

// EventStoreConfig holds configuration for the EventStoreDB-backed event bus.
type EventStoreConfig struct {
	Host string
	// Port is the gRPC port (default 2113)
	Port int
	// Insecure disables TLS (for development)
	Insecure bool
	// Username for authentication (optional)
	Username string
	// Password for authentication (optional)
	Password string
}

// RedisConfig holds configuration for the optional dashboard cache.
type RedisConfig struct {
	// URL is a redis:// connection URL; empty disables the cache
	URL string
}

type AuthConfig struct {
	// JWTSecret signs session tokens issued by the demo login
	JWTSecret string
	// TokenTTLMinutes bounds session token lifetime
	TokenTTLMinutes int
	// LoginRatePerSecond / LoginBurst bound login attempts per client IP
	LoginRatePerSecond int
	LoginBurst         int
}

type DashboardConfig struct {
	// CacheTTLSeconds is how long a computed summary stays cached
	CacheTTLSeconds int
}

func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Port: getEnvInt("SERVER_PORT", 8080),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "mhrs"),
			Password: getEnv("DB_PASSWORD", "mhrs"),
			Database: getEnv("DB_NAME", "migrant_health"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		EventStore: EventStoreConfig{
			Host:     getEnv("EVENTSTORE_HOST", "localhost"),
			Port:     getEnvInt("EVENTSTORE_PORT", 2113),
			Insecure: getEnvBool("EVENTSTORE_INSECURE", true),
			Username: getEnv("EVENTSTORE_USERNAME", ""),
			Password: getEnv("EVENTSTORE_PASSWORD", ""),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		Auth: AuthConfig{
			JWTSecret:          getEnv("JWT_SECRET", "dev-secret-change-in-prod"),
			TokenTTLMinutes:    getEnvInt("TOKEN_TTL_MINUTES", 480),
			LoginRatePerSecond: getEnvInt("LOGIN_RATE_PER_SECOND", 2),
			LoginBurst:         getEnvInt("LOGIN_BURST", 5),
		},
		Dashboard: DashboardConfig{
			CacheTTLSeconds: getEnvInt("DASHBOARD_CACHE_TTL_SECONDS", 60),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
