// Package config reads process configuration from the environment. A .env
// file in the working directory is loaded first when present.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full runtime configuration of the case notes server.
type Config struct {
	Server   Server
	Database Database
	Redis    RedisConfig
	Kafka    Kafka
	Legacy   Legacy
	JWT      JWT
	LogLevel string
	// TypeCacheTTL bounds how long the legacy type catalog is served from Redis.
	TypeCacheTTL       time.Duration
	OutboxPollInterval time.Duration
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr string
}

// Database selects the local store. An empty URL runs on in-memory stores.
type Database struct {
	URL string
}

// RedisConfig configures the optional type catalog cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Kafka configures case note event publishing. No brokers disables the relay.
type Kafka struct {
	Brokers []string
	Topic   string
}

// Legacy configures the legacy case note API.
type Legacy struct {
	URL         string
	Token       string
	Timeout     time.Duration
	MaxPageSize int
}

type JWT struct {
	SigningKey string
	Issuer     string
}

// FromEnv builds a Config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var errs []error
	cfg := Config{
		Server: Server{
			Addr: getenv("CASENOTES_ADDR", ":8080"),
		},
		Database: Database{
			URL: getenv("DATABASE_URL", ""),
		},
		Redis: RedisConfig{
			URL:          getenv("REDIS_URL", ""),
			PoolSize:     getenvInt("REDIS_POOL_SIZE", 10, &errs),
			MinIdleConns: getenvInt("REDIS_MIN_IDLE_CONNS", 2, &errs),
			DialTimeout:  getenvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second, &errs),
			ReadTimeout:  getenvDuration("REDIS_READ_TIMEOUT", 3*time.Second, &errs),
			WriteTimeout: getenvDuration("REDIS_WRITE_TIMEOUT", 3*time.Second, &errs),
		},
		Kafka: Kafka{
			Brokers: splitList(getenv("KAFKA_BROKERS", "")),
			Topic:   getenv("KAFKA_TOPIC", "casenotes.events"),
		},
		Legacy: Legacy{
			URL:         getenv("LEGACY_API_URL", ""),
			Token:       getenv("LEGACY_API_TOKEN", ""),
			Timeout:     getenvDuration("LEGACY_TIMEOUT", 10*time.Second, &errs),
			MaxPageSize: getenvInt("LEGACY_MAX_PAGE_SIZE", 10000, &errs),
		},
		JWT: JWT{
			// Use a default for development - should be overridden in production
			SigningKey: getenv("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			Issuer:     getenv("JWT_ISSUER", ""),
		},
		LogLevel:           getenv("LOG_LEVEL", "info"),
		TypeCacheTTL:       getenvDuration("TYPE_CACHE_TTL", 10*time.Minute, &errs),
		OutboxPollInterval: getenvDuration("OUTBOX_POLL_INTERVAL", 2*time.Second, &errs),
	}
	if cfg.Legacy.MaxPageSize <= 0 {
		errs = append(errs, fmt.Errorf("LEGACY_MAX_PAGE_SIZE must be positive"))
	}
	if err := errors.Join(errs...); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int, errs *[]error) int {
	value := getenv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return parsed
}

// getenvDuration accepts Go duration strings ("30s") or whole seconds ("30").
func getenvDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	value := getenv(key, "")
	if value == "" {
		return fallback
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return parsed
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
