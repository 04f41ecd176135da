// Package config builds runtime configuration from environment variables so
// main stays lean. Every value has a development default; production deploys
// override via the environment.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config aggregates all service configuration.
type Config struct {
	Server   Server
	Postgres Postgres
	Redis    Redis
	Kafka    Kafka
	Registry Registry
	Recheck  Recheck
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string
	JWTIssuer     string
	JWTAudience   string
	TokenTTL      time.Duration
	// AdminToken guards the organisation admin endpoints. Empty disables
	// them entirely.
	AdminToken string
}

// Postgres captures database connection settings. An empty DSN selects the
// in-memory stores (development and tests).
type Postgres struct {
	DSN             string
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

// Redis captures cache connection settings. An empty URL disables the
// registry snapshot cache.
type Redis struct {
	URL          string
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Kafka captures audit event streaming settings. Empty brokers disable the
// Kafka publisher; audit events still reach the local store.
type Kafka struct {
	Brokers    []string
	AuditTopic string
}

// Registry configures the external licensing registry client.
type Registry struct {
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
	CacheTTL time.Duration
	UseMock  bool
}

// Recheck configures the background recheck worker.
type Recheck struct {
	Interval    time.Duration
	Concurrency int
}

// FromEnv builds a Config from environment variables.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:          envOr("DRIVEGUARD_ADDR", ":8080"),
			JWTSigningKey: envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
			JWTIssuer:     envOr("JWT_ISSUER", "driveguard"),
			JWTAudience:   envOr("JWT_AUDIENCE", "driveguard-api"),
			TokenTTL:      envDurationOr("JWT_TOKEN_TTL", time.Hour),
			AdminToken:    os.Getenv("ADMIN_TOKEN"),
		},
		Postgres: Postgres{
			DSN:             os.Getenv("POSTGRES_DSN"),
			MaxOpenConns:    envIntOr("POSTGRES_MAX_OPEN_CONNS", 25),
			ConnMaxLifetime: envDurationOr("POSTGRES_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: Redis{
			URL:          os.Getenv("REDIS_URL"),
			DialTimeout:  envDurationOr("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDurationOr("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDurationOr("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: Kafka{
			Brokers:    splitNonEmpty(os.Getenv("KAFKA_BROKERS")),
			AuditTopic: envOr("KAFKA_AUDIT_TOPIC", "driveguard.audit"),
		},
		Registry: Registry{
			BaseURL:  envOr("REGISTRY_BASE_URL", "https://registry.example.gov/api/v1"),
			APIKey:   os.Getenv("REGISTRY_API_KEY"),
			Timeout:  envDurationOr("REGISTRY_TIMEOUT", 10*time.Second),
			CacheTTL: envDurationOr("REGISTRY_CACHE_TTL", 5*time.Minute),
			UseMock:  os.Getenv("REGISTRY_USE_MOCK") == "true",
		},
		Recheck: Recheck{
			Interval:    envDurationOr("RECHECK_INTERVAL", time.Hour),
			Concurrency: envIntOr("RECHECK_CONCURRENCY", 4),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitNonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if part := s[start:i]; part != "" {
				out = append(out, part)
			}
			start = i + 1
		}
	}
	return out
}
