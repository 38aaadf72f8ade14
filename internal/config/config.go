package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Tracking lookup query styles. The tracking form and the detail fetch use
// different filter syntaxes against the same collection endpoint.
const (
	LookupStyleFilters = "filters"
	LookupStylePlain   = "plain"
)

const (
	SessionBackendMemory   = "memory"
	SessionBackendSQLite   = "sqlite"
	SessionBackendPostgres = "postgres"
	SessionBackendRedis    = "redis"
)

type Config struct {
	Port           string
	StrapiURL      string
	FrontendURL    string
	StrapiTimeout  time.Duration
	LookupStyle    string
	SessionBackend string
	SessionTTL     time.Duration
	DBPath         string
	DatabaseURL    string
	RedisAddr      string
	KafkaBroker    string
	KafkaTopic     string
	CookieSecure   bool
	LoginRateLimit int
}

// LoadDotEnv loads a .env file when present. A missing file is not an error.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads the application configuration from the environment.
func Load() (*Config, error) {
	strapiURL := strings.TrimRight(Get("STRAPI_URL", ""), "/")
	if strapiURL == "" {
		return nil, errors.New("load config: STRAPI_URL is required")
	}

	timeout, err := time.ParseDuration(Get("STRAPI_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("load config: STRAPI_TIMEOUT: %w", err)
	}

	ttl, err := time.ParseDuration(Get("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("load config: SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("load config: SESSION_TTL must be positive, got %s", ttl)
	}

	secure, err := strconv.ParseBool(Get("COOKIE_SECURE", "false"))
	if err != nil {
		return nil, fmt.Errorf("load config: COOKIE_SECURE: %w", err)
	}

	limit, err := strconv.Atoi(Get("LOGIN_RATE_LIMIT", "10"))
	if err != nil {
		return nil, fmt.Errorf("load config: LOGIN_RATE_LIMIT: %w", err)
	}
	if limit < 1 {
		return nil, fmt.Errorf("load config: LOGIN_RATE_LIMIT must be at least 1, got %d", limit)
	}

	style := Get("TRACKING_LOOKUP_STYLE", LookupStyleFilters)
	switch style {
	case LookupStyleFilters, LookupStylePlain:
	default:
		return nil, fmt.Errorf("load config: unknown TRACKING_LOOKUP_STYLE %q", style)
	}

	cfg := &Config{
		Port:           Get("PORT", "8080"),
		StrapiURL:      strapiURL,
		FrontendURL:    Get("FRONTEND_URL", "http://localhost:3000"),
		StrapiTimeout:  timeout,
		LookupStyle:    style,
		SessionBackend: Get("SESSION_BACKEND", SessionBackendMemory),
		SessionTTL:     ttl,
		DBPath:         Get("DB_PATH", "data/sessions.db"),
		DatabaseURL:    Get("DATABASE_URL", ""),
		RedisAddr:      Get("REDIS_ADDR", "localhost:6379"),
		KafkaBroker:    Get("KAFKA_BROKER", ""),
		KafkaTopic:     Get("KAFKA_TOPIC", "shipment-activity"),
		CookieSecure:   secure,
		LoginRateLimit: limit,
	}

	switch cfg.SessionBackend {
	case SessionBackendMemory, SessionBackendSQLite, SessionBackendRedis:
	case SessionBackendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, errors.New("load config: DATABASE_URL is required for the postgres session backend")
		}
	default:
		return nil, fmt.Errorf("load config: unknown SESSION_BACKEND %q", cfg.SessionBackend)
	}

	return cfg, nil
}
