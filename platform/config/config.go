// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// PropertyDataConfig provides settings for the metered property-data API.
// The client is always constructed; a missing key fails per call, not at
// startup, so the process can serve stored data without credentials.
type PropertyDataConfig interface {
	GetPropertyAPIKey() string
	GetPropertyAPIBaseURL() string
	GetPropertyAPIMinInterval() time.Duration
	GetPropertyAPITimeout() time.Duration
}

// CacheConfig provides settings for the redis detail-payload cache.
type CacheConfig interface {
	GetRedisURL() string
	GetDetailCacheTTL() time.Duration
}

// WorkerConfig provides settings for the asynq discovery worker.
type WorkerConfig interface {
	GetRedisURL() string
	GetWorkerQueueName() string
	GetWorkerConcurrency() int
}

// ScoringConfig provides settings for blended lead ranking.
type ScoringConfig interface {
	GetDistressWeight() float64
	GetProfileWeight() float64
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env            string
	HTTPAddr       string
	DatabaseURL    string
	CORSAllowAll   bool
	CORSOrigins    []string
	CORSAllowCreds bool

	PropertyAPIKey         string
	PropertyAPIBaseURL     string
	PropertyAPIMinInterval time.Duration
	PropertyAPITimeout     time.Duration

	RedisURL       string
	DetailCacheTTL time.Duration

	WorkerQueueName   string
	WorkerConcurrency int

	DistressWeight float64
	ProfileWeight  float64
}

// Load reads configuration from the environment, with .env support for
// local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:4200"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:            getEnv("APP_ENV", "development"),
		HTTPAddr:       getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		CORSAllowAll:   corsAllowAll,
		CORSOrigins:    corsOrigins,
		CORSAllowCreds: strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),

		PropertyAPIKey:         getEnv("PROPERTY_API_KEY", ""),
		PropertyAPIBaseURL:     getEnv("PROPERTY_API_BASE_URL", "https://api.realestateapi.com"),
		PropertyAPIMinInterval: mustDuration(getEnv("PROPERTY_API_MIN_INTERVAL", "100ms")),
		PropertyAPITimeout:     mustDuration(getEnv("PROPERTY_API_TIMEOUT", "15s")),

		RedisURL:       getEnv("REDIS_URL", ""),
		DetailCacheTTL: mustDuration(getEnv("DETAIL_CACHE_TTL", "168h")),

		WorkerQueueName:   getEnv("WORKER_QUEUE", "discovery"),
		WorkerConcurrency: mustInt(getEnv("WORKER_CONCURRENCY", "1")),

		DistressWeight: mustFloat(getEnv("SCORE_DISTRESS_WEIGHT", "0.6")),
		ProfileWeight:  mustFloat(getEnv("SCORE_PROFILE_WEIGHT", "0.4")),
	}

	return cfg, nil
}

// =============================================================================
// Interface implementations
// =============================================================================

func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

func (c *Config) GetHTTPAddr() string { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool { return c.CORSAllowCreds }

func (c *Config) GetPropertyAPIKey() string { return c.PropertyAPIKey }
func (c *Config) GetPropertyAPIBaseURL() string { return c.PropertyAPIBaseURL }
func (c *Config) GetPropertyAPIMinInterval() time.Duration { return c.PropertyAPIMinInterval }
func (c *Config) GetPropertyAPITimeout() time.Duration { return c.PropertyAPITimeout }

func (c *Config) GetRedisURL() string { return c.RedisURL }
func (c *Config) GetDetailCacheTTL() time.Duration { return c.DetailCacheTTL }

func (c *Config) GetWorkerQueueName() string { return c.WorkerQueueName }
func (c *Config) GetWorkerConcurrency() int { return c.WorkerConcurrency }

func (c *Config) GetDistressWeight() float64 { return c.DistressWeight }
func (c *Config) GetProfileWeight() float64 { return c.ProfileWeight }

// =============================================================================
// Helpers
// =============================================================================

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}

func mustFloat(value string) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return f
}
