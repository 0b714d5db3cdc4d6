package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Storage   StorageConfig
	Extract   ExtractConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Webhook   WebhookConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// StorageConfig controls the DuckDB lead store.
type StorageConfig struct {
	// Path is the DuckDB database file. default: "leadscout.duckdb"
	Path string
}

// ExtractConfig controls the lead extraction engine.
type ExtractConfig struct {
	// FetchTimeout is the deadline for the single page fetch.
	FetchTimeout time.Duration // default: 10s
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: true

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 5

	// Burst is the maximum burst size per API key.
	Burst int // default: 10
}

// CacheConfig controls the extraction response cache.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached responses.
	MaxEntries int // default: 1000
}

// WebhookConfig controls scrape-completion notifications.
type WebhookConfig struct {
	// URL receives signed scrape.completed events. Empty disables webhooks.
	URL string

	// Secret signs the event body (HMAC-SHA256).
	Secret string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("LEADSCOUT_HOST", "0.0.0.0"),
			Port: envIntOr("LEADSCOUT_PORT", 8080),
			Mode: envOr("LEADSCOUT_MODE", "release"),
		},
		Storage: StorageConfig{
			Path: envOr("LEADSCOUT_DB_PATH", "leadscout.duckdb"),
		},
		Extract: ExtractConfig{
			FetchTimeout: envDurationOr("LEADSCOUT_FETCH_TIMEOUT", 10*time.Second),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("LEADSCOUT_AUTH_ENABLED", true),
			APIKeys: envSliceOr("LEADSCOUT_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("LEADSCOUT_RATE_RPS", 5.0),
			Burst:             envIntOr("LEADSCOUT_RATE_BURST", 10),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("LEADSCOUT_CACHE_MAX_ENTRIES", 1000),
		},
		Webhook: WebhookConfig{
			URL:    os.Getenv("LEADSCOUT_WEBHOOK_URL"),
			Secret: os.Getenv("LEADSCOUT_WEBHOOK_SECRET"),
		},
		Log: LogConfig{
			Level:  envOr("LEADSCOUT_LOG_LEVEL", "info"),
			Format: envOr("LEADSCOUT_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
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

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
