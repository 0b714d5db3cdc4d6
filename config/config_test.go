package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("default port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Storage.Path != "leadscout.duckdb" {
		t.Errorf("default db path = %q, want leadscout.duckdb", cfg.Storage.Path)
	}
	if cfg.Extract.FetchTimeout != 10*time.Second {
		t.Errorf("default fetch timeout = %v, want 10s", cfg.Extract.FetchTimeout)
	}
	if !cfg.Auth.Enabled {
		t.Error("auth should be enabled by default")
	}
	if cfg.Log.Format != "json" {
		t.Errorf("default log format = %q, want json", cfg.Log.Format)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("LEADSCOUT_PORT", "9090")
	t.Setenv("LEADSCOUT_FETCH_TIMEOUT", "3s")
	t.Setenv("LEADSCOUT_API_KEYS", "key-a, key-b")
	t.Setenv("LEADSCOUT_AUTH_ENABLED", "false")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Extract.FetchTimeout != 3*time.Second {
		t.Errorf("fetch timeout = %v, want 3s", cfg.Extract.FetchTimeout)
	}
	if len(cfg.Auth.APIKeys) != 2 || cfg.Auth.APIKeys[0] != "key-a" || cfg.Auth.APIKeys[1] != "key-b" {
		t.Errorf("api keys = %v, want [key-a key-b]", cfg.Auth.APIKeys)
	}
	if cfg.Auth.Enabled {
		t.Error("auth should be disabled via env")
	}
}

func TestInvalidEnvFallsBack(t *testing.T) {
	t.Setenv("LEADSCOUT_PORT", "not-a-number")
	t.Setenv("LEADSCOUT_FETCH_TIMEOUT", "soon")

	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want fallback 8080", cfg.Server.Port)
	}
	if cfg.Extract.FetchTimeout != 10*time.Second {
		t.Errorf("fetch timeout = %v, want fallback 10s", cfg.Extract.FetchTimeout)
	}
}
