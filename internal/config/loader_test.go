package config

import (
	"os"
	"testing"
	"time"
)

func TestLoader_ParseEnvironment(t *testing.T) {

	t.Run("applies defaults when variables are missing", func(t *testing.T) {
		unset := []string{
			"POUSADA_HTTP_PORT",
			"POUSADA_SQLITE_DSN",
			"POUSADA_SESSION_TTL",
			"POUSADA_CACHE_BACKEND",
			"POUSADA_REDIS_URI",
			"POUSADA_REDIS_ADDR",
			"POUSADA_STATS_CACHE_TTL",
			"POUSADA_JOBS_ENABLED",
		}
		for _, key := range unset {
			if err := os.Unsetenv(key); err != nil {
				t.Fatalf("failed to unset %s: %v", key, err)
			}
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 8080 {
			t.Fatalf("expected default HTTP port 8080, got %d", cfg.HTTPPort)
		}
		if cfg.SQLiteDSN != "pousada.db" {
			t.Fatalf("unexpected default DSN: %q", cfg.SQLiteDSN)
		}
		if cfg.SessionTTL != 12*time.Hour {
			t.Fatalf("expected default session TTL 12h, got %s", cfg.SessionTTL)
		}
		if cfg.CacheBackend != "memory" {
			t.Fatalf("expected memory cache backend, got %q", cfg.CacheBackend)
		}
		if cfg.StatsCacheTTL != 5*time.Minute {
			t.Fatalf("expected default stats cache TTL 5m, got %s", cfg.StatsCacheTTL)
		}
		if !cfg.JobsEnabled {
			t.Fatal("expected background jobs enabled by default")
		}
	})

	t.Run("errors when redis backend lacks an address", func(t *testing.T) {
		for _, key := range []string{"POUSADA_REDIS_URI", "POUSADA_REDIS_ADDR"} {
			if err := os.Unsetenv(key); err != nil {
				t.Fatalf("failed to unset %s: %v", key, err)
			}
		}
		t.Setenv("POUSADA_CACHE_BACKEND", "redis")

		_, err := Load()
		if err == nil {
			t.Fatal("expected error when redis address is missing")
		}
		expected := "variáveis de ambiente obrigatórias não definidas: POUSADA_REDIS_ADDR"
		if err.Error() != expected {
			t.Fatalf("unexpected error message: %q", err.Error())
		}
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		t.Setenv("POUSADA_HTTP_PORT", "zero")
		t.Setenv("POUSADA_SESSION_TTL", "-1h")

		_, err := Load()
		if err == nil {
			t.Fatal("expected error for invalid values")
		}
		expected := "variáveis de ambiente com valores inválidos: POUSADA_HTTP_PORT, POUSADA_SESSION_TTL"
		if err.Error() != expected {
			t.Fatalf("unexpected error message: %q", err.Error())
		}
	})

	t.Run("parses duration and numeric fields", func(t *testing.T) {
		t.Setenv("POUSADA_HTTP_PORT", "9090")
		t.Setenv("POUSADA_SQLITE_DSN", "/tmp/pousada.db")
		t.Setenv("POUSADA_SESSION_TTL", "6h")
		t.Setenv("POUSADA_CACHE_BACKEND", "redis")
		t.Setenv("POUSADA_REDIS_ADDR", "localhost:6379")
		t.Setenv("POUSADA_STATS_CACHE_TTL", "30s")
		t.Setenv("POUSADA_JOBS_ENABLED", "false")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 9090 {
			t.Fatalf("expected HTTP port 9090, got %d", cfg.HTTPPort)
		}
		if cfg.SQLiteDSN != "/tmp/pousada.db" {
			t.Fatalf("unexpected DSN: %q", cfg.SQLiteDSN)
		}
		if cfg.SessionTTL != 6*time.Hour {
			t.Fatalf("expected session TTL 6h, got %s", cfg.SessionTTL)
		}
		if cfg.RedisAddr != "localhost:6379" {
			t.Fatalf("unexpected redis addr: %q", cfg.RedisAddr)
		}
		if cfg.StatsCacheTTL != 30*time.Second {
			t.Fatalf("expected stats cache TTL 30s, got %s", cfg.StatsCacheTTL)
		}
		if cfg.JobsEnabled {
			t.Fatal("expected background jobs disabled")
		}
	})
}
