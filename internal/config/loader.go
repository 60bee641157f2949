package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures environment driven configuration values for the pousada service.
type Config struct {
	HTTPPort      int
	SQLiteDSN     string
	SessionTTL    time.Duration
	CacheBackend  string
	RedisURI      string
	RedisAddr     string
	StatsCacheTTL time.Duration
	JobsEnabled   bool
}

// Load parses configuration values from the current process environment.
//
// The loader applies sensible defaults for optional fields while validating
// provided values and reporting localized error messages for invalid entries.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:      8080,
		SQLiteDSN:     "pousada.db",
		SessionTTL:    12 * time.Hour,
		CacheBackend:  "memory",
		StatsCacheTTL: 5 * time.Minute,
		JobsEnabled:   true,
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("POUSADA_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "POUSADA_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("POUSADA_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if ttlValue := strings.TrimSpace(os.Getenv("POUSADA_SESSION_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "POUSADA_SESSION_TTL")
		} else {
			cfg.SessionTTL = ttl
		}
	}

	if backend := strings.TrimSpace(strings.ToLower(os.Getenv("POUSADA_CACHE_BACKEND"))); backend != "" {
		switch backend {
		case "memory", "redis":
			cfg.CacheBackend = backend
		default:
			invalid = append(invalid, "POUSADA_CACHE_BACKEND")
		}
	}

	cfg.RedisURI = strings.TrimSpace(os.Getenv("POUSADA_REDIS_URI"))
	cfg.RedisAddr = strings.TrimSpace(os.Getenv("POUSADA_REDIS_ADDR"))
	if cfg.CacheBackend == "redis" && cfg.RedisURI == "" && cfg.RedisAddr == "" {
		missing = append(missing, "POUSADA_REDIS_ADDR")
	}

	if ttlValue := strings.TrimSpace(os.Getenv("POUSADA_STATS_CACHE_TTL")); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, "POUSADA_STATS_CACHE_TTL")
		} else {
			cfg.StatsCacheTTL = ttl
		}
	}

	if jobsValue := strings.TrimSpace(os.Getenv("POUSADA_JOBS_ENABLED")); jobsValue != "" {
		enabled, err := strconv.ParseBool(jobsValue)
		if err != nil {
			invalid = append(invalid, "POUSADA_JOBS_ENABLED")
		} else {
			cfg.JobsEnabled = enabled
		}
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("variáveis de ambiente obrigatórias não definidas: %s", strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("variáveis de ambiente com valores inválidos: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}
