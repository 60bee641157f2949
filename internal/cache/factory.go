package cache

import (
	"log/slog"
	"time"
)

// Config selects and configures the cache backend.
type Config struct {
	// Backend is "memory" or "redis". Empty defaults to memory.
	Backend    string
	DefaultTTL time.Duration
	MaxEntries int
	Redis      RedisOptions
}

// New builds a cache from the configuration. When the Redis backend is
// requested but unreachable, the in-memory cache is used instead so that the
// application still starts.
func New(cfg Config, logger *slog.Logger) Cache {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Backend {
	case "redis":
		redisCache, err := NewRedisCache(cfg.Redis)
		if err != nil {
			logger.Warn("redis cache unavailable, falling back to memory", "error", err)
			return NewMemoryCache(cfg.DefaultTTL, cfg.MaxEntries, nil)
		}
		logger.Info("using redis cache", "addr", cfg.Redis.Addr)
		return redisCache
	default:
		return NewMemoryCache(cfg.DefaultTTL, cfg.MaxEntries, nil)
	}
}
