package cache

import (
	"fmt"
	"io"

	"github.com/mfgerp/backend/internal/domain/report"
	"github.com/mfgerp/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// SnapshotCache is a report.SnapshotCache that owns resources to release on shutdown
type SnapshotCache interface {
	report.SnapshotCache
	io.Closer
}

// SnapshotCacheFactory creates snapshot caches based on configuration
type SnapshotCacheFactory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// SnapshotCacheFactoryOption is a functional option for configuring the factory
type SnapshotCacheFactoryOption func(*SnapshotCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) SnapshotCacheFactoryOption {
	return func(f *SnapshotCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) SnapshotCacheFactoryOption {
	return func(f *SnapshotCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewSnapshotCacheFactory creates a new factory
func NewSnapshotCacheFactory(cfg config.RedisConfig, opts ...SnapshotCacheFactoryOption) *SnapshotCacheFactory {
	f := &SnapshotCacheFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisCache creates a Redis-backed snapshot cache
func (f *SnapshotCacheFactory) CreateRedisCache() (SnapshotCache, error) {
	c, err := NewRedisSnapshotCache(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis snapshot cache: %w", err)
	}
	return c, nil
}

// CreateInMemoryCache creates an in-memory snapshot cache.
// Instances do not share it, so a refresh only clears the local copy.
func (f *SnapshotCacheFactory) CreateInMemoryCache() SnapshotCache {
	return NewInMemorySnapshotCache()
}

// CreateCache creates the cache for the given backend. For "redis" it falls
// back to memory when Redis is unreachable and fallback is allowed.
func (f *SnapshotCacheFactory) CreateCache(backend string) (SnapshotCache, error) {
	switch backend {
	case "memory":
		f.logger.Info("using in-memory balance sheet cache")
		return f.CreateInMemoryCache(), nil
	case "redis":
	default:
		return nil, fmt.Errorf("unknown cache backend %q", backend)
	}

	c, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis balance sheet cache")
		return c, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for balance sheet cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory balance sheet cache. "+
		"Refreshes will not propagate across instances.",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}
