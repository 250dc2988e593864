package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"staybook/internal/model"
	"staybook/internal/service"
)

// CacheConfig contains configuration options for the property cache
type CacheConfig struct {
	// Client is the Redis client instance
	Client *redis.Client

	// KeyPrefix is the prefix for all Redis keys
	// Default: "staybook:"
	KeyPrefix string

	// TTL is how long a fetched property list is served before refetching
	// Default: 1 minute
	TTL time.Duration
}

// CachedBackend serves the property list from Redis and forwards every
// other call to the wrapped backend. Redis failures fall back to the backend.
type CachedBackend struct {
	service.Backend

	client *redis.Client
	key    string
	ttl    time.Duration
}

// Ensure CachedBackend implements service.Backend
var _ service.Backend = (*CachedBackend)(nil)

// NewCachedBackend wraps backend with a Redis property list cache
func NewCachedBackend(backend service.Backend, cfg CacheConfig) (*CachedBackend, error) {
	if cfg.Client == nil {
		return nil, fmt.Errorf("redis client is required")
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "staybook:"
	}
	if cfg.TTL <= 0 {
		cfg.TTL = time.Minute
	}

	return &CachedBackend{
		Backend: backend,
		client:  cfg.Client,
		key:     cfg.KeyPrefix + "properties",
		ttl:     cfg.TTL,
	}, nil
}

// ListProperties returns the cached list, refreshing it from the backend on a miss
func (c *CachedBackend) ListProperties(ctx context.Context) ([]model.Property, error) {
	logger := zerolog.Ctx(ctx)

	data, err := c.client.Get(ctx, c.key).Bytes()
	switch {
	case err == nil:
		var properties []model.Property
		if err := json.Unmarshal(data, &properties); err == nil {
			return properties, nil
		}
		logger.Warn().Str("key", c.key).Msg("discarding unreadable property cache entry")
	case errors.Is(err, redis.Nil):
	default:
		logger.Warn().Err(err).Msg("property cache unavailable, reading backend")
	}

	properties, err := c.Backend.ListProperties(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(properties); err == nil {
		if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
			logger.Warn().Err(err).Msg("failed to store property cache entry")
		}
	}

	return properties, nil
}

// Invalidate drops the cached property list
func (c *CachedBackend) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate property cache: %w", err)
	}
	return nil
}
