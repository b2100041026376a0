// Package cache provides a redis-backed read-through cache for detail
// payloads, so repeated discovery runs do not re-spend metered record
// credits on properties fetched recently.
package cache

import (
	"context"
	"errors"
	"time"

	"dealflow_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "propertydata:detail:"

// DetailCache caches raw detail payloads by property ID. A nil *DetailCache
// is valid and disables caching, so the module degrades gracefully when
// redis is not configured.
type DetailCache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logger.Logger
}

// New creates a detail cache from a redis URL. An empty URL returns a nil
// cache (disabled) without error.
func New(redisURL string, ttl time.Duration, log *logger.Logger) (*DetailCache, error) {
	if redisURL == "" {
		return nil, nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	return &DetailCache{
		rdb: redis.NewClient(opt),
		ttl: ttl,
		log: log,
	}, nil
}

// NewWithClient wraps an existing redis client, mainly for tests.
func NewWithClient(rdb *redis.Client, ttl time.Duration, log *logger.Logger) *DetailCache {
	return &DetailCache{rdb: rdb, ttl: ttl, log: log}
}

// Get returns the cached payload for a property ID, if present. Cache
// failures are treated as misses; the caller falls through to the API.
func (c *DetailCache) Get(ctx context.Context, id string) ([]byte, bool) {
	if c == nil || id == "" {
		return nil, false
	}

	payload, err := c.rdb.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) && c.log != nil {
			c.log.Debug("detail cache read failed", "id", id, "error", err)
		}
		return nil, false
	}
	return payload, true
}

// Set stores a payload for a property ID. Failures are logged, not
// propagated; a cold cache only costs credits.
func (c *DetailCache) Set(ctx context.Context, id string, payload []byte) {
	if c == nil || id == "" || len(payload) == 0 {
		return
	}

	if err := c.rdb.Set(ctx, keyPrefix+id, payload, c.ttl).Err(); err != nil && c.log != nil {
		c.log.Debug("detail cache write failed", "id", id, "error", err)
	}
}

// Close releases the underlying redis connection.
func (c *DetailCache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
