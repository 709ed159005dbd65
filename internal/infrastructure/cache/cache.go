// Package cache implements the response cache on top of a shared Redis
// backend. The cache is a performance optimization, not a correctness
// dependency: every operation treats backend failures as a soft miss,
// logging the error and degrading to a direct fetch.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hszk-dev/ytapi/internal/infrastructure/metrics"
	"golang.org/x/sync/singleflight"
)

// scanBatch is the COUNT hint for prefix scans.
const scanBatch = 200

// Cache wraps a Redis client with namespaced keys, JSON serialization and
// soft-failure semantics. A nil client yields a disabled cache whose
// operations all return their designated "disabled" results.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
	sf     singleflight.Group

	hits   atomic.Int64
	misses atomic.Int64
}

// Stats is a read-only snapshot of cache state and counters.
type Stats struct {
	Enabled   bool          `json:"enabled"`
	Connected bool          `json:"connected"`
	KeyCount  int64         `json:"key_count,omitempty"`
	TTL       time.Duration `json:"-"`
	TTLSecs   int64         `json:"ttl_seconds,omitempty"`
	Hits      int64         `json:"hit_count"`
	Misses    int64         `json:"miss_count"`
}

// New creates a Cache over the given client. client may be nil, in which
// case the cache is disabled.
func New(client *redis.Client, defaultTTL time.Duration, logger *slog.Logger) *Cache {
	return &Cache{
		client: client,
		ttl:    defaultTTL,
		logger: logger,
	}
}

// Enabled reports whether a backend client is configured.
func (c *Cache) Enabled() bool {
	return c.client != nil
}

// DefaultTTL returns the TTL applied when Put is called with ttl <= 0.
func (c *Cache) DefaultTTL() time.Duration {
	return c.ttl
}

// Ping probes backend liveness. Returns false when disabled or unreachable.
func (c *Cache) Ping(ctx context.Context) bool {
	if c.client == nil {
		return false
	}
	return c.client.Ping(ctx).Err() == nil
}

// Get fetches the raw bytes stored under key. The second return value is
// false on miss, on disabled backend, and on backend error.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Error("cache get failed", slog.String("key", key), slog.Any("error", err))
			metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusError).Inc()
			return nil, false
		}
		c.misses.Add(1)
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusMiss).Inc()
		return nil, false
	}

	c.hits.Add(1)
	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpGet, metrics.CacheStatusHit).Inc()
	return data, true
}

// GetJSON fetches and decodes the value stored under key into dest.
// A value that fails to decode is treated as a miss.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	data, ok := c.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		c.logger.Warn("cache entry undecodable, treating as miss",
			slog.String("key", key),
			slog.Any("error", err),
		)
		return false
	}
	return true
}

// Put serializes value and stores it under key. ttl <= 0 uses the default.
// Returns false (after logging) on any failure; a cache outage must degrade
// to direct fetches rather than crash request handling.
func (c *Cache) Put(ctx context.Context, key string, value any, ttl time.Duration) bool {
	if c.client == nil {
		return false
	}

	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Error("cache value not serializable", slog.String("key", key), slog.Any("error", err))
		return false
	}

	if ttl <= 0 {
		ttl = c.ttl
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.Error("cache set failed", slog.String("key", key), slog.Any("error", err))
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusError).Inc()
		return false
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpSet, metrics.CacheStatusSuccess).Inc()
	return true
}

// Invalidate removes a single key.
func (c *Cache) Invalidate(ctx context.Context, key string) bool {
	if c.client == nil {
		return false
	}

	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Error("cache delete failed", slog.String("key", key), slog.Any("error", err))
		metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDelete, metrics.CacheStatusError).Inc()
		return false
	}

	metrics.CacheOperationsTotal.WithLabelValues(metrics.CacheOpDelete, metrics.CacheStatusSuccess).Inc()
	return true
}

// ClearNamespace deletes every key under the cache namespace and returns the
// number deleted. Keys outside the namespace, in particular the storage
// layer's, are never touched.
func (c *Cache) ClearNamespace(ctx context.Context) int {
	if c.client == nil {
		return 0
	}

	keys, err := scanKeys(ctx, c.client, keyNamespace+"*")
	if err != nil {
		c.logger.Error("cache scan failed", slog.Any("error", err))
		return 0
	}
	if len(keys) == 0 {
		return 0
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Error("cache clear failed", slog.Any("error", err))
		return 0
	}

	c.logger.Info("cache cleared", slog.Int("keys_deleted", len(keys)))
	return len(keys)
}

// Stats returns a snapshot of cache state. KeyCount and TTL are omitted when
// the backend is disabled or unreachable.
func (c *Cache) Stats(ctx context.Context) Stats {
	s := Stats{
		Enabled: c.client != nil,
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
	if c.client == nil {
		return s
	}

	keys, err := scanKeys(ctx, c.client, keyNamespace+"*")
	if err != nil {
		c.logger.Warn("cache stats scan failed", slog.Any("error", err))
		return s
	}

	s.Connected = true
	s.KeyCount = int64(len(keys))
	s.TTL = c.ttl
	s.TTLSecs = int64(c.ttl / time.Second)
	return s
}

// scanKeys collects every key matching pattern via incremental SCAN.
func scanKeys(ctx context.Context, client *redis.Client, pattern string) ([]string, error) {
	var keys []string
	var cursor uint64
	for {
		batch, next, err := client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return nil, err
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			return keys, nil
		}
	}
}
