package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewClient connects to Redis using a connection URL. A missing URL or a
// failed liveness probe yields a nil client, which disables both the cache
// and the storage layers rather than failing startup.
func NewClient(ctx context.Context, url string, logger *slog.Logger) *redis.Client {
	if url == "" {
		logger.Info("redis disabled", slog.String("reason", "REDIS_URL not set"))
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		logger.Warn("invalid redis URL, caching disabled", slog.Any("error", err))
		return nil
	}
	opts.DialTimeout = 5 * time.Second

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis connection failed, caching disabled", slog.Any("error", err))
		client.Close()
		return nil
	}

	logger.Info("redis connected")
	return client
}
