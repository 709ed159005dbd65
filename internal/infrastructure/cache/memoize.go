package cache

import (
	"context"
	"time"

	"github.com/hszk-dev/ytapi/internal/infrastructure/metrics"
)

// Cached wraps one invocation of fn with get-or-compute-and-store semantics.
// The key is derived from prefix plus the call's arguments; on a hit fn is
// never invoked. Concurrent misses for the same key are coalesced through
// singleflight so a popular key produces a single upstream call.
//
// Errors from fn propagate unchanged and are never cached. With a disabled
// backend every call falls through to fn.
func Cached[T any](ctx context.Context, c *Cache, prefix string, ttl time.Duration, args []any, kwargs map[string]any, fn func(context.Context) (T, error)) (T, error) {
	key := Key(prefix, args, kwargs)

	var hit T
	if c.GetJSON(ctx, key, &hit) {
		return hit, nil
	}

	result, err, shared := c.sf.Do(key, func() (any, error) {
		value, err := fn(ctx)
		if err != nil {
			return nil, err
		}
		c.Put(ctx, key, value, ttl)
		return value, nil
	})

	if shared {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightShared).Inc()
	} else {
		metrics.SingleflightRequestsTotal.WithLabelValues(metrics.SingleflightInitiated).Inc()
	}

	if err != nil {
		var zero T
		return zero, err
	}
	return result.(T), nil
}

// Memoize returns a function equivalent to fn whose results are transparently
// cached under prefix for ttl. The wrapper only interposes before and after
// fn; fn's own blocking and context handling are untouched.
func Memoize[A any, T any](c *Cache, prefix string, ttl time.Duration, fn func(context.Context, A) (T, error)) func(context.Context, A) (T, error) {
	return func(ctx context.Context, arg A) (T, error) {
		return Cached(ctx, c, prefix, ttl, []any{arg}, nil, func(ctx context.Context) (T, error) {
			return fn(ctx, arg)
		})
	}
}
