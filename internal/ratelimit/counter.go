package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Counter increments a fixed-window request count and reports the running
// total for the current window.
type Counter interface {
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
}

// RedisCounter counts in Redis so the limit holds across instances.
type RedisCounter struct {
	client *redis.Client
}

func NewRedisCounter(client *redis.Client) *RedisCounter {
	return &RedisCounter{client: client}
}

func (c *RedisCounter) Incr(ctx context.Context, key string, window time.Duration) (int64, error) {
	pipe := c.client.TxPipeline()
	count := pipe.Incr(ctx, key)
	// Reset alongside the window. NX keeps the original expiry when the key
	// already exists mid-window.
	pipe.ExpireNX(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return count.Val(), nil
}

// MemoryCounter is the single-instance fallback used when Redis is absent or
// unreachable.
type MemoryCounter struct {
	mu      sync.Mutex
	windows map[string]*window
}

type window struct {
	count   int64
	resetAt time.Time
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{windows: make(map[string]*window)}
}

func (c *MemoryCounter) Incr(_ context.Context, key string, size time.Duration) (int64, error) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	w, ok := c.windows[key]
	if !ok || now.After(w.resetAt) {
		w = &window{resetAt: now.Add(size)}
		c.windows[key] = w
	}
	w.count++
	return w.count, nil
}
