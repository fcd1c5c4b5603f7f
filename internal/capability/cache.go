package capability

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachingExtractor memoizes OCR output in Redis keyed by the file content
// hash. Extraction dominates submission latency and resubmissions reuse the
// same scans, so hits are common. A nil client or any Redis error falls back
// to the wrapped extractor; the cache is an optimization, never a gate.
type CachingExtractor struct {
	inner  TextExtractor
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachingExtractor(inner TextExtractor, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachingExtractor {
	return &CachingExtractor{inner: inner, client: client, ttl: ttl, logger: logger}
}

func (c *CachingExtractor) Extract(ctx context.Context, file []byte) (string, error) {
	if c.client == nil {
		return c.inner.Extract(ctx, file)
	}

	key := cacheKey(file)
	if cached, err := c.client.Get(ctx, key).Result(); err == nil {
		return cached, nil
	} else if err != redis.Nil {
		c.warn(ctx, "ocr cache read failed", "error", err)
	}

	text, err := c.inner.Extract(ctx, file)
	if err != nil {
		return "", err
	}
	if text != "" {
		if err := c.client.Set(ctx, key, text, c.ttl).Err(); err != nil {
			c.warn(ctx, "ocr cache write failed", "error", err)
		}
	}
	return text, nil
}

func cacheKey(file []byte) string {
	sum := sha256.Sum256(file)
	return "trustscore:ocr:" + hex.EncodeToString(sum[:])
}

func (c *CachingExtractor) warn(ctx context.Context, msg string, args ...any) {
	if c.logger != nil {
		c.logger.WarnContext(ctx, msg, args...)
	}
}
