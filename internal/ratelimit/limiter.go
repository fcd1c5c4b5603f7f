// Package ratelimit bounds how often a client can run the submission
// pipeline. Counting is fixed-window per client key, shared across instances
// through Redis when available, with an in-memory fallback behind a circuit
// breaker so limiting degrades rather than blocking submissions.
package ratelimit

import (
	"context"
	"log/slog"
	"time"
)

// Result is the limiter's verdict for one request.
type Result struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
	// Degraded marks verdicts served from the fallback counter.
	Degraded bool
}

// Limiter applies a fixed-window limit per client key.
type Limiter struct {
	primary  Counter
	fallback Counter
	breaker  *breaker
	limit    int64
	window   time.Duration
	logger   *slog.Logger
}

// NewLimiter builds a limiter allowing limit requests per window per key.
// primary may be nil; the in-memory fallback then serves every verdict.
func NewLimiter(primary Counter, limit int64, window time.Duration, logger *slog.Logger) *Limiter {
	return &Limiter{
		primary:  primary,
		fallback: NewMemoryCounter(),
		breaker:  newBreaker(),
		limit:    limit,
		window:   window,
		logger:   logger,
	}
}

// Allow counts the request and reports whether it fits the window.
func (l *Limiter) Allow(ctx context.Context, key string) Result {
	count, degraded := l.count(ctx, key)

	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:    count <= l.limit,
		Remaining:  remaining,
		RetryAfter: l.window,
		Degraded:   degraded,
	}
}

func (l *Limiter) count(ctx context.Context, key string) (int64, bool) {
	if l.primary == nil {
		count, _ := l.fallback.Incr(ctx, key, l.window)
		return count, false
	}

	if l.breaker.allowPrimary() {
		count, err := l.primary.Incr(ctx, key, l.window)
		if err == nil {
			l.breaker.recordSuccess()
			return count, false
		}
		l.breaker.recordFailure()
		l.logger.WarnContext(ctx, "rate limit counter failed, using fallback",
			"key", key,
			"error", err,
		)
	}

	count, _ := l.fallback.Incr(ctx, key, l.window)
	return count, true
}
