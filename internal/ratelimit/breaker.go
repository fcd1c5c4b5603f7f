package ratelimit

import (
	"sync"
	"time"
)

// breaker tracks consecutive primary-counter errors. After enough failures
// the limiter serves from the in-memory fallback; once the cooldown elapses
// the next request probes the primary again, and a success closes the
// breaker.
type breaker struct {
	mu       sync.Mutex
	open     bool
	failures int
	openedAt time.Time

	failureThreshold int
	cooldown         time.Duration
}

func newBreaker() *breaker {
	return &breaker{
		failureThreshold: 5,
		cooldown:         30 * time.Second,
	}
}

// allowPrimary reports whether the primary counter should be attempted.
func (b *breaker) allowPrimary() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.open {
		return true
	}
	// Half-open probe after the cooldown.
	return time.Since(b.openedAt) >= b.cooldown
}

func (b *breaker) recordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures++
	if b.failures >= b.failureThreshold {
		if !b.open {
			b.open = true
		}
		b.openedAt = time.Now()
	}
}

func (b *breaker) recordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.open = false
	b.failures = 0
}
