// Package ratelimit provides a minimum-interval rate limiter for outbound
// remote calls.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is the minimum spacing between taxonomy service calls.
const DefaultInterval = 120 * time.Millisecond

// Limiter gates access to a rate-limited resource. Acquire blocks until the
// caller may proceed or the context is done.
type Limiter interface {
	Acquire(ctx context.Context) error
}

// IntervalLimiter enforces a minimum interval between successive calls.
// It is safe for concurrent use; callers are released one at a time in
// lock-acquisition order.
type IntervalLimiter struct {
	mu       sync.Mutex
	interval time.Duration
	last     time.Time
}

// NewIntervalLimiter creates a limiter with the given minimum interval.
// Non-positive intervals fall back to DefaultInterval.
func NewIntervalLimiter(interval time.Duration) *IntervalLimiter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &IntervalLimiter{interval: interval}
}

// Acquire blocks until at least the configured interval has passed since the
// previous successful Acquire. Returns the context error if ctx is cancelled
// while waiting, in which case the slot is not consumed.
func (l *IntervalLimiter) Acquire(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	wait := l.interval - now.Sub(l.last)
	if wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	l.last = time.Now()
	return nil
}

// Unlimited is a Limiter that never blocks. Useful in tests and for
// cache-only pipelines that make no remote calls.
type Unlimited struct{}

// Acquire returns immediately.
func (Unlimited) Acquire(_ context.Context) error { return nil }
