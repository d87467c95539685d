package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter spaces outbound AI calls so that consecutive calls are at least
// minInterval apart. Waiters are released in the order they arrived.
type Limiter struct {
	limiter *rate.Limiter

	mu         sync.Mutex
	lastCallAt time.Time
	now        func() time.Time
}

// New creates a limiter. A non-positive interval disables spacing.
func New(minInterval time.Duration) *Limiter {
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}

	return &Limiter{
		limiter: rate.NewLimiter(limit, 1),
		now:     time.Now,
	}
}

// Wait suspends the caller until the minimum spacing since the previous call
// has elapsed, then records the new call time.
func (l *Limiter) Wait(ctx context.Context) error {
	if l == nil {
		return nil
	}

	if err := l.limiter.Wait(ctx); err != nil {
		return err
	}

	l.mu.Lock()
	l.lastCallAt = l.now()
	l.mu.Unlock()

	return nil
}

// LastCallAt returns the time the most recent call was let through.
func (l *Limiter) LastCallAt() time.Time {
	if l == nil {
		return time.Time{}
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastCallAt
}
