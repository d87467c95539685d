package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestLimiterFirstCallIsImmediate(t *testing.T) {
	l := New(time.Hour)

	start := time.Now()
	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("first call should not wait, waited %s", elapsed)
	}

	if l.LastCallAt().IsZero() {
		t.Fatalf("expected last call time to be recorded")
	}
}

func TestLimiterSpacesConsecutiveCalls(t *testing.T) {
	const interval = 60 * time.Millisecond
	l := New(interval)

	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	first := l.LastCallAt()

	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second := l.LastCallAt()

	// rate.Limiter refills continuously; allow a little scheduling slack.
	if gap := second.Sub(first); gap < interval-10*time.Millisecond {
		t.Fatalf("expected calls to be spaced by ~%s, got %s", interval, gap)
	}
}

func TestLimiterSerializesConcurrentCallers(t *testing.T) {
	const interval = 30 * time.Millisecond
	const callers = 4
	l := New(interval)

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(callers)
	for range callers {
		go func() {
			defer wg.Done()
			if err := l.Wait(context.Background()); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	minTotal := time.Duration(callers-1) * interval
	if elapsed := time.Since(start); elapsed < minTotal-15*time.Millisecond {
		t.Fatalf("expected %d callers to take at least ~%s, took %s", callers, minTotal, elapsed)
	}
}

func TestLimiterHonoursContext(t *testing.T) {
	l := New(time.Hour)
	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx); err == nil {
		t.Fatal("expected context error while waiting for the next slot")
	}
}

func TestLimiterDisabled(t *testing.T) {
	l := New(0)
	start := time.Now()
	for range 5 {
		if err := l.Wait(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Fatalf("disabled limiter should not wait, waited %s", elapsed)
	}

	var nilLimiter *Limiter
	if err := nilLimiter.Wait(context.Background()); err != nil {
		t.Fatalf("nil limiter should be a no-op: %v", err)
	}
}
