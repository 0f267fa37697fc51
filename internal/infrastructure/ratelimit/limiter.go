package ratelimit

import (
	"sync"
	"time"
)

// Result reports a limiter decision. RetryAfter is only meaningful when
// Allowed is false.
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter is a sliding-window rate limiter keyed by caller identity.
// Implementations must be safe for concurrent use.
type Limiter interface {
	// Allow records one hit for key and reports whether it stays within
	// limit hits per window.
	Allow(key string, limit int, window time.Duration) Result

	// Prune drops keys whose entire history fell out of the largest
	// window seen and reports how many were removed.
	Prune() int
}

// MemoryLimiter keeps per-key hit timestamps in memory.
type MemoryLimiter struct {
	mu        sync.Mutex
	hits      map[string][]time.Time
	maxWindow time.Duration
	now       func() time.Time
}

// NewMemoryLimiter creates an empty limiter.
func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{
		hits: make(map[string][]time.Time),
		now:  time.Now,
	}
}

// NewMemoryLimiterWithClock creates a limiter with an injected clock for
// testing.
func NewMemoryLimiterWithClock(now func() time.Time) *MemoryLimiter {
	limiter := NewMemoryLimiter()
	limiter.now = now
	return limiter
}

func (l *MemoryLimiter) Allow(key string, limit int, window time.Duration) Result {
	if limit <= 0 {
		return Result{Allowed: false, RetryAfter: window}
	}

	now := l.now()
	cutoff := now.Add(-window)

	l.mu.Lock()
	defer l.mu.Unlock()

	if window > l.maxWindow {
		l.maxWindow = window
	}

	history := l.hits[key]
	fresh := history[:0]
	for _, hit := range history {
		if hit.After(cutoff) {
			fresh = append(fresh, hit)
		}
	}

	if len(fresh) >= limit {
		l.hits[key] = fresh
		// The window slides; the caller may retry once the oldest
		// surviving hit ages out.
		return Result{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: fresh[0].Add(window).Sub(now),
		}
	}

	fresh = append(fresh, now)
	l.hits[key] = fresh
	return Result{Allowed: true, Remaining: limit - len(fresh)}
}

func (l *MemoryLimiter) Prune() int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := now.Add(-l.maxWindow)
	removed := 0
	for key, history := range l.hits {
		if len(history) == 0 || !history[len(history)-1].After(cutoff) {
			delete(l.hits, key)
			removed++
		}
	}
	return removed
}

var _ Limiter = (*MemoryLimiter)(nil)
