package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestAllowWithinLimit(t *testing.T) {
	limiter := NewMemoryLimiter()

	for i := 0; i < 5; i++ {
		result := limiter.Allow("user_1", 5, time.Minute)
		if !result.Allowed {
			t.Fatalf("request %d denied within limit", i+1)
		}
		if result.Remaining != 5-(i+1) {
			t.Errorf("request %d Remaining = %d, want %d", i+1, result.Remaining, 5-(i+1))
		}
	}

	result := limiter.Allow("user_1", 5, time.Minute)
	if result.Allowed {
		t.Error("sixth request allowed, limit is 5")
	}
	if result.RetryAfter <= 0 {
		t.Errorf("RetryAfter = %v, want positive", result.RetryAfter)
	}
}

func TestAllowKeysAreIndependent(t *testing.T) {
	limiter := NewMemoryLimiter()

	for i := 0; i < 3; i++ {
		limiter.Allow("user_1", 3, time.Minute)
	}
	if limiter.Allow("user_1", 3, time.Minute).Allowed {
		t.Error("exhausted key still allowed")
	}
	if !limiter.Allow("user_2", 3, time.Minute).Allowed {
		t.Error("fresh key denied because another key is exhausted")
	}
}

func TestAllowWindowSlides(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewMemoryLimiterWithClock(func() time.Time { return current })

	// Two hits at t=0, one at t=30s.
	limiter.Allow("user_1", 3, time.Minute)
	limiter.Allow("user_1", 3, time.Minute)
	current = current.Add(30 * time.Second)
	limiter.Allow("user_1", 3, time.Minute)

	if limiter.Allow("user_1", 3, time.Minute).Allowed {
		t.Fatal("fourth hit allowed inside the window")
	}

	// 61s after the first two hits they age out. Denied attempts do
	// not count against the window.
	current = current.Add(31 * time.Second)
	result := limiter.Allow("user_1", 3, time.Minute)
	if !result.Allowed {
		t.Error("request denied after old hits left the window")
	}
}

func TestAllowRetryAfterMatchesOldestHit(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewMemoryLimiterWithClock(func() time.Time { return current })

	limiter.Allow("user_1", 1, time.Minute)
	current = current.Add(20 * time.Second)

	result := limiter.Allow("user_1", 1, time.Minute)
	if result.Allowed {
		t.Fatal("second hit allowed, limit is 1")
	}
	if result.RetryAfter != 40*time.Second {
		t.Errorf("RetryAfter = %v, want 40s", result.RetryAfter)
	}
}

func TestAllowZeroLimit(t *testing.T) {
	limiter := NewMemoryLimiter()
	if limiter.Allow("user_1", 0, time.Minute).Allowed {
		t.Error("zero limit allowed a request")
	}
}

func TestPrune(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewMemoryLimiterWithClock(func() time.Time { return current })

	limiter.Allow("stale", 10, time.Minute)
	current = current.Add(2 * time.Minute)
	limiter.Allow("fresh", 10, time.Minute)

	if removed := limiter.Prune(); removed != 1 {
		t.Errorf("Prune() = %d, want 1", removed)
	}
	// The fresh key keeps its history.
	result := limiter.Allow("fresh", 2, time.Minute)
	if result.Remaining != 0 {
		t.Errorf("fresh key Remaining = %d, want 0 after second hit", result.Remaining)
	}
}

func TestAllowConcurrentCallers(t *testing.T) {
	limiter := NewMemoryLimiter()

	const callers = 20
	var wg sync.WaitGroup
	allowed := make(chan bool, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			allowed <- limiter.Allow("shared", 10, time.Minute).Allowed
		}()
	}
	wg.Wait()
	close(allowed)

	count := 0
	for ok := range allowed {
		if ok {
			count++
		}
	}
	if count != 10 {
		t.Errorf("%d of %d concurrent requests allowed, want exactly 10", count, callers)
	}
}

func TestAllowIndependentWindows(t *testing.T) {
	limiter := NewMemoryLimiter()
	for i := 0; i < 4; i++ {
		key := fmt.Sprintf("ip:10.0.0.%d", i)
		if !limiter.Allow(key, 1, time.Minute).Allowed {
			t.Errorf("first hit for %s denied", key)
		}
	}
}
