package cache

import (
	"testing"
	"time"
)

func TestMemoryStoreGetSet(t *testing.T) {
	store := NewMemoryStore(time.Minute)

	if _, ok := store.Get("missing"); ok {
		t.Error("Get() on empty store reported a hit")
	}

	store.Set("concept", "a noir alleyway at dusk")
	got, ok := store.Get("concept")
	if !ok {
		t.Fatal("Get() missed a freshly set key")
	}
	if got != "a noir alleyway at dusk" {
		t.Errorf("Get() = %q", got)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStoreWithClock(10*time.Minute, func() time.Time { return current })

	store.Set("concept", "value")

	current = current.Add(9 * time.Minute)
	if _, ok := store.Get("concept"); !ok {
		t.Error("entry expired before its TTL")
	}

	current = current.Add(2 * time.Minute)
	if _, ok := store.Get("concept"); ok {
		t.Error("entry survived past its TTL")
	}
}

func TestMemoryStoreOverwriteResetsTTL(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStoreWithClock(10*time.Minute, func() time.Time { return current })

	store.Set("concept", "old")
	current = current.Add(8 * time.Minute)
	store.Set("concept", "new")
	current = current.Add(8 * time.Minute)

	got, ok := store.Get("concept")
	if !ok {
		t.Fatal("overwrite did not reset the TTL")
	}
	if got != "new" {
		t.Errorf("Get() = %q, want %q", got, "new")
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	store.Set("concept", "value")
	store.Delete("concept")
	if _, ok := store.Get("concept"); ok {
		t.Error("Get() hit a deleted key")
	}

	// Deleting a missing key is a no-op.
	store.Delete("missing")
}

func TestMemoryStorePrune(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStoreWithClock(10*time.Minute, func() time.Time { return current })

	store.Set("stale-1", "a")
	store.Set("stale-2", "b")
	current = current.Add(11 * time.Minute)
	store.Set("fresh", "c")

	if removed := store.Prune(); removed != 2 {
		t.Errorf("Prune() = %d, want 2", removed)
	}
	if _, ok := store.Get("fresh"); !ok {
		t.Error("Prune() removed a fresh entry")
	}
}
