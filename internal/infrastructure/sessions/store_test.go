package sessions

import (
	"context"
	"testing"
	"time"

	"visioneer-server/internal/domain/editsession"
)

func TestMemoryStorePutGet(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	session := &editsession.Session{
		PublicID: "sess_abc123",
		UserID:   7,
		ImageURL: "https://images.test/board.png",
	}
	if err := store.Put(ctx, session); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, ok := store.Get(ctx, "sess_abc123")
	if !ok {
		t.Fatal("Get() missed a stored session")
	}
	if got.UserID != 7 || got.ImageURL != session.ImageURL {
		t.Errorf("Get() = %+v", got)
	}

	if _, ok := store.Get(ctx, "sess_missing"); ok {
		t.Error("Get() hit an unknown session")
	}
}

func TestMemoryStoreTTLRefreshedOnPut(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStoreWithClock(time.Hour, func() time.Time { return current })
	ctx := context.Background()

	session := &editsession.Session{PublicID: "sess_abc123"}
	store.Put(ctx, session)

	// A write 50 minutes in extends the session another hour.
	current = current.Add(50 * time.Minute)
	store.Put(ctx, session)
	current = current.Add(50 * time.Minute)

	if _, ok := store.Get(ctx, "sess_abc123"); !ok {
		t.Error("session expired even though the last write was 50m ago")
	}

	current = current.Add(11 * time.Minute)
	if _, ok := store.Get(ctx, "sess_abc123"); ok {
		t.Error("session survived past its TTL")
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	store.Put(ctx, &editsession.Session{PublicID: "sess_abc123"})
	store.Delete(ctx, "sess_abc123")
	if _, ok := store.Get(ctx, "sess_abc123"); ok {
		t.Error("Get() hit a deleted session")
	}

	// Deleting twice is a no-op.
	store.Delete(ctx, "sess_abc123")
}

func TestMemoryStorePrune(t *testing.T) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryStoreWithClock(time.Hour, func() time.Time { return current })
	ctx := context.Background()

	store.Put(ctx, &editsession.Session{PublicID: "sess_old"})
	current = current.Add(2 * time.Hour)
	store.Put(ctx, &editsession.Session{PublicID: "sess_new"})

	if removed := store.Prune(); removed != 1 {
		t.Errorf("Prune() = %d, want 1", removed)
	}
	if _, ok := store.Get(ctx, "sess_new"); !ok {
		t.Error("Prune() removed a live session")
	}
}
