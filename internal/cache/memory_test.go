package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryRoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryWithClock(func() time.Time { return now })
	ctx := context.Background()

	if err := store.Set(ctx, "games-2025-6", "<html>", 3*time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	now = now.Add(time.Minute)
	entry, err := store.Get(ctx, "games-2025-6")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if entry == nil {
		t.Fatal("expected a hit within the TTL")
	}
	if entry.Payload != "<html>" {
		t.Errorf("payload = %q", entry.Payload)
	}
	if entry.Age != time.Minute {
		t.Errorf("age = %v, expected 1m", entry.Age)
	}
	if entry.Remaining != 2*time.Minute {
		t.Errorf("remaining = %v, expected 2m", entry.Remaining)
	}
}

func TestMemoryExpiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryWithClock(func() time.Time { return now })
	ctx := context.Background()

	store.Set(ctx, "k", "v", time.Minute)

	now = now.Add(time.Minute)
	entry, err := store.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if entry != nil {
		t.Error("entry at exactly TTL age should be expired")
	}
}

func TestMemoryMiss(t *testing.T) {
	store := NewMemory()
	entry, err := store.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if entry != nil {
		t.Error("expected nil entry for an absent key")
	}
}

func TestMemoryLastWriterWins(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryWithClock(func() time.Time { return now })
	ctx := context.Background()

	store.Set(ctx, "k", "first", time.Minute)
	store.Set(ctx, "k", "second", time.Hour)

	entry, _ := store.Get(ctx, "k")
	if entry == nil || entry.Payload != "second" {
		t.Fatalf("entry = %+v, expected the second write", entry)
	}
	if entry.Remaining != time.Hour {
		t.Errorf("remaining = %v, expected the second TTL", entry.Remaining)
	}
}
