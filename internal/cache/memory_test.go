package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	current := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return current }
	c := NewMemoryCache(time.Minute, 8, clock)
	ctx := context.Background()

	if err := c.Set(ctx, "stats", []byte(`{"total":3}`), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, ok, err := c.Get(ctx, "stats")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected cache hit")
	}
	if string(value) != `{"total":3}` {
		t.Errorf("Expected stored value, got %q", value)
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	current := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return current }
	c := NewMemoryCache(time.Minute, 8, clock)
	ctx := context.Background()

	if err := c.Set(ctx, "stats", []byte("v"), 30*time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	current = current.Add(31 * time.Second)

	_, ok, err := c.Get(ctx, "stats")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Fatal("Expected expired entry to miss")
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewMemoryCache(time.Minute, 8, nil)
	ctx := context.Background()

	if err := c.Set(ctx, "stats", []byte("v"), 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := c.Delete(ctx, "stats"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, ok, err := c.Get(ctx, "stats")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Fatal("Expected miss after delete")
	}
}

func TestMemoryCache_EvictsWhenFull(t *testing.T) {
	c := NewMemoryCache(time.Minute, 2, nil)
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, key, []byte(key), 0); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	hits := 0
	for _, key := range []string{"a", "b", "c"} {
		if _, ok, _ := c.Get(ctx, key); ok {
			hits++
		}
	}
	if hits > 2 {
		t.Errorf("Expected at most 2 live entries, got %d", hits)
	}
}
