package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
)

func setupRedisCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	c, err := NewRedisCache(RedisOptions{Addr: mr.Addr(), KeyPrefix: "pousada:stats:"})
	if err != nil {
		t.Fatalf("Failed to create redis cache: %v", err)
	}
	t.Cleanup(func() { c.Close() })

	return c, mr
}

func TestRedisCache_SetAndGet(t *testing.T) {
	c, _ := setupRedisCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "monthly", []byte(`{"jan":2}`), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, ok, err := c.Get(ctx, "monthly")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected cache hit")
	}
	if string(value) != `{"jan":2}` {
		t.Errorf("Expected stored value, got %q", value)
	}
}

func TestRedisCache_MissAndDelete(t *testing.T) {
	c, _ := setupRedisCache(t)
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "absent")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Fatal("Expected miss for absent key")
	}

	if err := c.Set(ctx, "monthly", []byte("v"), time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := c.Delete(ctx, "monthly"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, ok, err = c.Get(ctx, "monthly")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Fatal("Expected miss after delete")
	}
}

func TestRedisCache_Expiry(t *testing.T) {
	c, mr := setupRedisCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "monthly", []byte("v"), time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	mr.FastForward(2 * time.Second)

	_, ok, err := c.Get(ctx, "monthly")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Fatal("Expected expired entry to miss")
	}
}
