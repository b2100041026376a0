package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T, ttl time.Duration) (*DetailCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewWithClient(rdb, ttl, nil), mr
}

func TestDetailCache_RoundTrip(t *testing.T) {
	c, _ := newTestCache(t, time.Hour)
	ctx := context.Background()

	if _, ok := c.Get(ctx, "p1"); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Set(ctx, "p1", []byte(`{"id":"p1"}`))

	payload, ok := c.Get(ctx, "p1")
	if !ok {
		t.Fatal("expected hit after set")
	}
	if string(payload) != `{"id":"p1"}` {
		t.Fatalf("unexpected payload: %s", payload)
	}
}

func TestDetailCache_TTLExpiry(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	c.Set(ctx, "p1", []byte(`{}`))
	mr.FastForward(2 * time.Minute)

	if _, ok := c.Get(ctx, "p1"); ok {
		t.Fatal("expected miss after TTL expiry")
	}
}

func TestDetailCache_NilCacheIsDisabled(t *testing.T) {
	var c *DetailCache
	ctx := context.Background()

	c.Set(ctx, "p1", []byte(`{}`))
	if _, ok := c.Get(ctx, "p1"); ok {
		t.Fatal("nil cache must always miss")
	}
	if err := c.Close(); err != nil {
		t.Fatalf("nil cache close failed: %v", err)
	}
}

func TestNew_EmptyURLDisablesCache(t *testing.T) {
	c, err := New("", time.Hour, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != nil {
		t.Fatal("expected nil cache for empty redis URL")
	}
}

func TestDetailCache_EmptyIDIgnored(t *testing.T) {
	c, _ := newTestCache(t, time.Hour)
	ctx := context.Background()

	c.Set(ctx, "", []byte(`{}`))
	if _, ok := c.Get(ctx, ""); ok {
		t.Fatal("empty id must never hit")
	}
}
