package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return New(client, time.Hour, testLogger()), mr
}

func TestCache_RoundTrip(t *testing.T) {
	c, _ := setupTestCache(t)
	ctx := context.Background()

	type payload struct {
		Title string   `json:"title"`
		Langs []string `json:"langs"`
	}

	key := Key("video_data", []any{"dQw4w9WgXcQ"}, nil)
	want := payload{Title: "Test", Langs: []string{"en", "es"}}

	if !c.Put(ctx, key, want, 0) {
		t.Fatal("Put failed")
	}

	var got payload
	if !c.GetJSON(ctx, key, &got) {
		t.Fatal("GetJSON missed immediately after Put")
	}
	if got.Title != want.Title || len(got.Langs) != 2 {
		t.Errorf("GetJSON = %+v, want %+v", got, want)
	}
}

func TestCache_GetMiss(t *testing.T) {
	c, _ := setupTestCache(t)

	if _, ok := c.Get(context.Background(), Key("op", []any{"absent"}, nil)); ok {
		t.Error("Get returned ok for a key that was never stored")
	}
}

func TestCache_PutUsesDefaultTTL(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	key := Key("op", []any{"x"}, nil)
	c.Put(ctx, key, "value", 0)

	if ttl := mr.TTL(key); ttl != time.Hour {
		t.Errorf("TTL = %v, want default %v", ttl, time.Hour)
	}
}

func TestCache_EntryExpires(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	key := Key("op", []any{"x"}, nil)
	c.Put(ctx, key, "value", time.Minute)

	mr.FastForward(2 * time.Minute)

	if _, ok := c.Get(ctx, key); ok {
		t.Error("Get hit after TTL elapsed")
	}
}

func TestCache_Invalidate(t *testing.T) {
	c, _ := setupTestCache(t)
	ctx := context.Background()

	key := Key("op", []any{"x"}, nil)
	c.Put(ctx, key, "value", 0)

	if !c.Invalidate(ctx, key) {
		t.Fatal("Invalidate failed")
	}
	if _, ok := c.Get(ctx, key); ok {
		t.Error("Get hit after Invalidate")
	}
}

func TestCache_ClearNamespace(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	c.Put(ctx, Key("op", []any{"a"}, nil), "1", 0)
	c.Put(ctx, Key("op", []any{"b"}, nil), "2", 0)

	// A foreign key outside the cache namespace must survive.
	mr.Set("ytapi:transcript:dQw4w9WgXcQ", "stored transcript")

	if deleted := c.ClearNamespace(ctx); deleted != 2 {
		t.Errorf("ClearNamespace = %d, want 2", deleted)
	}
	if _, err := mr.Get("ytapi:transcript:dQw4w9WgXcQ"); err != nil {
		t.Error("ClearNamespace deleted a key outside its namespace")
	}

	// Idempotent: a second clear reports zero deletions.
	if deleted := c.ClearNamespace(ctx); deleted != 0 {
		t.Errorf("second ClearNamespace = %d, want 0", deleted)
	}
}

func TestCache_Stats(t *testing.T) {
	c, _ := setupTestCache(t)
	ctx := context.Background()

	key := Key("op", []any{"x"}, nil)
	c.Get(ctx, key) // miss
	c.Put(ctx, key, "value", 0)
	c.Get(ctx, key) // hit

	stats := c.Stats(ctx)
	if !stats.Enabled || !stats.Connected {
		t.Fatalf("Stats = %+v, want enabled and connected", stats)
	}
	if stats.KeyCount != 1 {
		t.Errorf("KeyCount = %d, want 1", stats.KeyCount)
	}
	if stats.Hits != 1 || stats.Misses != 1 {
		t.Errorf("Hits/Misses = %d/%d, want 1/1", stats.Hits, stats.Misses)
	}
	if stats.TTLSecs != 3600 {
		t.Errorf("TTLSecs = %d, want 3600", stats.TTLSecs)
	}
}

func TestCache_DisabledBackend(t *testing.T) {
	c := New(nil, time.Hour, testLogger())
	ctx := context.Background()

	key := Key("op", []any{"x"}, nil)

	if c.Enabled() {
		t.Error("Enabled() = true for nil client")
	}
	if c.Ping(ctx) {
		t.Error("Ping() = true for nil client")
	}
	if _, ok := c.Get(ctx, key); ok {
		t.Error("Get returned ok on disabled backend")
	}
	if c.Put(ctx, key, "value", 0) {
		t.Error("Put returned true on disabled backend")
	}
	if c.Invalidate(ctx, key) {
		t.Error("Invalidate returned true on disabled backend")
	}
	if deleted := c.ClearNamespace(ctx); deleted != 0 {
		t.Errorf("ClearNamespace = %d on disabled backend, want 0", deleted)
	}
	if stats := c.Stats(ctx); stats.Enabled || stats.Connected {
		t.Errorf("Stats = %+v on disabled backend, want disabled", stats)
	}
}

func TestCache_BackendGone(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	key := Key("op", []any{"x"}, nil)
	c.Put(ctx, key, "value", 0)
	mr.Close()

	// Every operation degrades to its failure result, none panic or error.
	if _, ok := c.Get(ctx, key); ok {
		t.Error("Get returned ok with backend down")
	}
	if c.Put(ctx, key, "value", 0) {
		t.Error("Put returned true with backend down")
	}
	if c.ClearNamespace(ctx) != 0 {
		t.Error("ClearNamespace deleted keys with backend down")
	}
	if stats := c.Stats(ctx); stats.Connected {
		t.Error("Stats reported connected with backend down")
	}
}
