package engine

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestCacheKey(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		k1 := CacheKey("summary", "gemini-2.5-pro", "abc123")
		k2 := CacheKey("summary", "gemini-2.5-pro", "abc123")
		if k1 != k2 {
			t.Errorf("CacheKey not deterministic: %q != %q", k1, k2)
		}
	})

	t.Run("different inputs differ", func(t *testing.T) {
		k1 := CacheKey("summary", "m", "abc")
		k2 := CacheKey("summary", "m", "xyz")
		if k1 == k2 {
			t.Errorf("different inputs produced same key: %q", k1)
		}
	})

	t.Run("has prefix", func(t *testing.T) {
		k := CacheKey("test")
		if k[:3] != "ys:" {
			t.Errorf("expected ys: prefix, got %q", k[:3])
		}
	})
}

func TestCacheDisabled(t *testing.T) {
	c := NewCache("", 0, 100, time.Minute)
	if c != nil {
		t.Fatal("expected nil cache for zero TTL")
	}
	ctx := context.Background()
	c.Set(ctx, "k", &Summary{TopicName: "a"})
	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("nil cache should never hit")
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close on nil cache: %v", err)
	}
}

func TestCacheGetSet(t *testing.T) {
	c := NewCache("", time.Minute, 100, 5*time.Minute)
	defer c.Close()

	ctx := context.Background()
	key := CacheKey("test", "round-trip")

	if _, ok := c.Get(ctx, key); ok {
		t.Error("expected cache miss on empty cache")
	}

	c.Set(ctx, key, &Summary{TopicName: "t", TopicSummary: "hello"})

	got, ok := c.Get(ctx, key)
	if !ok {
		t.Fatal("expected cache hit after set")
	}
	if got.TopicSummary != "hello" {
		t.Errorf("got summary %q, want %q", got.TopicSummary, "hello")
	}
}

func TestCacheExpiry(t *testing.T) {
	c := NewCache("", 10*time.Millisecond, 100, time.Hour)
	defer c.Close()

	ctx := context.Background()
	c.Set(ctx, "k", &Summary{TopicName: "a"})
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get(ctx, "k"); ok {
		t.Error("expected miss after TTL")
	}
}

func TestCacheEviction(t *testing.T) {
	c := NewCache("", time.Minute, 5, time.Hour)
	defer c.Close()

	ctx := context.Background()
	for i := range 10 {
		c.Set(ctx, fmt.Sprintf("k%d", i), &Summary{TopicName: fmt.Sprint(i)})
		time.Sleep(time.Millisecond) // distinct expiry times
	}

	if n := c.Len(); n > 5 {
		t.Errorf("cache holds %d entries, want <= 5", n)
	}
	if _, ok := c.Get(ctx, "k9"); !ok {
		t.Error("newest entry should survive eviction")
	}
	if _, ok := c.Get(ctx, "k0"); ok {
		t.Error("oldest entry should be evicted")
	}
}
