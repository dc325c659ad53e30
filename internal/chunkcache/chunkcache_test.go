package chunkcache

import (
	"testing"
	"time"
)

func TestGetPutRoundTrip(t *testing.T) {
	c, err := New(time.Minute)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	raw := []byte("compressed-bytes")
	if _, ok := c.Get(raw); ok {
		t.Fatal("expected miss on empty cache")
	}
	c.Put(raw, []byte("payload"))
	got, ok := c.Get(raw)
	if !ok || string(got) != "payload" {
		t.Fatalf("want hit with payload, got %q ok=%v", got, ok)
	}
}

func TestNilCacheIsNoop(t *testing.T) {
	var c *Cache
	if _, ok := c.Get([]byte("x")); ok {
		t.Fatal("nil cache must always miss")
	}
	c.Put([]byte("x"), []byte("y")) // must not panic
}
