package cache

import (
	"testing"
	"time"
)

func TestMemoryPutGet(t *testing.T) {
	m := NewMemory(time.Minute, time.Minute)
	if _, ok := m.Get("missing"); ok {
		t.Fatal("expected miss for unknown key")
	}
	m.Put("query|curated|10", []string{"a", "b"})
	got, ok := m.Get("query|curated|10")
	if !ok {
		t.Fatal("expected hit after put")
	}
	values, ok := got.([]string)
	if !ok || len(values) != 2 {
		t.Fatalf("unexpected cached value: %#v", got)
	}
}

func TestMemoryExpiry(t *testing.T) {
	m := NewMemory(10*time.Millisecond, time.Minute)
	m.Put("k", 1)
	time.Sleep(30 * time.Millisecond)
	if _, ok := m.Get("k"); ok {
		t.Fatal("expected entry to expire")
	}
}
