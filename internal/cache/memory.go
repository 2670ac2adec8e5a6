package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Memory is an in-process Cache with per-entry TTL eviction.
type Memory struct {
	inner *gocache.Cache
}

var _ Cache = (*Memory)(nil)

// NewMemory creates a memory cache whose entries expire after ttl. Expired
// entries are purged every cleanupInterval.
func NewMemory(ttl, cleanupInterval time.Duration) *Memory {
	return &Memory{inner: gocache.New(ttl, cleanupInterval)}
}

func (m *Memory) Get(key string) (any, bool) {
	return m.inner.Get(key)
}

func (m *Memory) Put(key string, value any) {
	m.inner.SetDefault(key, value)
}
