package cache

// Cache stores previously computed values keyed by string. Implementations
// must be safe for concurrent use.
type Cache interface {
	Get(key string) (any, bool)
	Put(key string, value any)
}
