// Package cache defines the response cache abstraction injected into catalog
// clients.
//
// The original service kept per-client in-memory maps keyed by query string;
// here the cache is an explicit dependency owned by the caller, so tests can
// drop it entirely and long-running processes can bound memory with TTLs.
package cache
