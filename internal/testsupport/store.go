package testsupport

import (
	"context"
	"testing"

	"audiomatch/internal/config"
	"audiomatch/internal/queue"
)

// MustOpenStore opens a queue.Store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *queue.Store {
	t.Helper()

	store, err := queue.Open(cfg)
	if err != nil {
		t.Fatalf("queue.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// AddTrack creates a pending track request for tests using the provided store.
func AddTrack(t testing.TB, store *queue.Store, title, artist string, durationSeconds int) *queue.Item {
	t.Helper()

	item, err := store.Add(context.Background(), title, artist, durationSeconds)
	if err != nil {
		t.Fatalf("store.Add: %v", err)
	}
	return item
}
