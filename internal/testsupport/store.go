package testsupport

import (
	"context"
	"testing"

	"apngforge/internal/config"
	"apngforge/internal/queue"
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

// AddSpec enqueues a spec path for tests using the provided store.
func AddSpec(t testing.TB, store *queue.Store, specPath string) *queue.Item {
	t.Helper()

	item, err := store.Add(context.Background(), specPath)
	if err != nil {
		t.Fatalf("store.Add: %v", err)
	}
	return item
}
