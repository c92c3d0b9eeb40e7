package testsupport

import (
	"context"
	"testing"

	"reelforge/internal/config"
	"reelforge/internal/queue"
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

// NewProject creates a project for tests using the provided store.
func NewProject(t testing.TB, store *queue.Store, topic string) *queue.Project {
	t.Helper()

	project, err := store.NewProject(context.Background(), topic)
	if err != nil {
		t.Fatalf("store.NewProject: %v", err)
	}
	return project
}
