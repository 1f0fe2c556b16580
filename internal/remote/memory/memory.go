// Package memory is an in-process SnapshotStore for tests and for running
// the worker without cloud credentials.
package memory

import (
	"context"
	"sync"

	"kakeibo/internal/storage"
)

type Store struct {
	mu     sync.Mutex
	snap   storage.Snapshot
	pushes int
}

func New() *Store {
	return &Store{}
}

func (s *Store) PushSnapshot(ctx context.Context, snap storage.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
	s.pushes++
	return nil
}

func (s *Store) PullSnapshot(ctx context.Context) (storage.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap, nil
}

// Pushes reports how many snapshots were pushed. Used by debounce tests.
func (s *Store) Pushes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pushes
}

func (s *Store) Close() error { return nil }
