package storage

import (
	"fmt"
	"log/slog"
)

// BackendType selects a Store implementation.
type BackendType string

const (
	MemoryBackend BackendType = "memory"
	SQLiteBackend BackendType = "sqlite"
)

func (bt BackendType) IsValid() bool {
	switch bt {
	case MemoryBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// Open creates the configured Store.
func Open(backend BackendType, sqlitePath string) (Store, error) {
	switch backend {
	case SQLiteBackend:
		store, err := NewSQLiteStore(sqlitePath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		slog.Info("Initialized sqlite store", "db_path", sqlitePath)
		return store, nil
	case MemoryBackend:
		slog.Info("Initialized memory store")
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", backend)
	}
}
