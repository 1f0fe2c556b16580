// Package remote defines the port for pushing the local store to a cloud
// replica. The replica is a mirror for multi-device access; the local store
// stays authoritative.
package remote

import (
	"context"

	"kakeibo/internal/storage"
)

// SnapshotStore mirrors the full store state to a remote location.
type SnapshotStore interface {
	// PushSnapshot overwrites the remote copy with the given state.
	PushSnapshot(ctx context.Context, snap storage.Snapshot) error
	// PullSnapshot fetches the remote copy, for seeding a new device.
	PullSnapshot(ctx context.Context) (storage.Snapshot, error)
	Close() error
}
