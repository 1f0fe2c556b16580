// Package worker runs the debounced push of the local store to the remote
// replica. Sync requests arrive faster than pushes should happen; the worker
// coalesces a burst of triggers into a single snapshot push.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"kakeibo/internal/remote"
	"kakeibo/internal/storage"
)

type SyncWorker struct {
	store    storage.Store
	remote   remote.SnapshotStore
	debounce time.Duration

	trigger chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewSyncWorker(store storage.Store, remoteStore remote.SnapshotStore, debounce time.Duration) *SyncWorker {
	if debounce <= 0 {
		debounce = time.Second
	}
	return &SyncWorker{
		store:    store,
		remote:   remoteStore,
		debounce: debounce,
		trigger:  make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Trigger requests a push. Calls during the debounce window fold into the
// pending one; Trigger never blocks.
func (w *SyncWorker) Trigger() {
	select {
	case w.trigger <- struct{}{}:
	default:
	}
}

// Start launches the worker loop. Stop shuts it down and waits for any
// in-flight push to finish.
func (w *SyncWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *SyncWorker) Stop() {
	close(w.stopCh)
	<-w.doneCh
}

func (w *SyncWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			// Flush so a trigger right before shutdown is not lost,
			// including one still sitting in the channel.
			select {
			case <-w.trigger:
				pending = true
			default:
			}
			if pending {
				w.push(ctx)
			}
			return
		case <-w.trigger:
			if pending {
				if !timer.Stop() {
					<-timer.C
				}
			}
			timer.Reset(w.debounce)
			pending = true
		case <-timer.C:
			pending = false
			w.push(ctx)
		}
	}
}

func (w *SyncWorker) push(ctx context.Context) {
	snap, err := w.store.LoadSnapshot(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to load snapshot for sync", "error", err)
		return
	}
	if err := w.remote.PushSnapshot(ctx, snap); err != nil {
		slog.ErrorContext(ctx, "Failed to push snapshot", "error", err)
		return
	}
	slog.InfoContext(ctx, "Snapshot pushed",
		"transactions", len(snap.Transactions),
		"methods", len(snap.Methods))
}

// Seed pulls the remote snapshot into an empty local store. A non-empty
// local store wins; the local copy is authoritative.
func (w *SyncWorker) Seed(ctx context.Context) error {
	transactions, err := w.store.LoadTransactions(ctx)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}
	if len(transactions) > 0 {
		return nil
	}

	snap, err := w.remote.PullSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("pull snapshot: %w", err)
	}
	if len(snap.Transactions) == 0 && len(snap.Methods) == 0 {
		return nil
	}

	if err := w.store.SaveTransactions(ctx, snap.Transactions); err != nil {
		return fmt.Errorf("save transactions: %w", err)
	}
	if err := w.store.SaveMethods(ctx, snap.Methods); err != nil {
		return fmt.Errorf("save methods: %w", err)
	}
	if err := w.store.SaveSettings(ctx, snap.Settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	slog.InfoContext(ctx, "Seeded local store from remote",
		"transactions", len(snap.Transactions))
	return nil
}
