// Package storage persists the ledger's three documents: the transaction
// list, the payment method list and the settings record. The model is
// deliberately read-all/write-all with a single logical writer; at this data
// scale targeted updates buy nothing and the full-list contract keeps
// re-attribution trivially correct.
package storage

import (
	"context"
	"errors"

	"kakeibo/internal/core"
)

var ErrNotFound = errors.New("document not found")

// Snapshot is the complete persisted state, used for backup and remote sync.
type Snapshot struct {
	Transactions []core.Transaction   `json:"transactions"`
	Methods      []core.PaymentMethod `json:"methods"`
	Settings     core.Settings        `json:"settings"`
}

// Store is the persistence port. Implementations return empty lists and
// default settings when nothing has been saved yet.
type Store interface {
	LoadTransactions(ctx context.Context) ([]core.Transaction, error)
	SaveTransactions(ctx context.Context, transactions []core.Transaction) error

	LoadMethods(ctx context.Context) ([]core.PaymentMethod, error)
	SaveMethods(ctx context.Context, methods []core.PaymentMethod) error

	LoadSettings(ctx context.Context) (core.Settings, error)
	SaveSettings(ctx context.Context, settings core.Settings) error

	// LoadSnapshot reads all three documents in one call.
	LoadSnapshot(ctx context.Context) (Snapshot, error)

	Close() error
}
