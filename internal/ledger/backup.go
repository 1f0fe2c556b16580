package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"kakeibo/internal/core"
)

// BackupVersion matches the settings schema version so a restore knows how
// to normalize what it gets.
const BackupVersion = core.SettingsSchemaVersion

var ErrInvalidBackup = errors.New("invalid backup payload")

// Backup is the full exportable state. Transactions is a pointer so that a
// payload missing the field entirely can be told apart from an empty list.
type Backup struct {
	Version      int                  `json:"version"`
	Timestamp    time.Time            `json:"timestamp"`
	Transactions *[]core.Transaction  `json:"transactions"`
	Methods      []core.PaymentMethod `json:"paymentMethods"`
	Settings     core.Settings        `json:"settings"`
}

// ExportBackup snapshots the entire store into a restorable payload.
func (s *Service) ExportBackup(ctx context.Context) (Backup, error) {
	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return Backup{}, fmt.Errorf("load snapshot: %w", err)
	}
	return Backup{
		Version:      BackupVersion,
		Timestamp:    time.Now().UTC(),
		Transactions: &snap.Transactions,
		Methods:      snap.Methods,
		Settings:     snap.Settings,
	}, nil
}

// ImportBackup replaces the entire store with the payload, then re-runs the
// normal startup normalization so older backups come out on the current
// schema and the cash method is always present. Returns the number of
// restored transactions.
func (s *Service) ImportBackup(ctx context.Context, backup Backup) (int, error) {
	if backup.Transactions == nil {
		return 0, fmt.Errorf("%w: missing transactions", ErrInvalidBackup)
	}
	if backup.Version <= 0 || backup.Version > BackupVersion {
		return 0, fmt.Errorf("%w: unsupported version %d", ErrInvalidBackup, backup.Version)
	}
	for _, tx := range *backup.Transactions {
		if err := tx.Date.Validate(); err != nil {
			return 0, fmt.Errorf("%w: transaction %s: %v", ErrInvalidBackup, tx.ID, err)
		}
	}

	if err := s.store.SaveTransactions(ctx, *backup.Transactions); err != nil {
		return 0, fmt.Errorf("save transactions: %w", err)
	}
	if err := s.store.SaveMethods(ctx, backup.Methods); err != nil {
		return 0, fmt.Errorf("save methods: %w", err)
	}
	if err := s.store.SaveSettings(ctx, backup.Settings); err != nil {
		return 0, fmt.Errorf("save settings: %w", err)
	}
	if err := s.Init(ctx); err != nil {
		return 0, fmt.Errorf("normalize restored data: %w", err)
	}

	count := len(*backup.Transactions)
	slog.InfoContext(ctx, "Backup restored",
		"version", backup.Version, "transactions", count, "methods", len(backup.Methods))
	s.notifyChanged(ctx, "backup_restored")
	return count, nil
}
