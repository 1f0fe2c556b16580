package ledger

import (
	"context"
	"errors"
	"testing"

	"kakeibo/internal/core"
)

func TestBackupRoundTrip(t *testing.T) {
	svc, _, _ := newTestService(t)
	card := addCard(t, svc, "visa", 15, 5)

	tx, err := svc.AddTransaction(context.Background(), TransactionInput{
		Kind:     core.Expense,
		Date:     core.Date{Year: 2024, Month: 3, Day: 20},
		Amount:   core.Money{Cents: 45000},
		Category: "餐飲",
		MethodID: card.ID,
	})
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	backup, err := svc.ExportBackup(context.Background())
	if err != nil {
		t.Fatalf("ExportBackup: %v", err)
	}
	if backup.Version != BackupVersion {
		t.Errorf("version = %d, want %d", backup.Version, BackupVersion)
	}

	// Restore into a fresh store.
	restored, _, notifier := newTestService(t)
	count, err := restored.ImportBackup(context.Background(), backup)
	if err != nil {
		t.Fatalf("ImportBackup: %v", err)
	}
	if count != 1 {
		t.Errorf("restored count = %d, want 1", count)
	}
	if len(notifier.reasons) == 0 || notifier.reasons[len(notifier.reasons)-1] != "backup_restored" {
		t.Errorf("notifications = %v, want backup_restored last", notifier.reasons)
	}

	transactions, _ := restored.ListTransactions(context.Background())
	if len(transactions) != 1 || transactions[0].ID != tx.ID {
		t.Fatalf("restored transactions = %v", transactions)
	}
	if transactions[0].Billing != tx.Billing {
		t.Errorf("billing lost in round trip")
	}

	methods, _ := restored.ListMethods(context.Background())
	hasCash := false
	for _, m := range methods {
		if m.IsSystem {
			hasCash = true
		}
	}
	if !hasCash {
		t.Error("cash method missing after restore")
	}
}

func TestImportBackupUpgradesLegacySettings(t *testing.T) {
	svc, _, _ := newTestService(t)

	transactions := []core.Transaction{}
	backup := Backup{
		Version:      2,
		Transactions: &transactions,
		Settings: core.Settings{
			SchemaVersion:       2,
			LegacyMonthlyIncome: 500000,
			LegacyFixedExpense:  200000,
		},
	}
	if _, err := svc.ImportBackup(context.Background(), backup); err != nil {
		t.Fatalf("ImportBackup: %v", err)
	}

	settings, err := svc.GetSettings(context.Background())
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if settings.SchemaVersion != core.SettingsSchemaVersion {
		t.Errorf("schema version = %d, want %d", settings.SchemaVersion, core.SettingsSchemaVersion)
	}
	if settings.NetMonthlyBalance().Cents != 300000 {
		t.Errorf("net balance = %d, want 300000", settings.NetMonthlyBalance().Cents)
	}
}

func TestImportBackupRejectsBadPayloads(t *testing.T) {
	svc, _, _ := newTestService(t)
	empty := []core.Transaction{}
	badDate := []core.Transaction{{ID: "x", Date: core.Date{Year: 2024, Month: 13, Day: 1}}}

	tests := []struct {
		name   string
		backup Backup
	}{
		{"missing transactions", Backup{Version: BackupVersion}},
		{"zero version", Backup{Version: 0, Transactions: &empty}},
		{"future version", Backup{Version: BackupVersion + 1, Transactions: &empty}},
		{"invalid transaction date", Backup{Version: BackupVersion, Transactions: &badDate}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.ImportBackup(context.Background(), tt.backup); !errors.Is(err, ErrInvalidBackup) {
				t.Errorf("err = %v, want ErrInvalidBackup", err)
			}
		})
	}
}
