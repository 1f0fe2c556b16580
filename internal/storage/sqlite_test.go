package storage

import (
	"context"
	"path/filepath"
	"testing"

	"kakeibo/internal/core"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_EmptyReads(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	transactions, err := store.LoadTransactions(ctx)
	if err != nil {
		t.Fatalf("load transactions: %v", err)
	}
	if len(transactions) != 0 {
		t.Errorf("expected no transactions, got %d", len(transactions))
	}

	settings, err := store.LoadSettings(ctx)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	if settings.SchemaVersion != core.SettingsSchemaVersion {
		t.Errorf("default settings schema = %d, want %d",
			settings.SchemaVersion, core.SettingsSchemaVersion)
	}
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	card := core.PaymentMethod{ID: "visa", Name: "Visa", StatementDay: 15, DueDayOffset: 5}
	tx := core.Transaction{
		ID:       "t1",
		Kind:     core.Expense,
		Date:     core.NewDate(2024, 1, 20),
		Amount:   core.Money{Cents: 1234},
		Category: "餐飲",
		Note:     "lunch",
		MethodID: "visa",
		Billing:  core.Attribute(core.NewDate(2024, 1, 20), card),
	}

	if err := store.SaveTransactions(ctx, []core.Transaction{tx}); err != nil {
		t.Fatalf("save transactions: %v", err)
	}
	if err := store.SaveMethods(ctx, []core.PaymentMethod{core.DefaultCashMethod(), card}); err != nil {
		t.Fatalf("save methods: %v", err)
	}
	settings := core.DefaultSettings()
	settings.IncomeItems = []core.LineItem{{ID: "a", Label: "薪資", Amount: core.Money{Cents: 50000}}}
	if err := store.SaveSettings(ctx, settings); err != nil {
		t.Fatalf("save settings: %v", err)
	}

	snap, err := store.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	if len(snap.Transactions) != 1 || len(snap.Methods) != 2 {
		t.Fatalf("snapshot = %d transactions / %d methods, want 1 / 2",
			len(snap.Transactions), len(snap.Methods))
	}

	got := snap.Transactions[0]
	if got.ID != tx.ID || got.Amount != tx.Amount || got.Note != tx.Note {
		t.Errorf("transaction round trip mismatch: %+v", got)
	}
	if got.Billing.Status != core.StatusNextMonthBill {
		t.Errorf("billing status = %v, want %v", got.Billing.Status, core.StatusNextMonthBill)
	}
	if got.Billing.BillingMonth == nil || *got.Billing.BillingMonth != (core.YearMonth{Year: 2024, Month: 2}) {
		t.Errorf("billing month lost in round trip: %v", got.Billing.BillingMonth)
	}
	if snap.Settings.TotalMonthlyIncome().Cents != 50000 {
		t.Errorf("settings round trip mismatch: %+v", snap.Settings)
	}
}

func TestSQLiteStore_OverwriteReplacesDocument(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := []core.PaymentMethod{core.DefaultCashMethod()}
	if err := store.SaveMethods(ctx, first); err != nil {
		t.Fatalf("save methods: %v", err)
	}
	second := append(first, core.PaymentMethod{ID: "visa", Name: "Visa", StatementDay: 15, DueDayOffset: 5})
	if err := store.SaveMethods(ctx, second); err != nil {
		t.Fatalf("overwrite methods: %v", err)
	}

	methods, err := store.LoadMethods(ctx)
	if err != nil {
		t.Fatalf("load methods: %v", err)
	}
	if len(methods) != 2 {
		t.Errorf("methods = %d, want 2", len(methods))
	}
}
