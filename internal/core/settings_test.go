package core

import "testing"

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return string(rune('a' + n - 1))
	}
}

func TestNormalize_UpgradesLegacySettings(t *testing.T) {
	legacy := Settings{
		SchemaVersion:       2,
		LegacyMonthlyIncome: 50000,
		LegacyFixedExpense:  20000,
		CustomExpenseCategories: []Category{
			{Name: "寵物", Icon: "🐱"},
		},
	}

	got := Normalize(legacy, sequentialIDs())

	if got.SchemaVersion != SettingsSchemaVersion {
		t.Errorf("schema version = %d, want %d", got.SchemaVersion, SettingsSchemaVersion)
	}
	if !got.SetupCompleted {
		t.Error("upgraded settings should be marked setup-complete")
	}
	if len(got.IncomeItems) != 1 || got.IncomeItems[0].Amount.Cents != 50000 {
		t.Errorf("income items = %+v, want single 50000 item", got.IncomeItems)
	}
	if len(got.FixedExpenseItems) != 1 || got.FixedExpenseItems[0].Amount.Cents != 20000 {
		t.Errorf("fixed expense items = %+v, want single 20000 item", got.FixedExpenseItems)
	}
	if len(got.CustomExpenseCategories) != 1 {
		t.Error("custom categories lost during upgrade")
	}
	if got.LegacyMonthlyIncome != 0 || got.LegacyFixedExpense != 0 {
		t.Error("legacy fields should be cleared after upgrade")
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	current := Settings{
		SchemaVersion: SettingsSchemaVersion,
		IncomeItems: []LineItem{
			{ID: "x", Label: "薪資", Amount: Money{Cents: 42}},
		},
	}

	once := Normalize(current, sequentialIDs())
	twice := Normalize(once, sequentialIDs())

	if len(twice.IncomeItems) != 1 || twice.IncomeItems[0].ID != "x" {
		t.Errorf("normalize rewrote already-current settings: %+v", twice.IncomeItems)
	}
}

func TestNetMonthlyBalance(t *testing.T) {
	s := Settings{
		SchemaVersion: SettingsSchemaVersion,
		IncomeItems: []LineItem{
			{ID: "a", Label: "薪資", Amount: Money{Cents: 60000}},
			{ID: "b", Label: "租金收入", Amount: Money{Cents: 10000}},
		},
		FixedExpenseItems: []LineItem{
			{ID: "c", Label: "房貸", Amount: Money{Cents: 25000}},
		},
	}

	if got, want := s.NetMonthlyBalance(), (Money{Cents: 45000}); got != want {
		t.Errorf("net monthly balance = %v, want %v", got, want)
	}
}
