package core

// SettingsSchemaVersion is the current settings schema. Version 2 carried
// two flat numbers (monthlyIncome, fixedExpense); version 3 itemizes both
// sides as named line items.
const SettingsSchemaVersion = 3

// LineItem is one named row of the monthly budget.
type LineItem struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Amount Money  `json:"amount"`
}

// Settings holds the budget configuration and the user-defined category
// sets. The legacy fields are only populated when decoding a version-2
// payload and are cleared by Normalize.
type Settings struct {
	SchemaVersion           int        `json:"schemaVersion"`
	SetupCompleted          bool       `json:"setupCompleted"`
	IncomeItems             []LineItem `json:"incomeItems"`
	FixedExpenseItems       []LineItem `json:"fixedExpenseItems"`
	CustomExpenseCategories []Category `json:"customExpenseCategories"`
	CustomIncomeCategories  []Category `json:"customIncomeCategories"`

	// Version-2 fields, kept for decoding old payloads.
	LegacyMonthlyIncome int64 `json:"monthlyIncome,omitempty"`
	LegacyFixedExpense  int64 `json:"fixedExpense,omitempty"`
}

// DefaultSettings returns an empty, current-version settings record.
func DefaultSettings() Settings {
	return Settings{SchemaVersion: SettingsSchemaVersion}
}

// Normalize upgrades a settings record to the current schema. It branches on
// the explicit schema version, never on field presence, and is idempotent:
// already-current records pass through with only their legacy fields
// cleared. newID supplies ids for line items created by the upgrade.
func Normalize(s Settings, newID func() string) Settings {
	if s.SchemaVersion >= SettingsSchemaVersion {
		s.LegacyMonthlyIncome = 0
		s.LegacyFixedExpense = 0
		return s
	}

	upgraded := Settings{
		SchemaVersion:           SettingsSchemaVersion,
		SetupCompleted:          true,
		IncomeItems:             []LineItem{{ID: newID(), Label: "薪資", Amount: Money{Cents: s.LegacyMonthlyIncome}}},
		FixedExpenseItems:       []LineItem{{ID: newID(), Label: "固定支出", Amount: Money{Cents: s.LegacyFixedExpense}}},
		CustomExpenseCategories: s.CustomExpenseCategories,
		CustomIncomeCategories:  s.CustomIncomeCategories,
	}
	return upgraded
}

// TotalMonthlyIncome sums the income line items.
func (s Settings) TotalMonthlyIncome() Money {
	var total Money
	for _, item := range s.IncomeItems {
		total = total.Add(item.Amount)
	}
	return total
}

// TotalFixedExpense sums the fixed-expense line items.
func (s Settings) TotalFixedExpense() Money {
	var total Money
	for _, item := range s.FixedExpenseItems {
		total = total.Add(item.Amount)
	}
	return total
}

// NetMonthlyBalance is the fixed monthly surplus: income minus fixed
// expenses. The aggregation engine treats it as a process-wide constant.
func (s Settings) NetMonthlyBalance() Money {
	return s.TotalMonthlyIncome().Sub(s.TotalFixedExpense())
}
