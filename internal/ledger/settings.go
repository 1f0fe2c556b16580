package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"kakeibo/internal/core"
)

func (s *Service) GetSettings(ctx context.Context) (core.Settings, error) {
	settings, err := s.store.LoadSettings(ctx)
	if err != nil {
		return core.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return core.Normalize(settings, s.newID), nil
}

// UpdateBudget replaces the income and fixed-expense line items. Items
// arriving without an id get one assigned; blank labels are dropped.
// Saving a budget marks setup as completed.
func (s *Service) UpdateBudget(ctx context.Context, incomeItems, fixedExpenseItems []core.LineItem) (core.Settings, error) {
	settings, err := s.store.LoadSettings(ctx)
	if err != nil {
		return core.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	settings = core.Normalize(settings, s.newID)

	settings.IncomeItems = s.cleanLineItems(incomeItems)
	settings.FixedExpenseItems = s.cleanLineItems(fixedExpenseItems)
	settings.SetupCompleted = true

	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return core.Settings{}, fmt.Errorf("save settings: %w", err)
	}

	slog.InfoContext(ctx, "Budget updated",
		"income_items", len(settings.IncomeItems),
		"fixed_expense_items", len(settings.FixedExpenseItems),
		"net_cents", settings.NetMonthlyBalance().Cents)
	s.notifyChanged(ctx, "budget_updated")
	return settings, nil
}

func (s *Service) cleanLineItems(items []core.LineItem) []core.LineItem {
	out := make([]core.LineItem, 0, len(items))
	for _, item := range items {
		label, err := trimmedOrErr(item.Label)
		if err != nil {
			continue
		}
		item.Label = label
		if item.ID == "" {
			item.ID = s.newID()
		}
		out = append(out, item)
	}
	return out
}
