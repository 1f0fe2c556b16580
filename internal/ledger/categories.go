package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"kakeibo/internal/core"
)

// Categories returns the built-in set followed by the user-defined set for
// the given type.
func (s *Service) Categories(ctx context.Context, ct core.CategoryType) ([]core.Category, error) {
	settings, err := s.store.LoadSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	out := core.BuiltinCategories(ct)
	return append(out, customCategories(settings, ct)...), nil
}

// AddCategory creates a user-defined category. Names must be unique across
// the built-in and custom sets of the same type.
func (s *Service) AddCategory(ctx context.Context, ct core.CategoryType, name, icon string) (core.Category, error) {
	name, err := trimmedOrErr(name)
	if err != nil {
		return core.Category{}, err
	}

	settings, err := s.store.LoadSettings(ctx)
	if err != nil {
		return core.Category{}, fmt.Errorf("load settings: %w", err)
	}
	if core.IsBuiltinCategory(ct, name) || containsCategory(customCategories(settings, ct), name) {
		return core.Category{}, fmt.Errorf("%w: %s", ErrDuplicateCategory, name)
	}

	category := core.Category{Name: name, Icon: icon}
	setCustomCategories(&settings, ct, append(customCategories(settings, ct), category))
	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return core.Category{}, fmt.Errorf("save settings: %w", err)
	}

	slog.InfoContext(ctx, "Category added", "type", ct, "name", name)
	s.notifyChanged(ctx, "category_added")
	return category, nil
}

// RenameCategory renames a user-defined category and cascades the new name
// to every transaction still carrying the old one. Built-in categories are
// immutable.
func (s *Service) RenameCategory(ctx context.Context, ct core.CategoryType, oldName, newName, newIcon string) error {
	newName, err := trimmedOrErr(newName)
	if err != nil {
		return err
	}
	if core.IsBuiltinCategory(ct, oldName) {
		return fmt.Errorf("%w: %s", ErrBuiltinCategory, oldName)
	}

	settings, err := s.store.LoadSettings(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	custom := customCategories(settings, ct)

	idx := -1
	for i := range custom {
		if custom[i].Name == oldName {
			idx = i
			break
		}
	}
	if idx == -1 {
		return fmt.Errorf("%w: %s", ErrCategoryNotFound, oldName)
	}
	if oldName != newName &&
		(core.IsBuiltinCategory(ct, newName) || containsCategory(custom, newName)) {
		return fmt.Errorf("%w: %s", ErrDuplicateCategory, newName)
	}

	custom[idx] = core.Category{Name: newName, Icon: newIcon}
	setCustomCategories(&settings, ct, custom)
	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	if oldName != newName {
		if err := s.cascadeCategoryRename(ctx, oldName, newName); err != nil {
			return err
		}
	}

	slog.InfoContext(ctx, "Category renamed", "type", ct, "old", oldName, "new", newName)
	s.notifyChanged(ctx, "category_renamed")
	return nil
}

// DeleteCategory removes a user-defined category. Deliberately asymmetric
// with rename: transactions keep the stale name, so nothing is lost on an
// accidental delete.
func (s *Service) DeleteCategory(ctx context.Context, ct core.CategoryType, name string) error {
	if core.IsBuiltinCategory(ct, name) {
		return fmt.Errorf("%w: %s", ErrBuiltinCategory, name)
	}

	settings, err := s.store.LoadSettings(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	custom := customCategories(settings, ct)

	kept := custom[:0]
	found := false
	for _, c := range custom {
		if c.Name == name {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrCategoryNotFound, name)
	}

	setCustomCategories(&settings, ct, kept)
	if err := s.store.SaveSettings(ctx, settings); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	slog.InfoContext(ctx, "Category deleted", "type", ct, "name", name)
	s.notifyChanged(ctx, "category_deleted")
	return nil
}

func (s *Service) cascadeCategoryRename(ctx context.Context, oldName, newName string) error {
	transactions, err := s.store.LoadTransactions(ctx)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}

	changed := 0
	for i := range transactions {
		if transactions[i].Category == oldName {
			transactions[i].Category = newName
			changed++
		}
	}
	if changed == 0 {
		return nil
	}

	if err := s.store.SaveTransactions(ctx, transactions); err != nil {
		return fmt.Errorf("save transactions: %w", err)
	}
	slog.InfoContext(ctx, "Category rename cascaded",
		"old", oldName, "new", newName, "count", changed)
	return nil
}

func containsCategory(categories []core.Category, name string) bool {
	for _, c := range categories {
		if c.Name == name {
			return true
		}
	}
	return false
}

func customCategories(settings core.Settings, ct core.CategoryType) []core.Category {
	if ct == core.IncomeCategory {
		return settings.CustomIncomeCategories
	}
	return settings.CustomExpenseCategories
}

func setCustomCategories(settings *core.Settings, ct core.CategoryType, categories []core.Category) {
	if ct == core.IncomeCategory {
		settings.CustomIncomeCategories = categories
	} else {
		settings.CustomExpenseCategories = categories
	}
}
