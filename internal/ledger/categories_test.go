package ledger

import (
	"context"
	"errors"
	"testing"

	"kakeibo/internal/core"
)

func TestCategoriesIncludeBuiltins(t *testing.T) {
	svc, _, _ := newTestService(t)

	expense, err := svc.Categories(context.Background(), core.ExpenseCategory)
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if len(expense) != 8 {
		t.Errorf("got %d expense categories, want 8 built-ins", len(expense))
	}

	income, _ := svc.Categories(context.Background(), core.IncomeCategory)
	if len(income) != 6 {
		t.Errorf("got %d income categories, want 6 built-ins", len(income))
	}
}

func TestAddCategoryRejectsDuplicates(t *testing.T) {
	svc, _, _ := newTestService(t)

	if _, err := svc.AddCategory(context.Background(), core.ExpenseCategory, "寵物", "🐱"); err != nil {
		t.Fatalf("AddCategory: %v", err)
	}

	tests := []struct {
		name     string
		category string
	}{
		{"duplicate custom", "寵物"},
		{"shadows builtin", "餐飲"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddCategory(context.Background(), core.ExpenseCategory, tt.category, "x")
			if !errors.Is(err, ErrDuplicateCategory) {
				t.Errorf("err = %v, want ErrDuplicateCategory", err)
			}
		})
	}

	// The same name in the other namespace is fine.
	if _, err := svc.AddCategory(context.Background(), core.IncomeCategory, "寵物", "🐱"); err != nil {
		t.Errorf("cross-namespace add: %v", err)
	}
}

func TestRenameCategoryCascades(t *testing.T) {
	svc, _, _ := newTestService(t)

	if _, err := svc.AddCategory(context.Background(), core.ExpenseCategory, "寵物", "🐱"); err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	_, err := svc.AddTransaction(context.Background(), TransactionInput{
		Kind:     core.Expense,
		Date:     core.Date{Year: 2024, Month: 3, Day: 10},
		Amount:   core.Money{Cents: 1000},
		Category: "寵物",
		MethodID: core.CashMethodID,
	})
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	if err := svc.RenameCategory(context.Background(), core.ExpenseCategory, "寵物", "毛小孩", "🐶"); err != nil {
		t.Fatalf("RenameCategory: %v", err)
	}

	transactions, _ := svc.ListTransactions(context.Background())
	if transactions[0].Category != "毛小孩" {
		t.Errorf("transaction category = %q, want cascade to 毛小孩", transactions[0].Category)
	}
}

func TestDeleteCategoryDoesNotCascade(t *testing.T) {
	svc, _, _ := newTestService(t)

	if _, err := svc.AddCategory(context.Background(), core.ExpenseCategory, "寵物", "🐱"); err != nil {
		t.Fatalf("AddCategory: %v", err)
	}
	_, err := svc.AddTransaction(context.Background(), TransactionInput{
		Kind:     core.Expense,
		Date:     core.Date{Year: 2024, Month: 3, Day: 10},
		Amount:   core.Money{Cents: 1000},
		Category: "寵物",
		MethodID: core.CashMethodID,
	})
	if err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	if err := svc.DeleteCategory(context.Background(), core.ExpenseCategory, "寵物"); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}

	transactions, _ := svc.ListTransactions(context.Background())
	if transactions[0].Category != "寵物" {
		t.Errorf("transaction category = %q, want stale 寵物", transactions[0].Category)
	}
}

func TestBuiltinCategoryImmutable(t *testing.T) {
	svc, _, _ := newTestService(t)

	if err := svc.RenameCategory(context.Background(), core.ExpenseCategory, "餐飲", "吃喝", "🍜"); !errors.Is(err, ErrBuiltinCategory) {
		t.Errorf("rename builtin err = %v, want ErrBuiltinCategory", err)
	}
	if err := svc.DeleteCategory(context.Background(), core.ExpenseCategory, "餐飲"); !errors.Is(err, ErrBuiltinCategory) {
		t.Errorf("delete builtin err = %v, want ErrBuiltinCategory", err)
	}
}

func TestRenameCategoryNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.RenameCategory(context.Background(), core.ExpenseCategory, "nope", "new", "")
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Errorf("err = %v, want ErrCategoryNotFound", err)
	}
}
