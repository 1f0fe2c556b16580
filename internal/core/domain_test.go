package core

import (
	"errors"
	"testing"
)

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{
		Kind:     Expense,
		Date:     NewDate(2024, 2, 29), // leap day
		Amount:   Money{Cents: 100},
		Category: "餐飲",
		MethodID: "visa",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{"zero amount", func(tr *Transaction) { tr.Amount = Money{} }, ErrInvalidAmount},
		{"impossible date", func(tr *Transaction) { tr.Date = NewDate(2023, 2, 29) }, ErrInvalidDate},
		{"month out of range", func(tr *Transaction) { tr.Date = NewDate(2024, 13, 1) }, ErrInvalidDate},
		{"blank category", func(tr *Transaction) { tr.Category = "  " }, ErrEmptyCategory},
		{"expense without method", func(tr *Transaction) { tr.MethodID = "" }, ErrMissingMethod},
		{"income with method", func(tr *Transaction) { tr.Kind = Income }, ErrMethodOnIncome},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := valid
			tt.mutate(&tr)
			if err := tr.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestPaymentMethodValidate(t *testing.T) {
	tests := []struct {
		name    string
		method  PaymentMethod
		wantErr error
	}{
		{"valid card", PaymentMethod{Name: "Visa", StatementDay: 15, DueDayOffset: 5}, nil},
		{"boundary days", PaymentMethod{Name: "Amex", StatementDay: 28, DueDayOffset: 1}, nil},
		{"system cash", DefaultCashMethod(), nil},
		{"blank name", PaymentMethod{Name: " ", StatementDay: 15, DueDayOffset: 5}, ErrEmptyName},
		{"statement day zero on user method", PaymentMethod{Name: "X", StatementDay: 0, DueDayOffset: 5}, ErrStatementDayRange},
		{"statement day too large", PaymentMethod{Name: "X", StatementDay: 29, DueDayOffset: 5}, ErrStatementDayRange},
		{"due day zero", PaymentMethod{Name: "X", StatementDay: 15, DueDayOffset: 0}, ErrDueDayRange},
		{"due day too large", PaymentMethod{Name: "X", StatementDay: 15, DueDayOffset: 29}, ErrDueDayRange},
		{"system method with cycle", PaymentMethod{Name: "X", StatementDay: 5, IsSystem: true}, ErrSystemMethod},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.method.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestYearMonthRollover(t *testing.T) {
	if got, want := (YearMonth{2024, 12}).Next(), (YearMonth{2025, 1}); got != want {
		t.Errorf("Next() = %v, want %v", got, want)
	}
	if got, want := (YearMonth{2024, 1}).Prev(), (YearMonth{2023, 12}); got != want {
		t.Errorf("Prev() = %v, want %v", got, want)
	}
	if got, want := (YearMonth{2024, 3}).String(), "2024/03"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
