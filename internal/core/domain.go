package core

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Kind distinguishes money going out from money coming in.
type Kind string

const (
	Expense Kind = "expense"
	Income  Kind = "income"
)

// BillingStatus classifies when a transaction becomes payable.
type BillingStatus string

const (
	// StatusInstant marks cash-like expenses with no billing cycle.
	StatusInstant BillingStatus = "instant"
	// StatusInstantIncome marks income; income never enters a billing cycle.
	StatusInstantIncome BillingStatus = "instant_income"
	// StatusThisMonthBill means the statement closes in the transaction's own month.
	StatusThisMonthBill BillingStatus = "this_month_bill"
	// StatusNextMonthBill means the transaction slipped past the statement day
	// into the following month's statement.
	StatusNextMonthBill BillingStatus = "next_month_bill"
)

var (
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrEmptyCategory     = errors.New("empty category")
	ErrEmptyName         = errors.New("empty name")
	ErrMissingMethod     = errors.New("expense requires a payment method")
	ErrMethodOnIncome    = errors.New("income must not reference a payment method")
	ErrStatementDayRange = errors.New("statement day must be between 1 and 28")
	ErrDueDayRange       = errors.New("due day must be between 1 and 28")
	ErrSystemMethod      = errors.New("system cash method cannot be modified")
)

// Date is a calendar day. The model never needs finer granularity than a day,
// and never needs a timezone.
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"` // 1-12
	Day   int `json:"day"`
}

func NewDate(year, month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

func (d Date) Validate() error {
	if d.Year < 1 || d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return ErrInvalidDate
	}
	if d.Day > daysInMonth(d.Year, d.Month) {
		return ErrInvalidDate
	}
	return nil
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// YearMonth returns the calendar month containing the date.
func (d Date) YearMonth() YearMonth {
	return YearMonth{Year: d.Year, Month: d.Month}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d/%02d/%02d", d.Year, d.Month, d.Day)
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func daysInMonth(year, month int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// YearMonth identifies a calendar month, used both for "the month a
// transaction is dated in" and for "the month a statement closes in".
// The two must never be conflated; see Attribute.
type YearMonth struct {
	Year  int `json:"year"`
	Month int `json:"month"` // 1-12
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d/%02d", ym.Year, ym.Month)
}

// Next returns the following calendar month, rolling December into January.
func (ym YearMonth) Next() YearMonth {
	if ym.Month == 12 {
		return YearMonth{Year: ym.Year + 1, Month: 1}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month + 1}
}

// Prev returns the preceding calendar month, rolling January into December.
func (ym YearMonth) Prev() YearMonth {
	if ym.Month == 1 {
		return YearMonth{Year: ym.Year - 1, Month: 12}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month - 1}
}

// BillingInfo holds the derived billing attributes of a transaction.
// BillingMonth and DueDate are nil exactly when Status is instant.
type BillingInfo struct {
	Status       BillingStatus `json:"billingStatus"`
	BillingMonth *YearMonth    `json:"billingMonth,omitempty"`
	DueDate      *Date         `json:"dueDate,omitempty"`
}

// Transaction is a single money movement. Billing is derived state,
// recomputed whenever Date or MethodID changes; everything else is
// caller-supplied.
type Transaction struct {
	ID        string      `json:"id"`
	Kind      Kind        `json:"kind"`
	Date      Date        `json:"date"`
	Amount    Money       `json:"amount"`
	Category  string      `json:"category"`
	Note      string      `json:"note,omitempty"`
	MethodID  string      `json:"methodId,omitempty"` // empty for income
	Billing   BillingInfo `json:"billing"`
	CreatedAt time.Time   `json:"createdAt"`
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	switch t.Kind {
	case Income:
		if t.MethodID != "" {
			return ErrMethodOnIncome
		}
	case Expense:
		if t.MethodID == "" {
			return ErrMissingMethod
		}
	default:
		return fmt.Errorf("unknown transaction kind: %q", t.Kind)
	}
	return nil
}

// PaymentMethod is a spending channel. StatementDay 0 is the sentinel for
// instant/cash methods: no billing cycle exists. User-defined methods carry
// a statement day and a due day, both capped at 28 so every derived due date
// is a valid calendar date in any month.
type PaymentMethod struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Color        string `json:"color,omitempty"`
	StatementDay int    `json:"statementDay"`
	DueDayOffset int    `json:"dueDayOffset"`
	IsSystem     bool   `json:"isSystem,omitempty"`
}

// IsInstant reports whether the method settles immediately (cash).
func (m PaymentMethod) IsInstant() bool {
	return m.StatementDay == 0
}

func (m PaymentMethod) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	if m.IsSystem {
		// The built-in cash method is fixed at statement day 0.
		if m.StatementDay != 0 {
			return ErrSystemMethod
		}
		return nil
	}
	if m.StatementDay < 1 || m.StatementDay > 28 {
		return ErrStatementDayRange
	}
	if m.DueDayOffset < 1 || m.DueDayOffset > 28 {
		return ErrDueDayRange
	}
	return nil
}

// CategoryType separates the expense and income category namespaces.
type CategoryType string

const (
	ExpenseCategory CategoryType = "expense"
	IncomeCategory  CategoryType = "income"
)

// Category is a {name, icon} pair; the name is the unique key within its type.
type Category struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}
