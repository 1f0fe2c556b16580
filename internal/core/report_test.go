package core

import "testing"

func cents(n int64) Money { return Money{Cents: n} }

// attributed builds an expense with billing attributes computed from the method.
func attributed(id string, date Date, amount int64, method PaymentMethod) Transaction {
	return Transaction{
		ID:       id,
		Kind:     Expense,
		Date:     date,
		Amount:   cents(amount),
		Category: "餐飲",
		MethodID: method.ID,
		Billing:  Attribute(date, method),
	}
}

func income(id string, date Date, amount int64) Transaction {
	return Transaction{
		ID:       id,
		Kind:     Income,
		Date:     date,
		Amount:   cents(amount),
		Category: "獎金",
		Billing:  AttributeIncome(),
	}
}

func TestBuildReport_SavingsFormula(t *testing.T) {
	cash := DefaultCashMethod()
	card := PaymentMethod{ID: "visa", Name: "Visa", StatementDay: 15, DueDayOffset: 5}
	methods := []PaymentMethod{cash, card}

	// netBalance=10000, extraIncome=2000, billsDueNextMonth=5000, cashSpend=1000
	transactions := []Transaction{
		income("i1", NewDate(2024, 3, 2), 2000),
		attributed("e1", NewDate(2024, 3, 10), 5000, card), // billing month 2024/03
		attributed("e2", NewDate(2024, 3, 12), 1000, cash),
	}

	report := BuildReport(transactions, methods, cents(10000), YearMonth{2024, 3})

	if got, want := report.EstimatedSavings, cents(6000); got != want {
		t.Errorf("estimated savings = %v, want %v", got, want)
	}
	if got, want := report.ExtraIncome, cents(2000); got != want {
		t.Errorf("extra income = %v, want %v", got, want)
	}
	if got, want := report.BillsDueNextMonth.Total, cents(5000); got != want {
		t.Errorf("bills due next month = %v, want %v", got, want)
	}
	if got, want := report.CashSpend, cents(1000); got != want {
		t.Errorf("cash spend = %v, want %v", got, want)
	}
	if got, want := report.Label, "2024/03"; got != want {
		t.Errorf("label = %q, want %q", got, want)
	}
}

func TestBuildReport_SpendByMethodAdditivity(t *testing.T) {
	cash := DefaultCashMethod()
	card := PaymentMethod{ID: "visa", Name: "Visa", StatementDay: 15, DueDayOffset: 5}
	methods := []PaymentMethod{cash, card}

	transactions := []Transaction{
		attributed("e1", NewDate(2024, 3, 5), 300, cash),
		attributed("e2", NewDate(2024, 3, 20), 700, card),
		attributed("e3", NewDate(2024, 3, 25), 500, card),
		income("i1", NewDate(2024, 3, 25), 900),            // income never counted as spend
		attributed("e4", NewDate(2024, 4, 1), 12345, card), // other month
	}

	report := BuildReport(transactions, methods, cents(0), YearMonth{2024, 3})

	var byMethodSum, expenseSum int64
	for _, amount := range report.SpendByMethod {
		byMethodSum += amount.Cents
	}
	for _, tr := range transactions {
		if tr.Kind == Expense && tr.Date.YearMonth() == (YearMonth{2024, 3}) {
			expenseSum += tr.Amount.Cents
		}
	}
	if byMethodSum != expenseSum {
		t.Errorf("sum(spendByMethod) = %d, want %d", byMethodSum, expenseSum)
	}
	if got, want := report.SpendByMethod["visa"], cents(1200); got != want {
		t.Errorf("visa spend = %v, want %v", got, want)
	}
}

func TestBuildReport_BillBucketsAndOrdering(t *testing.T) {
	visa := PaymentMethod{ID: "visa", Name: "Visa", StatementDay: 15, DueDayOffset: 5}
	amex := PaymentMethod{ID: "amex", Name: "Amex", StatementDay: 10, DueDayOffset: 20}
	methods := []PaymentMethod{DefaultCashMethod(), visa, amex}

	transactions := []Transaction{
		// Statements closing in March (payable in April).
		attributed("e1", NewDate(2024, 3, 10), 400, visa),
		attributed("e2", NewDate(2024, 2, 20), 300, visa), // Feb 20 > 15 -> March statement
		attributed("e3", NewDate(2024, 3, 8), 900, amex),
		// Statement closed in February (payable in March).
		attributed("e4", NewDate(2024, 2, 10), 250, visa),
	}

	report := BuildReport(transactions, methods, cents(0), YearMonth{2024, 3})

	if got, want := report.BillsDueNextMonth.Total, cents(1600); got != want {
		t.Errorf("bills due next month total = %v, want %v", got, want)
	}
	if got, want := report.BillsDueThisMonth.Total, cents(250); got != want {
		t.Errorf("bills due this month total = %v, want %v", got, want)
	}

	breakdown := report.BillsDueNextMonth.ByMethod
	if len(breakdown) != 2 {
		t.Fatalf("breakdown length = %d, want 2", len(breakdown))
	}
	if breakdown[0].MethodID != "amex" || breakdown[1].MethodID != "visa" {
		t.Errorf("breakdown order = [%s %s], want [amex visa]",
			breakdown[0].MethodID, breakdown[1].MethodID)
	}
}

func TestBuildReport_JanuaryLooksBackAtDecember(t *testing.T) {
	visa := PaymentMethod{ID: "visa", Name: "Visa", StatementDay: 15, DueDayOffset: 5}
	methods := []PaymentMethod{DefaultCashMethod(), visa}

	// Dec 20 slips into the January statement; Dec 10 closes in December.
	transactions := []Transaction{
		attributed("e1", NewDate(2024, 12, 20), 800, visa),
		attributed("e2", NewDate(2024, 12, 10), 600, visa),
	}

	report := BuildReport(transactions, methods, cents(0), YearMonth{2025, 1})

	if got, want := report.BillsDueNextMonth.Total, cents(800); got != want {
		t.Errorf("bills due next month total = %v, want %v", got, want)
	}
	if got, want := report.BillsDueThisMonth.Total, cents(600); got != want {
		t.Errorf("bills due this month total = %v, want %v", got, want)
	}
}

func TestBuildReport_UnknownMethodKeptButNotCash(t *testing.T) {
	methods := []PaymentMethod{DefaultCashMethod()}
	orphan := Transaction{
		ID:       "e1",
		Kind:     Expense,
		Date:     NewDate(2024, 3, 5),
		Amount:   cents(450),
		Category: "其他",
		MethodID: "deleted-card",
		Billing:  BillingInfo{Status: StatusInstant},
	}

	report := BuildReport([]Transaction{orphan}, methods, cents(0), YearMonth{2024, 3})

	if got, want := report.SpendByMethod["deleted-card"], cents(450); got != want {
		t.Errorf("orphan spend = %v, want %v", got, want)
	}
	if report.CashSpend.Cents != 0 {
		t.Errorf("cash spend = %v, want 0 for unknown method", report.CashSpend)
	}
	if len(report.Transactions) != 1 {
		t.Errorf("transaction dropped: got %d, want 1", len(report.Transactions))
	}
}

func TestBuildReport_EmptyDistinctFromZero(t *testing.T) {
	methods := []PaymentMethod{DefaultCashMethod()}

	empty := BuildReport(nil, methods, cents(10000), YearMonth{2024, 3})
	if !empty.Empty() {
		t.Error("report with no transactions and no bills should be empty")
	}
	if empty.NetBalance != cents(10000) {
		t.Errorf("net balance = %v, want 10000", empty.NetBalance)
	}

	// A month with activity that nets out to zero is not "empty".
	visa := PaymentMethod{ID: "visa", Name: "Visa", StatementDay: 15, DueDayOffset: 5}
	withBill := BuildReport(
		[]Transaction{attributed("e1", NewDate(2024, 3, 1), 100, visa)},
		append(methods, visa), cents(0), YearMonth{2024, 3})
	if withBill.Empty() {
		t.Error("report with transactions should not be empty")
	}
}
