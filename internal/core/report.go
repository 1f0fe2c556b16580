package core

import "sort"

// MethodAmount is an amount aggregated under a payment method id.
type MethodAmount struct {
	MethodID string `json:"methodId"`
	Amount   Money  `json:"amount"`
}

// BillTotal is a grand total plus its per-method breakdown, ordered by
// amount descending (ties broken by method id for stable output).
type BillTotal struct {
	Total    Money          `json:"total"`
	ByMethod []MethodAmount `json:"byMethod,omitempty"`
}

// MonthlyReport is the aggregate view for one queried month M.
//
// The three month notions involved are deliberately kept apart:
// Transactions/CashSpend/ExtraIncome/SpendByMethod cover transactions *dated*
// in M; BillsDueNextMonth covers statements *closing* in M (payable in M+1);
// BillsDueThisMonth covers statements that closed in M-1 (payable in M).
type MonthlyReport struct {
	Month             YearMonth        `json:"month"`
	Label             string           `json:"label"`
	NetBalance        Money            `json:"netMonthlyBalance"`
	Transactions      []Transaction    `json:"transactions"`
	CashSpend         Money            `json:"cashSpend"`
	ExtraIncome       Money            `json:"extraIncome"`
	BillsDueNextMonth BillTotal        `json:"billsDueNextMonth"`
	BillsDueThisMonth BillTotal        `json:"billsDueThisMonth"`
	SpendByMethod     map[string]Money `json:"spendByMethod"`
	EstimatedSavings  Money            `json:"estimatedSavings"`
}

// Empty reports whether the month has neither transactions nor pending
// bills, so a consumer can render an empty state instead of a zero report.
func (r MonthlyReport) Empty() bool {
	return len(r.Transactions) == 0 &&
		len(r.BillsDueNextMonth.ByMethod) == 0 &&
		len(r.BillsDueThisMonth.ByMethod) == 0
}

// BuildReport aggregates the full transaction set into the monthly report
// for ym. netBalance is the process-wide fixed monthly surplus from the
// budget settings. Transactions referencing a method that no longer exists
// are kept and grouped under their stale method id; they count as neither
// cash nor card-cycle spend.
func BuildReport(transactions []Transaction, methods []PaymentMethod, netBalance Money, ym YearMonth) MonthlyReport {
	methodByID := make(map[string]PaymentMethod, len(methods))
	for _, m := range methods {
		methodByID[m.ID] = m
	}

	prev := ym.Prev()
	report := MonthlyReport{
		Month:         ym,
		Label:         ym.String(),
		NetBalance:    netBalance,
		SpendByMethod: make(map[string]Money),
	}

	nextByMethod := make(map[string]Money)
	thisByMethod := make(map[string]Money)

	for _, t := range transactions {
		// Billing-month buckets scan the whole set: a statement can contain
		// transactions dated in any month.
		if t.Kind == Expense && t.Billing.BillingMonth != nil {
			switch *t.Billing.BillingMonth {
			case ym:
				report.BillsDueNextMonth.Total = report.BillsDueNextMonth.Total.Add(t.Amount)
				nextByMethod[t.MethodID] = nextByMethod[t.MethodID].Add(t.Amount)
			case prev:
				report.BillsDueThisMonth.Total = report.BillsDueThisMonth.Total.Add(t.Amount)
				thisByMethod[t.MethodID] = thisByMethod[t.MethodID].Add(t.Amount)
			}
		}

		if t.Date.YearMonth() != ym {
			continue
		}
		report.Transactions = append(report.Transactions, t)

		if t.Kind == Income {
			report.ExtraIncome = report.ExtraIncome.Add(t.Amount)
			continue
		}
		if m, ok := methodByID[t.MethodID]; ok && m.IsInstant() {
			report.CashSpend = report.CashSpend.Add(t.Amount)
		}
		report.SpendByMethod[t.MethodID] = report.SpendByMethod[t.MethodID].Add(t.Amount)
	}

	report.BillsDueNextMonth.ByMethod = sortedBreakdown(nextByMethod)
	report.BillsDueThisMonth.ByMethod = sortedBreakdown(thisByMethod)

	report.EstimatedSavings = netBalance.
		Add(report.ExtraIncome).
		Sub(report.BillsDueNextMonth.Total).
		Sub(report.CashSpend)

	return report
}

func sortedBreakdown(byMethod map[string]Money) []MethodAmount {
	if len(byMethod) == 0 {
		return nil
	}
	out := make([]MethodAmount, 0, len(byMethod))
	for id, amount := range byMethod {
		out = append(out, MethodAmount{MethodID: id, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount.Cents != out[j].Amount.Cents {
			return out[i].Amount.Cents > out[j].Amount.Cents
		}
		return out[i].MethodID < out[j].MethodID
	})
	return out
}
