package core

// DetailFilter narrows a month's detail view. The predefined values are
// mutually exclusive chips; any other non-empty value is interpreted as a
// payment method id.
type DetailFilter string

const (
	FilterAll           DetailFilter = ""
	FilterIncome        DetailFilter = "income"
	FilterThisMonthBill DetailFilter = "this_month_bill"
	FilterNextMonthBill DetailFilter = "next_month_bill"
	FilterInstant       DetailFilter = "instant"
)

// FilterMonth selects the transactions shown when browsing ym.
//
// A transaction appears if its date falls in ym or its billing month equals
// ym, so a card purchase made late in one month also shows up under the
// month its statement closes in, but never twice within one view. The chip
// filter is applied after that union; bill-status chips compare billing
// months against the viewed month, not against the transaction's own month.
func FilterMonth(transactions []Transaction, ym YearMonth, filter DetailFilter) []Transaction {
	next := ym.Next()
	var out []Transaction
	for _, t := range transactions {
		datedIn := t.Date.YearMonth() == ym
		billedIn := t.Billing.BillingMonth != nil && *t.Billing.BillingMonth == ym
		if !datedIn && !billedIn {
			continue
		}

		switch filter {
		case FilterAll:
		case FilterIncome:
			if t.Kind != Income {
				continue
			}
		case FilterThisMonthBill:
			if t.Billing.BillingMonth == nil || *t.Billing.BillingMonth != ym {
				continue
			}
		case FilterNextMonthBill:
			if t.Billing.BillingMonth == nil || *t.Billing.BillingMonth != next {
				continue
			}
		case FilterInstant:
			if t.Billing.BillingMonth != nil || t.Kind == Income {
				continue
			}
		default:
			if t.MethodID != string(filter) {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}
