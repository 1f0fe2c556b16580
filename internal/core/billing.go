package core

// Attribute maps a transaction date and a payment method configuration to a
// billing cycle descriptor.
//
// Cash methods (statement day 0) settle instantly: no billing month, no due
// date. For card methods, a transaction dated on or before the statement day
// belongs to the current month's statement; anything later slips into next
// month's, with December rolling over into January of the following year.
// Payment falls due in the month after the statement closes, on the method's
// due day.
func Attribute(date Date, method PaymentMethod) BillingInfo {
	if method.IsInstant() {
		return BillingInfo{Status: StatusInstant}
	}

	billingMonth := date.YearMonth()
	if date.Day > method.StatementDay {
		billingMonth = billingMonth.Next()
	}

	status := StatusThisMonthBill
	if billingMonth != date.YearMonth() {
		status = StatusNextMonthBill
	}

	dueMonth := billingMonth.Next()
	due := Date{Year: dueMonth.Year, Month: dueMonth.Month, Day: method.DueDayOffset}

	return BillingInfo{
		Status:       status,
		BillingMonth: &billingMonth,
		DueDate:      &due,
	}
}

// AttributeIncome returns the fixed billing descriptor for income
// transactions, which bypass cycle attribution entirely.
func AttributeIncome() BillingInfo {
	return BillingInfo{Status: StatusInstantIncome}
}
