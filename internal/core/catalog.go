package core

// Built-in category sets. These ship with the application, are immutable
// and cannot be deleted; user-defined categories live in Settings.
var builtinExpenseCategories = []Category{
	{Name: "餐飲", Icon: "🍜"},
	{Name: "交通", Icon: "⛽"},
	{Name: "購物", Icon: "🛒"},
	{Name: "娛樂", Icon: "🎬"},
	{Name: "醫療", Icon: "🏥"},
	{Name: "日用", Icon: "🏠"},
	{Name: "保險", Icon: "🛡️"},
	{Name: "其他", Icon: "📦"},
}

var builtinIncomeCategories = []Category{
	{Name: "獎金", Icon: "🎁"},
	{Name: "退款", Icon: "💳"},
	{Name: "代墊回收", Icon: "🤝"},
	{Name: "副業", Icon: "💼"},
	{Name: "利息", Icon: "🏦"},
	{Name: "其他收入", Icon: "💵"},
}

// BuiltinCategories returns a copy of the built-in set for the given type.
func BuiltinCategories(ct CategoryType) []Category {
	var src []Category
	if ct == IncomeCategory {
		src = builtinIncomeCategories
	} else {
		src = builtinExpenseCategories
	}
	out := make([]Category, len(src))
	copy(out, src)
	return out
}

// IsBuiltinCategory reports whether name belongs to the built-in set.
func IsBuiltinCategory(ct CategoryType, name string) bool {
	for _, c := range BuiltinCategories(ct) {
		if c.Name == name {
			return true
		}
	}
	return false
}

// CashMethodID is the fixed id of the single built-in cash method.
const CashMethodID = "cash"

// DefaultCashMethod returns the built-in cash method. Exactly one system
// cash method must always exist; statement day 0 is its defining trait.
func DefaultCashMethod() PaymentMethod {
	return PaymentMethod{
		ID:           CashMethodID,
		Name:         "現金花費",
		Color:        "#27ae60",
		StatementDay: 0,
		DueDayOffset: 0,
		IsSystem:     true,
	}
}

// MethodColors is the palette offered for user-defined methods.
var MethodColors = []string{
	"#e74c3c", "#2980b9", "#e67e22", "#8e44ad", "#16a085",
	"#d35400", "#2c3e50", "#c0392b", "#7f8c8d", "#f39c12",
}
