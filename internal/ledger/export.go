package ledger

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"kakeibo/internal/core"
)

// ErrNoExportData means the requested month has no transactions to export.
var ErrNoExportData = errors.New("no transactions to export")

// Export is a rendered CSV file.
type Export struct {
	Filename string
	Data     []byte
}

var statusLabels = map[core.BillingStatus]string{
	core.StatusInstant:       "即時支出",
	core.StatusInstantIncome: "即時收入",
	core.StatusThisMonthBill: "本月帳單",
	core.StatusNextMonthBill: "下月帳單",
}

// ExportMonthCSV renders one month's transactions plus the report summary
// as a CSV table. The layout (BOM, headers, summary block) follows the
// spreadsheet the user actually opens, so Excel compatibility wins over
// strict CSV quoting: commas inside notes are swapped for full-width ones.
func (s *Service) ExportMonthCSV(ctx context.Context, year, month int) (Export, error) {
	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return Export{}, fmt.Errorf("load snapshot: %w", err)
	}

	ym := core.YearMonth{Year: year, Month: month}
	var rows []core.Transaction
	for _, tx := range snap.Transactions {
		if tx.Date.YearMonth() == ym {
			rows = append(rows, tx)
		}
	}
	if len(rows) == 0 {
		return Export{}, ErrNoExportData
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })

	report := core.BuildReport(snap.Transactions, snap.Methods, snap.Settings.NetMonthlyBalance(), ym)

	methodNames := make(map[string]string, len(snap.Methods))
	for _, m := range snap.Methods {
		methodNames[m.ID] = m.Name
	}

	var b strings.Builder
	b.WriteString("\uFEFF") // BOM so Excel detects UTF-8
	fmt.Fprintf(&b, "%d年%d月 記帳明細\n", year, month)
	b.WriteString("日期,類型,類別,備註,金額,付款方式,帳單狀態,帳單歸屬月份,繳款期限\n")

	var expenseTotal core.Money
	for _, tx := range rows {
		kindLabel := "支出"
		amount := tx.Amount.Format()
		methodName := ""
		if tx.Kind == core.Income {
			kindLabel = "收入"
			amount = "+" + amount
		} else {
			expenseTotal = expenseTotal.Add(tx.Amount)
			methodName = methodNames[tx.MethodID]
			if methodName == "" {
				methodName = "未知"
			}
		}
		billingMonth := ""
		if tx.Billing.BillingMonth != nil {
			billingMonth = tx.Billing.BillingMonth.String()
		}
		dueDate := ""
		if tx.Billing.DueDate != nil {
			dueDate = tx.Billing.DueDate.String()
		}
		note := strings.ReplaceAll(tx.Note, ",", "，")
		fmt.Fprintf(&b, "%s,%s,%s,%s,%s,%s,%s,%s,%s\n",
			tx.Date, kindLabel, tx.Category, note, amount, methodName,
			statusLabels[tx.Billing.Status], billingMonth, dueDate)
	}

	b.WriteString("\n--- 月度摘要 ---\n")
	fmt.Fprintf(&b, "本月消費總額,%s\n", expenseTotal.Format())
	fmt.Fprintf(&b, "本月額外收入,%s\n", report.ExtraIncome.Format())
	fmt.Fprintf(&b, "現金支出,%s\n", report.CashSpend.Format())
	fmt.Fprintf(&b, "下月需繳信用卡帳單,%s\n", report.BillsDueNextMonth.Total.Format())
	fmt.Fprintf(&b, "每月可用餘額,%s\n", report.NetBalance.Format())
	fmt.Fprintf(&b, "預估下月可存現金,%s\n", report.EstimatedSavings.Format())

	return Export{
		Filename: fmt.Sprintf("記帳_%d_%02d.csv", year, month),
		Data:     []byte(b.String()),
	}, nil
}
