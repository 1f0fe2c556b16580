// Package ledger orchestrates the domain model over a storage.Store: every
// mutation is a load-full-list, mutate, save-full-list cycle. There is no
// locking because there is no concurrency here; the surrounding process
// serializes all mutations through a single writer.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"kakeibo/internal/core"
	"kakeibo/internal/storage"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrMethodNotFound      = errors.New("payment method not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrDuplicateCategory   = errors.New("category already exists")
	ErrBuiltinCategory     = errors.New("built-in categories cannot be changed")
)

// SyncNotifier is the optional remote-sync capability. It is injected at
// startup rather than probed at call time; a nil notifier simply means no
// remote sync is configured. The ledger never depends on the notification
// being delivered.
type SyncNotifier interface {
	SyncRequested(ctx context.Context, reason string) error
}

// Service owns all reads and mutations of the ledger state.
type Service struct {
	store    storage.Store
	notifier SyncNotifier
	newID    func() string
}

func NewService(store storage.Store, notifier SyncNotifier) *Service {
	return &Service{
		store:    store,
		notifier: notifier,
		newID:    uuid.NewString,
	}
}

// Init seeds the built-in cash method on first run and normalizes the
// settings schema. Safe to call on every startup.
func (s *Service) Init(ctx context.Context) error {
	methods, err := s.store.LoadMethods(ctx)
	if err != nil {
		return fmt.Errorf("load methods: %w", err)
	}
	hasCash := false
	for _, m := range methods {
		if m.IsSystem {
			hasCash = true
			break
		}
	}
	if !hasCash {
		methods = append([]core.PaymentMethod{core.DefaultCashMethod()}, methods...)
		if err := s.store.SaveMethods(ctx, methods); err != nil {
			return fmt.Errorf("seed cash method: %w", err)
		}
		slog.InfoContext(ctx, "Seeded built-in cash method")
	}

	settings, err := s.store.LoadSettings(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	normalized := core.Normalize(settings, s.newID)

	// Parity with first-run detection: existing data implies setup was done.
	if !normalized.SetupCompleted {
		transactions, err := s.store.LoadTransactions(ctx)
		if err != nil {
			return fmt.Errorf("load transactions: %w", err)
		}
		hasCustomMethod := false
		for _, m := range methods {
			if !m.IsSystem {
				hasCustomMethod = true
				break
			}
		}
		if len(transactions) > 0 || hasCustomMethod {
			normalized.SetupCompleted = true
		}
	}

	if err := s.store.SaveSettings(ctx, normalized); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// notifyChanged fires the debounced remote-sync side effect. Failures are
// logged and swallowed: the local save already succeeded and the system
// must stay correct offline.
func (s *Service) notifyChanged(ctx context.Context, reason string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SyncRequested(ctx, reason); err != nil {
		slog.WarnContext(ctx, "Sync notification failed", "reason", reason, "error", err)
	}
}

// TransactionInput carries the caller-supplied fields of a new transaction.
type TransactionInput struct {
	Kind     core.Kind
	Date     core.Date
	Amount   core.Money
	Category string
	Note     string
	MethodID string
}

// TransactionUpdate carries a partial edit; nil fields are left unchanged.
type TransactionUpdate struct {
	Date     *core.Date
	Amount   *core.Money
	Category *string
	Note     *string
	MethodID *string
}

// AddTransaction validates the input, computes billing attribution and
// appends the transaction. This is one of the two validation boundaries.
func (s *Service) AddTransaction(ctx context.Context, input TransactionInput) (core.Transaction, error) {
	methods, err := s.store.LoadMethods(ctx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("load methods: %w", err)
	}

	tx := core.Transaction{
		ID:        s.newID(),
		Kind:      input.Kind,
		Date:      input.Date,
		Amount:    input.Amount,
		Category:  input.Category,
		Note:      input.Note,
		MethodID:  input.MethodID,
		CreatedAt: time.Now().UTC(),
	}
	if tx.Kind == core.Income {
		tx.MethodID = ""
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if tx.Kind == core.Expense {
		if _, ok := findMethod(methods, tx.MethodID); !ok {
			return core.Transaction{}, fmt.Errorf("%w: %s", ErrMethodNotFound, tx.MethodID)
		}
	}
	tx.Billing = attributeFor(tx, methods)

	transactions, err := s.store.LoadTransactions(ctx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("load transactions: %w", err)
	}
	transactions = append(transactions, tx)
	if err := s.store.SaveTransactions(ctx, transactions); err != nil {
		return core.Transaction{}, fmt.Errorf("save transactions: %w", err)
	}

	slog.InfoContext(ctx, "Transaction added",
		"id", tx.ID, "kind", tx.Kind, "amount_cents", tx.Amount.Cents, "category", tx.Category)
	s.notifyChanged(ctx, "transaction_added")
	return tx, nil
}

// UpdateTransaction applies a partial edit. Billing attribution is
// recomputed only when the date or the payment method changed.
func (s *Service) UpdateTransaction(ctx context.Context, id string, update TransactionUpdate) (core.Transaction, error) {
	transactions, err := s.store.LoadTransactions(ctx)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("load transactions: %w", err)
	}

	idx := -1
	for i := range transactions {
		if transactions[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return core.Transaction{}, fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}

	tx := transactions[idx]
	billingStale := false
	if update.Date != nil && *update.Date != tx.Date {
		tx.Date = *update.Date
		billingStale = true
	}
	if update.MethodID != nil && *update.MethodID != tx.MethodID {
		tx.MethodID = *update.MethodID
		billingStale = true
	}
	if update.Amount != nil {
		tx.Amount = *update.Amount
	}
	if update.Category != nil {
		tx.Category = *update.Category
	}
	if update.Note != nil {
		tx.Note = *update.Note
	}
	if tx.Kind == core.Income {
		tx.MethodID = ""
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	if billingStale {
		methods, err := s.store.LoadMethods(ctx)
		if err != nil {
			return core.Transaction{}, fmt.Errorf("load methods: %w", err)
		}
		tx.Billing = attributeFor(tx, methods)
	}

	transactions[idx] = tx
	if err := s.store.SaveTransactions(ctx, transactions); err != nil {
		return core.Transaction{}, fmt.Errorf("save transactions: %w", err)
	}

	slog.InfoContext(ctx, "Transaction updated", "id", id, "billing_recomputed", billingStale)
	s.notifyChanged(ctx, "transaction_updated")
	return tx, nil
}

// DeleteTransaction removes a transaction. No cascades exist elsewhere.
func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	transactions, err := s.store.LoadTransactions(ctx)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}

	kept := transactions[:0]
	found := false
	for _, tx := range transactions {
		if tx.ID == id {
			found = true
			continue
		}
		kept = append(kept, tx)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrTransactionNotFound, id)
	}

	if err := s.store.SaveTransactions(ctx, kept); err != nil {
		return fmt.Errorf("save transactions: %w", err)
	}
	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	s.notifyChanged(ctx, "transaction_deleted")
	return nil
}

func (s *Service) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return s.store.LoadTransactions(ctx)
}

// Report builds the monthly aggregate for the given month.
func (s *Service) Report(ctx context.Context, year, month int) (core.MonthlyReport, error) {
	snap, err := s.store.LoadSnapshot(ctx)
	if err != nil {
		return core.MonthlyReport{}, fmt.Errorf("load snapshot: %w", err)
	}
	ym := core.YearMonth{Year: year, Month: month}
	return core.BuildReport(snap.Transactions, snap.Methods, snap.Settings.NetMonthlyBalance(), ym), nil
}

// DetailView returns the transactions shown when browsing a month, after
// the date/billing-month union filter and the optional chip filter.
func (s *Service) DetailView(ctx context.Context, year, month int, filter core.DetailFilter) ([]core.Transaction, error) {
	transactions, err := s.store.LoadTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	return core.FilterMonth(transactions, core.YearMonth{Year: year, Month: month}, filter), nil
}

// attributeFor computes the derived billing attributes for a transaction.
// A method id that no longer resolves is treated as cash-equivalent rather
// than an error: the transaction is kept, never dropped.
func attributeFor(tx core.Transaction, methods []core.PaymentMethod) core.BillingInfo {
	if tx.Kind == core.Income {
		return core.AttributeIncome()
	}
	method, ok := findMethod(methods, tx.MethodID)
	if !ok {
		return core.Attribute(tx.Date, core.PaymentMethod{})
	}
	return core.Attribute(tx.Date, method)
}

func findMethod(methods []core.PaymentMethod, id string) (core.PaymentMethod, bool) {
	for _, m := range methods {
		if m.ID == id {
			return m, true
		}
	}
	return core.PaymentMethod{}, false
}

// Stats describes the stored transaction set for diagnostics.
type Stats struct {
	Count  int     `json:"count"`
	SizeKB float64 `json:"sizeKB"`
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	transactions, err := s.store.LoadTransactions(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("load transactions: %w", err)
	}
	var size int
	for _, tx := range transactions {
		size += len(tx.ID) + len(tx.Category) + len(tx.Note) + len(tx.MethodID) + 64
	}
	return Stats{Count: len(transactions), SizeKB: float64(size) / 1024}, nil
}

func trimmedOrErr(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", core.ErrEmptyName
	}
	return trimmed, nil
}
