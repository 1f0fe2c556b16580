package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"kakeibo/internal/core"
)

// MethodInput carries the caller-supplied fields of a new payment method.
type MethodInput struct {
	Name         string
	Color        string
	StatementDay int
	DueDayOffset int
}

// MethodUpdate carries a partial edit; nil fields are left unchanged.
type MethodUpdate struct {
	Name         *string
	Color        *string
	StatementDay *int
	DueDayOffset *int
}

func (s *Service) ListMethods(ctx context.Context) ([]core.PaymentMethod, error) {
	return s.store.LoadMethods(ctx)
}

// AddMethod creates a user-defined payment method. This is the second
// validation boundary: cycle days are checked here and nowhere else.
func (s *Service) AddMethod(ctx context.Context, input MethodInput) (core.PaymentMethod, error) {
	name, err := trimmedOrErr(input.Name)
	if err != nil {
		return core.PaymentMethod{}, err
	}

	method := core.PaymentMethod{
		ID:           s.newID(),
		Name:         name,
		Color:        input.Color,
		StatementDay: input.StatementDay,
		DueDayOffset: input.DueDayOffset,
	}
	if err := method.Validate(); err != nil {
		return core.PaymentMethod{}, err
	}

	methods, err := s.store.LoadMethods(ctx)
	if err != nil {
		return core.PaymentMethod{}, fmt.Errorf("load methods: %w", err)
	}
	methods = append(methods, method)
	if err := s.store.SaveMethods(ctx, methods); err != nil {
		return core.PaymentMethod{}, fmt.Errorf("save methods: %w", err)
	}

	slog.InfoContext(ctx, "Payment method added",
		"id", method.ID, "name", method.Name, "statement_day", method.StatementDay)
	s.notifyChanged(ctx, "method_added")
	return method, nil
}

// UpdateMethod edits a payment method. When the cycle configuration
// changed, every expense referencing the method is re-attributed in place.
// That is a full scan, which is fine at this data scale.
func (s *Service) UpdateMethod(ctx context.Context, id string, update MethodUpdate) (core.PaymentMethod, error) {
	methods, err := s.store.LoadMethods(ctx)
	if err != nil {
		return core.PaymentMethod{}, fmt.Errorf("load methods: %w", err)
	}

	idx := -1
	for i := range methods {
		if methods[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return core.PaymentMethod{}, fmt.Errorf("%w: %s", ErrMethodNotFound, id)
	}

	method := methods[idx]
	cycleChanged := false
	if update.Name != nil {
		name, err := trimmedOrErr(*update.Name)
		if err != nil {
			return core.PaymentMethod{}, err
		}
		method.Name = name
	}
	if update.Color != nil {
		method.Color = *update.Color
	}
	if update.StatementDay != nil && *update.StatementDay != method.StatementDay {
		if method.IsSystem {
			return core.PaymentMethod{}, core.ErrSystemMethod
		}
		method.StatementDay = *update.StatementDay
		cycleChanged = true
	}
	if update.DueDayOffset != nil && *update.DueDayOffset != method.DueDayOffset {
		if method.IsSystem {
			return core.PaymentMethod{}, core.ErrSystemMethod
		}
		method.DueDayOffset = *update.DueDayOffset
		cycleChanged = true
	}
	if err := method.Validate(); err != nil {
		return core.PaymentMethod{}, err
	}

	methods[idx] = method
	if err := s.store.SaveMethods(ctx, methods); err != nil {
		return core.PaymentMethod{}, fmt.Errorf("save methods: %w", err)
	}

	if cycleChanged {
		if err := s.reattributeMethod(ctx, method, methods); err != nil {
			return core.PaymentMethod{}, err
		}
	}

	slog.InfoContext(ctx, "Payment method updated", "id", id, "cycle_changed", cycleChanged)
	s.notifyChanged(ctx, "method_updated")
	return method, nil
}

// DeleteMethod removes a user-defined method. Transactions referencing it
// keep their stale method id and derived billing attributes; they are shown
// as unknown, never deleted.
func (s *Service) DeleteMethod(ctx context.Context, id string) error {
	methods, err := s.store.LoadMethods(ctx)
	if err != nil {
		return fmt.Errorf("load methods: %w", err)
	}

	kept := methods[:0]
	found := false
	for _, m := range methods {
		if m.ID == id {
			if m.IsSystem {
				return core.ErrSystemMethod
			}
			found = true
			continue
		}
		kept = append(kept, m)
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrMethodNotFound, id)
	}

	if err := s.store.SaveMethods(ctx, kept); err != nil {
		return fmt.Errorf("save methods: %w", err)
	}
	slog.InfoContext(ctx, "Payment method deleted", "id", id)
	s.notifyChanged(ctx, "method_deleted")
	return nil
}

// reattributeMethod re-runs attribution for every non-income transaction
// referencing the method and overwrites the derived fields in place.
// Transactions on other methods are untouched.
func (s *Service) reattributeMethod(ctx context.Context, method core.PaymentMethod, methods []core.PaymentMethod) error {
	transactions, err := s.store.LoadTransactions(ctx)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}

	changed := 0
	for i := range transactions {
		if transactions[i].Kind == core.Income || transactions[i].MethodID != method.ID {
			continue
		}
		transactions[i].Billing = attributeFor(transactions[i], methods)
		changed++
	}
	if changed == 0 {
		return nil
	}

	if err := s.store.SaveTransactions(ctx, transactions); err != nil {
		return fmt.Errorf("save transactions: %w", err)
	}
	slog.InfoContext(ctx, "Re-attributed transactions after cycle change",
		"method_id", method.ID, "count", changed)
	return nil
}
