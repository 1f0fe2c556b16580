package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"kakeibo/internal/core"
	"kakeibo/internal/ledger"
)

const maxBodySize = 1 << 20 // 1 MiB, enough for a full backup

var (
	errInvalidKind         = errors.New("kind must be 'expense' or 'income'")
	errInvalidCategoryType = errors.New("type must be 'expense' or 'income'")
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError maps domain errors onto HTTP status codes and renders a small
// JSON error body.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ledger.ErrTransactionNotFound),
		errors.Is(err, ledger.ErrMethodNotFound),
		errors.Is(err, ledger.ErrCategoryNotFound),
		errors.Is(err, ledger.ErrNoExportData):
		status = http.StatusNotFound
	case errors.Is(err, ledger.ErrDuplicateCategory):
		status = http.StatusConflict
	case errors.Is(err, ledger.ErrBuiltinCategory),
		errors.Is(err, core.ErrSystemMethod):
		status = http.StatusForbidden
	case errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrEmptyCategory),
		errors.Is(err, core.ErrEmptyName),
		errors.Is(err, core.ErrMissingMethod),
		errors.Is(err, core.ErrMethodOnIncome),
		errors.Is(err, core.ErrStatementDayRange),
		errors.Is(err, core.ErrDueDayRange),
		errors.Is(err, ledger.ErrInvalidBackup),
		errors.Is(err, errInvalidKind),
		errors.Is(err, errInvalidCategoryType):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// decodeBody decodes a JSON request body, rejecting unknown fields and
// oversized payloads.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// parseYearMonth extracts year and month from query parameters, defaulting
// to the current month.
func parseYearMonth(r *http.Request) (year, month int, err error) {
	now := time.Now()
	year = now.Year()
	month = int(now.Month())

	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		year, err = strconv.Atoi(v)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: year %q", core.ErrInvalidDate, v)
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		month, err = strconv.Atoi(v)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: month %q", core.ErrInvalidDate, v)
		}
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("%w: month %d", core.ErrInvalidDate, month)
	}
	return year, month, nil
}

// parseDate parses a date string in YYYY-MM-DD format.
func parseDate(dateStr string) (core.Date, error) {
	parsed, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return core.Date{}, fmt.Errorf("%w: %q", core.ErrInvalidDate, dateStr)
	}
	return core.Date{Year: parsed.Year(), Month: int(parsed.Month()), Day: parsed.Day()}, nil
}

// parseAmount converts a decimal amount string to Money.
func parseAmount(amountStr string) (core.Money, error) {
	cents, err := core.ParseDecimalToCents(amountStr)
	if err != nil {
		return core.Money{}, err
	}
	return core.Money{Cents: cents}, nil
}

func parseCategoryType(v string) (core.CategoryType, error) {
	switch v {
	case "income":
		return core.IncomeCategory, nil
	case "expense", "":
		return core.ExpenseCategory, nil
	default:
		return "", fmt.Errorf("%w: got %q", errInvalidCategoryType, v)
	}
}

func parseKind(v string) (core.Kind, error) {
	switch v {
	case "expense":
		return core.Expense, nil
	case "income":
		return core.Income, nil
	default:
		return "", fmt.Errorf("%w: got %q", errInvalidKind, v)
	}
}
