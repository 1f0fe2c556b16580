package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"kakeibo/internal/core"

	_ "modernc.org/sqlite"
)

// Document names inside the documents table.
const (
	docTransactions = "transactions"
	docMethods      = "methods"
	docSettings     = "settings"
)

// SQLiteStore keeps each document as one JSON body in a documents table.
// All writers go through the single ledger service, so a full-document
// upsert per save is safe and keeps the storage schema independent of the
// domain model.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) getDocument(ctx context.Context, name string, v any) error {
	var body string
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE name = ?`, name).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("select document %s: %w", name, err)
	}
	if err := json.Unmarshal([]byte(body), v); err != nil {
		return fmt.Errorf("decode document %s: %w", name, err)
	}
	return nil
}

func (s *SQLiteStore) putDocument(ctx context.Context, name string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode document %s: %w", name, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (name, body, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		name, string(body), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert document %s: %w", name, err)
	}
	slog.DebugContext(ctx, "Document saved", "name", name, "bytes", len(body))
	return nil
}

func (s *SQLiteStore) LoadTransactions(ctx context.Context) ([]core.Transaction, error) {
	var transactions []core.Transaction
	if err := s.getDocument(ctx, docTransactions, &transactions); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return transactions, nil
}

func (s *SQLiteStore) SaveTransactions(ctx context.Context, transactions []core.Transaction) error {
	if transactions == nil {
		transactions = []core.Transaction{}
	}
	return s.putDocument(ctx, docTransactions, transactions)
}

func (s *SQLiteStore) LoadMethods(ctx context.Context) ([]core.PaymentMethod, error) {
	var methods []core.PaymentMethod
	if err := s.getDocument(ctx, docMethods, &methods); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return methods, nil
}

func (s *SQLiteStore) SaveMethods(ctx context.Context, methods []core.PaymentMethod) error {
	if methods == nil {
		methods = []core.PaymentMethod{}
	}
	return s.putDocument(ctx, docMethods, methods)
}

func (s *SQLiteStore) LoadSettings(ctx context.Context) (core.Settings, error) {
	var settings core.Settings
	if err := s.getDocument(ctx, docSettings, &settings); err != nil {
		if errors.Is(err, ErrNotFound) {
			return core.DefaultSettings(), nil
		}
		return core.Settings{}, err
	}
	return settings, nil
}

func (s *SQLiteStore) SaveSettings(ctx context.Context, settings core.Settings) error {
	return s.putDocument(ctx, docSettings, settings)
}

func (s *SQLiteStore) LoadSnapshot(ctx context.Context) (Snapshot, error) {
	transactions, err := s.LoadTransactions(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	methods, err := s.LoadMethods(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	settings, err := s.LoadSettings(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Transactions: transactions, Methods: methods, Settings: settings}, nil
}
