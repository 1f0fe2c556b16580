package storage

import (
	"context"
	"sync"

	"kakeibo/internal/core"
)

// MemoryStore is an in-memory Store for tests and local development.
type MemoryStore struct {
	mu           sync.RWMutex
	transactions []core.Transaction
	methods      []core.PaymentMethod
	settings     core.Settings
	hasSettings  bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) LoadTransactions(ctx context.Context) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out, nil
}

func (s *MemoryStore) SaveTransactions(ctx context.Context, transactions []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = make([]core.Transaction, len(transactions))
	copy(s.transactions, transactions)
	return nil
}

func (s *MemoryStore) LoadMethods(ctx context.Context) ([]core.PaymentMethod, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]core.PaymentMethod, len(s.methods))
	copy(out, s.methods)
	return out, nil
}

func (s *MemoryStore) SaveMethods(ctx context.Context, methods []core.PaymentMethod) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.methods = make([]core.PaymentMethod, len(methods))
	copy(s.methods, methods)
	return nil
}

func (s *MemoryStore) LoadSettings(ctx context.Context) (core.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.hasSettings {
		return core.DefaultSettings(), nil
	}
	return s.settings, nil
}

func (s *MemoryStore) SaveSettings(ctx context.Context, settings core.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	s.hasSettings = true
	return nil
}

func (s *MemoryStore) LoadSnapshot(ctx context.Context) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		Transactions: make([]core.Transaction, len(s.transactions)),
		Methods:      make([]core.PaymentMethod, len(s.methods)),
		Settings:     core.DefaultSettings(),
	}
	copy(snap.Transactions, s.transactions)
	copy(snap.Methods, s.methods)
	if s.hasSettings {
		snap.Settings = s.settings
	}
	return snap, nil
}

func (s *MemoryStore) Close() error { return nil }
