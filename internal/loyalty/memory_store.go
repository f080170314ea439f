package loyalty

import (
	"context"
	"errors"
	"sync"
)

type memoryStore struct {
	mu       sync.RWMutex
	accounts map[string]Account
	byOwner  map[string]string
	history  map[string][]Transaction
}

// NewMemoryStore creates a concurrency-safe in-memory store, used in dev
// mode and unit tests.
func NewMemoryStore() Store {
	return &memoryStore{
		accounts: make(map[string]Account),
		byOwner:  make(map[string]string),
		history:  make(map[string][]Transaction),
	}
}

func (s *memoryStore) CreateAccount(_ context.Context, account Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[account.ID]; exists {
		return errors.New("loyalty account exists")
	}
	s.accounts[account.ID] = account
	s.byOwner[account.OwnerID] = account.ID
	return nil
}

func (s *memoryStore) GetAccount(_ context.Context, id string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, ok := s.accounts[id]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return account, nil
}

func (s *memoryStore) GetAccountByOwner(_ context.Context, ownerID string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byOwner[ownerID]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return s.accounts[id], nil
}

func (s *memoryStore) ApplyCredit(_ context.Context, accountID string, tx Transaction) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return Snapshot{}, ErrAccountNotFound
	}

	account.Balance += tx.Amount
	account.Points += tx.Points
	s.accounts[accountID] = account

	tx.Status = StatusCompleted
	s.history[accountID] = append(s.history[accountID], tx)

	return Snapshot{Balance: account.Balance, Points: account.Points}, nil
}

func (s *memoryStore) ApplyPayment(_ context.Context, accountID string, tx Transaction) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[accountID]
	if !ok {
		return Snapshot{}, ErrAccountNotFound
	}
	if account.Balance < tx.Amount {
		return Snapshot{}, ErrInsufficientBalance
	}

	account.Balance -= tx.Amount
	account.Points += tx.Points
	s.accounts[accountID] = account

	tx.Status = StatusCompleted
	s.history[accountID] = append(s.history[accountID], tx)

	return Snapshot{Balance: account.Balance, Points: account.Points}, nil
}

func (s *memoryStore) RecordFailed(_ context.Context, accountID string, tx Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[accountID]; !ok {
		return ErrAccountNotFound
	}

	tx.Status = StatusFailed
	s.history[accountID] = append(s.history[accountID], tx)
	return nil
}

func (s *memoryStore) History(_ context.Context, accountID string) ([]Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.accounts[accountID]; !ok {
		return nil, ErrAccountNotFound
	}

	records := s.history[accountID]
	out := make([]Transaction, len(records))
	for i, tx := range records {
		out[len(records)-1-i] = tx
	}
	return out, nil
}
