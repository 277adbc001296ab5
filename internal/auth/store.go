package auth

import (
	"context"
	"strings"
	"sync"
)

// Store persists shop-owner accounts.
type Store interface {
	CreateAccount(ctx context.Context, acct Account) error
	AccountByEmail(ctx context.Context, email string) (Account, error)
	AccountByID(ctx context.Context, id string) (Account, error)
}

// InMemoryStore keeps accounts in process memory, for dev mode and tests.
type InMemoryStore struct {
	mu      sync.RWMutex
	byID    map[string]Account
	byEmail map[string]string // normalized email -> id
}

// NewInMemoryStore creates an empty account store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		byID:    make(map[string]Account),
		byEmail: make(map[string]string),
	}
}

var _ Store = (*InMemoryStore)(nil)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *InMemoryStore) CreateAccount(ctx context.Context, acct Account) error {
	key := normalizeEmail(acct.Email)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[key]; ok {
		return ErrEmailTaken
	}
	s.byID[acct.ID] = acct
	s.byEmail[key] = acct.ID
	return nil
}

func (s *InMemoryStore) AccountByEmail(ctx context.Context, email string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return Account{}, ErrNotFound
	}
	return s.byID[id], nil
}

func (s *InMemoryStore) AccountByID(ctx context.Context, id string) (Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acct, ok := s.byID[id]
	if !ok {
		return Account{}, ErrNotFound
	}
	return acct, nil
}
