// Package ledger owns the customer roster and each customer's outstanding
// balance. Sales credit a balance, payments debit it.
package ledger

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"docegestao.app/internal/ids"
	"docegestao.app/internal/money"
)

// Service defines customer-ledger operations, scoped to the owning account.
type Service interface {
	Create(ctx context.Context, owner, name string) (Customer, error)
	Get(ctx context.Context, owner, id string) (Customer, error)
	List(ctx context.Context, owner string) ([]Customer, error)
	AdjustBalance(ctx context.Context, owner, id string, delta money.Amount) (Customer, error)
	Delete(ctx context.Context, owner, id string) error
}

// InMemory implements Service with in-process concurrency safety.
type InMemory struct {
	mu        sync.RWMutex
	customers map[string]map[string]*Customer // owner -> id -> customer
}

// NewInMemory creates an empty ledger.
func NewInMemory() *InMemory {
	return &InMemory{customers: make(map[string]map[string]*Customer)}
}

var _ Service = (*InMemory)(nil)

func (s *InMemory) Create(ctx context.Context, owner, name string) (Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Customer{}, ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := &Customer{
		ID:        ids.New(),
		Name:      name,
		Balance:   0,
		CreatedAt: time.Now().UTC(),
	}
	if s.customers[owner] == nil {
		s.customers[owner] = make(map[string]*Customer)
	}
	s.customers[owner][c.ID] = c
	return *c, nil
}

func (s *InMemory) Get(ctx context.Context, owner, id string) (Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.customers[owner][id]
	if !ok {
		return Customer{}, ErrNotFound
	}
	return *c, nil
}

// List returns the account's customers sorted by name ascending, the same
// presentation contract the catalog follows.
func (s *InMemory) List(ctx context.Context, owner string) ([]Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Customer, 0, len(s.customers[owner]))
	for _, c := range s.customers[owner] {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// AdjustBalance applies a delta and floors the result at zero. A positive
// delta is new debt from a sale, a negative delta is a payment received.
func (s *InMemory) AdjustBalance(ctx context.Context, owner, id string, delta money.Amount) (Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[owner][id]
	if !ok {
		return Customer{}, ErrNotFound
	}
	c.Balance += delta
	if c.Balance < 0 {
		c.Balance = 0
	}
	return *c, nil
}

// Delete removes a customer. Historical sale records keep their name snapshot,
// so deletion never corrupts history display. Idempotent.
func (s *InMemory) Delete(ctx context.Context, owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.customers[owner], id)
	return nil
}
