// Package catalog owns the product roster and stock counts for each account.
package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"docegestao.app/internal/ids"
	"docegestao.app/internal/money"
)

// Service defines catalog operations. Every call is scoped to the owning
// account: one signed-in identity never sees another's products.
type Service interface {
	Create(ctx context.Context, owner, name string, price money.Amount, initialStock int) (Product, error)
	Get(ctx context.Context, owner, id string) (Product, error)
	List(ctx context.Context, owner string) ([]Product, error)
	AdjustStock(ctx context.Context, owner, id string, delta int) (Product, error)
	Delete(ctx context.Context, owner, id string) error
}

// InMemory implements Service with in-process concurrency safety.
// It is the default backend when no Postgres DSN is configured.
type InMemory struct {
	mu       sync.RWMutex
	products map[string]map[string]*Product // owner -> id -> product
}

// NewInMemory creates an empty catalog.
func NewInMemory() *InMemory {
	return &InMemory{products: make(map[string]map[string]*Product)}
}

var _ Service = (*InMemory)(nil)

func (s *InMemory) Create(ctx context.Context, owner, name string, price money.Amount, initialStock int) (Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Product{}, ErrInvalidName
	}
	if price.IsNegative() {
		return Product{}, ErrInvalidPrice
	}
	if initialStock < 0 {
		initialStock = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := &Product{
		ID:        ids.New(),
		Name:      name,
		Price:     price,
		Stock:     initialStock,
		CreatedAt: time.Now().UTC(),
	}
	if s.products[owner] == nil {
		s.products[owner] = make(map[string]*Product)
	}
	s.products[owner][p.ID] = p
	return *p, nil
}

func (s *InMemory) Get(ctx context.Context, owner, id string) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[owner][id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return *p, nil
}

// List returns the account's products sorted by name ascending. The ordering
// is a presentation contract for stable UI rendering, not a storage guarantee.
func (s *InMemory) List(ctx context.Context, owner string) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, 0, len(s.products[owner]))
	for _, p := range s.products[owner] {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// AdjustStock applies a delta and floors the result at zero. Manual +/- edits
// and sale decrements both go through here.
func (s *InMemory) AdjustStock(ctx context.Context, owner, id string, delta int) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[owner][id]
	if !ok {
		return Product{}, ErrNotFound
	}
	p.Stock += delta
	if p.Stock < 0 {
		p.Stock = 0
	}
	return *p, nil
}

// Delete removes a product. Deleting an absent product is not an error:
// another session may have removed it already.
func (s *InMemory) Delete(ctx context.Context, owner, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.products[owner], id)
	return nil
}
