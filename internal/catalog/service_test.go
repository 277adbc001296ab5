package catalog

import (
	"context"
	"sync"
	"testing"

	"docegestao.app/internal/money"
)

const owner = "acct-1"

func TestCreateProduct(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	p, err := s.Create(ctx, owner, "Brigadeiro", money.FromCents(250), 10)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name != "Brigadeiro" || p.Price.Cents() != 250 || p.Stock != 10 {
		t.Fatalf("unexpected product: %+v", p)
	}
	if p.ID == "" || p.CreatedAt.IsZero() {
		t.Fatalf("id and creation timestamp must be assigned: %+v", p)
	}

	items, _ := s.List(ctx, owner)
	if len(items) != 1 {
		t.Fatalf("expected one product, got %d", len(items))
	}
}

func TestCreateValidation(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()

	if _, err := s.Create(ctx, owner, "  ", money.FromCents(100), 0); err != ErrInvalidName {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
	if _, err := s.Create(ctx, owner, "Beijinho", money.FromCents(-1), 0); err != ErrInvalidPrice {
		t.Fatalf("expected ErrInvalidPrice, got %v", err)
	}

	// Negative initial stock defaults to zero instead of failing.
	p, err := s.Create(ctx, owner, "Beijinho", money.FromCents(100), -5)
	if err != nil {
		t.Fatal(err)
	}
	if p.Stock != 0 {
		t.Fatalf("expected stock 0, got %d", p.Stock)
	}
}

func TestAdjustStockFloorsAtZero(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()
	p, _ := s.Create(ctx, owner, "Cajuzinho", money.FromCents(200), 3)

	deltas := []int{-1, -5, 2, -10, 4}
	for _, d := range deltas {
		if _, err := s.AdjustStock(ctx, owner, p.ID, d); err != nil {
			t.Fatal(err)
		}
	}
	got, _ := s.Get(ctx, owner, p.ID)
	// 3 -1 -> 2, -5 -> 0, +2 -> 2, -10 -> 0, +4 -> 4
	if got.Stock != 4 {
		t.Fatalf("expected stock 4, got %d", got.Stock)
	}
}

func TestAdjustStockMissingProduct(t *testing.T) {
	s := NewInMemory()
	if _, err := s.AdjustStock(context.Background(), owner, "missing", 1); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()
	p, _ := s.Create(ctx, owner, "Quindim", money.FromCents(350), 1)

	if err := s.Delete(ctx, owner, p.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, owner, p.ID); err != nil {
		t.Fatalf("deleting an already-deleted product must not fail: %v", err)
	}
	if _, err := s.Get(ctx, owner, p.ID); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestListSortedByName(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()
	for _, name := range []string{"Quindim", "Brigadeiro", "Cajuzinho"} {
		if _, err := s.Create(ctx, owner, name, money.FromCents(100), 0); err != nil {
			t.Fatal(err)
		}
	}
	items, _ := s.List(ctx, owner)
	want := []string{"Brigadeiro", "Cajuzinho", "Quindim"}
	for i, name := range want {
		if items[i].Name != name {
			t.Fatalf("position %d: got %q, want %q", i, items[i].Name, name)
		}
	}
}

func TestOwnerIsolation(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()
	if _, err := s.Create(ctx, "acct-a", "Brigadeiro", money.FromCents(250), 10); err != nil {
		t.Fatal(err)
	}
	items, _ := s.List(ctx, "acct-b")
	if len(items) != 0 {
		t.Fatalf("accounts must not see each other's products, got %d", len(items))
	}
}

func TestConcurrentAdjustments(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()
	p, _ := s.Create(ctx, owner, "Brigadeiro", money.FromCents(250), 100)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.AdjustStock(ctx, owner, p.ID, -1)
		}()
	}
	wg.Wait()

	got, _ := s.Get(ctx, owner, p.ID)
	if got.Stock != 50 {
		t.Fatalf("expected stock 50, got %d", got.Stock)
	}
}
