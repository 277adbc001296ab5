package ledger

import (
	"context"
	"testing"

	"docegestao.app/internal/money"
)

const owner = "acct-1"

func TestCreateCustomerStartsAtZero(t *testing.T) {
	s := NewInMemory()
	c, err := s.Create(context.Background(), owner, "Ana")
	if err != nil {
		t.Fatal(err)
	}
	if c.Balance != 0 {
		t.Fatalf("new customer must owe nothing, got %d", c.Balance.Cents())
	}
	if c.ID == "" || c.CreatedAt.IsZero() {
		t.Fatalf("id and creation timestamp must be assigned: %+v", c)
	}
}

func TestCreateRequiresName(t *testing.T) {
	s := NewInMemory()
	if _, err := s.Create(context.Background(), owner, "   "); err != ErrInvalidName {
		t.Fatalf("expected ErrInvalidName, got %v", err)
	}
}

func TestAdjustBalanceFloorsAtZero(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()
	c, _ := s.Create(ctx, owner, "Ana")

	// Sale of R$ 7,50 then a payment of R$ 5,00.
	if _, err := s.AdjustBalance(ctx, owner, c.ID, money.FromCents(750)); err != nil {
		t.Fatal(err)
	}
	got, _ := s.AdjustBalance(ctx, owner, c.ID, money.FromCents(-500))
	if got.Balance.Cents() != 250 {
		t.Fatalf("expected balance 250, got %d", got.Balance.Cents())
	}

	// Overpayment floors at zero instead of going negative.
	got, _ = s.AdjustBalance(ctx, owner, c.ID, money.FromCents(-1000))
	if got.Balance != 0 {
		t.Fatalf("expected balance 0, got %d", got.Balance.Cents())
	}
}

func TestAdjustBalanceMissingCustomer(t *testing.T) {
	s := NewInMemory()
	if _, err := s.AdjustBalance(context.Background(), owner, "missing", money.FromCents(100)); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()
	c, _ := s.Create(ctx, owner, "Ana")
	if err := s.Delete(ctx, owner, c.ID); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, owner, c.ID); err != nil {
		t.Fatalf("deleting an already-deleted customer must not fail: %v", err)
	}
}

func TestListSortedByName(t *testing.T) {
	s := NewInMemory()
	ctx := context.Background()
	for _, name := range []string{"Marcos", "Ana", "João"} {
		if _, err := s.Create(ctx, owner, name); err != nil {
			t.Fatal(err)
		}
	}
	items, _ := s.List(ctx, owner)
	want := []string{"Ana", "João", "Marcos"}
	for i, name := range want {
		if items[i].Name != name {
			t.Fatalf("position %d: got %q, want %q", i, items[i].Name, name)
		}
	}
}
