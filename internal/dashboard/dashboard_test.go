package dashboard

import (
	"testing"

	"docegestao.app/internal/catalog"
	"docegestao.app/internal/ledger"
	"docegestao.app/internal/money"
)

func TestCompute(t *testing.T) {
	products := []catalog.Product{
		{ID: "p1", Name: "Brigadeiro", Stock: 2},
		{ID: "p2", Name: "Cajuzinho", Stock: 10},
		{ID: "p3", Name: "Quindim", Stock: 4},
	}
	customers := []ledger.Customer{
		{ID: "c1", Name: "Ana", Balance: money.FromCents(750)},
		{ID: "c2", Name: "Marcos", Balance: money.FromCents(250)},
	}

	s := Compute(products, customers)
	if s.TotalReceivable.Cents() != 1000 {
		t.Fatalf("expected receivable 1000, got %d", s.TotalReceivable.Cents())
	}
	if s.TotalStockUnits != 16 {
		t.Fatalf("expected 16 stock units, got %d", s.TotalStockUnits)
	}
	if len(s.LowStock) != 2 {
		t.Fatalf("expected 2 low-stock products, got %d", len(s.LowStock))
	}
	// Catalog order preserved.
	if s.LowStock[0].ID != "p1" || s.LowStock[1].ID != "p3" {
		t.Fatalf("low-stock order broken: %+v", s.LowStock)
	}
}

func TestComputeEmpty(t *testing.T) {
	s := Compute(nil, nil)
	if s.TotalReceivable != 0 || s.TotalStockUnits != 0 {
		t.Fatalf("expected zero summary, got %+v", s)
	}
	if s.LowStock == nil || len(s.LowStock) != 0 {
		t.Fatalf("low stock must be an empty list, got %#v", s.LowStock)
	}
}

func TestLowStockThresholdIsExclusive(t *testing.T) {
	products := []catalog.Product{
		{ID: "p1", Stock: 5},
		{ID: "p2", Stock: 4},
	}
	low := LowStock(products, LowStockThreshold)
	if len(low) != 1 || low[0].ID != "p2" {
		t.Fatalf("stock == threshold must not be flagged: %+v", low)
	}
}
