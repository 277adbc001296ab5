package sales

import (
	"testing"

	"docegestao.app/internal/money"
)

func TestCartAddMergesLines(t *testing.T) {
	cart := &Cart{}
	cart.Add("p1", "Brigadeiro", money.FromCents(250), 1)
	cart.Add("p1", "Brigadeiro", money.FromCents(250), 2)
	cart.Add("p2", "Quindim", money.FromCents(350), 1)

	if len(cart.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(cart.Lines))
	}
	if cart.Lines[0].Qty != 3 {
		t.Fatalf("expected merged qty 3, got %d", cart.Lines[0].Qty)
	}
	if cart.Total().Cents() != 1100 {
		t.Fatalf("expected total 1100, got %d", cart.Total().Cents())
	}
}

func TestCartAddIgnoresNonPositiveQty(t *testing.T) {
	cart := &Cart{}
	cart.Add("p1", "Brigadeiro", money.FromCents(250), 0)
	cart.Add("p1", "Brigadeiro", money.FromCents(250), -1)
	if !cart.Empty() {
		t.Fatalf("expected empty cart, got %d lines", len(cart.Lines))
	}
}

func TestCartRemoveAndClear(t *testing.T) {
	cart := &Cart{}
	cart.Add("p1", "Brigadeiro", money.FromCents(250), 1)
	cart.Add("p2", "Quindim", money.FromCents(350), 1)

	cart.Remove("p1")
	if len(cart.Lines) != 1 || cart.Lines[0].ProductID != "p2" {
		t.Fatalf("unexpected lines after remove: %+v", cart.Lines)
	}
	cart.Remove("missing") // no-op

	cart.Clear()
	if !cart.Empty() {
		t.Fatal("expected empty cart after clear")
	}
}
