// Package dashboard computes read-side summary figures over the current
// catalog and ledger snapshots. Pure functions: no side effects, no errors.
package dashboard

import (
	"docegestao.app/internal/catalog"
	"docegestao.app/internal/ledger"
	"docegestao.app/internal/money"
)

// LowStockThreshold is the stock count below which a product is flagged.
const LowStockThreshold = 5

// Summary is the dashboard payload recomputed on every change notification.
type Summary struct {
	TotalReceivable money.Amount      `json:"total_receivable"`
	TotalStockUnits int               `json:"total_stock_units"`
	LowStock        []catalog.Product `json:"low_stock"`
}

// Compute aggregates the snapshots into a Summary. LowStock preserves
// catalog order (name ascending).
func Compute(products []catalog.Product, customers []ledger.Customer) Summary {
	s := Summary{LowStock: []catalog.Product{}}
	for _, c := range customers {
		s.TotalReceivable += c.Balance
	}
	for _, p := range products {
		s.TotalStockUnits += p.Stock
		if p.Stock < LowStockThreshold {
			s.LowStock = append(s.LowStock, p)
		}
	}
	return s
}

// TotalReceivable sums all customer balances.
func TotalReceivable(customers []ledger.Customer) money.Amount {
	var total money.Amount
	for _, c := range customers {
		total += c.Balance
	}
	return total
}

// TotalStockUnits sums all product stock counts.
func TotalStockUnits(products []catalog.Product) int {
	var total int
	for _, p := range products {
		total += p.Stock
	}
	return total
}

// LowStock returns products with stock below the threshold, in catalog order.
func LowStock(products []catalog.Product, threshold int) []catalog.Product {
	out := []catalog.Product{}
	for _, p := range products {
		if p.Stock < threshold {
			out = append(out, p)
		}
	}
	return out
}
