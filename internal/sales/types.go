package sales

import (
	"errors"
	"fmt"
	"time"

	"docegestao.app/internal/money"
)

// CartLine is a product snapshot plus quantity inside an in-progress sale.
// The snapshot keeps the price at add-time, so later catalog edits do not
// change what the customer is charged.
type CartLine struct {
	ProductID string       `json:"product_id"`
	Name      string       `json:"name"`
	Price     money.Amount `json:"price"` // centavos at add-time
	Qty       int          `json:"qty"`
}

// Cart is the transient selection for one in-progress sale. It is never
// persisted: it lives in the sale session and is discarded on completion.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// Add merges a product into the cart, bumping the quantity when the product
// is already present.
func (c *Cart) Add(productID, name string, price money.Amount, qty int) {
	if qty <= 0 {
		return
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Qty += qty
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{ProductID: productID, Name: name, Price: price, Qty: qty})
}

// Remove drops a product from the cart.
func (c *Cart) Remove(productID string) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Total is the sum of price multiplied by quantity across all lines.
func (c *Cart) Total() money.Amount {
	var total money.Amount
	for _, l := range c.Lines {
		total += l.Price.Mul(l.Qty)
	}
	return total
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool { return len(c.Lines) == 0 }

// Clear discards all lines.
func (c *Cart) Clear() { c.Lines = nil }

// Record is one finalized sale. Records are append-only: never updated or
// deleted. CustomerID may dangle after the customer is removed; CustomerName
// is a snapshot taken at sale time so history stays displayable.
type Record struct {
	ID           string       `json:"id"`
	CustomerID   string       `json:"customer_id"`
	CustomerName string       `json:"customer_name"`
	Total        money.Amount `json:"total"`
	Items        []CartLine   `json:"items"`
	CreatedAt    time.Time    `json:"created_at"`
}

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrInvalidAmount = errors.New("payment amount must be > 0")
)

// Stages of the sale sequence, reported when a step fails mid-flight.
const (
	StageValidate = "validate"
	StageStock    = "stock"
	StageBalance  = "balance"
	StageRecord   = "record"
)

// SaleError reports which stage of the sale sequence failed. Steps already
// committed before the failure stay committed: there is no rollback.
type SaleError struct {
	Stage string
	Err   error
}

func (e *SaleError) Error() string {
	return fmt.Sprintf("sale failed at %s: %v", e.Stage, e.Err)
}

func (e *SaleError) Unwrap() error { return e.Err }
