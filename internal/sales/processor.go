// Package sales orchestrates sale finalization and tab payments over the
// catalog, the customer ledger and the append-only sale history.
package sales

import (
	"context"
	"time"

	"docegestao.app/internal/catalog"
	"docegestao.app/internal/ids"
	"docegestao.app/internal/ledger"
	"docegestao.app/internal/money"
)

// Processor runs the only multi-step transaction in the system: the sale
// sequence. Steps execute strictly in order, each awaited before the next;
// a failure after earlier steps committed leaves a partially-applied state
// and is reported as a *SaleError, never swallowed.
type Processor struct {
	catalog catalog.Service
	ledger  ledger.Service
	log     Log
}

// NewProcessor wires the processor to its collaborators.
func NewProcessor(cat catalog.Service, led ledger.Service, log Log) *Processor {
	return &Processor{catalog: cat, ledger: led, log: log}
}

// Finalize converts a cart into stock decrements, a balance credit and an
// immutable sale record. The caller clears the cart after a successful
// return. Stock decrements floor at zero, so overselling is silently
// permitted: lines larger than remaining stock still commit.
func (p *Processor) Finalize(ctx context.Context, owner string, cart *Cart, customerID string) (Record, error) {
	if cart == nil || cart.Empty() {
		return Record{}, &SaleError{Stage: StageValidate, Err: ErrEmptyCart}
	}
	customer, err := p.ledger.Get(ctx, owner, customerID)
	if err != nil {
		return Record{}, &SaleError{Stage: StageValidate, Err: err}
	}

	for _, line := range cart.Lines {
		if _, err := p.catalog.AdjustStock(ctx, owner, line.ProductID, -line.Qty); err != nil {
			return Record{}, &SaleError{Stage: StageStock, Err: err}
		}
	}

	total := cart.Total()
	if _, err := p.ledger.AdjustBalance(ctx, owner, customerID, total); err != nil {
		return Record{}, &SaleError{Stage: StageBalance, Err: err}
	}

	rec := Record{
		ID:           ids.New(),
		CustomerID:   customerID,
		CustomerName: customer.Name,
		Total:        total,
		Items:        append([]CartLine(nil), cart.Lines...),
		CreatedAt:    time.Now().UTC(),
	}
	if err := p.log.Append(ctx, owner, rec); err != nil {
		return Record{}, &SaleError{Stage: StageRecord, Err: err}
	}
	return rec, nil
}

// Pay records a payment against a customer's tab: a single balance debit,
// floored at zero. Atomic at the storage layer by virtue of being one write.
func (p *Processor) Pay(ctx context.Context, owner, customerID string, amount money.Amount) (ledger.Customer, error) {
	if amount <= 0 {
		return ledger.Customer{}, ErrInvalidAmount
	}
	return p.ledger.AdjustBalance(ctx, owner, customerID, -amount)
}
