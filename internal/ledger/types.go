package ledger

import (
	"errors"
	"time"

	"docegestao.app/internal/money"
)

// Customer carries a running balance: the amount currently owed on the tab.
// Balance never goes below zero; payments larger than the debt floor it at 0.
type Customer struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Balance   money.Amount `json:"balance"` // centavos owed
	CreatedAt time.Time    `json:"created_at"`
}

var (
	ErrNotFound    = errors.New("customer not found")
	ErrInvalidName = errors.New("customer name is required")
)
