package catalog

import (
	"errors"
	"time"

	"docegestao.app/internal/money"
)

// Product is a catalog item with a live stock count.
// Stock never goes below zero: every adjustment is floored at 0.
type Product struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Price     money.Amount `json:"price"` // centavos
	Stock     int          `json:"stock"`
	CreatedAt time.Time    `json:"created_at"`
}

var (
	ErrNotFound     = errors.New("product not found")
	ErrInvalidName  = errors.New("product name is required")
	ErrInvalidPrice = errors.New("price must be a non-negative amount")
)
