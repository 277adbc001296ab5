package auth

import (
	"errors"
	"time"
)

// Account is one signed-up shop owner. All persisted collections (products,
// customers, sales) are namespaced by the account id.
type Account struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Principal is the authenticated identity carried through request contexts.
type Principal struct {
	ID    string
	Name  string
	Email string
}

var (
	// ErrInvalidToken indicates the token failed validation.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrWeakPassword indicates a password below the minimum length.
	ErrWeakPassword = errors.New("password must have at least 6 characters")
	// ErrNotFound indicates the account does not exist.
	ErrNotFound = errors.New("account not found")
)
