package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"docegestao.app/internal/ids"
)

const minPasswordLength = 6

// Service provides account registration and sign-in over a Store.
type Service struct {
	store Store
}

// NewService wires the service to its account store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Register creates a new account with a hashed password.
func (s *Service) Register(ctx context.Context, name, email, password string) (Account, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" {
		return Account{}, errors.New("name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return Account{}, errors.New("a valid email is required")
	}
	if len(password) < minPasswordLength {
		return Account{}, ErrWeakPassword
	}

	hash, err := HashPassword(password)
	if err != nil {
		return Account{}, err
	}
	acct := Account{
		ID:           ids.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.store.CreateAccount(ctx, acct); err != nil {
		return Account{}, err
	}
	return acct, nil
}

// Login verifies credentials and returns the matching account. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (Account, error) {
	acct, err := s.store.AccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Account{}, ErrInvalidCredentials
		}
		return Account{}, err
	}
	if err := VerifyPassword(acct.PasswordHash, password); err != nil {
		return Account{}, ErrInvalidCredentials
	}
	return acct, nil
}

// AuthenticateToken validates a bearer token and resolves its principal.
func (s *Service) AuthenticateToken(ctx context.Context, token string) (Principal, error) {
	claims, err := ParseAndValidate(token)
	if err != nil {
		return Principal{}, err
	}
	return Principal{ID: claims.Subject, Name: claims.Name, Email: claims.Email}, nil
}
