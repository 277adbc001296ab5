package auth

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PostgresStore persists accounts in the accounts table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore wraps an open database handle.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

var _ Store = (*PostgresStore)(nil)

func (s *PostgresStore) CreateAccount(ctx context.Context, acct Account) error {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`select exists(select 1 from accounts where email = $1)`, acct.Email).Scan(&exists)
	if err != nil {
		return err
	}
	if exists {
		return ErrEmailTaken
	}
	_, err = s.db.ExecContext(ctx, `
		insert into accounts(id, name, email, password_hash, created_at)
		values ($1, $2, $3, $4, $5)
	`, acct.ID, acct.Name, acct.Email, acct.PasswordHash, acct.CreatedAt)
	return err
}

func (s *PostgresStore) AccountByEmail(ctx context.Context, email string) (Account, error) {
	return s.scanAccount(s.db.QueryRowContext(ctx, `
		select id, name, email, password_hash, created_at
		from accounts where email = $1
	`, normalizeEmail(email)))
}

func (s *PostgresStore) AccountByID(ctx context.Context, id string) (Account, error) {
	return s.scanAccount(s.db.QueryRowContext(ctx, `
		select id, name, email, password_hash, created_at
		from accounts where id = $1
	`, id))
}

func (s *PostgresStore) scanAccount(row *sql.Row) (Account, error) {
	var acct Account
	var created time.Time
	err := row.Scan(&acct.ID, &acct.Name, &acct.Email, &acct.PasswordHash, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Account{}, ErrNotFound
	}
	if err != nil {
		return Account{}, err
	}
	acct.CreatedAt = created
	return acct, nil
}
