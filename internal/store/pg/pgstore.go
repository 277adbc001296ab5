// Package pg persists the catalog, the customer ledger and the sale history
// in PostgreSQL. Every floored adjustment is a single UPDATE with
// greatest(0, ...), so each one is atomic at the storage layer.
package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"docegestao.app/internal/catalog"
	"docegestao.app/internal/ids"
	"docegestao.app/internal/ledger"
	"docegestao.app/internal/money"
	"docegestao.app/internal/sales"
)

type Store struct {
	db *sql.DB
}

func Open(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	// Tuned pool defaults; adjust under load tests
	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(15 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return &Store{db: db}, nil
}

// NewWithDB wraps an already open handle. Used by tests.
func NewWithDB(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) DB() *sql.DB { return s.db }

// Catalog returns the product view of the store.
func (s *Store) Catalog() catalog.Service { return productStore{s.db} }

// Ledger returns the customer view of the store.
func (s *Store) Ledger() ledger.Service { return customerStore{s.db} }

// Sales returns the sale-history view of the store.
func (s *Store) Sales() sales.Log { return saleLog{s.db} }

// --- products ---

type productStore struct {
	db *sql.DB
}

var _ catalog.Service = productStore{}

func (p productStore) Create(ctx context.Context, owner, name string, price money.Amount, initialStock int) (catalog.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return catalog.Product{}, catalog.ErrInvalidName
	}
	if price.IsNegative() {
		return catalog.Product{}, catalog.ErrInvalidPrice
	}
	if initialStock < 0 {
		initialStock = 0
	}
	prod := catalog.Product{
		ID:        ids.New(),
		Name:      name,
		Price:     price,
		Stock:     initialStock,
		CreatedAt: time.Now().UTC(),
	}
	_, err := p.db.ExecContext(ctx, `
		insert into products(id, owner_id, name, price_cents, stock, created_at)
		values ($1, $2, $3, $4, $5, $6)
	`, prod.ID, owner, prod.Name, prod.Price.Cents(), prod.Stock, prod.CreatedAt)
	if err != nil {
		return catalog.Product{}, err
	}
	return prod, nil
}

func (p productStore) Get(ctx context.Context, owner, id string) (catalog.Product, error) {
	return scanProduct(p.db.QueryRowContext(ctx, `
		select id, name, price_cents, stock, created_at
		from products where id = $1 and owner_id = $2
	`, id, owner))
}

func (p productStore) List(ctx context.Context, owner string) ([]catalog.Product, error) {
	rows, err := p.db.QueryContext(ctx, `
		select id, name, price_cents, stock, created_at
		from products where owner_id = $1
		order by name asc
	`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []catalog.Product
	for rows.Next() {
		prod, err := scanProductRows(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, prod)
	}
	return out, rows.Err()
}

func (p productStore) AdjustStock(ctx context.Context, owner, id string, delta int) (catalog.Product, error) {
	return scanProduct(p.db.QueryRowContext(ctx, `
		update products set stock = greatest(0, stock + $3)
		where id = $1 and owner_id = $2
		returning id, name, price_cents, stock, created_at
	`, id, owner, delta))
}

func (p productStore) Delete(ctx context.Context, owner, id string) error {
	// Deleting an absent row is a no-op: another session may have won.
	_, err := p.db.ExecContext(ctx, `delete from products where id = $1 and owner_id = $2`, id, owner)
	return err
}

func scanProduct(row *sql.Row) (catalog.Product, error) {
	var prod catalog.Product
	var cents int64
	err := row.Scan(&prod.ID, &prod.Name, &cents, &prod.Stock, &prod.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Product{}, catalog.ErrNotFound
	}
	if err != nil {
		return catalog.Product{}, err
	}
	prod.Price = money.FromCents(cents)
	return prod, nil
}

func scanProductRows(rows *sql.Rows) (catalog.Product, error) {
	var prod catalog.Product
	var cents int64
	if err := rows.Scan(&prod.ID, &prod.Name, &cents, &prod.Stock, &prod.CreatedAt); err != nil {
		return catalog.Product{}, err
	}
	prod.Price = money.FromCents(cents)
	return prod, nil
}

// --- customers ---

type customerStore struct {
	db *sql.DB
}

var _ ledger.Service = customerStore{}

func (c customerStore) Create(ctx context.Context, owner, name string) (ledger.Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ledger.Customer{}, ledger.ErrInvalidName
	}
	cust := ledger.Customer{
		ID:        ids.New(),
		Name:      name,
		Balance:   0,
		CreatedAt: time.Now().UTC(),
	}
	_, err := c.db.ExecContext(ctx, `
		insert into customers(id, owner_id, name, balance_cents, created_at)
		values ($1, $2, $3, 0, $4)
	`, cust.ID, owner, cust.Name, cust.CreatedAt)
	if err != nil {
		return ledger.Customer{}, err
	}
	return cust, nil
}

func (c customerStore) Get(ctx context.Context, owner, id string) (ledger.Customer, error) {
	return scanCustomer(c.db.QueryRowContext(ctx, `
		select id, name, balance_cents, created_at
		from customers where id = $1 and owner_id = $2
	`, id, owner))
}

func (c customerStore) List(ctx context.Context, owner string) ([]ledger.Customer, error) {
	rows, err := c.db.QueryContext(ctx, `
		select id, name, balance_cents, created_at
		from customers where owner_id = $1
		order by name asc
	`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ledger.Customer
	for rows.Next() {
		var cust ledger.Customer
		var cents int64
		if err := rows.Scan(&cust.ID, &cust.Name, &cents, &cust.CreatedAt); err != nil {
			return nil, err
		}
		cust.Balance = money.FromCents(cents)
		out = append(out, cust)
	}
	return out, rows.Err()
}

func (c customerStore) AdjustBalance(ctx context.Context, owner, id string, delta money.Amount) (ledger.Customer, error) {
	return scanCustomer(c.db.QueryRowContext(ctx, `
		update customers set balance_cents = greatest(0, balance_cents + $3)
		where id = $1 and owner_id = $2
		returning id, name, balance_cents, created_at
	`, id, owner, delta.Cents()))
}

func (c customerStore) Delete(ctx context.Context, owner, id string) error {
	_, err := c.db.ExecContext(ctx, `delete from customers where id = $1 and owner_id = $2`, id, owner)
	return err
}

func scanCustomer(row *sql.Row) (ledger.Customer, error) {
	var cust ledger.Customer
	var cents int64
	err := row.Scan(&cust.ID, &cust.Name, &cents, &cust.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ledger.Customer{}, ledger.ErrNotFound
	}
	if err != nil {
		return ledger.Customer{}, err
	}
	cust.Balance = money.FromCents(cents)
	return cust, nil
}

// --- sale history ---

type saleLog struct {
	db *sql.DB
}

var _ sales.Log = saleLog{}

func (l saleLog) Append(ctx context.Context, owner string, rec sales.Record) error {
	items, err := json.Marshal(rec.Items)
	if err != nil {
		return err
	}
	_, err = l.db.ExecContext(ctx, `
		insert into sales(id, owner_id, customer_id, customer_name, total_cents, items, created_at)
		values ($1, $2, $3, $4, $5, $6, $7)
	`, rec.ID, owner, rec.CustomerID, rec.CustomerName, rec.Total.Cents(), items, rec.CreatedAt)
	return err
}

func (l saleLog) List(ctx context.Context, owner string) ([]sales.Record, error) {
	rows, err := l.db.QueryContext(ctx, `
		select id, customer_id, customer_name, total_cents, items, created_at
		from sales where owner_id = $1
		order by created_at desc
	`, owner)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []sales.Record
	for rows.Next() {
		var rec sales.Record
		var cents int64
		var items []byte
		if err := rows.Scan(&rec.ID, &rec.CustomerID, &rec.CustomerName, &cents, &items, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Total = money.FromCents(cents)
		if len(items) > 0 {
			if err := json.Unmarshal(items, &rec.Items); err != nil {
				return nil, err
			}
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// FinalizeSale runs the whole sale sequence inside one serializable
// transaction: stock decrements, balance credit and the history insert either
// all commit or none do. This is the stricter alternative to the sequential
// orchestrator and closes the lost-update window between concurrent sales.
func (s *Store) FinalizeSale(ctx context.Context, owner string, cart *sales.Cart, customerID string) (sales.Record, error) {
	if cart == nil || cart.Empty() {
		return sales.Record{}, &sales.SaleError{Stage: sales.StageValidate, Err: sales.ErrEmptyCart}
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return sales.Record{}, &sales.SaleError{Stage: sales.StageValidate, Err: err}
	}
	defer func() { _ = tx.Rollback() }()

	var customerName string
	err = tx.QueryRowContext(ctx, `
		select name from customers where id = $1 and owner_id = $2 for update
	`, customerID, owner).Scan(&customerName)
	if errors.Is(err, sql.ErrNoRows) {
		return sales.Record{}, &sales.SaleError{Stage: sales.StageValidate, Err: ledger.ErrNotFound}
	}
	if err != nil {
		return sales.Record{}, &sales.SaleError{Stage: sales.StageValidate, Err: err}
	}

	for _, line := range cart.Lines {
		res, err := tx.ExecContext(ctx, `
			update products set stock = greatest(0, stock - $3)
			where id = $1 and owner_id = $2
		`, line.ProductID, owner, line.Qty)
		if err != nil {
			return sales.Record{}, &sales.SaleError{Stage: sales.StageStock, Err: err}
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return sales.Record{}, &sales.SaleError{Stage: sales.StageStock, Err: catalog.ErrNotFound}
		}
	}

	total := cart.Total()
	if _, err := tx.ExecContext(ctx, `
		update customers set balance_cents = greatest(0, balance_cents + $3)
		where id = $1 and owner_id = $2
	`, customerID, owner, total.Cents()); err != nil {
		return sales.Record{}, &sales.SaleError{Stage: sales.StageBalance, Err: err}
	}

	rec := sales.Record{
		ID:           ids.New(),
		CustomerID:   customerID,
		CustomerName: customerName,
		Total:        total,
		Items:        append([]sales.CartLine(nil), cart.Lines...),
		CreatedAt:    time.Now().UTC(),
	}
	items, err := json.Marshal(rec.Items)
	if err != nil {
		return sales.Record{}, &sales.SaleError{Stage: sales.StageRecord, Err: err}
	}
	if _, err := tx.ExecContext(ctx, `
		insert into sales(id, owner_id, customer_id, customer_name, total_cents, items, created_at)
		values ($1, $2, $3, $4, $5, $6, $7)
	`, rec.ID, owner, rec.CustomerID, rec.CustomerName, rec.Total.Cents(), items, rec.CreatedAt); err != nil {
		return sales.Record{}, &sales.SaleError{Stage: sales.StageRecord, Err: err}
	}

	if err := tx.Commit(); err != nil {
		return sales.Record{}, &sales.SaleError{Stage: sales.StageRecord, Err: err}
	}
	return rec, nil
}
