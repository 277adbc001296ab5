package pg

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"docegestao.app/internal/catalog"
	"docegestao.app/internal/ledger"
	"docegestao.app/internal/money"
	"docegestao.app/internal/sales"
)

const owner = "acct-1"

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewWithDB(db), mock
}

func productRows(stock int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "price_cents", "stock", "created_at"}).
		AddRow("p1", "Brigadeiro", int64(250), stock, time.Now().UTC())
}

func TestAdjustStockFloorsInSQL(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`update products set stock = greatest\(0, stock \+ \$3\)`).
		WithArgs("p1", owner, -5).
		WillReturnRows(productRows(0))

	prod, err := store.Catalog().AdjustStock(context.Background(), owner, "p1", -5)
	if err != nil {
		t.Fatalf("AdjustStock: %v", err)
	}
	if prod.Stock != 0 {
		t.Fatalf("expected floored stock 0, got %d", prod.Stock)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAdjustStockNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`update products set stock`).
		WithArgs("missing", owner, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "price_cents", "stock", "created_at"}))

	_, err := store.Catalog().AdjustStock(context.Background(), owner, "missing", 1)
	if err != catalog.ErrNotFound {
		t.Fatalf("expected catalog.ErrNotFound, got %v", err)
	}
}

func TestAdjustBalanceFloorsInSQL(t *testing.T) {
	store, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"id", "name", "balance_cents", "created_at"}).
		AddRow("c1", "Ana", int64(0), time.Now().UTC())
	mock.ExpectQuery(`update customers set balance_cents = greatest\(0, balance_cents \+ \$3\)`).
		WithArgs("c1", owner, int64(-1000)).
		WillReturnRows(rows)

	cust, err := store.Ledger().AdjustBalance(context.Background(), owner, "c1", money.FromCents(-1000))
	if err != nil {
		t.Fatalf("AdjustBalance: %v", err)
	}
	if cust.Balance != 0 {
		t.Fatalf("expected floored balance 0, got %d", cust.Balance.Cents())
	}
}

func TestAdjustBalanceNotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`update customers set balance_cents`).
		WithArgs("missing", owner, int64(100)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "balance_cents", "created_at"}))

	_, err := store.Ledger().AdjustBalance(context.Background(), owner, "missing", money.FromCents(100))
	if err != ledger.ErrNotFound {
		t.Fatalf("expected ledger.ErrNotFound, got %v", err)
	}
}

func TestDeleteAbsentProductIsNoop(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`delete from products`).
		WithArgs("missing", owner).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := store.Catalog().Delete(context.Background(), owner, "missing"); err != nil {
		t.Fatalf("expected no-op delete, got %v", err)
	}
}

func TestFinalizeSaleSingleTransaction(t *testing.T) {
	store, mock := newMockStore(t)

	cart := &sales.Cart{}
	cart.Add("p1", "Brigadeiro", money.FromCents(250), 3)

	mock.ExpectBegin()
	mock.ExpectQuery(`select name from customers`).
		WithArgs("c1", owner).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Ana"))
	mock.ExpectExec(`update products set stock = greatest\(0, stock - \$3\)`).
		WithArgs("p1", owner, 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`update customers set balance_cents`).
		WithArgs("c1", owner, int64(750)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`insert into sales`).
		WithArgs(sqlmock.AnyArg(), owner, "c1", "Ana", int64(750), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	rec, err := store.FinalizeSale(context.Background(), owner, cart, "c1")
	if err != nil {
		t.Fatalf("FinalizeSale: %v", err)
	}
	if rec.Total.Cents() != 750 || rec.CustomerName != "Ana" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFinalizeSaleRollsBackOnMissingProduct(t *testing.T) {
	store, mock := newMockStore(t)

	cart := &sales.Cart{}
	cart.Add("gone", "Brigadeiro", money.FromCents(250), 1)

	mock.ExpectBegin()
	mock.ExpectQuery(`select name from customers`).
		WithArgs("c1", owner).
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Ana"))
	mock.ExpectExec(`update products set stock`).
		WithArgs("gone", owner, 1).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := store.FinalizeSale(context.Background(), owner, cart, "c1")
	var serr *sales.SaleError
	if !errors.As(err, &serr) || serr.Stage != sales.StageStock {
		t.Fatalf("expected stock-stage sale error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateRejectsBlankNames(t *testing.T) {
	store, mock := newMockStore(t)

	// Whitespace-only names fail validation before any SQL runs, matching
	// the in-memory stores.
	_, err := store.Catalog().Create(context.Background(), owner, "   ", money.FromCents(250), 1)
	if !errors.Is(err, catalog.ErrInvalidName) {
		t.Fatalf("product create: got %v, want ErrInvalidName", err)
	}

	_, err = store.Ledger().Create(context.Background(), owner, "\t\n")
	if !errors.Is(err, ledger.ErrInvalidName) {
		t.Fatalf("customer create: got %v, want ErrInvalidName", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected SQL executed: %v", err)
	}
}
