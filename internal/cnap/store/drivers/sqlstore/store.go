// Package sqlstore implements store.Store over database/sql. The sqlite and
// postgres drivers share it and differ only in connection setup, migrations
// and the Dialect they pass in.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/cnap/internal/cnap/store"
)

// Dialect captures what differs between SQL backends.
type Dialect interface {
	// Rebind rewrites ? placeholders into the backend's syntax.
	Rebind(query string) string

	// IsUniqueViolation reports whether err is a unique-constraint failure.
	IsUniqueViolation(err error) bool
}

// DollarRebind rewrites ? placeholders into $1, $2, ...
func DollarRebind(query string) string {
	var (
		sb strings.Builder
		n  int
	)
	sb.Grow(len(query) + 8)
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// querier binds queries to a connection or transaction and the dialect.
type querier struct {
	db execer
	d  Dialect
}

func (q *querier) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := q.db.ExecContext(ctx, q.d.Rebind(query), args...)
	if err != nil {
		return nil, q.mapErr(err)
	}
	return res, nil
}

// execOne runs a statement that must touch exactly one row.
func (q *querier) execOne(ctx context.Context, query string, args ...any) error {
	res, err := q.exec(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// execAny runs a statement and reports whether it touched a row.
func (q *querier) execAny(ctx context.Context, query string, args ...any) (bool, error) {
	res, err := q.exec(ctx, query, args...)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (q *querier) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return q.db.QueryContext(ctx, q.d.Rebind(query), args...)
}

func (q *querier) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return q.db.QueryRowContext(ctx, q.d.Rebind(query), args...)
}

func (q *querier) mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return store.ErrNotFound
	case q.d.IsUniqueViolation(err):
		return errors.Join(store.ErrAlreadyExists, err)
	}
	return err
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// collect drains rows through scan.
func collect[T any](rows *sql.Rows, err error, scan func(scanner) (T, error)) ([]T, error) {
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Store implements every repository of store.Store except ApplyMigrations,
// which the concrete drivers provide.
type Store struct {
	db *sql.DB
	d  Dialect
	q  *querier
}

func New(db *sql.DB, d Dialect) *Store {
	return &Store{db: db, d: d, q: &querier{db: db, d: d}}
}

// DB exposes the pool for driver-level tasks such as migrations.
func (s *Store) DB() *sql.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &txStore{tx: tx, q: &querier{db: tx, d: s.d}}, nil
}

func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	// Safe to call after commit.
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Organizations() store.Organizations { return &orgsRepo{q: s.q} }
func (s *Store) ResearchGroups() store.ResearchGroups { return &groupsRepo{q: s.q} }
func (s *Store) FinancialCoordinators() store.FinancialCoordinators {
	return &coordinatorsRepo{q: s.q}
}
func (s *Store) Users() store.Users                     { return &usersRepo{q: s.q} }
func (s *Store) Members() store.Members                 { return &membersRepo{q: s.q} }
func (s *Store) PendingUsers() store.PendingUsers       { return &pendingRepo{q: s.q} }
func (s *Store) ProcessedEmails() store.ProcessedEmails { return &processedRepo{q: s.q} }
func (s *Store) Payments() store.Payments               { return &paymentsRepo{q: s.q} }
func (s *Store) Budgets() store.Budgets                 { return &budgetsRepo{q: s.q} }
func (s *Store) Products() store.Products               { return &productsRepo{q: s.q} }
func (s *Store) Purchases() store.Purchases             { return &purchasesRepo{q: s.q} }
func (s *Store) Orders() store.Orders                   { return &ordersRepo{q: s.q} }

type txStore struct {
	tx *sql.Tx
	q  *querier
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error                   { return nil }
func (t *txStore) Ping(ctx context.Context) error { return nil }
func (t *txStore) ApplyMigrations() error         { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Organizations() store.Organizations { return &orgsRepo{q: t.q} }
func (t *txStore) ResearchGroups() store.ResearchGroups { return &groupsRepo{q: t.q} }
func (t *txStore) FinancialCoordinators() store.FinancialCoordinators {
	return &coordinatorsRepo{q: t.q}
}
func (t *txStore) Users() store.Users                     { return &usersRepo{q: t.q} }
func (t *txStore) Members() store.Members                 { return &membersRepo{q: t.q} }
func (t *txStore) PendingUsers() store.PendingUsers       { return &pendingRepo{q: t.q} }
func (t *txStore) ProcessedEmails() store.ProcessedEmails { return &processedRepo{q: t.q} }
func (t *txStore) Payments() store.Payments               { return &paymentsRepo{q: t.q} }
func (t *txStore) Budgets() store.Budgets                 { return &budgetsRepo{q: t.q} }
func (t *txStore) Products() store.Products               { return &productsRepo{q: t.q} }
func (t *txStore) Purchases() store.Purchases             { return &purchasesRepo{q: t.q} }
func (t *txStore) Orders() store.Orders                   { return &ordersRepo{q: t.q} }
