package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aussiebroadwan/cnap/internal/cnap/store/drivers/sqlstore"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// uniqueViolation is SQLSTATE unique_violation.
const uniqueViolation = "23505"

type Store struct {
	*sqlstore.Store
}

// NewStore opens a pool against dsn and verifies it answers.
func NewStore(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(16)
	db.SetMaxIdleConns(4)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return Wrap(db), nil
}

// Wrap builds a Store over an existing pool.
func Wrap(db *sql.DB) *Store {
	return &Store{Store: sqlstore.New(db, dialect{})}
}

type dialect struct{}

func (dialect) Rebind(query string) string { return sqlstore.DollarRebind(query) }

func (dialect) IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
