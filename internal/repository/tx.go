package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Tx is an opaque transaction handle. Concretely a pgx.Tx for PostgreSQL;
// repository methods that accept one must also tolerate nil (non-transactional
// path), which is what unit tests pass.
type Tx interface{}

// TxManager begins a database transaction, invokes the callback, and
// commits or rolls back. The tx handle is handed to the callback so it can
// be threaded through tx-scoped repository methods.
type TxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager creates a new TxManager.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

// WithTx runs fn inside a transaction. If fn returns an error the transaction
// is rolled back and the error returned; otherwise the transaction commits.
func (m *TxManager) WithTx(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context, tx Tx) error) error {
	tx, err := m.pool.BeginTx(ctx, opts)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ctx, tx); err != nil {
		return err // rollback in defer
	}
	return tx.Commit(ctx)
}

// querier is the subset of pgx query methods shared by pgxpool.Pool and pgx.Tx.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// resolve returns the tx handle when present, otherwise the pool.
func resolve(pool *pgxpool.Pool, tx Tx) querier {
	if t, ok := tx.(pgx.Tx); ok {
		return t
	}
	return pool
}

// inTx reports whether the handle is a live transaction, which is when
// lock-on-select clauses make sense.
func inTx(tx Tx) bool {
	_, ok := tx.(pgx.Tx)
	return ok
}

// IsUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsForeignKeyViolation reports whether err is a PostgreSQL foreign-key
// violation (SQLSTATE 23503).
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
