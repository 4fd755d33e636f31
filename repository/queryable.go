package repository

import (
	"context"
	"errors"
	"fmt"

	"quizcoin/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Queryable abstracts over a connection pool and a transaction so the same
// repository code runs standalone or inside a unit of work.
type Queryable interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// translateError maps Postgres failures onto domain sentinels so callers can
// react without knowing about SQLSTATEs. Serialization failures are 40001,
// deadlocks 40P01; both left no partial state and are safe to retry. Class 08
// covers connection failures, class 57 operator intervention (shutdown).
func translateError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01":
			return domain.ErrConcurrencyConflict
		}
		switch pgErr.Code[:2] {
		case "08", "57":
			return fmt.Errorf("%v: %w", pgErr, domain.ErrPersistence)
		}
	}
	return err
}
