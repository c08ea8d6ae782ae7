package pgsql

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pennywise-app/pennywise_backend/internal/apperrors"
)

// uniqueViolationCode is the Postgres error code for unique constraint breaks.
const uniqueViolationCode = "23505"

// querier is the subset of pgx operations shared by *pgxpool.Pool and pgx.Tx.
// Repositories run against the pool by default and against a transaction
// inside WithTx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

// BaseRepository carries the shared connection handle.
type BaseRepository struct {
	pool *pgxpool.Pool
	q    querier
}

// NewBaseRepository creates a repository bound to the pool.
func NewBaseRepository(pool *pgxpool.Pool) BaseRepository {
	return BaseRepository{pool: pool, q: pool}
}

// prefixColumns qualifies every column in a comma-separated list with a table
// alias, for use in joined queries.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

// isUniqueViolation reports whether err is a Postgres unique constraint break.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// mapWriteError converts low-level store errors into the application taxonomy.
func mapWriteError(err error, message string) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return apperrors.NewAppError(409, message, apperrors.ErrDuplicate)
	}
	return apperrors.NewAppError(500, message, errors.Join(apperrors.ErrPersistence, err))
}
