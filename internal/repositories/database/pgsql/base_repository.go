package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/front_desk_log/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"

	singleActiveShiftIndex = "idx_single_active_shift"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// Ping reports whether the database answers.
func (r *BaseRepository) Ping(ctx context.Context) error {
	if err := r.Pool.Ping(ctx); err != nil {
		return apperrors.NewConnectivityError("database unreachable", err)
	}
	return nil
}

// collect runs a query and maps every row by column name into T.
func collect[T any](ctx context.Context, r *BaseRepository, what string, query string, args ...any) ([]T, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewConnectivityError("failed to query "+what, err)
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []T{}, nil
		}
		return nil, apperrors.NewConnectivityError("failed to collect "+what+" rows", err)
	}
	return out, nil
}

// exec runs a statement and fails with notFound when it touched no row.
func (r *BaseRepository) exec(ctx context.Context, what string, notFound error, query string, args ...any) error {
	tag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return apperrors.NewConnectivityError("failed to "+what, err)
	}
	if tag.RowsAffected() == 0 && notFound != nil {
		return notFound
	}
	return nil
}

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}
