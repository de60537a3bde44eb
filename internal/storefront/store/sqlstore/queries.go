package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/aussiebroadwan/storefront/internal/storefront/store"
)

// Queries runs rebound SQL against a DBTX and maps errors once.
type Queries struct {
	db     DBTX
	mapErr func(error) error
}

func newQueries(db DBTX, mapErr func(error) error) *Queries {
	return &Queries{db: db, mapErr: mapErr}
}

func (q *Queries) get(ctx context.Context, dest any, query string, args ...any) error {
	return q.mapError(q.db.GetContext(ctx, dest, q.db.Rebind(query), args...))
}

func (q *Queries) selectAll(ctx context.Context, dest any, query string, args ...any) error {
	return q.mapError(q.db.SelectContext(ctx, dest, q.db.Rebind(query), args...))
}

func (q *Queries) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	res, err := q.db.ExecContext(ctx, q.db.Rebind(query), args...)
	return res, q.mapError(err)
}

// insertID runs an INSERT ... RETURNING id and returns the new id.
func (q *Queries) insertID(ctx context.Context, query string, args ...any) (int64, error) {
	var id int64
	err := q.db.QueryRowxContext(ctx, q.db.Rebind(query), args...).Scan(&id)
	return id, q.mapError(err)
}

// in expands slice arguments for IN (?) clauses.
func (q *Queries) in(query string, args ...any) (string, []any, error) {
	return sqlx.In(query, args...)
}

func (q *Queries) mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return store.ErrNotFound
	case q.mapErr != nil:
		return q.mapErr(err)
	default:
		return err
	}
}
