// Package sqlstore implements store.Store on top of sqlx. Queries are written
// once with '?' placeholders and rebound for the driver in use; drivers supply
// error mapping and migrations through a Dialect.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/aussiebroadwan/storefront/internal/storefront/store"
)

// Dialect carries the driver-specific parts of a Store.
type Dialect struct {
	// MapError translates driver errors such as constraint violations into
	// store errors. It is never called with nil or sql.ErrNoRows.
	MapError func(error) error

	// Migrate applies the embedded schema to db.
	Migrate func(db *sql.DB) error
}

// DBTX is satisfied by both *sqlx.DB and *sqlx.Tx.
type DBTX interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest any, query string, args ...any) error
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

type Store struct {
	db      *sqlx.DB
	dialect Dialect
	q       *Queries
}

// New wraps an open database handle.
func New(db *sqlx.DB, d Dialect) *Store {
	return &Store{
		db:      db,
		dialect: d,
		q:       newQueries(db, d.MapError),
	}
}

// DB exposes the underlying handle for drivers and tests.
func (s *Store) DB() *sqlx.DB { return s.db }

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// ApplyMigrations brings the schema up to date.
func (s *Store) ApplyMigrations() error {
	if s.dialect.Migrate == nil {
		return errors.New("sqlstore: dialect has no migrations")
	}
	return s.dialect.Migrate(s.db.DB)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &txStore{tx: tx, q: newQueries(tx, s.dialect.MapError)}, nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Accounts() store.Accounts { return &accountsRepo{q: s.q} }
func (s *Store) Roles() store.Roles       { return &rolesRepo{q: s.q} }
func (s *Store) Catalog() store.Catalog   { return &catalogRepo{q: s.q} }

type txStore struct {
	tx *sqlx.Tx
	q  *Queries
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // outer DB stays open

// Ping is a no-op for transactions; the connection is already held.
func (t *txStore) Ping(context.Context) error { return nil }

func (t *txStore) Tx(context.Context) (store.Tx, error) {
	return nil, sql.ErrTxDone // nested transactions are not supported
}

func (t *txStore) WithTx(context.Context, func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx

func (t *txStore) Accounts() store.Accounts { return &accountsRepo{q: t.q} }
func (t *txStore) Roles() store.Roles       { return &rolesRepo{q: t.q} }
func (t *txStore) Catalog() store.Catalog   { return &catalogRepo{q: t.q} }
