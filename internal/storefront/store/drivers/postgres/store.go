// Package postgres provides the PostgreSQL (pgx) driver for the storefront store.
package postgres

import (
	"context"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/aussiebroadwan/storefront/internal/storefront/store/sqlstore"
)

// NewStore connects to PostgreSQL using a pgx connection string.
func NewStore(ctx context.Context, dsn string) (*sqlstore.Store, error) {
	db, err := sqlx.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return sqlstore.New(db, sqlstore.Dialect{
		MapError: mapError,
		Migrate:  migrateUp,
	}), nil
}
