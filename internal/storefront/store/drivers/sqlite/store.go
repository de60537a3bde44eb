// Package sqlite provides the SQLite (modernc.org/sqlite) driver for the storefront store.
package sqlite

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/aussiebroadwan/storefront/internal/storefront/store/sqlstore"
)

// NewStore opens a SQLite database. Foreign keys are enforced on every
// connection and in-memory databases are pinned to a single connection so
// the schema is shared by all queries.
func NewStore(dsn string) (*sqlstore.Store, error) {
	db, err := sqlx.Open("sqlite", withForeignKeys(dsn))
	if err != nil {
		return nil, err
	}

	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
	}

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return sqlstore.New(db, sqlstore.Dialect{
		MapError: mapError,
		Migrate:  migrateUp,
	}), nil
}

// withForeignKeys adds the foreign_keys pragma to the DSN so pooled
// connections opened later have it too.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}
