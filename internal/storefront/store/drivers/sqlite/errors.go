package sqlite

import (
	"errors"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/aussiebroadwan/storefront/internal/storefront/store"
)

func mapError(err error) error {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return err
	}

	switch se.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return &store.ConstraintError{Kind: store.ErrAlreadyExists, Field: uniqueField(se.Error()), Cause: err}
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return &store.ConstraintError{Kind: store.ErrForeignKey, Cause: err}
	}
	return err
}

// uniqueField extracts the column from "UNIQUE constraint failed: users.email".
// Composite keys report their first column.
func uniqueField(msg string) string {
	const marker = "constraint failed: "
	i := strings.LastIndex(msg, marker)
	if i < 0 {
		return ""
	}
	cols := msg[i+len(marker):]
	if j := strings.IndexAny(cols, ", ("); j >= 0 {
		cols = cols[:j]
	}
	if k := strings.LastIndex(cols, "."); k >= 0 {
		cols = cols[k+1:]
	}
	return cols
}
