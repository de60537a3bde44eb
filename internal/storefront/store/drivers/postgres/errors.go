package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aussiebroadwan/storefront/internal/storefront/store"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

func mapError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		return &store.ConstraintError{Kind: store.ErrAlreadyExists, Field: keyField(pgErr.Detail), Cause: err}
	case codeForeignKeyViolation:
		return &store.ConstraintError{Kind: store.ErrForeignKey, Field: keyField(pgErr.Detail), Cause: err}
	}
	return err
}

// keyField extracts the column from "Key (email)=(a@b.c) already exists.".
// Composite keys report their first column.
func keyField(detail string) string {
	start := strings.Index(detail, "Key (")
	if start < 0 {
		return ""
	}
	rest := detail[start+len("Key ("):]
	end := strings.IndexAny(rest, ",)")
	if end < 0 {
		return ""
	}
	return strings.TrimSpace(rest[:end])
}
