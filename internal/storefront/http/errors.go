package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// writeError maps any error returned by a service onto the error envelope.
// It is the only place where errors become status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	l := slogx.FromContext(r.Context())

	var de *domain.Error
	if errors.As(err, &de) && de.Kind != domain.KindInternal {
		fields := make([]httpx.FieldError, 0, len(de.Fields))
		for _, f := range de.Fields {
			fields = append(fields, httpx.FieldError{Field: f.Field, Message: f.Message, Code: "invalid"})
		}
		httpx.WriteError(w, r, statusForKind(de.Kind), de.Message, fields...)
		return
	}

	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		msg := "Unique constraint failed"
		if field := store.ConstraintField(err); field != "" {
			msg += " on " + field
		}
		httpx.WriteError(w, r, http.StatusConflict, msg)
	case errors.Is(err, store.ErrNotFound):
		httpx.WriteError(w, r, http.StatusNotFound, domain.ErrRecordNotFound.Message)
	case errors.Is(err, store.ErrForeignKey):
		httpx.WriteError(w, r, http.StatusBadRequest, "Foreign key constraint failed")
	default:
		l.Error("request failed", "error", err)
		httpx.WriteError(w, r, http.StatusInternalServerError, "Internal server error")
	}
}

func statusForKind(k domain.Kind) int {
	switch k {
	case domain.KindDuplicateIdentity:
		return http.StatusConflict
	case domain.KindInvalidCredentials, domain.KindUnauthenticated:
		return http.StatusUnauthorized
	case domain.KindConfigurationMissing, domain.KindValidationFailed:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
