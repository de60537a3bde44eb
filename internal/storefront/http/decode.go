package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/pkg/storefrontsdk"
)

const (
	maxBodyBytes = 1 << 20

	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// decodeJSON reads a single JSON object into dst. Unknown fields are rejected.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		return domain.Invalid("Request body is required")
	case strings.HasPrefix(err.Error(), "json: unknown field "):
		field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
		return domain.Invalid("Validation failed", domain.FieldError{
			Field:   field,
			Message: fmt.Sprintf("property %s should not exist", field),
		})
	default:
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return domain.Invalid("Request body too large")
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return domain.Invalid("Validation failed", domain.FieldError{
				Field:   typeErr.Field,
				Message: fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type),
			})
		}
		return domain.Invalid("Request body must be valid JSON")
	}

	if dec.More() {
		return domain.Invalid("Request body must contain a single JSON object")
	}
	return nil
}

// invalid converts a request validation error into a domain validation error.
func invalid(err error) error {
	fe := storefrontsdk.FieldErrors(err)
	if fe == nil {
		return domain.Invalid(err.Error())
	}

	fields := make([]domain.FieldError, 0, len(fe))
	for _, f := range fe {
		fields = append(fields, domain.FieldError{Field: f.Field, Message: f.Message})
	}
	return domain.Invalid("Validation failed", fields...)
}

// parsePagination reads page and limit from the query. Limits above the
// maximum are clamped and pages whose offset does not fit in an int are
// rejected.
func parsePagination(r *http.Request) (page, limit int, err error) {
	q := r.URL.Query()

	page, err = positiveInt(q.Get("page"), "page", defaultPage)
	if err != nil {
		return 0, 0, err
	}
	limit, err = positiveInt(q.Get("limit"), "limit", defaultLimit)
	if err != nil {
		return 0, 0, err
	}
	limit = min(limit, maxLimit)
	if page-1 > math.MaxInt/limit {
		return 0, 0, domain.Invalid("Validation failed", domain.FieldError{
			Field:   "page",
			Message: "page is out of range",
		})
	}
	return page, limit, nil
}

func positiveInt(raw, field string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, domain.Invalid("Validation failed", domain.FieldError{
			Field:   field,
			Message: field + " must be a positive integer",
		})
	}
	return n, nil
}

// parseID reads a positive integer path value.
func parseID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id < 1 {
		return 0, domain.Invalid("Validation failed (numeric string is expected)")
	}
	return id, nil
}
