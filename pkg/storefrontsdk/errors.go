package storefrontsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/storefront/pkg/httpx"
)

// APIError is a non-2xx response decoded from the error envelope.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []httpx.FieldError
	Path       string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if len(e.Errors) == 0 {
		return fmt.Sprintf("storefront: %d %s", e.StatusCode, e.Message)
	}
	msgs := make([]string, 0, len(e.Errors))
	for _, f := range e.Errors {
		msgs = append(msgs, f.Message)
	}
	return fmt.Sprintf("storefront: %d %s (%s)", e.StatusCode, e.Message, strings.Join(msgs, "; "))
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == code
}

// parseErrorResponse converts a failed response into an *APIError. Bodies
// that are not an error envelope still produce an APIError with the status text.
func parseErrorResponse(resp *http.Response, body []byte) error {
	var env httpx.ErrorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    env.Message,
			Errors:     env.Errors,
			Path:       env.Path,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Message:    http.StatusText(resp.StatusCode),
	}
}
