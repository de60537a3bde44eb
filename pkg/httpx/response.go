package httpx

import (
	"encoding/json"
	"net/http"
	"time"
)

// TimestampLayout is the envelope timestamp format (ISO-8601, millisecond precision, UTC).
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// Meta describes one page of a paginated listing.
type Meta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewMeta computes page metadata; totalPages rounds up.
func NewMeta(page, limit int, total int64) Meta {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Meta{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

// Envelope is the body of every successful response.
type Envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Meta      *Meta  `json:"meta,omitempty"`
	Timestamp string `json:"timestamp"`
}

// FieldError points at one invalid input field.
type FieldError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorEnvelope is the body of every error response.
type ErrorEnvelope struct {
	Success    bool         `json:"success"`
	Message    string       `json:"message"`
	Errors     []FieldError `json:"errors,omitempty"`
	StatusCode int          `json:"statusCode"`
	Timestamp  string       `json:"timestamp"`
	Path       string       `json:"path"`
}

// WriteJSON writes a JSON response with the given status code.
// It automatically sets the Content-Type header and Cache-Control headers.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// NoCache sets the Cache-Control and Pragma headers to prevent caching.
// This is commonly required for sensitive responses like tokens.
func NoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Pragma", "no-cache")
}

// WriteSuccess writes a success envelope.
func WriteSuccess(w http.ResponseWriter, code int, message string, data any) {
	WriteJSON(w, code, Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: now(),
	})
}

// WritePage writes a 200 success envelope carrying page metadata.
func WritePage(w http.ResponseWriter, message string, data any, meta Meta) {
	WriteJSON(w, http.StatusOK, Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      &meta,
		Timestamp: now(),
	})
}

// WriteError writes an error envelope for r.
func WriteError(w http.ResponseWriter, r *http.Request, code int, message string, fields ...FieldError) {
	WriteJSON(w, code, ErrorEnvelope{
		Success:    false,
		Message:    message,
		Errors:     fields,
		StatusCode: code,
		Timestamp:  now(),
		Path:       r.URL.RequestURI(),
	})
}

func now() string { return time.Now().UTC().Format(TimestampLayout) }
