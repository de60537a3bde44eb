package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a domain error. The HTTP layer maps each kind to exactly
// one status code.
type Kind int

const (
	KindInternal Kind = iota
	KindDuplicateIdentity
	KindInvalidCredentials
	KindConfigurationMissing
	KindNotFound
	KindUnauthenticated
	KindForbidden
	KindValidationFailed
)

func (k Kind) String() string {
	switch k {
	case KindDuplicateIdentity:
		return "duplicate_identity"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindConfigurationMissing:
		return "configuration_missing"
	case KindNotFound:
		return "not_found"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindForbidden:
		return "forbidden"
	case KindValidationFailed:
		return "validation_failed"
	default:
		return "internal"
	}
}

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string
	Message string
}

// Error is the error type returned by services.
type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind and message, so sentinels such
// as ErrInvalidCredentials work with errors.Is after wrapping.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Message == e.Message
}

// E builds an error of the given kind.
func E(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an error of the given kind around a cause.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Invalid builds a validation error carrying field details.
func Invalid(message string, fields ...FieldError) *Error {
	return &Error{Kind: KindValidationFailed, Message: message, Fields: fields}
}

// KindOf returns the kind of err, or KindInternal when err is not a domain error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

var (
	ErrEmailTaken          = E(KindDuplicateIdentity, "Email already registered")
	ErrInvalidCredentials  = E(KindInvalidCredentials, "Invalid credentials")
	ErrCustomerRoleMissing = E(KindConfigurationMissing, "Customer role not found")
	ErrUserNotFound        = E(KindNotFound, "User not found")
	ErrRecordNotFound      = E(KindNotFound, "Record not found")
)
