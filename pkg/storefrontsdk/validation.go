package storefrontsdk

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/aussiebroadwan/storefront/pkg/httpx"
)

const (
	PasswordMinLength = 6
	// PasswordMaxBytes is bcrypt's input limit.
	PasswordMaxBytes = 72
	NameMaxLength    = 100
)

var phonePattern = regexp.MustCompile(`^\+?[0-9 ().-]{7,20}$`)

// Normalize trims whitespace and lower-cases the email.
func (r *RegisterRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
}

// Validate checks the register request. The error, when not nil, is a
// validation.Errors keyed by JSON field name.
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Name, validation.Required, validation.Length(1, NameMaxLength)),
		validation.Field(&r.Password,
			validation.Required,
			validation.Length(PasswordMinLength, 0),
			validation.By(maxBytes(PasswordMaxBytes)),
		),
		validation.Field(&r.Phone, validation.Match(phonePattern).Error("must be a valid phone number")),
	)
}

// Normalize trims whitespace and lower-cases the email.
func (r *LoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// Validate checks the login request.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

func maxBytes(n int) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if len(s) > n {
			return fmt.Errorf("must be at most %d bytes", n)
		}
		return nil
	}
}

// FieldErrors flattens a validation error into envelope field errors,
// sorted by field name. Non-validation errors yield nil.
func FieldErrors(err error) []httpx.FieldError {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil
	}

	fields := make([]string, 0, len(verrs))
	for f := range verrs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	out := make([]httpx.FieldError, 0, len(fields))
	for _, f := range fields {
		out = append(out, httpx.FieldError{
			Field:   f,
			Message: f + " " + verrs[f].Error(),
			Code:    "invalid",
		})
	}
	return out
}
