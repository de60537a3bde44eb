package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/metrics"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// DefaultPhoneRegion is used to parse phone numbers without a country code.
const DefaultPhoneRegion = "US"

// RegisterParams is the validated input to Register.
type RegisterParams struct {
	Email    string
	Name     string
	Password string
	Phone    string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User  domain.PublicAccount
	Token string
}

type AuthService struct {
	Store       store.Store
	Roles       *RolesService
	Hasher      *cryptox.Hasher
	Signer      jwtx.Signer
	Issuer      string
	TokenTTL    time.Duration
	PhoneRegion string
	Metrics     *metrics.Metrics

	// Now is overridable in tests.
	Now func() time.Time
}

// Register creates a CUSTOMER account and signs a session token for it.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (*AuthResult, error) {
	l := slogx.FromContext(ctx)
	email := normalizeEmail(p.Email)

	phone, err := s.normalizePhone(p.Phone)
	if err != nil {
		s.Metrics.AuthEvent("register", metrics.OutcomeRejected)
		return nil, err
	}

	if _, err := s.Store.Accounts().GetAccountByEmail(ctx, email); err == nil {
		s.Metrics.AuthEvent("register", metrics.OutcomeRejected)
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		s.Metrics.AuthEvent("register", metrics.OutcomeError)
		return nil, err
	}

	role, err := s.Roles.GetRoleByName(ctx, domain.RoleCustomer)
	if errors.Is(err, store.ErrNotFound) {
		l.Error("customer role missing; run the seed command")
		s.Metrics.AuthEvent("register", metrics.OutcomeError)
		return nil, domain.ErrCustomerRoleMissing
	}
	if err != nil {
		s.Metrics.AuthEvent("register", metrics.OutcomeError)
		return nil, err
	}

	hash, err := s.Hasher.Hash(p.Password)
	if err != nil {
		s.Metrics.AuthEvent("register", metrics.OutcomeError)
		return nil, err
	}

	acc, err := s.Store.Accounts().CreateAccount(ctx, domain.Account{
		Email:        email,
		Name:         strings.TrimSpace(p.Name),
		PasswordHash: hash,
		Phone:        phone,
		RoleID:       role.ID,
	})
	if errors.Is(err, store.ErrAlreadyExists) && store.ConstraintField(err) == "email" {
		// Lost a race with a concurrent registration for the same email.
		s.Metrics.AuthEvent("register", metrics.OutcomeRejected)
		return nil, domain.ErrEmailTaken
	}
	if err != nil {
		s.Metrics.AuthEvent("register", metrics.OutcomeError)
		return nil, err
	}

	token, err := s.issue(acc)
	if err != nil {
		s.Metrics.AuthEvent("register", metrics.OutcomeError)
		return nil, err
	}

	l.Info("account registered", slog.Int64("account_id", acc.ID))
	s.Metrics.AuthEvent("register", metrics.OutcomeSuccess)
	return &AuthResult{User: domain.Sanitize(acc), Token: token}, nil
}

// Login checks credentials and signs a session token. Unknown email and
// wrong password produce the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	l := slogx.FromContext(ctx)

	acc, err := s.Store.Accounts().GetAccountByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, store.ErrNotFound) {
		s.Metrics.AuthEvent("login", metrics.OutcomeRejected)
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		s.Metrics.AuthEvent("login", metrics.OutcomeError)
		return nil, err
	}

	if !s.Hasher.Verify(password, acc.PasswordHash) {
		l.Info("login rejected", slog.Int64("account_id", acc.ID))
		s.Metrics.AuthEvent("login", metrics.OutcomeRejected)
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issue(acc)
	if err != nil {
		s.Metrics.AuthEvent("login", metrics.OutcomeError)
		return nil, err
	}

	s.Metrics.AuthEvent("login", metrics.OutcomeSuccess)
	return &AuthResult{User: domain.Sanitize(acc), Token: token}, nil
}

// GetProfile returns the sanitized account for an authenticated caller.
func (s *AuthService) GetProfile(ctx context.Context, accountID int64) (domain.PublicAccount, error) {
	acc, err := s.Store.Accounts().GetAccountByID(ctx, accountID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.PublicAccount{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.PublicAccount{}, err
	}
	return domain.Sanitize(acc), nil
}

func (s *AuthService) issue(acc domain.Account) (string, error) {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTTL
	}
	claims := jwtx.NewSessionClaims(acc.ID, acc.Email, acc.RoleID, s.Issuer, ttl, s.now())
	return s.Signer.Sign(claims)
}

// normalizePhone parses the number and stores it as E.164 when it is a
// plausible number. Anything the parser accepts but cannot place is kept
// as entered.
func (s *AuthService) normalizePhone(raw string) (*string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	region := s.PhoneRegion
	if region == "" {
		region = DefaultPhoneRegion
	}

	num, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return nil, domain.Invalid("Validation failed", domain.FieldError{
			Field:   "phone",
			Message: "phone must be a valid phone number",
		})
	}

	out := raw
	if phonenumbers.IsPossibleNumber(num) {
		out = phonenumbers.Format(num, phonenumbers.E164)
	}
	return &out, nil
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
