package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/storefrontsdk"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleRegister creates a customer account.
//
//	@Summary		Register a new account
//	@Description	Creates a CUSTOMER account and returns it together with a session token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		storefrontsdk.RegisterRequest	true	"Account details"
//	@Success		201		{object}	storefrontsdk.Response[storefrontsdk.AuthResponse]
//	@Failure		400		{object}	httpx.ErrorEnvelope	"Validation failed or customer role missing"
//	@Failure		409		{object}	httpx.ErrorEnvelope	"Email already registered"
//	@Failure		429		{object}	httpx.ErrorEnvelope	"Too many requests"
//	@Router			/api/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req storefrontsdk.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		writeError(w, r, invalid(err))
		return
	}

	res, err := h.AuthService.Register(r.Context(), service.RegisterParams{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusCreated, "User registered successfully", storefrontsdk.AuthResponse{
		User:  toUser(res.User),
		Token: res.Token,
	})
}

// HandleLogin exchanges credentials for a session token.
//
//	@Summary		Log in
//	@Description	Verifies email and password and returns the account with a session token.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		storefrontsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	storefrontsdk.Response[storefrontsdk.AuthResponse]
//	@Failure		400		{object}	httpx.ErrorEnvelope	"Validation failed"
//	@Failure		401		{object}	httpx.ErrorEnvelope	"Invalid credentials"
//	@Failure		429		{object}	httpx.ErrorEnvelope	"Too many requests"
//	@Router			/api/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req storefrontsdk.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		writeError(w, r, invalid(err))
		return
	}

	res, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "User logged in successfully", storefrontsdk.AuthResponse{
		User:  toUser(res.User),
		Token: res.Token,
	})
}

// HandleProfile returns the caller's account.
//
//	@Summary		Current profile
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	storefrontsdk.Response[storefrontsdk.User]
//	@Failure		401	{object}	httpx.ErrorEnvelope	"Unauthorized or user not found"
//	@Security		BearerAuth
//	@Router			/api/v1/auth/profile [get].
func (h *AuthHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.AccountIDFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.E(domain.KindUnauthenticated, "Unauthorized"))
		return
	}

	user, err := h.AuthService.GetProfile(r.Context(), id)
	if err != nil {
		writeError(w, r, callerLookupError(err))
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "User profile retrieved successfully", toUser(user))
}

// HandleMe describes the caller from the token alone, without a lookup.
//
//	@Summary		Token identity
//	@Description	Returns the identity carried by the bearer token.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	storefrontsdk.Response[storefrontsdk.MeResponse]
//	@Failure		401	{object}	httpx.ErrorEnvelope	"Unauthorized"
//	@Security		BearerAuth
//	@Router			/api/v1/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, r, domain.E(domain.KindUnauthenticated, "Unauthorized"))
		return
	}
	id, err := claims.AccountID()
	if err != nil {
		writeError(w, r, domain.E(domain.KindUnauthenticated, "Unauthorized"))
		return
	}

	identity := storefrontsdk.Identity{
		UserID: id,
		Email:  claims.Email,
		RoleID: claims.RoleID,
	}
	if claims.IssuedAt != nil {
		identity.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}

	httpx.WriteSuccess(w, http.StatusOK, "Current user", storefrontsdk.MeResponse{User: identity})
}

// callerLookupError turns a missing caller account into an authentication
// failure. A valid token whose account is gone no longer authenticates anyone.
func callerLookupError(err error) error {
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.E(domain.KindUnauthenticated, "User not found")
	}
	return err
}
