package http

import (
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
)

type UsersHandler struct {
	UserService *service.UserService
	AuthService *service.AuthService
}

// HandleList returns a page of users.
//
//	@Summary		List users
//	@Description	Returns sanitized accounts ordered by id. Requires the ADMIN role.
//	@Tags			Users
//	@Produce		json
//	@Param			page	query		int	false	"Page number"		default(1)
//	@Param			limit	query		int	false	"Page size (max 100)"	default(10)
//	@Success		200		{object}	storefrontsdk.Response[[]storefrontsdk.User]
//	@Failure		400		{object}	httpx.ErrorEnvelope	"Invalid pagination"
//	@Failure		401		{object}	httpx.ErrorEnvelope	"Unauthorized"
//	@Failure		403		{object}	httpx.ErrorEnvelope	"Forbidden resource"
//	@Security		BearerAuth
//	@Router			/api/v1/users [get].
func (h *UsersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, limit, err := parsePagination(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	users, total, err := h.UserService.ListUsers(r.Context(), page, limit)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WritePage(w, "Users retrieved successfully", toUsers(users), httpx.NewMeta(page, limit, total))
}

// HandleMe returns the caller's account.
//
//	@Summary		Current user
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	storefrontsdk.Response[storefrontsdk.User]
//	@Failure		401	{object}	httpx.ErrorEnvelope	"Unauthorized"
//	@Security		BearerAuth
//	@Router			/api/v1/users/me [get].
func (h *UsersHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
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

	httpx.WriteSuccess(w, http.StatusOK, "Current user retrieved successfully", toUser(user))
}

// HandlePublic is reachable without a token.
//
//	@Summary	Public route
//	@Tags		Users
//	@Produce	json
//	@Success	200	{object}	httpx.Envelope
//	@Router		/api/v1/users/public [get].
func (h *UsersHandler) HandlePublic(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteSuccess(w, http.StatusOK, "This is a public route", nil)
}

// HandleGet returns one user by id.
//
//	@Summary		Get user
//	@Description	Requires the ADMIN role.
//	@Tags			Users
//	@Produce		json
//	@Param			id	path		int	true	"User ID"
//	@Success		200	{object}	storefrontsdk.Response[storefrontsdk.User]
//	@Failure		400	{object}	httpx.ErrorEnvelope	"Invalid id"
//	@Failure		401	{object}	httpx.ErrorEnvelope	"Unauthorized"
//	@Failure		403	{object}	httpx.ErrorEnvelope	"Forbidden resource"
//	@Failure		404	{object}	httpx.ErrorEnvelope	"User not found"
//	@Security		BearerAuth
//	@Router			/api/v1/users/{id} [get].
func (h *UsersHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.UserService.GetUserByID(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "User retrieved successfully", toUser(user))
}
