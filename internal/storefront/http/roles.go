package http

import (
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/storefrontsdk"
)

type RolesHandler struct {
	RolesService *service.RolesService
}

// ServeHTTP handles the list roles endpoint
//
//	@Summary		List all roles
//	@Description	Returns every role in the system. Requires the ADMIN role.
//	@Tags			Roles
//	@Produce		json
//	@Success		200	{object}	storefrontsdk.Response[[]storefrontsdk.Role]	"List of roles"
//	@Failure		401	{object}	httpx.ErrorEnvelope							"Unauthorized - missing or invalid token"
//	@Failure		403	{object}	httpx.ErrorEnvelope							"Forbidden resource"
//	@Failure		500	{object}	httpx.ErrorEnvelope							"Internal server error"
//	@Security		BearerAuth
//	@Router			/api/v1/roles [get].
func (h *RolesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	roles, err := h.RolesService.ListAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]storefrontsdk.Role, 0, len(roles))
	for _, role := range roles {
		out = append(out, toRole(role))
	}

	httpx.WriteSuccess(w, http.StatusOK, "Roles retrieved successfully", out)
}
