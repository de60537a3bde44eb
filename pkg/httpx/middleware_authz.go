package httpx

import (
	"context"
	"errors"
	"net/http"
	"slices"

	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// ErrUnknownRole is returned by a RoleResolver when the role id does not exist.
var ErrUnknownRole = errors.New("httpx: unknown role")

// RoleResolver maps the role id carried in a token to its name.
type RoleResolver interface {
	RoleName(ctx context.Context, roleID int64) (string, error)
}

// RequireAnyRole permits the request only when the caller's role is one of
// roles. It must run after AuthnMiddleware. With no roles any authenticated
// caller is allowed through.
func RequireAnyRole(resolver RoleResolver, roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeBearerError(w, r, "missing bearer token")
				return
			}

			if len(roles) == 0 {
				next.ServeHTTP(w, r)
				return
			}

			name, err := resolver.RoleName(r.Context(), claims.RoleID)
			switch {
			case errors.Is(err, ErrUnknownRole):
				WriteError(w, r, http.StatusForbidden, "Forbidden resource")
				return
			case err != nil:
				slogx.FromContext(r.Context()).Error("role lookup failed", "role_id", claims.RoleID, "err", err)
				WriteError(w, r, http.StatusInternalServerError, "Internal server error")
				return
			}

			if !slices.Contains(roles, name) {
				WriteError(w, r, http.StatusForbidden, "Forbidden resource")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
