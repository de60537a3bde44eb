package httpx

import (
	"context"

	"github.com/aussiebroadwan/storefront/pkg/jwtx"
)

type ctxKey string

const (
	CtxKeyAccountID ctxKey = "account_id"
	CtxKeyClaims    ctxKey = "claims"
)

// ContextWithClaims stores verified claims and the account id they carry.
func ContextWithClaims(ctx context.Context, c jwtx.Claims) context.Context {
	id, _ := c.AccountID()
	ctx = context.WithValue(ctx, CtxKeyAccountID, id)
	ctx = context.WithValue(ctx, CtxKeyClaims, c)
	return ctx
}

// ClaimsFromContext returns the claims placed by AuthnMiddleware.
func ClaimsFromContext(ctx context.Context) (jwtx.Claims, bool) {
	c, ok := ctx.Value(CtxKeyClaims).(jwtx.Claims)
	return c, ok
}

// AccountIDFromContext returns the authenticated account id, or false when
// the request did not pass through AuthnMiddleware.
func AccountIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(CtxKeyAccountID).(int64)
	return id, ok && id > 0
}
