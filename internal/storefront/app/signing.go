package app

import (
	"errors"
	"log/slog"

	"github.com/aussiebroadwan/storefront/pkg/jwtx"
)

// ErrMissingSecret is returned when no JWT secret is configured outside dev.
var ErrMissingSecret = errors.New("app: JWT_SECRET must be set outside the dev environment")

// devFallbackSecret is only ever used when ENV=dev and JWT_SECRET is empty.
const devFallbackSecret = "fallback-secret-key"

// InitSigning builds the HS256 signer and verifier for session tokens.
func InitSigning(cfg Config, logger *slog.Logger) (*jwtx.HS256Signer, *jwtx.HS256Verifier, error) {
	secret := cfg.JWTSecret
	if secret == "" {
		if !cfg.IsDev() {
			return nil, nil, ErrMissingSecret
		}
		logger.Warn("JWT_SECRET is not set, using the insecure development fallback secret")
		secret = devFallbackSecret
	}

	signer, err := jwtx.NewSignerHS256([]byte(secret))
	if err != nil {
		return nil, nil, err
	}
	verifier, err := jwtx.NewVerifierHS256([]byte(secret), jwtx.VerifyOptions{Issuer: cfg.JWTIssuer})
	if err != nil {
		return nil, nil, err
	}
	return signer, verifier, nil
}
