package app

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/storefront/pkg/jwtx"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInitSigning(t *testing.T) {
	t.Run("missing secret outside dev", func(t *testing.T) {
		_, _, err := InitSigning(Config{Env: "prod"}, discardLogger())
		require.ErrorIs(t, err, ErrMissingSecret)
	})

	t.Run("dev fallback", func(t *testing.T) {
		signer, _, err := InitSigning(Config{Env: "dev", JWTIssuer: "storefront"}, discardLogger())
		require.NoError(t, err)

		// The fallback is the well-known development secret.
		fallback, err := jwtx.NewVerifierHS256([]byte(devFallbackSecret), jwtx.VerifyOptions{})
		require.NoError(t, err)

		token, err := signer.Sign(jwtx.NewSessionClaims(1, "a@b.com", 2, "storefront", time.Minute, time.Now()))
		require.NoError(t, err)
		_, err = fallback.Verify(token)
		require.NoError(t, err)
	})

	t.Run("configured secret round trip", func(t *testing.T) {
		cfg := Config{Env: "prod", JWTSecret: "s3cret", JWTIssuer: "storefront"}
		signer, verifier, err := InitSigning(cfg, discardLogger())
		require.NoError(t, err)

		token, err := signer.Sign(jwtx.NewSessionClaims(7, "a@b.com", 2, "storefront", time.Minute, time.Now()))
		require.NoError(t, err)

		claims, err := verifier.Verify(token)
		require.NoError(t, err)
		require.Equal(t, int64(2), claims.RoleID)

		other, err := jwtx.NewSignerHS256([]byte("other"))
		require.NoError(t, err)
		forged, err := other.Sign(jwtx.NewSessionClaims(7, "a@b.com", 1, "storefront", time.Minute, time.Now()))
		require.NoError(t, err)
		_, err = verifier.Verify(forged)
		require.Error(t, err)
	})
}
