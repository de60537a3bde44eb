package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/aussiebroadwan/storefront/internal/storefront/cache"
	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/metrics"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/drivers/sqlite"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
)

const (
	testSecret = "test-secret"
	testIssuer = "storefront-test"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func newTestHasher(t *testing.T) *cryptox.Hasher {
	t.Helper()
	h, err := cryptox.NewHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func seedRoles(t *testing.T, s store.Store, names ...string) {
	t.Helper()
	for _, name := range names {
		_, err := s.Roles().EnsureRole(t.Context(), name)
		require.NoError(t, err)
	}
}

type authFixture struct {
	store    store.Store
	roles    *RolesService
	auth     *AuthService
	verifier jwtx.Verifier
	metrics  *metrics.Metrics
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	s := newTestStore(t)
	seedRoles(t, s, domain.RoleAdmin, domain.RoleCustomer, domain.RoleVendor)

	signer, err := jwtx.NewSignerHS256([]byte(testSecret))
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256([]byte(testSecret), jwtx.VerifyOptions{Issuer: testIssuer})
	require.NoError(t, err)

	m := metrics.New("test")
	roles := &RolesService{Store: s, Cache: cache.NewMemory(cache.Config{}), Metrics: m}

	return &authFixture{
		store: s,
		roles: roles,
		auth: &AuthService{
			Store:    s,
			Roles:    roles,
			Hasher:   newTestHasher(t),
			Signer:   signer,
			Issuer:   testIssuer,
			TokenTTL: time.Hour,
			Metrics:  m,
		},
		verifier: verifier,
		metrics:  m,
	}
}
