//go:build e2e

package storefront_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/storefront/pkg/storefrontsdk"
)

// TestRegisterLoginProfile walks the full account lifecycle.
func TestRegisterLoginProfile(t *testing.T) {
	client := setupStorefront(t, false)
	ctx := t.Context()

	req := storefrontsdk.RegisterRequest{
		Email:    "new.customer@example.com",
		Name:     "New Customer",
		Password: "hunter22",
		Phone:    "+1 415 555 2671",
	}

	registered, err := client.Register(ctx, req)
	require.NoError(t, err)
	require.Equal(t, req.Email, registered.User.Email)
	require.Equal(t, "CUSTOMER", registered.User.Role.Name)
	require.NotNil(t, registered.User.Phone)
	require.Equal(t, "+14155552671", *registered.User.Phone)
	require.NotEmpty(t, registered.Token)

	_, err = client.Register(ctx, req)
	assertStatus(t, err, http.StatusConflict, "Email already registered")

	token := login(t, client, req.Email, req.Password)

	_, err = client.Login(ctx, req.Email, "wrong-password")
	assertStatus(t, err, http.StatusUnauthorized, "Invalid credentials")
	_, err = client.Login(ctx, "ghost@example.com", req.Password)
	assertStatus(t, err, http.StatusUnauthorized, "Invalid credentials")

	profile, err := client.Profile(ctx, token)
	require.NoError(t, err)
	require.Equal(t, registered.User.UserID, profile.UserID)

	me, err := client.Me(ctx, token)
	require.NoError(t, err)
	require.Equal(t, registered.User.UserID, me.UserID)
	require.Equal(t, req.Email, me.Email)

	_, err = client.Profile(ctx, "")
	assertStatus(t, err, http.StatusUnauthorized, "")
	_, err = client.Profile(ctx, "not-a-token")
	assertStatus(t, err, http.StatusUnauthorized, "")
}

// TestRoleGuards verifies admin-only routes reject customers.
func TestRoleGuards(t *testing.T) {
	client := setupStorefront(t, false)
	ctx := t.Context()

	admin := login(t, client, adminEmail, seedPassword)
	customer := login(t, client, customerEmail, seedPassword)

	users, meta, err := client.ListUsers(ctx, admin, 1, 10)
	require.NoError(t, err)
	require.Len(t, users, 4)
	require.EqualValues(t, 4, meta.Total)

	roles, err := client.ListRoles(ctx, admin)
	require.NoError(t, err)
	require.Len(t, roles, 3)

	user, err := client.GetUser(ctx, admin, users[1].UserID)
	require.NoError(t, err)
	require.Equal(t, users[1].Email, user.Email)

	_, err = client.GetUser(ctx, admin, 9999)
	assertStatus(t, err, http.StatusNotFound, "User with ID 9999 not found")

	_, _, err = client.ListUsers(ctx, customer, 1, 10)
	assertStatus(t, err, http.StatusForbidden, "Forbidden resource")
	_, err = client.ListRoles(ctx, customer)
	assertStatus(t, err, http.StatusForbidden, "")

	self, err := client.CurrentUser(ctx, customer)
	require.NoError(t, err)
	require.Equal(t, customerEmail, self.Email)
}

// TestRegisterRateLimit verifies the strict limit applies to registration.
// The strict profile allows 5 requests per minute per client address.
func TestRegisterRateLimit(t *testing.T) {
	client := setupStorefront(t, true)
	ctx := t.Context()

	req := storefrontsdk.RegisterRequest{Email: "burst@example.com", Name: "Burst", Password: "hunter22"}

	_, err := client.Register(ctx, req)
	require.NoError(t, err)

	for i := range 4 {
		_, err = client.Register(ctx, req)
		assertStatus(t, err, http.StatusConflict, "")
		require.False(t, storefrontsdk.IsStatus(err, http.StatusTooManyRequests), "request %d should not be limited", i+2)
	}

	_, err = client.Register(ctx, req)
	assertStatus(t, err, http.StatusTooManyRequests, "Too many requests")
}
