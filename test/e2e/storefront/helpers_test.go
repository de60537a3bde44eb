//go:build e2e

package storefront_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/aussiebroadwan/storefront/pkg/storefrontsdk"
)

/*
 * Common constants and helper functions for storefront end-to-end tests.
 * This includes container setup, seeded accounts, and assertions.
 */

const (
	testImageName = "storefront-test:latest"

	// Seeded by `storefront seed` from the built-in fixture
	adminEmail    = "admin@ecommerce.com"
	customerEmail = "john.doe@example.com"
	seedPassword  = "password123"
)

// TestMain manages the test lifecycle, builds the Docker image once before
// all tests and cleans it up after all tests complete.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building Storefront Docker image...")

	// Build the Docker image once before all tests
	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up Storefront Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

// buildDockerImage builds the test Docker image.
func buildDockerImage() error {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/storefront/Dockerfile",
		"../../../")
	cmd.Dir = "."
	cmd.Stdout = os.Stdout
	cmd.Stderr = nil

	return cmd.Run()
}

// cleanupDockerImage removes the test Docker image.
func cleanupDockerImage() {
	ctx := context.Background()
	cmd := exec.CommandContext(ctx, "docker", "rmi", "-f", testImageName)
	_ = cmd.Run() // Ignore errors - image might not exist
}

// setupStorefront starts a seeded storefront container and returns an SDK
// client pointed at it. Rate limits are relaxed unless defaultLimits is set.
func setupStorefront(t *testing.T, defaultLimits bool) *storefrontsdk.Client {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"ENV":          "test",
		"PORT":         "3000",
		"DATABASE_URL": "/data/storefront.db",
		"JWT_SECRET":   "e2e-test-secret",
		"JWT_ISSUER":   "storefront",
		"BCRYPT_COST":  "4",
		"LOG_LEVEL":    "info",
		"LOG_FORMAT":   "json",
		"CACHE_DRIVER": "memory",
		"CORS_ORIGINS": "*",
		"PHONE_REGION": "US",
		"API_PREFIX":   storefrontsdk.DefaultPrefix,
	}
	if !defaultLimits {
		// Tests make many rapid requests which would otherwise hit the strict production limits
		env["RATELIMIT_STRICT_REQUESTS"] = "1000"
		env["RATELIMIT_STRICT_BURST"] = "1000"
		env["RATELIMIT_MODERATE_REQUESTS"] = "1000"
		env["RATELIMIT_MODERATE_BURST"] = "1000"
	}

	req := testcontainers.ContainerRequest{
		Image:        testImageName,
		ExposedPorts: []string{"3000/tcp"},
		Env:          env,
		Entrypoint:   []string{"/bin/sh", "-c", "storefront seed && exec storefront serve"},
		WaitingFor: wait.ForHTTP("/readyz").
			WithPort("3000/tcp").
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "3000")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return storefrontsdk.NewClient(fmt.Sprintf("http://%s:%s", host, mappedPort.Port()))
}

// login signs in and returns the session token.
func login(t *testing.T, client *storefrontsdk.Client, email, password string) string {
	t.Helper()

	resp, err := client.Login(t.Context(), email, password)
	require.NoError(t, err, "Login should succeed")
	require.NotEmpty(t, resp.Token, "Token should not be empty")
	return resp.Token
}

// assertStatus checks that err is an API error with the given status and message.
func assertStatus(t *testing.T, err error, code int, message string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, storefrontsdk.IsStatus(err, code), "expected %d, got: %v", code, err)
	if message != "" {
		require.Contains(t, err.Error(), message)
	}
}
