package storefrontsdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aussiebroadwan/storefront/pkg/httpx"
)

// DefaultPrefix is the path every API route is mounted under.
const DefaultPrefix = "/api/v1"

// Client is a client for the storefront API.
type Client struct {
	// BaseURL is the server root, e.g. "http://localhost:8080".
	BaseURL string

	// Prefix is prepended to API routes. Health endpoints ignore it.
	Prefix string

	HTTPClient *http.Client
}

// NewClient creates a client with the default prefix and a 10s timeout.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		Prefix:  DefaultPrefix,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// ============================================================================
// Auth
// ============================================================================

// Register creates a customer account and returns it with a session token.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, c.url("/auth/register"), "", req)
	if err != nil {
		return nil, err
	}
	env, err := decodeEnvelope[AuthResponse](resp, http.StatusCreated)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, c.url("/auth/login"), "", LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	env, err := decodeEnvelope[AuthResponse](resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// Profile returns the account behind token.
func (c *Client) Profile(ctx context.Context, token string) (*User, error) {
	return getOne[User](ctx, c, c.url("/auth/profile"), token)
}

// Me returns the identity encoded in token.
func (c *Client) Me(ctx context.Context, token string) (*Identity, error) {
	me, err := getOne[MeResponse](ctx, c, c.url("/auth/me"), token)
	if err != nil {
		return nil, err
	}
	return &me.User, nil
}

// ============================================================================
// Users & Roles
// ============================================================================

// ListUsers returns one page of users. Requires an ADMIN token.
func (c *Client) ListUsers(ctx context.Context, token string, page, limit int) ([]User, *httpx.Meta, error) {
	q := url.Values{}
	setInt(q, "page", page)
	setInt(q, "limit", limit)
	return getPage[User](ctx, c, withQuery(c.url("/users"), q), token)
}

// GetUser returns a user by id. Requires an ADMIN token.
func (c *Client) GetUser(ctx context.Context, token string, id int64) (*User, error) {
	return getOne[User](ctx, c, c.url("/users/"+strconv.FormatInt(id, 10)), token)
}

// CurrentUser returns the caller's own account.
func (c *Client) CurrentUser(ctx context.Context, token string) (*User, error) {
	return getOne[User](ctx, c, c.url("/users/me"), token)
}

// ListRoles returns every role. Requires an ADMIN token.
func (c *Client) ListRoles(ctx context.Context, token string) ([]Role, error) {
	roles, err := getOne[[]Role](ctx, c, c.url("/roles"), token)
	if err != nil {
		return nil, err
	}
	return *roles, nil
}

// ============================================================================
// Catalog
// ============================================================================

// Categories returns the active category tree.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	cats, err := getOne[[]Category](ctx, c, c.url("/categories"), "")
	if err != nil {
		return nil, err
	}
	return *cats, nil
}

// Products returns one page of active products.
func (c *Client) Products(ctx context.Context, query ProductQuery) ([]Product, *httpx.Meta, error) {
	q := url.Values{}
	setInt(q, "page", query.Page)
	setInt(q, "limit", query.Limit)
	if query.Category != "" {
		q.Set("category", query.Category)
	}
	if query.Featured != nil {
		q.Set("featured", strconv.FormatBool(*query.Featured))
	}
	return getPage[Product](ctx, c, withQuery(c.url("/products"), q), "")
}

// Product returns a product by slug.
func (c *Client) Product(ctx context.Context, slug string) (*Product, error) {
	return getOne[Product](ctx, c, c.url("/products/"+url.PathEscape(slug)), "")
}

// ============================================================================
// Health
// ============================================================================

// Livez reports whether the process is up.
func (c *Client) Livez(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// Readyz reports whether the service can take traffic.
func (c *Client) Readyz(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *Client) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, c.BaseURL+path, "", nil)
	if err != nil {
		return nil, err
	}
	var out HealthResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func getOne[T any](ctx context.Context, c *Client, u, token string) (*T, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, u, token, nil)
	if err != nil {
		return nil, err
	}
	env, err := decodeEnvelope[T](resp, http.StatusOK)
	if err != nil {
		return nil, err
	}
	return &env.Data, nil
}

func getPage[T any](ctx context.Context, c *Client, u, token string) ([]T, *httpx.Meta, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, u, token, nil)
	if err != nil {
		return nil, nil, err
	}
	env, err := decodeEnvelope[[]T](resp, http.StatusOK)
	if err != nil {
		return nil, nil, err
	}
	return env.Data, env.Meta, nil
}

func setInt(q url.Values, key string, v int) {
	if v > 0 {
		q.Set(key, strconv.Itoa(v))
	}
}

func withQuery(u string, q url.Values) string {
	if len(q) == 0 {
		return u
	}
	return u + "?" + q.Encode()
}
