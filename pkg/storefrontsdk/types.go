package storefrontsdk

import (
	"time"

	"github.com/aussiebroadwan/storefront/pkg/httpx"
)

// ============================================================================
// Envelope
// ============================================================================

// Response is the success envelope around every payload.
type Response[T any] struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      T           `json:"data"`
	Meta      *httpx.Meta `json:"meta,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// ============================================================================
// Auth
// ============================================================================

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// Identity is the caller as described by their session token.
type Identity struct {
	UserID    int64     `json:"userId"`
	Email     string    `json:"email"`
	RoleID    int64     `json:"roleId"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// MeResponse is the payload of GET /auth/me.
type MeResponse struct {
	User Identity `json:"user"`
}

// ============================================================================
// Users & Roles
// ============================================================================

// Role is a named permission group.
type Role struct {
	RoleID    int64     `json:"roleId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RoleRef is the role summary embedded in a user.
type RoleRef struct {
	RoleID int64  `json:"roleId"`
	Name   string `json:"name"`
}

// User is the public view of an account. It never carries credentials.
type User struct {
	UserID    int64     `json:"userId"`
	UserGUID  string    `json:"userGuid"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone"`
	Role      RoleRef   `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ============================================================================
// Catalog
// ============================================================================

// Category is a node of the category tree.
type Category struct {
	CategoryID  int64      `json:"categoryId"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description *string    `json:"description"`
	ImageURL    *string    `json:"imageUrl"`
	ParentID    *int64     `json:"parentId"`
	IsActive    bool       `json:"isActive"`
	Children    []Category `json:"children"`
}

// ProductImage is one picture of a product.
type ProductImage struct {
	ImageID   int64   `json:"imageId"`
	ImageURL  string  `json:"imageUrl"`
	AltText   *string `json:"altText"`
	IsPrimary bool    `json:"isPrimary"`
	SortOrder int     `json:"sortOrder"`
}

// Product is a catalog item. Price is a decimal string with two places.
type Product struct {
	ProductID   int64          `json:"productId"`
	CategoryID  int64          `json:"categoryId"`
	Name        string         `json:"name"`
	Slug        string         `json:"slug"`
	Description *string        `json:"description"`
	Price       string         `json:"price"`
	Discount    int            `json:"discount"`
	Stock       int            `json:"stock"`
	SKU         string         `json:"sku"`
	Brand       *string        `json:"brand"`
	IsActive    bool           `json:"isActive"`
	IsFeatured  bool           `json:"isFeatured"`
	Images      []ProductImage `json:"images"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// ProductQuery filters GET /products. Zero values are omitted.
type ProductQuery struct {
	Page     int
	Limit    int
	Category string
	Featured *bool
}

// ============================================================================
// Health
// ============================================================================

// HealthResponse is returned by /livez and /readyz.
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version,omitempty"`
	Uptime  string            `json:"uptime,omitempty"`
	Checks  map[string]string `json:"checks,omitempty"`
}
