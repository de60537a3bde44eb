package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	ErrForeignKey    = errors.New("store: foreign key violation")
)

// ConstraintError is a constraint violation reported by a driver. It matches
// ErrAlreadyExists or ErrForeignKey with errors.Is and names the offending
// column when the driver reports one.
type ConstraintError struct {
	Kind  error
	Field string
	Cause error
}

func (e *ConstraintError) Error() string {
	if e.Field == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%v on %s", e.Kind, e.Field)
}

func (e *ConstraintError) Unwrap() []error { return []error{e.Kind, e.Cause} }

// ConstraintField returns the column named by a ConstraintError in err's chain.
func ConstraintField(err error) string {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce.Field
	}
	return ""
}

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Sub-repositories are exposed as methods so a Tx-scoped store
// hands out repos bound to the transaction and nested transactions are refused.
type Store interface {
	Accounts() Accounts
	Roles() Roles
	Catalog() Catalog

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Accounts interface {
	// GetAccountByID returns an account with its role resolved.
	GetAccountByID(ctx context.Context, id int64) (domain.Account, error)

	// GetAccountByEmail is used by register (duplicate check) and login.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// CreateAccount inserts an account and returns it as stored. A GUID is
	// generated when a.GUID is empty. A taken email yields ErrAlreadyExists.
	CreateAccount(ctx context.Context, a domain.Account) (domain.Account, error)

	// EnsureAccount creates the account unless one with the same email exists.
	// Existing rows are returned untouched; created reports which happened.
	EnsureAccount(ctx context.Context, a domain.Account) (acc domain.Account, created bool, err error)

	// ListAccounts returns a page of accounts ordered by id.
	ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, error)

	// CountAccounts returns the total number of accounts.
	CountAccounts(ctx context.Context) (int64, error)
}

type Roles interface {
	// GetRoleByID fetches a role by its ID.
	GetRoleByID(ctx context.Context, id int64) (domain.Role, error)

	// GetRoleByName fetches a role by its name.
	GetRoleByName(ctx context.Context, name string) (domain.Role, error)

	// ListAll returns all roles ordered by id.
	ListAll(ctx context.Context) ([]domain.Role, error)

	// EnsureRole creates the role if it does not exist and returns it.
	EnsureRole(ctx context.Context, name string) (domain.Role, error)

	// IsEmpty returns true if there are no roles.
	IsEmpty(ctx context.Context) (bool, error)
}

type Catalog interface {
	// ListCategories returns categories ordered by id.
	ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error)

	// GetCategoryBySlug fetches a single category.
	GetCategoryBySlug(ctx context.Context, slug string) (domain.Category, error)

	// EnsureCategory creates the category unless its slug exists and returns the stored row.
	EnsureCategory(ctx context.Context, c domain.Category) (domain.Category, error)

	// ListProducts returns active products matching f, with images, ordered by id.
	// A category filter includes every descendant category.
	ListProducts(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error)

	// CountProducts counts the products ListProducts would return without paging.
	CountProducts(ctx context.Context, f domain.ProductFilter) (int64, error)

	// GetProductBySlug returns an active product with its images.
	GetProductBySlug(ctx context.Context, slug string) (domain.Product, error)

	// EnsureProduct creates the product unless its slug exists and returns the stored row.
	EnsureProduct(ctx context.Context, p domain.Product) (domain.Product, error)

	// EnsureProductImage attaches an image unless the same URL is already attached.
	EnsureProductImage(ctx context.Context, img domain.ProductImage) error
}
