package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/drivers/sqlite"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func strPtr(s string) *string { return &s }

func TestMigrationsAreIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestRoles(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	empty, err := s.Roles().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	admin, err := s.Roles().EnsureRole(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	require.NotZero(t, admin.ID)
	require.False(t, admin.CreatedAt.IsZero())

	again, err := s.Roles().EnsureRole(ctx, domain.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, admin.ID, again.ID)

	_, err = s.Roles().EnsureRole(ctx, domain.RoleCustomer)
	require.NoError(t, err)

	roles, err := s.Roles().ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, roles, 2)
	require.Equal(t, domain.RoleAdmin, roles[0].Name)

	byID, err := s.Roles().GetRoleByID(ctx, admin.ID)
	require.NoError(t, err)
	require.Equal(t, domain.RoleAdmin, byID.Name)

	_, err = s.Roles().GetRoleByName(ctx, domain.RoleVendor)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestAccounts(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	role, err := s.Roles().EnsureRole(ctx, domain.RoleCustomer)
	require.NoError(t, err)

	acc, err := s.Accounts().CreateAccount(ctx, domain.Account{
		Email:        "alice@example.com",
		Name:         "Alice",
		PasswordHash: "hash",
		Phone:        strPtr("+61412345678"),
		RoleID:       role.ID,
	})
	require.NoError(t, err)
	require.NotZero(t, acc.ID)
	require.Len(t, acc.GUID, 36)
	require.Equal(t, domain.RoleCustomer, acc.Role.Name)
	require.NotNil(t, acc.Phone)
	require.Equal(t, "+61412345678", *acc.Phone)

	byEmail, err := s.Accounts().GetAccountByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, acc.ID, byEmail.ID)
	require.Equal(t, "hash", byEmail.PasswordHash)

	_, err = s.Accounts().GetAccountByID(ctx, 9999)
	require.ErrorIs(t, err, store.ErrNotFound)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := s.Accounts().CreateAccount(ctx, domain.Account{
			Email:        "alice@example.com",
			Name:         "Other",
			PasswordHash: "hash",
			RoleID:       role.ID,
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
		require.Equal(t, "email", store.ConstraintField(err))
	})

	t.Run("unknown role", func(t *testing.T) {
		_, err := s.Accounts().CreateAccount(ctx, domain.Account{
			Email:        "bob@example.com",
			Name:         "Bob",
			PasswordHash: "hash",
			RoleID:       9999,
		})
		require.ErrorIs(t, err, store.ErrForeignKey)
	})

	t.Run("ensure", func(t *testing.T) {
		existing, created, err := s.Accounts().EnsureAccount(ctx, domain.Account{
			Email:        "alice@example.com",
			Name:         "Changed",
			PasswordHash: "other",
			RoleID:       role.ID,
		})
		require.NoError(t, err)
		require.False(t, created)
		require.Equal(t, "Alice", existing.Name)

		fresh, created, err := s.Accounts().EnsureAccount(ctx, domain.Account{
			Email:        "carol@example.com",
			Name:         "Carol",
			PasswordHash: "hash",
			RoleID:       role.ID,
		})
		require.NoError(t, err)
		require.True(t, created)
		require.Nil(t, fresh.Phone)
	})

	total, err := s.Accounts().CountAccounts(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, total)

	page, err := s.Accounts().ListAccounts(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	require.Equal(t, "carol@example.com", page[0].Email)
}

func TestWithTxRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	boom := domain.E(domain.KindInternal, "boom")
	err := s.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Roles().EnsureRole(ctx, domain.RoleVendor); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	empty, err := s.Roles().IsEmpty(ctx)
	require.NoError(t, err)
	require.True(t, empty)

	require.NoError(t, s.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Roles().EnsureRole(ctx, domain.RoleVendor)
		return err
	}))
	_, err = s.Roles().GetRoleByName(ctx, domain.RoleVendor)
	require.NoError(t, err)
}

func TestCatalog(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	cat := s.Catalog()

	electronics, err := cat.EnsureCategory(ctx, domain.Category{Name: "Electronics", Slug: "electronics", IsActive: true})
	require.NoError(t, err)
	phones, err := cat.EnsureCategory(ctx, domain.Category{Name: "Phones", Slug: "phones", ParentID: &electronics.ID, IsActive: true})
	require.NoError(t, err)
	books, err := cat.EnsureCategory(ctx, domain.Category{Name: "Books", Slug: "books", IsActive: true})
	require.NoError(t, err)
	_, err = cat.EnsureCategory(ctx, domain.Category{Name: "Hidden", Slug: "hidden"})
	require.NoError(t, err)

	again, err := cat.EnsureCategory(ctx, domain.Category{Name: "Renamed", Slug: "electronics", IsActive: true})
	require.NoError(t, err)
	require.Equal(t, electronics.ID, again.ID)
	require.Equal(t, "Electronics", again.Name)

	all, err := cat.ListCategories(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 4)
	active, err := cat.ListCategories(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 3)

	phone, err := cat.EnsureProduct(ctx, domain.Product{
		CategoryID: phones.ID, Name: "Phone X", Slug: "phone-x", PriceCents: 99999,
		Discount: 10, Stock: 5, SKU: "PX-1", IsActive: true, IsFeatured: true,
	})
	require.NoError(t, err)
	_, err = cat.EnsureProduct(ctx, domain.Product{
		CategoryID: electronics.ID, Name: "Laptop", Slug: "laptop", PriceCents: 249999,
		Stock: 2, SKU: "LT-1", Brand: strPtr("Acme"), IsActive: true,
	})
	require.NoError(t, err)
	_, err = cat.EnsureProduct(ctx, domain.Product{
		CategoryID: books.ID, Name: "Novel", Slug: "novel", PriceCents: 1999, SKU: "NV-1", IsActive: true,
	})
	require.NoError(t, err)
	_, err = cat.EnsureProduct(ctx, domain.Product{
		CategoryID: books.ID, Name: "Retired", Slug: "retired", PriceCents: 100, SKU: "RT-1",
	})
	require.NoError(t, err)

	require.NoError(t, cat.EnsureProductImage(ctx, domain.ProductImage{ProductID: phone.ID, URL: "b.jpg", SortOrder: 2}))
	require.NoError(t, cat.EnsureProductImage(ctx, domain.ProductImage{ProductID: phone.ID, URL: "a.jpg", IsPrimary: true, SortOrder: 1}))
	require.NoError(t, cat.EnsureProductImage(ctx, domain.ProductImage{ProductID: phone.ID, URL: "a.jpg", SortOrder: 9}))

	t.Run("list all active", func(t *testing.T) {
		list, err := cat.ListProducts(ctx, domain.ProductFilter{Limit: 10})
		require.NoError(t, err)
		require.Len(t, list, 3)

		n, err := cat.CountProducts(ctx, domain.ProductFilter{})
		require.NoError(t, err)
		require.EqualValues(t, 3, n)
	})

	t.Run("category includes descendants", func(t *testing.T) {
		f := domain.ProductFilter{CategorySlug: "electronics", Limit: 10}
		list, err := cat.ListProducts(ctx, f)
		require.NoError(t, err)
		require.Len(t, list, 2)

		n, err := cat.CountProducts(ctx, f)
		require.NoError(t, err)
		require.EqualValues(t, 2, n)
	})

	t.Run("featured", func(t *testing.T) {
		featured := true
		list, err := cat.ListProducts(ctx, domain.ProductFilter{Featured: &featured, Limit: 10})
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "phone-x", list[0].Slug)
		require.Len(t, list[0].Images, 2)
		require.Equal(t, "a.jpg", list[0].Images[0].URL)
		require.True(t, list[0].Images[0].IsPrimary)
	})

	t.Run("paging", func(t *testing.T) {
		list, err := cat.ListProducts(ctx, domain.ProductFilter{Limit: 2, Offset: 2})
		require.NoError(t, err)
		require.Len(t, list, 1)
		require.Equal(t, "novel", list[0].Slug)
		require.NotNil(t, list[0].Images)
		require.Empty(t, list[0].Images)
	})

	t.Run("by slug", func(t *testing.T) {
		p, err := cat.GetProductBySlug(ctx, "laptop")
		require.NoError(t, err)
		require.EqualValues(t, 249999, p.PriceCents)
		require.Equal(t, "Acme", *p.Brand)

		_, err = cat.GetProductBySlug(ctx, "retired")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate sku", func(t *testing.T) {
		_, err := cat.EnsureProduct(ctx, domain.Product{
			CategoryID: books.ID, Name: "Copy", Slug: "copy", PriceCents: 1, SKU: "NV-1", IsActive: true,
		})
		require.ErrorIs(t, err, store.ErrAlreadyExists)
		require.Equal(t, "sku", store.ConstraintField(err))
	})
}
