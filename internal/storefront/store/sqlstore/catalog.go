package sqlstore

import (
	"context"
	"strings"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
)

type catalogRepo struct {
	q *Queries
}

type categoryRow struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Slug        string    `db:"slug"`
	Description *string   `db:"description"`
	ImageURL    *string   `db:"image_url"`
	ParentID    *int64    `db:"parent_id"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type productRow struct {
	ID          int64     `db:"id"`
	CategoryID  int64     `db:"category_id"`
	Name        string    `db:"name"`
	Slug        string    `db:"slug"`
	Description *string   `db:"description"`
	PriceCents  int64     `db:"price_cents"`
	Discount    int       `db:"discount"`
	Stock       int       `db:"stock"`
	SKU         string    `db:"sku"`
	Brand       *string   `db:"brand"`
	IsActive    bool      `db:"is_active"`
	IsFeatured  bool      `db:"is_featured"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type imageRow struct {
	ID        int64   `db:"id"`
	ProductID int64   `db:"product_id"`
	URL       string  `db:"image_url"`
	AltText   *string `db:"alt_text"`
	IsPrimary bool    `db:"is_primary"`
	SortOrder int     `db:"sort_order"`
}

const selectCategory = `
SELECT id, name, slug, description, image_url, parent_id, is_active, created_at, updated_at
FROM categories`

const productColumns = `
p.id, p.category_id, p.name, p.slug, p.description, p.price_cents, p.discount, p.stock,
p.sku, p.brand, p.is_active, p.is_featured, p.created_at, p.updated_at`

// categoryTree selects the filtered category and all of its descendants.
const categoryTree = `
WITH RECURSIVE tree (id) AS (
	SELECT id FROM categories WHERE slug = ?
	UNION
	SELECT c.id FROM categories c JOIN tree t ON c.parent_id = t.id
)
`

func (r *catalogRepo) ListCategories(ctx context.Context, activeOnly bool) ([]domain.Category, error) {
	query := selectCategory
	if activeOnly {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY id`

	var rows []categoryRow
	if err := r.q.selectAll(ctx, &rows, query); err != nil {
		return nil, err
	}

	out := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapCategory(row))
	}
	return out, nil
}

func (r *catalogRepo) GetCategoryBySlug(ctx context.Context, slug string) (domain.Category, error) {
	var row categoryRow
	if err := r.q.get(ctx, &row, selectCategory+` WHERE slug = ?`, slug); err != nil {
		return domain.Category{}, err
	}
	return mapCategory(row), nil
}

func (r *catalogRepo) EnsureCategory(ctx context.Context, c domain.Category) (domain.Category, error) {
	_, err := r.q.exec(ctx, `
INSERT INTO categories (name, slug, description, image_url, parent_id, is_active)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT (slug) DO NOTHING`,
		c.Name, c.Slug, c.Description, c.ImageURL, c.ParentID, c.IsActive)
	if err != nil {
		return domain.Category{}, err
	}
	return r.GetCategoryBySlug(ctx, c.Slug)
}

// productQuery builds the shared FROM/WHERE part of product listings.
func productQuery(f domain.ProductFilter) (prefix, where string, args []any) {
	conds := []string{"p.is_active = TRUE"}
	if f.CategorySlug != "" {
		prefix = categoryTree
		args = append(args, f.CategorySlug)
		conds = append(conds, "p.category_id IN (SELECT id FROM tree)")
	}
	if f.Featured != nil {
		conds = append(conds, "p.is_featured = ?")
		args = append(args, *f.Featured)
	}
	return prefix, " FROM products p WHERE " + strings.Join(conds, " AND "), args
}

func (r *catalogRepo) ListProducts(ctx context.Context, f domain.ProductFilter) ([]domain.Product, error) {
	prefix, where, args := productQuery(f)
	query := prefix + "SELECT " + productColumns + where + " ORDER BY p.id"
	if f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	}

	var rows []productRow
	if err := r.q.selectAll(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapProduct(row))
	}
	if err := r.attachImages(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *catalogRepo) CountProducts(ctx context.Context, f domain.ProductFilter) (int64, error) {
	prefix, where, args := productQuery(f)

	var n int64
	if err := r.q.get(ctx, &n, prefix+"SELECT COUNT(*)"+where, args...); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *catalogRepo) GetProductBySlug(ctx context.Context, slug string) (domain.Product, error) {
	var row productRow
	query := "SELECT " + productColumns + " FROM products p WHERE p.slug = ? AND p.is_active = TRUE"
	if err := r.q.get(ctx, &row, query, slug); err != nil {
		return domain.Product{}, err
	}

	products := []domain.Product{mapProduct(row)}
	if err := r.attachImages(ctx, products); err != nil {
		return domain.Product{}, err
	}
	return products[0], nil
}

func (r *catalogRepo) EnsureProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	_, err := r.q.exec(ctx, `
INSERT INTO products (category_id, name, slug, description, price_cents, discount, stock, sku, brand, is_active, is_featured)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (slug) DO NOTHING`,
		p.CategoryID, p.Name, p.Slug, p.Description, p.PriceCents, p.Discount, p.Stock,
		p.SKU, p.Brand, p.IsActive, p.IsFeatured)
	if err != nil {
		return domain.Product{}, err
	}

	var row productRow
	query := "SELECT " + productColumns + " FROM products p WHERE p.slug = ?"
	if err := r.q.get(ctx, &row, query, p.Slug); err != nil {
		return domain.Product{}, err
	}

	products := []domain.Product{mapProduct(row)}
	if err := r.attachImages(ctx, products); err != nil {
		return domain.Product{}, err
	}
	return products[0], nil
}

func (r *catalogRepo) EnsureProductImage(ctx context.Context, img domain.ProductImage) error {
	_, err := r.q.exec(ctx, `
INSERT INTO product_images (product_id, image_url, alt_text, is_primary, sort_order)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (product_id, image_url) DO NOTHING`,
		img.ProductID, img.URL, img.AltText, img.IsPrimary, img.SortOrder)
	return err
}

// attachImages loads images for all products in one query.
func (r *catalogRepo) attachImages(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(products))
	index := make(map[int64]int, len(products))
	for i, p := range products {
		ids = append(ids, p.ID)
		index[p.ID] = i
		products[i].Images = []domain.ProductImage{}
	}

	query, args, err := r.q.in(`
SELECT id, product_id, image_url, alt_text, is_primary, sort_order
FROM product_images
WHERE product_id IN (?)
ORDER BY product_id, sort_order, id`, ids)
	if err != nil {
		return err
	}

	var rows []imageRow
	if err := r.q.selectAll(ctx, &rows, query, args...); err != nil {
		return err
	}
	for _, row := range rows {
		i := index[row.ProductID]
		products[i].Images = append(products[i].Images, domain.ProductImage{
			ID:        row.ID,
			ProductID: row.ProductID,
			URL:       row.URL,
			AltText:   row.AltText,
			IsPrimary: row.IsPrimary,
			SortOrder: row.SortOrder,
		})
	}
	return nil
}

func mapCategory(row categoryRow) domain.Category {
	return domain.Category{
		ID:          row.ID,
		Name:        row.Name,
		Slug:        row.Slug,
		Description: row.Description,
		ImageURL:    row.ImageURL,
		ParentID:    row.ParentID,
		IsActive:    row.IsActive,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func mapProduct(row productRow) domain.Product {
	return domain.Product{
		ID:          row.ID,
		CategoryID:  row.CategoryID,
		Name:        row.Name,
		Slug:        row.Slug,
		Description: row.Description,
		PriceCents:  row.PriceCents,
		Discount:    row.Discount,
		Stock:       row.Stock,
		SKU:         row.SKU,
		Brand:       row.Brand,
		IsActive:    row.IsActive,
		IsFeatured:  row.IsFeatured,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
