package service

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
)

var ErrProductNotFound = domain.E(domain.KindNotFound, "Product not found")

// ProductQuery is a page of the product listing.
type ProductQuery struct {
	Page     int
	Limit    int
	Category string
	Featured *bool
}

type CatalogService struct {
	Store store.Store
}

// CategoryTree returns active categories nested under their parents.
func (s *CatalogService) CategoryTree(ctx context.Context) ([]domain.Category, error) {
	flat, err := s.Store.Catalog().ListCategories(ctx, true)
	if err != nil {
		return nil, err
	}
	return domain.BuildCategoryTree(flat), nil
}

// ListProducts returns one page of active products and the total match count.
func (s *CatalogService) ListProducts(ctx context.Context, q ProductQuery) ([]domain.Product, int64, error) {
	filter := domain.ProductFilter{
		CategorySlug: q.Category,
		Featured:     q.Featured,
		Limit:        q.Limit,
		Offset:       (q.Page - 1) * q.Limit,
	}

	products, err := s.Store.Catalog().ListProducts(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Store.Catalog().CountProducts(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// GetProduct returns an active product by slug.
func (s *CatalogService) GetProduct(ctx context.Context, slug string) (domain.Product, error) {
	p, err := s.Store.Catalog().GetProductBySlug(ctx, slug)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Product{}, ErrProductNotFound
	}
	return p, err
}
