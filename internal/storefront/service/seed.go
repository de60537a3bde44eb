package service

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

//go:embed fixtures/seed.yaml
var DefaultSeed []byte

// SeedData is the fixture format understood by SeedService.
type SeedData struct {
	Roles      []string       `yaml:"roles"`
	Users      []SeedUser     `yaml:"users"`
	Categories []SeedCategory `yaml:"categories"`
	Products   []SeedProduct  `yaml:"products"`
}

type SeedUser struct {
	Email    string `yaml:"email"`
	Name     string `yaml:"name"`
	Password string `yaml:"password"`
	Phone    string `yaml:"phone"`
	Role     string `yaml:"role"`
}

type SeedCategory struct {
	Name        string         `yaml:"name"`
	Slug        string         `yaml:"slug"`
	Description string         `yaml:"description"`
	ImageURL    string         `yaml:"imageUrl"`
	Inactive    bool           `yaml:"inactive"`
	Children    []SeedCategory `yaml:"children"`
}

type SeedProduct struct {
	Name        string      `yaml:"name"`
	Slug        string      `yaml:"slug"`
	Category    string      `yaml:"category"`
	Description string      `yaml:"description"`
	Price       float64     `yaml:"price"`
	Discount    int         `yaml:"discount"`
	Stock       int         `yaml:"stock"`
	SKU         string      `yaml:"sku"`
	Brand       string      `yaml:"brand"`
	Inactive    bool        `yaml:"inactive"`
	Featured    bool        `yaml:"featured"`
	Images      []SeedImage `yaml:"images"`
}

type SeedImage struct {
	URL     string `yaml:"url"`
	Alt     string `yaml:"alt"`
	Primary bool   `yaml:"primary"`
	Order   int    `yaml:"order"`
}

// SeedReport counts rows touched by a seed run. Existing rows are counted
// too; only CreatedUsers distinguishes new rows.
type SeedReport struct {
	Roles        int
	Users        int
	CreatedUsers int
	Categories   int
	Products     int
	Images       int
}

// ParseSeed decodes a YAML fixture.
func ParseSeed(raw []byte) (SeedData, error) {
	var data SeedData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return SeedData{}, fmt.Errorf("parse seed: %w", err)
	}
	return data, nil
}

// SeedService loads fixture data. Every insert is keyed by a unique column
// so running it twice leaves the database unchanged.
type SeedService struct {
	Store  store.Store
	Hasher *cryptox.Hasher
}

// Seed applies data inside a single transaction.
func (s *SeedService) Seed(ctx context.Context, data SeedData) (SeedReport, error) {
	var report SeedReport

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		report = SeedReport{}

		roles := make(map[string]domain.Role, len(data.Roles))
		for _, name := range data.Roles {
			role, err := tx.Roles().EnsureRole(ctx, name)
			if err != nil {
				return fmt.Errorf("seed role %s: %w", name, err)
			}
			roles[name] = role
			report.Roles++
		}

		for _, u := range data.Users {
			role, ok := roles[u.Role]
			if !ok {
				return fmt.Errorf("seed user %s: unknown role %q", u.Email, u.Role)
			}
			hash, err := s.Hasher.Hash(u.Password)
			if err != nil {
				return fmt.Errorf("seed user %s: %w", u.Email, err)
			}
			_, created, err := tx.Accounts().EnsureAccount(ctx, domain.Account{
				Email:        normalizeEmail(u.Email),
				Name:         u.Name,
				PasswordHash: hash,
				Phone:        optional(u.Phone),
				RoleID:       role.ID,
			})
			if err != nil {
				return fmt.Errorf("seed user %s: %w", u.Email, err)
			}
			report.Users++
			if created {
				report.CreatedUsers++
			}
		}

		categories := make(map[string]int64)
		var walk func(nodes []SeedCategory, parent *int64) error
		walk = func(nodes []SeedCategory, parent *int64) error {
			for _, c := range nodes {
				stored, err := tx.Catalog().EnsureCategory(ctx, domain.Category{
					Name:        c.Name,
					Slug:        c.Slug,
					Description: optional(c.Description),
					ImageURL:    optional(c.ImageURL),
					ParentID:    parent,
					IsActive:    !c.Inactive,
				})
				if err != nil {
					return fmt.Errorf("seed category %s: %w", c.Slug, err)
				}
				categories[c.Slug] = stored.ID
				report.Categories++

				id := stored.ID
				if err := walk(c.Children, &id); err != nil {
					return err
				}
			}
			return nil
		}
		if err := walk(data.Categories, nil); err != nil {
			return err
		}

		for _, p := range data.Products {
			categoryID, ok := categories[p.Category]
			if !ok {
				return fmt.Errorf("seed product %s: unknown category %q", p.Slug, p.Category)
			}
			stored, err := tx.Catalog().EnsureProduct(ctx, domain.Product{
				CategoryID:  categoryID,
				Name:        p.Name,
				Slug:        p.Slug,
				Description: optional(p.Description),
				PriceCents:  domain.CentsFromDecimal(p.Price),
				Discount:    p.Discount,
				Stock:       p.Stock,
				SKU:         p.SKU,
				Brand:       optional(p.Brand),
				IsActive:    !p.Inactive,
				IsFeatured:  p.Featured,
			})
			if err != nil {
				return fmt.Errorf("seed product %s: %w", p.Slug, err)
			}
			report.Products++

			for _, img := range p.Images {
				err := tx.Catalog().EnsureProductImage(ctx, domain.ProductImage{
					ProductID: stored.ID,
					URL:       img.URL,
					AltText:   optional(img.Alt),
					IsPrimary: img.Primary,
					SortOrder: img.Order,
				})
				if err != nil {
					return fmt.Errorf("seed image %s: %w", img.URL, err)
				}
				report.Images++
			}
		}
		return nil
	})
	if err != nil {
		return SeedReport{}, err
	}

	slogx.FromContext(ctx).Info("seed applied",
		slog.Int("roles", report.Roles),
		slog.Int("users", report.Users),
		slog.Int("users_created", report.CreatedUsers),
		slog.Int("categories", report.Categories),
		slog.Int("products", report.Products),
		slog.Int("images", report.Images),
	)
	return report, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
