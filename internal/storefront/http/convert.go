package http

import (
	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/pkg/storefrontsdk"
)

func toUser(a domain.PublicAccount) storefrontsdk.User {
	return storefrontsdk.User{
		UserID:    a.ID,
		UserGUID:  a.GUID,
		Email:     a.Email,
		Name:      a.Name,
		Phone:     a.Phone,
		Role:      storefrontsdk.RoleRef{RoleID: a.Role.ID, Name: a.Role.Name},
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func toUsers(accounts []domain.PublicAccount) []storefrontsdk.User {
	out := make([]storefrontsdk.User, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, toUser(a))
	}
	return out
}

func toRole(r domain.Role) storefrontsdk.Role {
	return storefrontsdk.Role{
		RoleID:    r.ID,
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toCategories(cats []domain.Category) []storefrontsdk.Category {
	out := make([]storefrontsdk.Category, 0, len(cats))
	for _, c := range cats {
		out = append(out, storefrontsdk.Category{
			CategoryID:  c.ID,
			Name:        c.Name,
			Slug:        c.Slug,
			Description: c.Description,
			ImageURL:    c.ImageURL,
			ParentID:    c.ParentID,
			IsActive:    c.IsActive,
			Children:    toCategories(c.Children),
		})
	}
	return out
}

func toProduct(p domain.Product) storefrontsdk.Product {
	images := make([]storefrontsdk.ProductImage, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, storefrontsdk.ProductImage{
			ImageID:   img.ID,
			ImageURL:  img.URL,
			AltText:   img.AltText,
			IsPrimary: img.IsPrimary,
			SortOrder: img.SortOrder,
		})
	}

	return storefrontsdk.Product{
		ProductID:   p.ID,
		CategoryID:  p.CategoryID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       domain.FormatCents(p.PriceCents),
		Discount:    p.Discount,
		Stock:       p.Stock,
		SKU:         p.SKU,
		Brand:       p.Brand,
		IsActive:    p.IsActive,
		IsFeatured:  p.IsFeatured,
		Images:      images,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
