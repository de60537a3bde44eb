package domain

import (
	"fmt"
	"math"
	"time"
)

// Category is a node in the product category tree.
type Category struct {
	ID          int64
	Name        string
	Slug        string
	Description *string
	ImageURL    *string
	ParentID    *int64
	IsActive    bool
	Children    []Category
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Product is a sellable catalog item. Prices are kept in cents.
type Product struct {
	ID          int64
	CategoryID  int64
	Name        string
	Slug        string
	Description *string
	PriceCents  int64
	Discount    int // percent, 0-100
	Stock       int
	SKU         string
	Brand       *string
	IsActive    bool
	IsFeatured  bool
	Images      []ProductImage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ProductImage struct {
	ID        int64
	ProductID int64
	URL       string
	AltText   *string
	IsPrimary bool
	SortOrder int
}

// ProductFilter narrows a product listing. Only active products are listed.
type ProductFilter struct {
	CategorySlug string
	Featured     *bool
	Limit        int
	Offset       int
}

// BuildCategoryTree nests flat categories under their parents. Categories
// whose parent is missing from the input are treated as roots. Input order
// is preserved among siblings. A parent cycle has no root and is dropped.
func BuildCategoryTree(flat []Category) []Category {
	children := make(map[int64][]int, len(flat))
	present := make(map[int64]bool, len(flat))
	for _, c := range flat {
		present[c.ID] = true
	}

	var roots []int
	for i, c := range flat {
		if c.ParentID != nil && present[*c.ParentID] && *c.ParentID != c.ID {
			children[*c.ParentID] = append(children[*c.ParentID], i)
			continue
		}
		roots = append(roots, i)
	}

	var build func(i int) Category
	build = func(i int) Category {
		c := flat[i]
		c.Children = []Category{}
		for _, j := range children[c.ID] {
			c.Children = append(c.Children, build(j))
		}
		return c
	}

	out := make([]Category, 0, len(roots))
	for _, i := range roots {
		out = append(out, build(i))
	}
	return out
}

// CentsFromDecimal converts a decimal amount such as 2499.99 to cents.
func CentsFromDecimal(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FormatCents renders cents as a two-place decimal string.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
