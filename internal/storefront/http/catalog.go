package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/storefrontsdk"
)

type CatalogHandler struct {
	CatalogService *service.CatalogService
}

// HandleCategories returns the active category tree.
//
//	@Summary	Category tree
//	@Tags		Catalog
//	@Produce	json
//	@Success	200	{object}	storefrontsdk.Response[[]storefrontsdk.Category]
//	@Router		/api/v1/categories [get].
func (h *CatalogHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	tree, err := h.CatalogService.CategoryTree(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "Categories retrieved successfully", toCategories(tree))
}

// HandleProducts returns a page of active products.
//
//	@Summary		List products
//	@Description	A category filter includes products of its descendant categories.
//	@Tags			Catalog
//	@Produce		json
//	@Param			page		query		int		false	"Page number"		default(1)
//	@Param			limit		query		int		false	"Page size (max 100)"	default(10)
//	@Param			category	query		string	false	"Category slug"
//	@Param			featured	query		bool	false	"Only featured products"
//	@Success		200			{object}	storefrontsdk.Response[[]storefrontsdk.Product]
//	@Failure		400			{object}	httpx.ErrorEnvelope	"Invalid query"
//	@Router			/api/v1/products [get].
func (h *CatalogHandler) HandleProducts(w http.ResponseWriter, r *http.Request) {
	page, limit, err := parsePagination(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	q := service.ProductQuery{
		Page:     page,
		Limit:    limit,
		Category: strings.TrimSpace(r.URL.Query().Get("category")),
	}
	if raw := r.URL.Query().Get("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(w, r, domain.Invalid("Validation failed", domain.FieldError{
				Field:   "featured",
				Message: "featured must be a boolean value",
			}))
			return
		}
		q.Featured = &featured
	}

	products, total, err := h.CatalogService.ListProducts(r.Context(), q)
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := make([]storefrontsdk.Product, 0, len(products))
	for _, p := range products {
		out = append(out, toProduct(p))
	}

	httpx.WritePage(w, "Products retrieved successfully", out, httpx.NewMeta(page, limit, total))
}

// HandleProduct returns one active product with its images.
//
//	@Summary	Get product
//	@Tags		Catalog
//	@Produce	json
//	@Param		slug	path		string	true	"Product slug"
//	@Success	200		{object}	storefrontsdk.Response[storefrontsdk.Product]
//	@Failure	404		{object}	httpx.ErrorEnvelope	"Product not found"
//	@Router		/api/v1/products/{slug} [get].
func (h *CatalogHandler) HandleProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.CatalogService.GetProduct(r.Context(), r.PathValue("slug"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	httpx.WriteSuccess(w, http.StatusOK, "Product retrieved successfully", toProduct(p))
}
