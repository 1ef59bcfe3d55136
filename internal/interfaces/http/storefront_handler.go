package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lokumhouse/sweets-api/internal/application/dto"
	"github.com/lokumhouse/sweets-api/internal/application/usecase"
	"github.com/lokumhouse/sweets-api/internal/infrastructure/sitemap"
)

// StorefrontHandler serves the public, unauthenticated storefront surface:
// the category tree, visible products and the sitemap.
type StorefrontHandler struct {
	categoryUC *usecase.CategoryUseCase
	productUC  *usecase.ProductUseCase
	sitemap    *sitemap.Builder
}

// NewStorefrontHandler builds the handler.
func NewStorefrontHandler(categoryUC *usecase.CategoryUseCase, productUC *usecase.ProductUseCase, sm *sitemap.Builder) *StorefrontHandler {
	return &StorefrontHandler{categoryUC: categoryUC, productUC: productUC, sitemap: sm}
}

// Tree godoc
// @Summary      Public category tree
// @Tags         storefront
// @Produce      json
// @Success      200  {object}  dto.CategoryTreeResponse
// @Router       /shop/categories [get]
func (h *StorefrontHandler) Tree(c *fiber.Ctx) error {
	out, err := h.categoryUC.Tree()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// CategoryProducts godoc
// @Summary      Visible products of a category
// @Tags         storefront
// @Produce      json
// @Param        slug  path  string  true  "Category slug"
// @Success      200   {array}   dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /shop/categories/{slug}/products [get]
func (h *StorefrontHandler) CategoryProducts(c *fiber.Ctx) error {
	s := c.Params("slug")
	category, err := h.categoryUC.GetBySlug(s)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if category == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "category not found"})
	}
	items, err := h.productUC.ListPublicByCategorySlug(s)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(items)
}

// Product godoc
// @Summary      Public product detail
// @Tags         storefront
// @Produce      json
// @Param        slug  path  string  true  "Product slug"
// @Success      200   {object}  dto.ProductResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /shop/products/{slug} [get]
func (h *StorefrontHandler) Product(c *fiber.Ctx) error {
	out, err := h.productUC.GetBySlug(c.Params("slug"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil || !out.Active || out.MainImageURL == "" || out.CategoryID == "" {
		// Hidden products 404 publicly regardless of why they are hidden.
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "product not found"})
	}
	return c.JSON(out)
}

// Sitemap godoc
// @Summary      Storefront sitemap.xml
// @Tags         storefront
// @Produce      xml
// @Success      200  {string}  string
// @Router       /sitemap.xml [get]
func (h *StorefrontHandler) Sitemap(c *fiber.Ctx) error {
	out, err := h.sitemap.Build()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	return c.Send(out)
}
