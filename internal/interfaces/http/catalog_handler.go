package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lokumhouse/sweets-api/internal/application/dto"
	"github.com/lokumhouse/sweets-api/internal/application/usecase"
	"github.com/lokumhouse/sweets-api/internal/domain"
)

// CatalogHandler serves the partner portal catalog: the same visible products
// as the storefront, priced for the caller's firma.
type CatalogHandler struct {
	uc *usecase.CatalogUseCase
}

// NewCatalogHandler builds the handler.
func NewCatalogHandler(uc *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{uc: uc}
}

// ListByCategory godoc
// @Summary      Personalized catalog of a category
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        slug  path  string  true  "Category slug"
// @Success      200   {object}  dto.CatalogResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/catalog/categories/{slug} [get]
func (h *CatalogHandler) ListByCategory(c *fiber.Ctx) error {
	out, err := h.uc.ListByCategorySlug(GetFirmaID(c), c.Params("slug"))
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "category not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ProductDetail godoc
// @Summary      Personalized product detail
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Param        slug  path  string  true  "Product slug"
// @Success      200   {object}  dto.CatalogItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/catalog/products/{slug} [get]
func (h *CatalogHandler) ProductDetail(c *fiber.Ctx) error {
	out, err := h.uc.ProductDetail(GetFirmaID(c), c.Params("slug"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "product not found"})
	}
	return c.JSON(out)
}
