package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lokumhouse/sweets-api/internal/application/dto"
	"github.com/lokumhouse/sweets-api/internal/application/usecase"
	"github.com/lokumhouse/sweets-api/internal/domain"
)

// FirmaHandler handles back-office management of business accounts.
type FirmaHandler struct {
	uc *usecase.FirmaUseCase
}

// NewFirmaHandler builds the handler.
func NewFirmaHandler(uc *usecase.FirmaUseCase) *FirmaHandler {
	return &FirmaHandler{uc: uc}
}

// Create godoc
// @Summary      Create a business account
// @Tags         firmas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFirmaRequest  true  "Account data"
// @Success      201   {object}  dto.FirmaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/firmas [post]
func (h *FirmaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateFirmaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if err == domain.ErrInvalidTier {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_TIER", Message: "priority_tier is not a valid tier"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name is required and discount_percent must be within [0,100]"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      List business accounts
// @Tags         firmas
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limit"   default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.FirmaListResponse
// @Router       /api/firmas [get]
func (h *FirmaHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Get a business account by ID
// @Tags         firmas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Firma ID"
// @Success      200  {object}  dto.FirmaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/firmas/{id} [get]
func (h *FirmaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "firma not found"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Update a business account
// @Tags         firmas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Firma ID"
// @Param        body  body  dto.UpdateFirmaRequest  true  "Fields to update"
// @Success      200   {object}  dto.FirmaResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/firmas/{id} [put]
func (h *FirmaHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateFirmaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		if err == domain.ErrInvalidTier {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_TIER", Message: "priority_tier is not a valid tier"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "discount_percent must be within [0,100]"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "firma not found"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete a business account
// @Tags         firmas
// @Security     Bearer
// @Param        id  path  string  true  "Firma ID"
// @Success      204
// @Router       /api/firmas/{id} [delete]
func (h *FirmaHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "firma not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
