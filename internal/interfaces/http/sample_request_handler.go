package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lokumhouse/sweets-api/internal/application/dto"
	"github.com/lokumhouse/sweets-api/internal/application/usecase"
	"github.com/lokumhouse/sweets-api/internal/domain"
	"github.com/lokumhouse/sweets-api/internal/domain/entity"
)

// SampleRequestHandler handles sample request intake and back-office
// processing.
type SampleRequestHandler struct {
	uc *usecase.SampleRequestUseCase
}

// NewSampleRequestHandler builds the handler.
func NewSampleRequestHandler(uc *usecase.SampleRequestUseCase) *SampleRequestHandler {
	return &SampleRequestHandler{uc: uc}
}

// Create godoc
// @Summary      Create a sample request
// @Tags         sample-requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSampleRequestRequest  true  "Items plus firma_id or lead_id origin"
// @Success      201   {object}  dto.CreateSampleRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sample-requests [post]
func (h *SampleRequestHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSampleRequestRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	// Partners always request for their own firma.
	if GetRole(c) == entity.RolePartner {
		in.FirmaID = GetFirmaID(c)
		in.LeadID = ""
	}
	out, err := h.uc.Create(in)
	if err != nil {
		if err == domain.ErrEmptyItems {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "items must not be empty"})
		}
		if err == domain.ErrMissingOrigin {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "firma_id or lead_id is required"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "every item needs a product_id and a positive quantity"})
		}
		if out != nil {
			// Header committed, items failed; the caller gets the ID and phase.
			return c.Status(fiber.StatusInternalServerError).JSON(out)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Get a sample request
// @Tags         sample-requests
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Request ID"
// @Success      200  {object}  dto.SampleRequestResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sample-requests/{id} [get]
func (h *SampleRequestHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sample request not found"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      List sample requests (back office)
// @Tags         sample-requests
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limit"   default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.SampleRequestListResponse
// @Router       /api/sample-requests [get]
func (h *SampleRequestHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Transition godoc
// @Summary      Move a sample request along its workflow
// @Tags         sample-requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Request ID"
// @Param        body  body  dto.TransitionRequest  true  "Target status plus optional reason"
// @Success      200   {object}  dto.SampleRequestResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sample-requests/{id}/status [put]
func (h *SampleRequestHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	out, err := h.uc.Transition(c.Params("id"), in)
	if err != nil {
		if err == domain.ErrInvalidTransition {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "status transition not allowed"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sample request not found"})
	}
	return c.JSON(out)
}
