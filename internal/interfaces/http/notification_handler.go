package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lokumhouse/sweets-api/internal/application/dto"
	"github.com/lokumhouse/sweets-api/internal/application/notification"
	"github.com/lokumhouse/sweets-api/internal/domain"
)

// NotificationHandler handles the admin fanout endpoint and the
// per-recipient inbox.
type NotificationHandler struct {
	uc *notification.FanoutUseCase
}

// NewNotificationHandler builds the handler.
func NewNotificationHandler(uc *notification.FanoutUseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// Send godoc
// @Summary      Fan a notification out to a target set
// @Tags         notifications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SendNotificationRequest  true  "Exactly one of recipient_id, roles, firma_id or broadcast"
// @Success      200   {object}  dto.SendNotificationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/notifications/send [post]
func (h *NotificationHandler) Send(c *fiber.Ctx) error {
	var in dto.SendNotificationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "invalid body"})
	}
	if in.Content == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "content is required"})
	}
	target, ok := targetFrom(in)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "exactly one of recipient_id, roles, firma_id or broadcast must be set"})
	}

	out, err := h.uc.Send(target, in.Content, in.Link)
	if err != nil {
		if err == domain.ErrProfileResolution {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "UNRESOLVED_TARGET", Message: "target firma has no portal profiles"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid target"})
		}
		if out != nil {
			// Batch write failed after resolution; report the partial result.
			return c.Status(fiber.StatusInternalServerError).JSON(out)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	notificationsDelivered.Add(float64(out.Delivered))
	return c.JSON(out)
}

// targetFrom maps the request to an addressing mode, rejecting ambiguous
// payloads that set more than one.
func targetFrom(in dto.SendNotificationRequest) (notification.Target, bool) {
	set := 0
	if in.RecipientID != "" {
		set++
	}
	if len(in.Roles) > 0 {
		set++
	}
	if in.FirmaID != "" {
		set++
	}
	if in.Broadcast {
		set++
	}
	if set != 1 {
		return notification.Target{}, false
	}
	switch {
	case in.RecipientID != "":
		return notification.SingleRecipient(in.RecipientID), true
	case len(in.Roles) > 0:
		return notification.RoleSet(in.Roles...), true
	case in.FirmaID != "":
		return notification.Tenant(in.FirmaID), true
	default:
		return notification.Broadcast(), true
	}
}

// List godoc
// @Summary      List the caller's notifications
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limit"   default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.NotificationListResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(GetProfileID(c), limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// UnreadCount godoc
// @Summary      Count the caller's unread notifications
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /api/notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c *fiber.Ctx) error {
	n, err := h.uc.UnreadCount(GetProfileID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"unread": n})
}

// MarkAllRead godoc
// @Summary      Mark all of the caller's notifications read
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]int64
// @Router       /api/notifications/read-all [post]
func (h *NotificationHandler) MarkAllRead(c *fiber.Ctx) error {
	n, err := h.uc.MarkAllRead(GetProfileID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"marked": n})
}
