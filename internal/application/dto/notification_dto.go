package dto

import "time"

// SendNotificationRequest payload for the admin fanout endpoint. Exactly one
// addressing mode must be set: recipient_id, roles, firma_id, or broadcast.
type SendNotificationRequest struct {
	RecipientID string   `json:"recipient_id,omitempty"`
	Roles       []string `json:"roles,omitempty"`
	FirmaID     string   `json:"firma_id,omitempty"`
	Broadcast   bool     `json:"broadcast,omitempty"`
	Content     string   `json:"content"`
	Link        string   `json:"link,omitempty"`
}

// SendNotificationResponse fanout result. Zero delivered with success=true is
// a valid outcome (target resolved to nobody).
type SendNotificationResponse struct {
	Success   bool `json:"success"`
	Delivered int  `json:"delivered"`
}

// NotificationResponse one notification row.
type NotificationResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Link      string    `json:"link,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationListResponse paged notifications plus the unread count.
type NotificationListResponse struct {
	Items  []NotificationResponse `json:"items"`
	Unread int                    `json:"unread"`
	Page   PageResponse           `json:"page"`
}
