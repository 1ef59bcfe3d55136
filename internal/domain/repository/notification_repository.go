package repository

import "github.com/lokumhouse/sweets-api/internal/domain/entity"

// NotificationRepository defines the persistence port for Notification (DIP).
type NotificationRepository interface {
	// CreateBatch inserts one row per notification in a single batch write.
	// Delivery is at-least-once: the batch is not transactional across rows.
	CreateBatch(notifications []*entity.Notification) error
	ListByRecipient(recipientID string, limit, offset int) ([]*entity.Notification, error)
	UnreadCount(recipientID string) (int, error)
	// MarkAllRead flips every unread notification of the recipient; idempotent.
	MarkAllRead(recipientID string) (int64, error)
}
