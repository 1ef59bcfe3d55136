package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lokumhouse/sweets-api/internal/domain/entity"
	"github.com/lokumhouse/sweets-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo PostgreSQL implementation of NotificationRepository.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository builds the persistence adapter. Pass pool or tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// CreateBatch inserts one row per notification through a single pgx batch.
// Not transactional across rows: a mid-batch failure leaves earlier rows in
// place (at-least-once delivery).
func (r *NotificationRepo) CreateBatch(notifications []*entity.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, n := range notifications {
		batch.Queue(`
			INSERT INTO notifications (id, recipient_id, content, link, read, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			n.ID, n.RecipientID, n.Content, n.Link, n.Read, n.CreatedAt,
		)
	}
	results := r.q.SendBatch(context.Background(), batch)
	defer results.Close()
	for range notifications {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert notification: %w", err)
		}
	}
	return nil
}

// ListByRecipient lists a recipient's notifications, newest first.
func (r *NotificationRepo) ListByRecipient(recipientID string, limit, offset int) ([]*entity.Notification, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, recipient_id, content, link, read, created_at
		FROM notifications WHERE recipient_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		recipientID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	var list []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Content, &n.Link, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

// UnreadCount counts a recipient's unread notifications.
func (r *NotificationRepo) UnreadCount(recipientID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM notifications WHERE recipient_id = $1 AND read = false`,
		recipientID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

// MarkAllRead flips every unread notification of the recipient; idempotent.
func (r *NotificationRepo) MarkAllRead(recipientID string) (int64, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE notifications SET read = true WHERE recipient_id = $1 AND read = false`,
		recipientID)
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}
	return cmd.RowsAffected(), nil
}
