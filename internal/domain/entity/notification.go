package entity

import "time"

// Notification is a delivered in-app message for one recipient. Rows are
// produced by the fanout service and only ever mutated to flip Read.
type Notification struct {
	ID          string
	RecipientID string
	Content     string
	Link        string
	Read        bool
	CreatedAt   time.Time
}
