package repository

import "github.com/lokumhouse/sweets-api/internal/domain/entity"

// OrderRepository defines the persistence port for Order (DIP).
// Order creation runs header and lines inside one transaction via the
// TxRunner, unlike sample requests which keep the historical two-phase write.
type OrderRepository interface {
	CreateHeader(order *entity.Order) error
	CreateLines(lines []*entity.OrderLine) error
	GetByID(id string) (*entity.Order, error)
	ListLines(orderID string) ([]*entity.OrderLine, error)
	List(limit, offset int) ([]*entity.Order, error)
	ListByFirma(firmaID string, limit, offset int) ([]*entity.Order, error)
	UpdateStatus(id, status, note string) error
}
