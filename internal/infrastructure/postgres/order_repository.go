package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lokumhouse/sweets-api/internal/domain/entity"
	"github.com/lokumhouse/sweets-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo PostgreSQL implementation of OrderRepository (usable with pool or tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository builds the persistence adapter. Pass pool or tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

const orderCols = `id, firma_id, status, note, total, created_at, updated_at`

// CreateHeader inserts the order header.
func (r *OrderRepo) CreateHeader(order *entity.Order) error {
	query := `
		INSERT INTO orders (id, firma_id, status, note, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.FirmaID, order.Status, nullable(order.Note), order.Total,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateLines inserts the order lines.
func (r *OrderRepo) CreateLines(lines []*entity.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(`
			INSERT INTO order_lines (id, order_id, product_id, quantity, unit_price, line_total)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			line.ID, line.OrderID, line.ProductID, line.Quantity, line.UnitPrice, line.LineTotal,
		)
	}
	results := r.q.SendBatch(context.Background(), batch)
	defer results.Close()
	for range lines {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}
	return nil
}

func (r *OrderRepo) scanOne(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	var note *string
	err := row.Scan(&o.ID, &o.FirmaID, &o.Status, &note, &o.Total, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	o.Note = fromNullable(note)
	return &o, nil
}

// GetByID returns one order by ID.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+orderCols+` FROM orders WHERE id = $1`, id)
	return r.scanOne(row)
}

// ListLines lists the lines of one order.
func (r *OrderRepo) ListLines(orderID string) ([]*entity.OrderLine, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, order_id, product_id, quantity, unit_price, line_total FROM order_lines WHERE order_id = $1`,
		orderID)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.OrderLine
	for rows.Next() {
		var line entity.OrderLine
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.Quantity, &line.UnitPrice, &line.LineTotal); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		list = append(list, &line)
	}
	return list, rows.Err()
}

func (r *OrderRepo) list(query string, args ...any) ([]*entity.Order, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		var note *string
		if err := rows.Scan(&o.ID, &o.FirmaID, &o.Status, &note, &o.Total, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.Note = fromNullable(note)
		list = append(list, &o)
	}
	return list, rows.Err()
}

// List lists orders, newest first.
func (r *OrderRepo) List(limit, offset int) ([]*entity.Order, error) {
	return r.list(`SELECT `+orderCols+` FROM orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

// ListByFirma lists one account's orders, newest first.
func (r *OrderRepo) ListByFirma(firmaID string, limit, offset int) ([]*entity.Order, error) {
	return r.list(`SELECT `+orderCols+` FROM orders WHERE firma_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		firmaID, limit, offset)
}

// UpdateStatus persists a status change with the appended-to note.
func (r *OrderRepo) UpdateStatus(id, status, note string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE orders SET status = $2, note = $3, updated_at = now() WHERE id = $1`,
		id, status, nullable(note))
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}
