package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lokumhouse/sweets-api/internal/domain/entity"
	"github.com/lokumhouse/sweets-api/internal/domain/repository"
)

var _ repository.SampleRequestRepository = (*SampleRequestRepo)(nil)

// SampleRequestRepo PostgreSQL implementation of SampleRequestRepository.
type SampleRequestRepo struct {
	q Querier
}

// NewSampleRequestRepository builds the persistence adapter. Pass pool or tx (Querier).
func NewSampleRequestRepository(q Querier) *SampleRequestRepo {
	return &SampleRequestRepo{q: q}
}

const sampleRequestCols = `id, firma_id, lead_id, status, note, created_at, updated_at`

// CreateHeader inserts the request header. Phase one of the two-phase write.
func (r *SampleRequestRepo) CreateHeader(request *entity.SampleRequest) error {
	query := `
		INSERT INTO sample_requests (id, firma_id, lead_id, status, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		request.ID, nullable(request.FirmaID), nullable(request.LeadID),
		request.Status, nullable(request.Note), request.CreatedAt, request.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sample request: %w", err)
	}
	return nil
}

// CreateItems inserts the item rows referencing the header. Phase two; the
// header is not rolled back when this fails.
func (r *SampleRequestRepo) CreateItems(items []*entity.SampleRequestItem) error {
	if len(items) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(`
			INSERT INTO sample_request_items (id, request_id, product_id, quantity)
			VALUES ($1, $2, $3, $4)`,
			item.ID, item.RequestID, item.ProductID, item.Quantity,
		)
	}
	results := r.q.SendBatch(context.Background(), batch)
	defer results.Close()
	for range items {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert sample request item: %w", err)
		}
	}
	return nil
}

func (r *SampleRequestRepo) scanOne(row pgx.Row) (*entity.SampleRequest, error) {
	var s entity.SampleRequest
	var firmaID, leadID, note *string
	err := row.Scan(&s.ID, &firmaID, &leadID, &s.Status, &note, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sample request: %w", err)
	}
	s.FirmaID = fromNullable(firmaID)
	s.LeadID = fromNullable(leadID)
	s.Note = fromNullable(note)
	return &s, nil
}

// GetByID returns one request by ID.
func (r *SampleRequestRepo) GetByID(id string) (*entity.SampleRequest, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+sampleRequestCols+` FROM sample_requests WHERE id = $1`, id)
	return r.scanOne(row)
}

// ListItems lists the item rows of one request.
func (r *SampleRequestRepo) ListItems(requestID string) ([]*entity.SampleRequestItem, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, request_id, product_id, quantity FROM sample_request_items WHERE request_id = $1`,
		requestID)
	if err != nil {
		return nil, fmt.Errorf("list sample request items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SampleRequestItem
	for rows.Next() {
		var item entity.SampleRequestItem
		if err := rows.Scan(&item.ID, &item.RequestID, &item.ProductID, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan sample request item: %w", err)
		}
		list = append(list, &item)
	}
	return list, rows.Err()
}

func (r *SampleRequestRepo) list(query string, args ...any) ([]*entity.SampleRequest, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sample requests: %w", err)
	}
	defer rows.Close()
	var list []*entity.SampleRequest
	for rows.Next() {
		var s entity.SampleRequest
		var firmaID, leadID, note *string
		if err := rows.Scan(&s.ID, &firmaID, &leadID, &s.Status, &note, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sample request: %w", err)
		}
		s.FirmaID = fromNullable(firmaID)
		s.LeadID = fromNullable(leadID)
		s.Note = fromNullable(note)
		list = append(list, &s)
	}
	return list, rows.Err()
}

// List lists requests, newest first.
func (r *SampleRequestRepo) List(limit, offset int) ([]*entity.SampleRequest, error) {
	return r.list(`SELECT `+sampleRequestCols+` FROM sample_requests ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

// ListByFirma lists one account's requests, newest first.
func (r *SampleRequestRepo) ListByFirma(firmaID string, limit, offset int) ([]*entity.SampleRequest, error) {
	return r.list(`SELECT `+sampleRequestCols+` FROM sample_requests WHERE firma_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		firmaID, limit, offset)
}

// UpdateStatus persists a status change with the appended-to note.
func (r *SampleRequestRepo) UpdateStatus(id, status, note string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE sample_requests SET status = $2, note = $3, updated_at = now() WHERE id = $1`,
		id, status, nullable(note))
	if err != nil {
		return fmt.Errorf("update sample request status: %w", err)
	}
	return nil
}
