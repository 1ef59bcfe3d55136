package repository

import "github.com/lokumhouse/sweets-api/internal/domain/entity"

// SampleRequestRepository defines the persistence port for SampleRequest (DIP).
// Header and items are separate calls: creation is two-phase and the header
// is not rolled back when item insertion fails (the usecase reports which
// phase was committed).
type SampleRequestRepository interface {
	CreateHeader(request *entity.SampleRequest) error
	CreateItems(items []*entity.SampleRequestItem) error
	GetByID(id string) (*entity.SampleRequest, error)
	ListItems(requestID string) ([]*entity.SampleRequestItem, error)
	List(limit, offset int) ([]*entity.SampleRequest, error)
	ListByFirma(firmaID string, limit, offset int) ([]*entity.SampleRequest, error)
	// UpdateStatus persists a status change together with the (possibly
	// appended-to) audit note.
	UpdateStatus(id, status, note string) error
}
