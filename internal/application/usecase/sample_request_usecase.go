package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/lokumhouse/sweets-api/internal/application/dto"
	"github.com/lokumhouse/sweets-api/internal/domain"
	"github.com/lokumhouse/sweets-api/internal/domain/entity"
	"github.com/lokumhouse/sweets-api/internal/domain/repository"
	"github.com/lokumhouse/sweets-api/internal/domain/workflow"
)

// SampleRequestUseCase drives the sample-request workflow. Creation is the
// historical two-phase write: the header commits first, items second, and a
// failed item phase leaves the header in place. The response names the
// phase that was committed instead of pretending to roll back.
type SampleRequestUseCase struct {
	repo repository.SampleRequestRepository
}

// NewSampleRequestUseCase builds the use case.
func NewSampleRequestUseCase(repo repository.SampleRequestRepository) *SampleRequestUseCase {
	return &SampleRequestUseCase{repo: repo}
}

// Create validates and runs the two-phase insert. Validation failures reject
// before any write; an item-phase failure returns the response with
// Phase="header" together with the error.
func (uc *SampleRequestUseCase) Create(in dto.CreateSampleRequestRequest) (*dto.CreateSampleRequestResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyItems
	}
	if in.FirmaID == "" && in.LeadID == "" {
		return nil, domain.ErrMissingOrigin
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	request := &entity.SampleRequest{
		ID:        uuid.New().String(),
		FirmaID:   in.FirmaID,
		LeadID:    in.LeadID,
		Status:    workflow.StatusPending,
		Note:      in.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.CreateHeader(request); err != nil {
		return nil, err
	}

	items := make([]*entity.SampleRequestItem, 0, len(in.Items))
	for _, item := range in.Items {
		items = append(items, &entity.SampleRequestItem{
			ID:        uuid.New().String(),
			RequestID: request.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	if err := uc.repo.CreateItems(items); err != nil {
		// Header already committed; report the partial application.
		return &dto.CreateSampleRequestResponse{ID: request.ID, Phase: "header"}, err
	}
	return &dto.CreateSampleRequestResponse{ID: request.ID, Phase: "complete"}, nil
}

// GetByID returns one request with its items.
func (uc *SampleRequestUseCase) GetByID(id string) (*dto.SampleRequestResponse, error) {
	request, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, nil
	}
	items, err := uc.repo.ListItems(id)
	if err != nil {
		return nil, err
	}
	return toSampleRequestResponse(request, items), nil
}

// List lists requests (back office).
func (uc *SampleRequestUseCase) List(limit, offset int) (*dto.SampleRequestListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SampleRequestResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toSampleRequestResponse(r, nil))
	}
	return &dto.SampleRequestListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Transition moves the request along the status machine. Re-setting the
// current status is a harmless no-op. A reason, when given, is appended to
// the note, preserving prior history.
func (uc *SampleRequestUseCase) Transition(id string, in dto.TransitionRequest) (*dto.SampleRequestResponse, error) {
	request, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, nil
	}
	changed, err := workflow.SampleRequestMachine.Step(request.Status, in.Status)
	if err != nil {
		return nil, err
	}
	if !changed && in.Reason == "" {
		return toSampleRequestResponse(request, nil), nil
	}
	request.Status = in.Status
	request.Note = workflow.AppendNote(request.Note, in.Reason)
	request.UpdatedAt = time.Now()
	if err := uc.repo.UpdateStatus(request.ID, request.Status, request.Note); err != nil {
		return nil, err
	}
	return toSampleRequestResponse(request, nil), nil
}

func toSampleRequestResponse(r *entity.SampleRequest, items []*entity.SampleRequestItem) *dto.SampleRequestResponse {
	if r == nil {
		return nil
	}
	out := &dto.SampleRequestResponse{
		ID:        r.ID,
		FirmaID:   r.FirmaID,
		LeadID:    r.LeadID,
		Status:    r.Status,
		Note:      r.Note,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	for _, item := range items {
		out.Items = append(out.Items, dto.RequestItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return out
}
