package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/lokumhouse/sweets-api/internal/application/dto"
	"github.com/lokumhouse/sweets-api/internal/domain"
	"github.com/lokumhouse/sweets-api/internal/domain/entity"
	"github.com/lokumhouse/sweets-api/internal/domain/pricing"
	"github.com/lokumhouse/sweets-api/internal/domain/repository"
)

// FirmaUseCase account CRUD. The write path is where tier and discount
// validity are enforced; read paths never reject historical values.
type FirmaUseCase struct {
	repo repository.FirmaRepository
}

// NewFirmaUseCase builds the use case.
func NewFirmaUseCase(repo repository.FirmaRepository) *FirmaUseCase {
	return &FirmaUseCase{repo: repo}
}

// Create persists a new account. The tier must belong to the active set and
// the discount to [0,100].
func (uc *FirmaUseCase) Create(in dto.CreateFirmaRequest) (*dto.FirmaResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidTier(in.PriorityTier) {
		return nil, domain.ErrInvalidTier
	}
	if !pricing.ValidDiscount(in.DiscountPercent) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	firma := &entity.Firma{
		ID:              uuid.New().String(),
		Name:            in.Name,
		DiscountPercent: in.DiscountPercent,
		Tags:            in.Tags,
		PriorityTier:    in.PriorityTier,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(firma); err != nil {
		return nil, err
	}
	return toFirmaResponse(firma), nil
}

// GetByID returns one account.
func (uc *FirmaUseCase) GetByID(id string) (*dto.FirmaResponse, error) {
	firma, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if firma == nil {
		return nil, nil
	}
	return toFirmaResponse(firma), nil
}

// Update applies a partial update with the same validation as Create.
func (uc *FirmaUseCase) Update(id string, in dto.UpdateFirmaRequest) (*dto.FirmaResponse, error) {
	firma, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if firma == nil {
		return nil, nil
	}
	if in.Name != nil {
		firma.Name = *in.Name
	}
	if in.OwnerProfileID != nil {
		firma.OwnerProfileID = *in.OwnerProfileID
	}
	if in.DiscountPercent != nil {
		if !pricing.ValidDiscount(*in.DiscountPercent) {
			return nil, domain.ErrInvalidInput
		}
		firma.DiscountPercent = *in.DiscountPercent
	}
	if in.Tags != nil {
		firma.Tags = in.Tags
	}
	if in.PriorityTier != nil {
		if !entity.ValidTier(*in.PriorityTier) {
			return nil, domain.ErrInvalidTier
		}
		firma.PriorityTier = *in.PriorityTier
	}
	firma.UpdatedAt = time.Now()
	if err := uc.repo.Update(firma); err != nil {
		return nil, err
	}
	return toFirmaResponse(firma), nil
}

// List lists accounts with pagination.
func (uc *FirmaUseCase) List(limit, offset int) (*dto.FirmaListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FirmaResponse, 0, len(list))
	for _, f := range list {
		items = append(items, *toFirmaResponse(f))
	}
	return &dto.FirmaListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete removes an account by ID.
func (uc *FirmaUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toFirmaResponse(f *entity.Firma) *dto.FirmaResponse {
	if f == nil {
		return nil
	}
	return &dto.FirmaResponse{
		ID:              f.ID,
		Name:            f.Name,
		OwnerProfileID:  f.OwnerProfileID,
		DiscountPercent: f.DiscountPercent,
		Tags:            f.Tags,
		PriorityTier:    f.PriorityTier,
		CreatedAt:       f.CreatedAt,
		UpdatedAt:       f.UpdatedAt,
	}
}
