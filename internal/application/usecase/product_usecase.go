package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/lokumhouse/sweets-api/internal/application/dto"
	"github.com/lokumhouse/sweets-api/internal/domain"
	"github.com/lokumhouse/sweets-api/internal/domain/entity"
	"github.com/lokumhouse/sweets-api/internal/domain/repository"
	"github.com/lokumhouse/sweets-api/internal/domain/slug"
)

// ProductUseCase product CRUD. Deactivation happens in bulk through the
// maintenance sweep; reactivation is only the manual admin update here.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

// NewProductUseCase builds the use case.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo}
}

// Create derives a unique slug from the localized names and persists the
// product. Products start active; visibility additionally needs an image and
// a category.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	base, err := slug.FromLocalized(in.NameEN, in.NameDE, in.NameTR)
	if err != nil {
		return nil, err
	}
	if in.BasePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	categoryID := ""
	if in.CategorySlug != "" {
		category, err := uc.categoryRepo.GetBySlug(in.CategorySlug)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
		categoryID = category.ID
	}

	used, err := uc.repo.ListUsedSlugs()
	if err != nil {
		return nil, err
	}
	assigned := slug.NewAssigner(used).Assign(base)

	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Slug:         assigned,
		NameEN:       in.NameEN,
		NameDE:       in.NameDE,
		NameTR:       in.NameTR,
		CategoryID:   categoryID,
		BasePrice:    in.BasePrice,
		Active:       true,
		MainImageURL: in.MainImageURL,
		Gallery:      in.Gallery,
		Attributes:   in.Attributes,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetBySlug returns one product.
func (uc *ProductUseCase) GetBySlug(s string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetBySlug(s)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// GetByID returns one product.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update applies a partial update. Setting Active=true is the manual
// reactivation path; the sweep never reactivates.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.NameEN != nil {
		product.NameEN = *in.NameEN
	}
	if in.NameDE != nil {
		product.NameDE = *in.NameDE
	}
	if in.NameTR != nil {
		product.NameTR = *in.NameTR
	}
	if in.CategorySlug != nil {
		if *in.CategorySlug == "" {
			product.CategoryID = ""
		} else {
			category, err := uc.categoryRepo.GetBySlug(*in.CategorySlug)
			if err != nil {
				return nil, err
			}
			if category == nil {
				return nil, domain.ErrNotFound
			}
			product.CategoryID = category.ID
		}
	}
	if in.BasePrice != nil {
		if in.BasePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.BasePrice = *in.BasePrice
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	if in.MainImageURL != nil {
		product.MainImageURL = *in.MainImageURL
	}
	if in.Gallery != nil {
		product.Gallery = in.Gallery
	}
	if len(in.Attributes) > 0 {
		product.Attributes = in.Attributes
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lists products with pagination (admin view, no visibility filter).
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// ListPublicByCategorySlug returns storefront-visible products of a category.
func (uc *ProductUseCase) ListPublicByCategorySlug(categorySlug string) ([]dto.ProductResponse, error) {
	category, err := uc.categoryRepo.GetBySlug(categorySlug)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.repo.ListPublicByCategory(category.ID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Delete removes a product by ID.
func (uc *ProductUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		Slug:         p.Slug,
		NameEN:       p.NameEN,
		NameDE:       p.NameDE,
		NameTR:       p.NameTR,
		CategoryID:   p.CategoryID,
		BasePrice:    p.BasePrice,
		Active:       p.Active,
		MainImageURL: p.MainImageURL,
		Gallery:      p.Gallery,
		Attributes:   p.Attributes,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
