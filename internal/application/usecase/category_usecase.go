package usecase

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/lokumhouse/sweets-api/internal/application/dto"
	"github.com/lokumhouse/sweets-api/internal/domain"
	"github.com/lokumhouse/sweets-api/internal/domain/entity"
	"github.com/lokumhouse/sweets-api/internal/domain/repository"
	"github.com/lokumhouse/sweets-api/internal/domain/slug"
)

// CategoryUseCase category CRUD plus the two-level storefront tree. Slugs are
// assigned once at creation and immutable afterwards.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase builds the use case.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create derives a unique slug from the localized names and persists the
// category. A non-empty ParentSlug must point at a root category (the tree
// never nests deeper than two levels). The store's unique constraint remains
// the last line of defense on the slug; callers retry on ErrDuplicate.
func (uc *CategoryUseCase) Create(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	base, err := slug.FromLocalized(in.NameEN, in.NameDE, in.NameTR)
	if err != nil {
		return nil, err
	}

	parentID := ""
	if in.ParentSlug != "" {
		parent, err := uc.repo.GetBySlug(in.ParentSlug)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
		if !parent.IsRoot() {
			return nil, domain.ErrInvalidInput // no deeper nesting
		}
		parentID = parent.ID
	}

	used, err := uc.repo.ListUsedSlugs()
	if err != nil {
		return nil, err
	}
	assigned := slug.NewAssigner(used).Assign(base)

	now := time.Now()
	category := &entity.Category{
		ID:           uuid.New().String(),
		Slug:         assigned,
		NameEN:       in.NameEN,
		NameDE:       in.NameDE,
		NameTR:       in.NameTR,
		ParentID:     parentID,
		DisplayOrder: in.DisplayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// GetBySlug returns one category.
func (uc *CategoryUseCase) GetBySlug(s string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetBySlug(s)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	return toCategoryResponse(category), nil
}

// Tree returns the full two-level tree, roots and children sorted by display order.
func (uc *CategoryUseCase) Tree() (*dto.CategoryTreeResponse, error) {
	all, err := uc.repo.ListAll()
	if err != nil {
		return nil, err
	}
	childrenOf := make(map[string][]*entity.Category)
	var roots []*entity.Category
	for _, c := range all {
		if c.IsRoot() {
			roots = append(roots, c)
		} else {
			childrenOf[c.ParentID] = append(childrenOf[c.ParentID], c)
		}
	}
	byOrder := func(list []*entity.Category) {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].DisplayOrder < list[j].DisplayOrder
		})
	}
	byOrder(roots)

	out := &dto.CategoryTreeResponse{Roots: make([]dto.CategoryTreeNode, 0, len(roots))}
	for _, root := range roots {
		children := childrenOf[root.ID]
		byOrder(children)
		node := dto.CategoryTreeNode{CategoryResponse: *toCategoryResponse(root)}
		node.Children = make([]dto.CategoryResponse, 0, len(children))
		for _, child := range children {
			node.Children = append(node.Children, *toCategoryResponse(child))
		}
		out.Roots = append(out.Roots, node)
	}
	return out, nil
}

// Update changes names and display order; the slug stays as assigned.
func (uc *CategoryUseCase) Update(id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, nil
	}
	if in.NameEN != nil {
		category.NameEN = *in.NameEN
	}
	if in.NameDE != nil {
		category.NameDE = *in.NameDE
	}
	if in.NameTR != nil {
		category.NameTR = *in.NameTR
	}
	if in.DisplayOrder != nil {
		category.DisplayOrder = *in.DisplayOrder
	}
	category.UpdatedAt = time.Now()
	if err := uc.repo.Update(category); err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Delete removes a category only when no products reference it.
func (uc *CategoryUseCase) Delete(id string) error {
	category, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	count, err := uc.repo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:           c.ID,
		Slug:         c.Slug,
		NameEN:       c.NameEN,
		NameDE:       c.NameDE,
		NameTR:       c.NameTR,
		ParentID:     c.ParentID,
		DisplayOrder: c.DisplayOrder,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
