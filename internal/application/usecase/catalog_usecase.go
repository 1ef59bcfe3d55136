package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/lokumhouse/sweets-api/internal/application/dto"
	"github.com/lokumhouse/sweets-api/internal/domain"
	"github.com/lokumhouse/sweets-api/internal/domain/entity"
	"github.com/lokumhouse/sweets-api/internal/domain/pricing"
	"github.com/lokumhouse/sweets-api/internal/domain/repository"
)

// CatalogUseCase partner-facing reads. Every price is derived at call time
// from the caller firma's current discount so it can never be a stale
// snapshot; a firma without a financial record prices at zero discount.
type CatalogUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	firmaRepo    repository.FirmaRepository
}

// NewCatalogUseCase builds the use case.
func NewCatalogUseCase(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, firmaRepo repository.FirmaRepository) *CatalogUseCase {
	return &CatalogUseCase{productRepo: productRepo, categoryRepo: categoryRepo, firmaRepo: firmaRepo}
}

// discountFor resolves the firma's discount; a missing row means zero
// discount, not an error.
func (uc *CatalogUseCase) discountFor(firmaID string) (decimal.Decimal, error) {
	if firmaID == "" {
		return decimal.Zero, nil
	}
	firma, err := uc.firmaRepo.GetByID(firmaID)
	if err != nil {
		return decimal.Zero, err
	}
	if firma == nil {
		return decimal.Zero, nil
	}
	return firma.DiscountPercent, nil
}

// ListByCategorySlug returns the personalized catalog for one category.
func (uc *CatalogUseCase) ListByCategorySlug(firmaID, categorySlug string) (*dto.CatalogResponse, error) {
	category, err := uc.categoryRepo.GetBySlug(categorySlug)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	discount, err := uc.discountFor(firmaID)
	if err != nil {
		return nil, err
	}
	list, err := uc.productRepo.ListPublicByCategory(category.ID)
	if err != nil {
		return nil, err
	}
	out := &dto.CatalogResponse{Items: make([]dto.CatalogItemResponse, 0, len(list))}
	for _, p := range list {
		out.Items = append(out.Items, toCatalogItem(p, discount))
	}
	return out, nil
}

// ProductDetail returns one visible product with the personalized price.
func (uc *CatalogUseCase) ProductDetail(firmaID, productSlug string) (*dto.CatalogItemResponse, error) {
	product, err := uc.productRepo.GetBySlug(productSlug)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.Visible() {
		return nil, nil
	}
	discount, err := uc.discountFor(firmaID)
	if err != nil {
		return nil, err
	}
	item := toCatalogItem(product, discount)
	return &item, nil
}

func toCatalogItem(p *entity.Product, discount decimal.Decimal) dto.CatalogItemResponse {
	return dto.CatalogItemResponse{
		ID:              p.ID,
		Slug:            p.Slug,
		Name:            p.Name(),
		CategoryID:      p.CategoryID,
		BasePrice:       p.BasePrice,
		YourPrice:       pricing.Personalize(p.BasePrice, discount),
		DiscountPercent: discount,
		MainImageURL:    p.MainImageURL,
		Attributes:      p.Attributes,
	}
}
