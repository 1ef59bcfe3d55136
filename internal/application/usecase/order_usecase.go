package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lokumhouse/sweets-api/internal/application/dto"
	"github.com/lokumhouse/sweets-api/internal/domain"
	"github.com/lokumhouse/sweets-api/internal/domain/entity"
	"github.com/lokumhouse/sweets-api/internal/domain/pricing"
	"github.com/lokumhouse/sweets-api/internal/domain/repository"
	"github.com/lokumhouse/sweets-api/internal/domain/workflow"
)

// OrderUseCase partner orders. Line unit prices are personalized from the
// caller firma's current discount and rounded to the minor unit at this
// point only; the product's base price is never touched.
type OrderUseCase struct {
	txRunner    OrderTxRunner
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	firmaRepo   repository.FirmaRepository
	pdfGen      OrderPDFGenerator
}

// NewOrderUseCase builds the use case. pdfGen may be nil; ConfirmationPDF
// then reports ErrNotFound.
func NewOrderUseCase(txRunner OrderTxRunner, orderRepo repository.OrderRepository, productRepo repository.ProductRepository, firmaRepo repository.FirmaRepository, pdfGen OrderPDFGenerator) *OrderUseCase {
	return &OrderUseCase{txRunner: txRunner, orderRepo: orderRepo, productRepo: productRepo, firmaRepo: firmaRepo, pdfGen: pdfGen}
}

// Create prices each line at the caller's current discount and persists
// header plus lines in one transaction.
func (uc *OrderUseCase) Create(firmaID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrEmptyItems
	}
	if firmaID == "" {
		return nil, domain.ErrMissingOrigin
	}
	firma, err := uc.firmaRepo.GetByID(firmaID)
	if err != nil {
		return nil, err
	}
	discount := decimal.Zero
	if firma != nil {
		discount = firma.DiscountPercent
	}

	now := time.Now()
	order := &entity.Order{
		ID:        uuid.New().String(),
		FirmaID:   firmaID,
		Status:    workflow.StatusPending,
		Note:      in.Note,
		Total:     decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	lines := make([]*entity.OrderLine, 0, len(in.Items))
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		unit := pricing.RoundForOrderLine(pricing.Personalize(product.BasePrice, discount))
		lineTotal := unit.Mul(decimal.NewFromInt(int64(item.Quantity)))
		lines = append(lines, &entity.OrderLine{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: unit,
			LineTotal: lineTotal,
		})
		order.Total = order.Total.Add(lineTotal)
	}

	err = uc.txRunner.RunOrder(context.Background(), func(orderRepo repository.OrderRepository) error {
		if err := orderRepo.CreateHeader(order); err != nil {
			return err
		}
		return orderRepo.CreateLines(lines)
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, lines), nil
}

// GetByID returns one order with its lines.
func (uc *OrderUseCase) GetByID(id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	lines, err := uc.orderRepo.ListLines(id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, lines), nil
}

// ListByFirma lists a partner's orders.
func (uc *OrderUseCase) ListByFirma(firmaID string, limit, offset int) (*dto.OrderListResponse, error) {
	list, err := uc.orderRepo.ListByFirma(firmaID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toOrderList(list, limit, offset), nil
}

// List lists all orders (back office).
func (uc *OrderUseCase) List(limit, offset int) (*dto.OrderListResponse, error) {
	list, err := uc.orderRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return toOrderList(list, limit, offset), nil
}

// Transition moves the order along the status machine. Re-setting the current
// status is a no-op; a supplied reason is appended to the audit note.
func (uc *OrderUseCase) Transition(id string, in dto.TransitionRequest) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}
	changed, err := workflow.OrderMachine.Step(order.Status, in.Status)
	if err != nil {
		return nil, err
	}
	if !changed && in.Reason == "" {
		return toOrderResponse(order, nil), nil
	}
	order.Status = in.Status
	order.Note = workflow.AppendNote(order.Note, in.Reason)
	order.UpdatedAt = time.Now()
	if err := uc.orderRepo.UpdateStatus(order.ID, order.Status, order.Note); err != nil {
		return nil, err
	}
	return toOrderResponse(order, nil), nil
}

// ConfirmationPDF renders the order confirmation document. Product names are
// resolved at render time; deleted products fall back to the product ID.
func (uc *OrderUseCase) ConfirmationPDF(ctx context.Context, id string) ([]byte, error) {
	if uc.pdfGen == nil {
		return nil, domain.ErrNotFound
	}
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	firma, err := uc.firmaRepo.GetByID(order.FirmaID)
	if err != nil {
		return nil, err
	}
	lines, err := uc.orderRepo.ListLines(id)
	if err != nil {
		return nil, err
	}

	pdfLines := make([]OrderLineForPDF, 0, len(lines))
	for _, l := range lines {
		name := l.ProductID
		if product, err := uc.productRepo.GetByID(l.ProductID); err == nil && product != nil {
			name = product.Name()
		}
		pdfLines = append(pdfLines, OrderLineForPDF{
			ProductName: name,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			LineTotal:   l.LineTotal,
		})
	}
	return uc.pdfGen.GenerateOrderConfirmation(ctx, order, firma, pdfLines)
}

func toOrderList(list []*entity.Order, limit, offset int) *dto.OrderListResponse {
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o, nil))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
}

func toOrderResponse(o *entity.Order, lines []*entity.OrderLine) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	out := &dto.OrderResponse{
		ID:        o.ID,
		FirmaID:   o.FirmaID,
		Status:    o.Status,
		Note:      o.Note,
		Total:     o.Total,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, dto.OrderLineResponse{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
		})
	}
	return out
}
