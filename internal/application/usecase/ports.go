package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/lokumhouse/sweets-api/internal/domain/entity"
	"github.com/lokumhouse/sweets-api/internal/domain/repository"
)

// OrderTxRunner runs order persistence inside one transaction: header and
// lines commit or roll back together. Implemented by postgres.TxRunner.
type OrderTxRunner interface {
	RunOrder(ctx context.Context, fn func(orderRepo repository.OrderRepository) error) error
}

// OrderLineForPDF is the projection the confirmation document needs: the
// line with its product name resolved.
type OrderLineForPDF struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
}

// OrderPDFGenerator renders the confirmation document for a created order.
// Implemented by pdf.OrderConfirmationGenerator.
type OrderPDFGenerator interface {
	GenerateOrderConfirmation(ctx context.Context, order *entity.Order, firma *entity.Firma, lines []OrderLineForPDF) ([]byte, error)
}
