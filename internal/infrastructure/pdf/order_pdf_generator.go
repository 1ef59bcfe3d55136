// Package pdf renders the order confirmation document partners download
// from the portal after placing an order.
//
// A4 page layout:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Company name  │  Order N° + Date + Status           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ACCOUNT: Firma name + tier + discount                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLE: Qty | Product | Unit price | Line total             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL                                                      │
//	│  FOOTER: audit note + legal line                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/lokumhouse/sweets-api/internal/application/usecase"
	"github.com/lokumhouse/sweets-api/internal/domain/entity"
	"github.com/lokumhouse/sweets-api/internal/domain/workflow"
)

// ── Color palette ─────────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 133, Green: 38, Blue: 70}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// OrderConfirmationGenerator implements usecase.OrderPDFGenerator using
// Maroto v2.
type OrderConfirmationGenerator struct {
	companyName string
}

// NewOrderConfirmationGenerator builds the generator. companyName appears in
// the document header and the PDF metadata.
func NewOrderConfirmationGenerator(companyName string) *OrderConfirmationGenerator {
	return &OrderConfirmationGenerator{companyName: companyName}
}

// GenerateOrderConfirmation renders the PDF and returns its bytes.
func (g *OrderConfirmationGenerator) GenerateOrderConfirmation(
	_ context.Context,
	order *entity.Order,
	firma *entity.Firma,
	lines []usecase.OrderLineForPDF,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Order confirmation "+shortID(order.ID), true).
		WithAuthor(g.companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(accountRow(firma, order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(order))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(order) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generate document: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Sections ──────────────────────────────────────────────────────────────────

// headerRow: company name (left), order number + date + status (right).
func (g *OrderConfirmationGenerator) headerRow(order *entity.Order) core.Row {
	date := order.CreatedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.companyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Wholesale order confirmation", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ORDER", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(shortID(order.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Date: "+date+"   Status: "+strings.ToUpper(order.Status), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// accountRow: the ordering firma and its commercial terms.
func accountRow(firma *entity.Firma, order *entity.Order) core.Row {
	name := order.FirmaID
	terms := "—"
	if firma != nil {
		name = firma.Name
		terms = fmt.Sprintf("Tier: %s   |   Discount: %s%%",
			nonEmpty(firma.PriorityTier, "—"),
			firma.DiscountPercent.StringFixed(2),
		)
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("ACCOUNT", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(terms, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: line table column headers.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Qty", 1, align.Center),
		h("Product", 6, align.Left),
		h("Unit price", 2, align.Right),
		h("Line total", 3, align.Right),
	)
}

// tableLineRows: one row per order line.
func tableLineRows(lines []usecase.OrderLineForPDF) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", l.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				l.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				"€ "+l.UnitPrice.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				"€ "+l.LineTotal.StringFixed(2),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalRow: grand total aligned right.
func totalRow(order *entity.Order) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(3).Add(text.New("ORDER TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New("€ "+order.Total.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

// footerRows: audit note (if any) + legal line.
func footerRows(order *entity.Order) []core.Row {
	var rows []core.Row

	if order.Note != "" {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("Notes:", props.Text{Style: fontstyle.Bold, Size: 7, Top: 1}),
		)))
		for _, n := range strings.Split(order.Note, workflow.NoteDelimiter) {
			n = strings.TrimSpace(n)
			if n == "" {
				continue
			}
			rows = append(rows, row.New(4).Add(col.New(12).Add(
				text.New(n, props.Text{Size: 6.5, Color: colorGray, Top: 0.5, Left: 2}),
			)))
		}
		rows = append(rows, row.New(3))
	}

	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"This confirmation reflects the prices agreed for your account at the "+
				"time the order was placed. It is not an invoice.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))

	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// shortID renders the first UUID block in uppercase as a human-friendly
// order reference. Ex: "c0ffee12-..." → "C0FFEE12".
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		id = id[:i]
	}
	return strings.ToUpper(id)
}
