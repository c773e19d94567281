// Package pdf genera la hoja de pedido a proveedor.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del almacén  │  N° Orden + Fecha + Estado    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROVEEDOR + notas                                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Artículo | Conf. | Pack | BT | Recibidas       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el id de la orden                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/magazzino-api/internal/application/purchasing"
	"github.com/jhoicas/magazzino-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 120, Green: 30, Blue: 45}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ purchasing.OrderPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa purchasing.OrderPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	companyName string
}

// NewMarotoPDFGenerator construye el generador. companyName encabeza la hoja.
func NewMarotoPDFGenerator(companyName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{companyName: companyName}
}

// GenerateOrderPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateOrderPDF(_ context.Context, order *entity.Order, lines []purchasing.OrderLineForPDF) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ordine "+order.OrderID, true).
		WithAuthor(g.companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.companyName, order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(supplierRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableLineRows(lines)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(lines))

	m.AddRows(row.New(4))
	m.AddRows(footerRow(order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(company string, order *entity.Order) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(company, "Magazzino"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Ordine fornitore", props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(order.OrderID, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
			}),
			text.New("Data: "+order.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
			text.New("Stato: "+order.Status, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 12, Color: colorPrimary,
			}),
		),
	)
}

func supplierRow(order *entity.Order) core.Row {
	notes := "—"
	if order.Notes != nil && *order.Notes != "" {
		notes = *order.Notes
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("FORNITORE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(order.Supplier, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
			text.New("Note: "+notes, props.Text{Size: 8, Top: 10, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Articolo", 4, align.Left),
		h("Conf.", 1, align.Center),
		h("Pack", 1, align.Center),
		h("BT", 2, align.Right),
		h("Ricevute", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableLineRows(lines []purchasing.OrderLineForPDF) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(l.SKU, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(l.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(strconv.Itoa(l.QtyOrderedConf), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New("x"+strconv.Itoa(l.PackSize), props.Text{Size: 8, Align: align.Center, Top: 1, Color: colorGray})),
			col.New(2).Add(text.New(strconv.Itoa(l.QtyOrderedBt), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(
				fmt.Sprintf("%d / %d", l.QtyReceivedConf, l.QtyOrderedConf),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func totalsRow(lines []purchasing.OrderLineForPDF) core.Row {
	conf, bt := 0, 0
	for _, l := range lines {
		conf += l.QtyOrderedConf
		bt += l.QtyOrderedBt
	}
	return row.New(10).Add(
		col.New(6).Add(text.New(fmt.Sprintf("Righe: %d", len(lines)), props.Text{
			Style: fontstyle.Bold, Size: 9, Top: 2, Left: 1,
		})),
		col.New(1).Add(text.New(strconv.Itoa(conf), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Center, Top: 2,
		})),
		col.New(1),
		col.New(2).Add(text.New(strconv.Itoa(bt), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Right: 1, Color: colorPrimary,
		})),
		col.New(2),
	)
}

// footerRow: QR con el id de la orden para recepción en almacén.
func footerRow(order *entity.Order) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(order.OrderID, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Scansiona il codice alla ricezione della merce.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New(order.OrderID, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 14, Left: 3, Color: colorPrimary,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
