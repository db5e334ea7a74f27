// Package pdf implementa la representación imprimible de presupuestos y
// ventas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Tipo de documento + N°  │  Fecha                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + CUIT/DNI + contacto                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Código | Descripción | P.Unit | Dto% | Total │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / IVA / Adicional / TOTAL USD / TOTAL $  │
//	└─────────────────────────────────────────────────────────────┘
//
// Los montos llegan ya derivados y redondeados; acá solo se formatean.
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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tu-usuario/gestion-pyme/internal/application/sales"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
)

var _ sales.DocumentPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Formato es-AR: miles con punto, decimales con coma.
var printer = message.NewPrinter(language.MustParse("es-AR"))

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa sales.DocumentPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	businessName string
}

// NewMarotoPDFGenerator construye el generador. businessName encabeza cada
// documento emitido.
func NewMarotoPDFGenerator(businessName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{businessName: businessName}
}

// GenerateDocumentPDF genera el PDF de un presupuesto o una venta.
func (g *MarotoPDFGenerator) GenerateDocumentPDF(
	_ context.Context,
	doc *entity.Document,
	client *entity.Client,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(documentTitle(doc.Kind), true).
		WithAuthor(g.businessName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.businessName, doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(client))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(doc.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	for _, r := range totalsRows(doc) {
		m.AddRows(r)
	}

	if doc.Kind == entity.DocumentPresupuesto {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Presupuesto sin valor fiscal. Precios sujetos a cambio sin previo aviso.",
				props.Text{Size: 6.5, Color: colorGray, Top: 3}),
		)))
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func documentTitle(kind string) string {
	if kind == entity.DocumentVenta {
		return "NOTA DE VENTA"
	}
	return "PRESUPUESTO"
}

// headerRow: nombre del negocio (izq) y tipo + número + fecha (der).
func headerRow(businessName string, doc *entity.Document) core.Row {
	numero := fmt.Sprintf("N° %04d", doc.Number)
	fecha := doc.Date.Format("02/01/2006")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(businessName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(documentTitle(doc.Kind), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(numero, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// clientRow: datos del cliente.
func clientRow(client *entity.Client) core.Row {
	name, taxID, contact := "—", "—", "—"
	if client != nil {
		name = client.Name
		taxID = nonEmpty(client.TaxID, "—")
		contact = fmt.Sprintf("Email: %s   |   Tel: %s",
			nonEmpty(client.Email, "—"), nonEmpty(client.Phone, "—"))
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New("CUIT/DNI: "+taxID+"   |   "+contact,
				props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Código", 2, align.Left),
		h("Descripción", 4, align.Left),
		h("P.Unit USD", 2, align.Right),
		h("Dto%", 1, align.Center),
		h("Total USD", 2, align.Right),
	)
}

// tableItemRows: una fila por línea del documento.
func tableItemRows(items []entity.LineItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for i := range items {
		it := &items[i]
		code, desc, dto := "—", it.CustomDescription, "—"
		if it.Kind == entity.ItemKindProduct {
			code = it.Code
			desc = it.Description
			dto = it.DiscountPercent.StringFixed(0) + "%"
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				trimTrailingZeros(it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				code,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(4).Add(text.New(
				desc,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatUSD(it.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(1).Add(text.New(
				dto,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				formatUSD(it.LineTotal),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRows: bloque de totales alineado a la derecha. El total en pesos solo
// aparece si el documento tiene tipo de cambio; nunca se muestra como cero.
func totalsRows(doc *entity.Document) []core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}

	totalLine := func(l, v string) core.Row {
		return row.New(5).Add(
			col.New(6),
			col.New(3).Add(label(l)),
			col.New(3).Add(value(v)),
		)
	}

	rows := []core.Row{totalLine("Subtotal:", formatUSD(doc.Subtotal))}
	if doc.TaxPercent.Valid {
		rows = append(rows, totalLine(
			fmt.Sprintf("IVA (%s%%):", doc.TaxPercent.Decimal.StringFixed(0)),
			formatUSD(doc.TaxAmount),
		))
	}
	if doc.ExtraAmount.Valid && !doc.ExtraAmount.Decimal.IsZero() {
		rows = append(rows, totalLine("Adicional:", formatUSD(doc.ExtraAmount.Decimal)))
	}

	rows = append(rows,
		row.New(8).Add(
			col.New(6),
			col.New(3).Add(text.New("TOTAL USD:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 2, Top: 1,
			})),
			col.New(3).Add(text.New(formatUSD(doc.TotalForeign), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1, Top: 1,
			})),
		),
	)

	if doc.TotalLocal.Valid {
		rows = append(rows, row.New(8).Add(
			col.New(6),
			col.New(3).Add(text.New(
				fmt.Sprintf("TOTAL $ (TC %s):", trimTrailingZeros(doc.ExchangeRate)),
				props.Text{
					Style: fontstyle.Bold, Size: 10, Align: align.Right,
					Color: colorPrimary, Right: 2, Top: 1,
				})),
			col.New(3).Add(text.New(formatARS(doc.TotalLocal.Decimal), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Right: 1, Top: 1,
			})),
		))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatUSD formatea un monto en dólares con separadores es-AR y 2 decimales.
// Ej: 1234.5 → "U$S 1.234,50"
func formatUSD(d decimal.Decimal) string {
	f, _ := d.Float64()
	return printer.Sprintf("U$S %.2f", f)
}

// formatARS formatea un monto en pesos con separadores es-AR y 2 decimales.
func formatARS(d decimal.Decimal) string {
	f, _ := d.Float64()
	return printer.Sprintf("$ %.2f", f)
}

// trimTrailingZeros muestra una cantidad sin ceros decimales de relleno.
// Ej: "3.000" → "3", "2.50" → "2.5"
func trimTrailingZeros(d decimal.Decimal) string {
	s := d.StringFixed(3)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
