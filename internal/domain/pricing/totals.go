package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
)

// Totals agrupa los totales derivados de un documento. TotalLocal es
// NullDecimal: si el tipo de cambio no es un número positivo queda inválido,
// de forma que el consumidor lo muestre como "sin calcular" y nunca como 0.
type Totals struct {
	Subtotal     decimal.Decimal
	TaxAmount    decimal.Decimal
	TotalForeign decimal.Decimal
	TotalLocal   decimal.NullDecimal
}

// ComputeDocumentTotals deriva los totales del documento a partir de sus
// líneas y su cabecera:
//
//	subtotal     = round2(Σ lineTotal)
//	taxAmount    = round2(subtotal × iva/100)
//	totalForeign = round2(subtotal + taxAmount + adicional)
//	totalLocal   = round2(totalForeign × tipoDeCambio)   si tipoDeCambio > 0
//
// El subtotal suma los totales de línea ya redondeados; no vuelve a derivar
// desde cantidad × precio, para que el documento guardado y el mostrado no
// difieran por doble redondeo. IVA o adicional ausentes aportan cero, no son
// error. La función es pura: no muta las líneas y dos llamadas con los mismos
// argumentos devuelven exactamente lo mismo.
func ComputeDocumentTotals(items []entity.LineItem, taxPercent, extraAmount decimal.NullDecimal, exchangeRate decimal.Decimal) Totals {
	var sum decimal.Decimal
	for _, item := range items {
		sum = sum.Add(item.LineTotal)
	}
	subtotal := round2(sum)

	tax := decimal.Zero
	if taxPercent.Valid {
		tax = round2(subtotal.Mul(taxPercent.Decimal).Div(hundred))
	}

	extra := decimal.Zero
	if extraAmount.Valid {
		extra = extraAmount.Decimal
	}
	totalForeign := round2(subtotal.Add(tax).Add(extra))

	var totalLocal decimal.NullDecimal
	if exchangeRate.IsPositive() {
		totalLocal = decimal.NullDecimal{
			Decimal: round2(totalForeign.Mul(exchangeRate)),
			Valid:   true,
		}
	}

	return Totals{
		Subtotal:     subtotal,
		TaxAmount:    tax,
		TotalForeign: totalForeign,
		TotalLocal:   totalLocal,
	}
}

// ApplyTotals recalcula los totales del documento y los escribe en la
// cabecera. Debe correr después de cualquier cambio en las líneas, el IVA, el
// adicional o el tipo de cambio.
func ApplyTotals(doc *entity.Document) {
	t := ComputeDocumentTotals(doc.Items, doc.TaxPercent, doc.ExtraAmount, doc.ExchangeRate)
	doc.Subtotal = t.Subtotal
	doc.TaxAmount = t.TaxAmount
	doc.TotalForeign = t.TotalForeign
	doc.TotalLocal = t.TotalLocal
}
