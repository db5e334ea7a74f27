package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
)

// QuoteToSaleDraft convierte un presupuesto en un borrador de venta sin
// alterar los montos ya acordados con el cliente.
//
// Líneas de catálogo: se conservan producto, cantidad, descuento y LineTotal
// tal cual; el precio unitario se re-deriva como lineTotal/cantidad para
// absorber cualquier descuento ya incorporado a la base del presupuesto (si
// la cantidad no es positiva se mantiene el precio original). Líneas libres:
// copia literal, no tienen descuento que re-derivar.
//
// Cabecera: se llevan cliente, IVA y tipo de cambio. No se llevan número (la
// venta recibe el suyo), estados (la venta arranca con estado propio) ni el
// adicional del presupuesto (la venta no tiene ese campo), por lo que los
// totales del borrador se recalculan con el agregador aunque los totales de
// línea se preserven exactos.
//
// Un presupuesto sin líneas produce un borrador válido sin líneas; bloquear
// su guardado es responsabilidad del que llama, no de la conversión.
func QuoteToSaleDraft(quote *entity.Document) *entity.Document {
	items := make([]entity.LineItem, 0, len(quote.Items))
	for i, src := range quote.Items {
		item := entity.LineItem{
			Kind:      src.Kind,
			Quantity:  src.Quantity,
			UnitPrice: src.UnitPrice,
			LineTotal: src.LineTotal,
			Position:  i,
		}
		switch src.Kind {
		case entity.ItemKindProduct:
			item.ProductID = src.ProductID
			item.Code = src.Code
			item.Description = src.Description
			item.DiscountPercent = src.DiscountPercent
			if src.Quantity.IsPositive() {
				item.UnitPrice = src.LineTotal.Div(src.Quantity)
			}
		case entity.ItemKindCustom:
			item.CustomDescription = src.CustomDescription
		}
		items = append(items, item)
	}

	draft := &entity.Document{
		Kind:          entity.DocumentVenta,
		ClientID:      quote.ClientID,
		TaxPercent:    quote.TaxPercent,
		ExchangeRate:  quote.ExchangeRate,
		ExtraAmount:   decimal.NullDecimal{},
		PaymentStatus: entity.PaymentStatusPendiente,
		Items:         items,
	}
	ApplyTotals(draft)
	return draft
}
