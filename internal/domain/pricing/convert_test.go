package pricing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/pricing"
)

func quoteForImport() *entity.Document {
	doc := &entity.Document{
		ID:           "q-1",
		Kind:         entity.DocumentPresupuesto,
		Number:       42,
		ClientID:     "c-1",
		Date:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		TaxPercent:   nullDec("21"),
		ExchangeRate: dec("1000"),
		ExtraAmount:  nullDec("5"),
		Status:       entity.QuoteStatusAprobado,
		Items: []entity.LineItem{
			{
				ID:              "i-1",
				Kind:            entity.ItemKindProduct,
				ProductID:       "p-1",
				Code:            "A-100",
				Description:     "caño de 3/4",
				Quantity:        dec("10"),
				UnitPrice:       dec("2.00"),
				DiscountPercent: dec("5"),
				LineTotal:       dec("19.00"), // 10 × 2.00 × 0.95
			},
			{
				ID:                "i-2",
				Kind:              entity.ItemKindCustom,
				CustomDescription: "mano de obra",
				Quantity:          dec("1"),
				UnitPrice:         dec("80.00"),
				LineTotal:         dec("80.00"),
			},
		},
	}
	pricing.ApplyTotals(doc)
	return doc
}

// La conversión preserva el total acordado de cada línea: no hay una nueva
// pasada por la tabla de descuentos. El precio unitario se re-deriva como
// lineTotal/cantidad para absorber el descuento ya incorporado.
func TestQuoteToSaleDraft_PreservaTotalesComprometidos(t *testing.T) {
	draft := pricing.QuoteToSaleDraft(quoteForImport())

	require.Len(t, draft.Items, 2)
	product := draft.Items[0]
	assert.Equal(t, entity.ItemKindProduct, product.Kind)
	assert.Equal(t, "p-1", product.ProductID)
	assert.Equal(t, "A-100", product.Code)
	assert.Equal(t, "19.00", product.LineTotal.StringFixed(2), "el total de línea no se recalcula")
	assert.Equal(t, "1.90", product.UnitPrice.StringFixed(2), "precio re-derivado como total/cantidad")
	assert.Equal(t, "5", product.DiscountPercent.String())
	assert.Equal(t, "10", product.Quantity.String())
}

func TestQuoteToSaleDraft_LineaLibreCopiaLiteral(t *testing.T) {
	draft := pricing.QuoteToSaleDraft(quoteForImport())

	custom := draft.Items[1]
	assert.Equal(t, entity.ItemKindCustom, custom.Kind)
	assert.Equal(t, "mano de obra", custom.CustomDescription)
	assert.Equal(t, "80.00", custom.UnitPrice.StringFixed(2), "sin re-derivación: no hay descuento que absorber")
	assert.Equal(t, "80.00", custom.LineTotal.StringFixed(2))
}

// Cantidad no positiva: se mantiene el precio original del presupuesto.
func TestQuoteToSaleDraft_CantidadCeroConservaPrecioOriginal(t *testing.T) {
	quote := quoteForImport()
	quote.Items[0].Quantity = decimal.Zero

	draft := pricing.QuoteToSaleDraft(quote)

	assert.Equal(t, "2.00", draft.Items[0].UnitPrice.StringFixed(2))
}

// Cabecera: se llevan cliente, IVA y tipo de cambio; no se llevan número,
// estados ni adicional. Con el adicional afuera, el total del borrador cambia
// aunque las líneas se preserven exactas.
func TestQuoteToSaleDraft_Cabecera(t *testing.T) {
	quote := quoteForImport()
	draft := pricing.QuoteToSaleDraft(quote)

	assert.Equal(t, entity.DocumentVenta, draft.Kind)
	assert.Equal(t, "c-1", draft.ClientID)
	require.True(t, draft.TaxPercent.Valid)
	assert.Equal(t, "21", draft.TaxPercent.Decimal.String())
	assert.Equal(t, "1000", draft.ExchangeRate.String())

	assert.Empty(t, draft.ID, "la venta recibe su propio ID al guardarse")
	assert.Zero(t, draft.Number)
	assert.Equal(t, entity.PaymentStatusPendiente, draft.PaymentStatus)
	assert.False(t, draft.ExtraAmount.Valid, "la venta no tiene adicional")

	// Presupuesto: (19 + 80) × 1.21 + 5 = 124.79. Venta: sin el adicional.
	assert.Equal(t, "124.79", quote.TotalForeign.StringFixed(2))
	assert.Equal(t, "99.00", draft.Subtotal.StringFixed(2))
	assert.Equal(t, "119.79", draft.TotalForeign.StringFixed(2))
	require.True(t, draft.TotalLocal.Valid)
	assert.Equal(t, "119790.00", draft.TotalLocal.Decimal.StringFixed(2))
}

// Presupuesto sin líneas: borrador válido sin líneas; bloquear el guardado es
// responsabilidad del que llama.
func TestQuoteToSaleDraft_PresupuestoVacio(t *testing.T) {
	quote := &entity.Document{
		Kind:         entity.DocumentPresupuesto,
		ClientID:     "c-1",
		ExchangeRate: dec("1000"),
	}

	draft := pricing.QuoteToSaleDraft(quote)

	assert.Empty(t, draft.Items)
	assert.Equal(t, "0.00", draft.TotalForeign.StringFixed(2))

	err := pricing.ValidateDocument(draft)
	require.Error(t, err)
	ve, ok := pricing.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, pricing.CodeEmptyItemList, ve.Code)
}
