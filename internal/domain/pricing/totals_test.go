package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/pricing"
)

func nullDec(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: dec(s), Valid: true}
}

func itemsWithTotals(totals ...string) []entity.LineItem {
	items := make([]entity.LineItem, 0, len(totals))
	for _, s := range totals {
		items = append(items, entity.LineItem{
			Kind:              entity.ItemKindCustom,
			CustomDescription: "línea",
			Quantity:          dec("1"),
			UnitPrice:         dec(s),
			LineTotal:         dec(s),
		})
	}
	return items
}

// Cascada completa: subtotal 100, IVA 21%, adicional 5, tipo de cambio 1000.
func TestComputeDocumentTotals_Cascada(t *testing.T) {
	items := itemsWithTotals("60.00", "40.00")

	got := pricing.ComputeDocumentTotals(items, nullDec("21"), nullDec("5"), dec("1000"))

	assert.Equal(t, "100.00", got.Subtotal.StringFixed(2))
	assert.Equal(t, "21.00", got.TaxAmount.StringFixed(2))
	assert.Equal(t, "126.00", got.TotalForeign.StringFixed(2))
	require.True(t, got.TotalLocal.Valid)
	assert.Equal(t, "126000.00", got.TotalLocal.Decimal.StringFixed(2))
}

// IVA ausente: aporta cero, no es error.
func TestComputeDocumentTotals_SinIVA(t *testing.T) {
	items := itemsWithTotals("100.00")

	got := pricing.ComputeDocumentTotals(items, decimal.NullDecimal{}, nullDec("5"), dec("2"))

	assert.Equal(t, "0.00", got.TaxAmount.StringFixed(2))
	assert.Equal(t, "105.00", got.TotalForeign.StringFixed(2))
}

// El subtotal suma los totales de línea ya redondeados; no re-deriva desde
// cantidad × precio (evita la deriva por doble redondeo).
func TestComputeDocumentTotals_SumaTotalesYaRedondeados(t *testing.T) {
	// Dos líneas con base 29.985: redondeadas por línea suman 59.98,
	// mientras que redondear la suma cruda daría 59.97.
	items := []entity.LineItem{
		{Kind: entity.ItemKindCustom, Quantity: dec("3"), UnitPrice: dec("9.995"), LineTotal: dec("29.99")},
		{Kind: entity.ItemKindCustom, Quantity: dec("3"), UnitPrice: dec("9.995"), LineTotal: dec("29.99")},
	}

	got := pricing.ComputeDocumentTotals(items, decimal.NullDecimal{}, decimal.NullDecimal{}, dec("1"))

	assert.Equal(t, "59.98", got.Subtotal.StringFixed(2))
}

// Tipo de cambio cero o ausente: TotalLocal queda sin calcular, nunca 0.
func TestComputeDocumentTotals_TipoDeCambioInvalido(t *testing.T) {
	items := itemsWithTotals("100.00")

	for _, rate := range []decimal.Decimal{decimal.Zero, dec("-3")} {
		got := pricing.ComputeDocumentTotals(items, nullDec("21"), decimal.NullDecimal{}, rate)
		assert.False(t, got.TotalLocal.Valid,
			"con tipo de cambio %s el total en pesos debe quedar sin calcular", rate)
		// El resto de la cascada se calcula igual.
		assert.Equal(t, "121.00", got.TotalForeign.StringFixed(2))
	}
}

// Idempotencia: dos llamadas con los mismos argumentos dan lo mismo y no
// mutan las líneas.
func TestComputeDocumentTotals_Idempotente(t *testing.T) {
	items := itemsWithTotals("33.33", "66.67")

	first := pricing.ComputeDocumentTotals(items, nullDec("21"), nullDec("5"), dec("1000"))
	second := pricing.ComputeDocumentTotals(items, nullDec("21"), nullDec("5"), dec("1000"))

	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.TaxAmount.Equal(second.TaxAmount))
	assert.True(t, first.TotalForeign.Equal(second.TotalForeign))
	require.True(t, first.TotalLocal.Valid)
	require.True(t, second.TotalLocal.Valid)
	assert.True(t, first.TotalLocal.Decimal.Equal(second.TotalLocal.Decimal))
	assert.Equal(t, "33.33", items[0].LineTotal.StringFixed(2), "las líneas no deben mutar")
}

// Documento sin líneas: totales en cero, sin error.
func TestComputeDocumentTotals_SinLineas(t *testing.T) {
	got := pricing.ComputeDocumentTotals(nil, nullDec("21"), decimal.NullDecimal{}, dec("1000"))

	assert.Equal(t, "0.00", got.Subtotal.StringFixed(2))
	assert.Equal(t, "0.00", got.TotalForeign.StringFixed(2))
	require.True(t, got.TotalLocal.Valid)
	assert.Equal(t, "0.00", got.TotalLocal.Decimal.StringFixed(2))
}

func TestApplyTotals_EscribeCabecera(t *testing.T) {
	doc := &entity.Document{
		Kind:         entity.DocumentPresupuesto,
		TaxPercent:   nullDec("21"),
		ExtraAmount:  nullDec("5"),
		ExchangeRate: dec("1000"),
		Items:        itemsWithTotals("100.00"),
	}

	pricing.ApplyTotals(doc)

	assert.Equal(t, "100.00", doc.Subtotal.StringFixed(2))
	assert.Equal(t, "21.00", doc.TaxAmount.StringFixed(2))
	assert.Equal(t, "126.00", doc.TotalForeign.StringFixed(2))
	require.True(t, doc.TotalLocal.Valid)
	assert.Equal(t, "126000.00", doc.TotalLocal.Decimal.StringFixed(2))
}
