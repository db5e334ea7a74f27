package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/pricing"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// Bordes de los tramos de descuento: el límite inferior incluye.
func TestResolveDefaultDiscount_BordesDeTramos(t *testing.T) {
	cases := []struct {
		quantity string
		want     string
	}{
		{"0", "0"},
		{"-3", "0"},
		{"1", "0"},
		{"9", "0"},
		{"9.99", "0"},
		{"10", "5"},
		{"24", "5"},
		{"25", "10"},
		{"49", "10"},
		{"49.5", "10"},
		{"50", "12"},
		{"500", "12"},
	}
	for _, tc := range cases {
		got := pricing.ResolveDefaultDiscount(dec(tc.quantity))
		assert.True(t, got.Equal(dec(tc.want)),
			"cantidad %s: esperaba %s, obtuve %s", tc.quantity, tc.want, got)
	}
}

func TestComputeLineTotal_AplicaDescuento(t *testing.T) {
	// 10 × 2.00 × 0.95 = 19.00
	got := pricing.ComputeLineTotal(dec("10"), dec("2.00"), dec("5"))
	assert.Equal(t, "19.00", got.StringFixed(2))
}

// Redondeo: mitad alejándose de cero, a 2 decimales, una sola vez.
// 3 × 9.995 = 29.985 → 29.99.
func TestComputeLineTotal_RedondeoMitadAlejandoseDeCero(t *testing.T) {
	got := pricing.ComputeLineTotal(dec("3"), dec("9.995"), decimal.Zero)
	assert.Equal(t, "29.99", got.StringFixed(2))

	// La línea libre usa exactamente la misma regla de redondeo.
	custom := pricing.ComputeCustomLineTotal(dec("3"), dec("9.995"))
	assert.Equal(t, "29.99", custom.StringFixed(2))
}

// Valores sin cargar (cero) significan "todavía sin precio", nunca un error.
func TestComputeLineTotal_CeroEsNeutro(t *testing.T) {
	assert.Equal(t, "0.00", pricing.ComputeLineTotal(decimal.Zero, dec("9.50"), decimal.Zero).StringFixed(2))
	assert.Equal(t, "0.00", pricing.ComputeLineTotal(dec("4"), decimal.Zero, dec("10")).StringFixed(2))
	assert.Equal(t, "0.00", pricing.ComputeCustomLineTotal(decimal.Zero, decimal.Zero).StringFixed(2))
}

// Recálculo en vivo: descuento fuera de rango se ajusta en silencio. 150 se
// comporta como 100% (total 0), nunca un total negativo; -20 como 0%.
func TestComputeLineTotal_DescuentoFueraDeRangoSeAjusta(t *testing.T) {
	got := pricing.ComputeLineTotal(dec("10"), dec("2.00"), dec("150"))
	assert.Equal(t, "0.00", got.StringFixed(2))
	assert.False(t, got.IsNegative(), "el total nunca puede ser negativo")

	got = pricing.ComputeLineTotal(dec("10"), dec("2.00"), dec("-20"))
	assert.Equal(t, "20.00", got.StringFixed(2))
}

func TestItemTotal_DiscriminaPorKind(t *testing.T) {
	product := entity.LineItem{
		Kind:            entity.ItemKindProduct,
		Quantity:        dec("10"),
		UnitPrice:       dec("2.00"),
		DiscountPercent: dec("5"),
	}
	assert.Equal(t, "19.00", pricing.ItemTotal(product).StringFixed(2))

	// La línea libre ignora cualquier descuento residual.
	custom := entity.LineItem{
		Kind:              entity.ItemKindCustom,
		CustomDescription: "flete",
		Quantity:          dec("10"),
		UnitPrice:         dec("2.00"),
		DiscountPercent:   dec("5"),
	}
	assert.Equal(t, "20.00", pricing.ItemTotal(custom).StringFixed(2))
}
