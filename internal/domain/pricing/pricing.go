// Package pricing es el motor de precios compartido por presupuestos y
// ventas: resolución de descuento por cantidad, total por línea, totales de
// documento y conversión presupuesto → venta. Todas las funciones son puras;
// el mismo motor corre al agregar, editar e importar líneas, de modo que los
// tres flujos no puedan divergir entre sí.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
)

var (
	hundred = decimal.NewFromInt(100)

	tier50 = decimal.NewFromInt(50)
	tier25 = decimal.NewFromInt(25)
	tier10 = decimal.NewFromInt(10)

	discount50 = decimal.NewFromInt(12)
	discount25 = decimal.NewFromInt(10)
	discount10 = decimal.NewFromInt(5)
)

// round2 redondea a 2 decimales, mitad alejándose de cero (equivale a
// toFixed(2) sobre montos positivos). Se aplica exactamente una vez, al
// calcular cada valor derivado; un valor ya redondeado nunca se vuelve a
// redondear.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ResolveDefaultDiscount devuelve el descuento por defecto (%) según la
// cantidad: ≥50 → 12, ≥25 → 10, ≥10 → 5, resto → 0. Cantidades no positivas
// caen en 0.
//
// El descuento por defecto se aplica cada vez que cambia la cantidad de una
// línea de catálogo, incluso si el usuario había cargado un descuento manual:
// el valor manual sobrevive solo hasta el próximo cambio de cantidad. Es el
// contrato esperado por los formularios, no un bug. Los ítems libres no
// tienen descuento automático.
func ResolveDefaultDiscount(quantity decimal.Decimal) decimal.Decimal {
	switch {
	case quantity.GreaterThanOrEqual(tier50):
		return discount50
	case quantity.GreaterThanOrEqual(tier25):
		return discount25
	case quantity.GreaterThanOrEqual(tier10):
		return discount10
	default:
		return decimal.Zero
	}
}

// ClampDiscount lleva un descuento al rango [0, 100]. Es la política
// permisiva del recálculo en vivo: un valor fuera de rango se ajusta en
// silencio y el total nunca queda negativo. Al confirmar el alta de la línea
// rige la política estricta de ValidateNewItem, que rechaza en vez de
// ajustar.
func ClampDiscount(d decimal.Decimal) decimal.Decimal {
	if d.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	if d.GreaterThan(hundred) {
		return hundred
	}
	return d
}

// ComputeLineTotal calcula el total de una línea de catálogo:
// round2(cantidad × precio × (1 − descuento/100)). El cero es valor neutro:
// una cantidad o precio sin cargar todavía produce total 0, nunca un error.
func ComputeLineTotal(quantity, unitPrice, discountPercent decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(ClampDiscount(discountPercent).Div(hundred))
	return round2(quantity.Mul(unitPrice).Mul(factor))
}

// ComputeCustomLineTotal calcula el total de una línea libre, que no tiene
// concepto de descuento: round2(cantidad × precio).
func ComputeCustomLineTotal(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return round2(quantity.Mul(unitPrice))
}

// ItemTotal calcula el total de la línea según su tipo.
func ItemTotal(item entity.LineItem) decimal.Decimal {
	if item.Kind == entity.ItemKindCustom {
		return ComputeCustomLineTotal(item.Quantity, item.UnitPrice)
	}
	return ComputeLineTotal(item.Quantity, item.UnitPrice, item.DiscountPercent)
}
