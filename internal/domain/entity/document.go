package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento comercial.
const (
	DocumentPresupuesto = "presupuesto" // cotización no vinculante, convertible en venta
	DocumentVenta       = "venta"
)

// Estados de un presupuesto.
const (
	QuoteStatusPendiente = "pendiente"
	QuoteStatusAprobado  = "aprobado"
	QuoteStatusRechazado = "rechazado"
	QuoteStatusImportado = "importado" // ya convertido en venta
)

// Estados de pago de una venta.
const (
	PaymentStatusPendiente = "pendiente"
	PaymentStatusParcial   = "parcial"
	PaymentStatusPagado    = "pagado"
)

// Tipos de ítem de un documento. Kind es el único discriminante: un ítem de
// catálogo lleva ProductID/Code/Description; uno libre solo CustomDescription.
// Nunca se infiere el tipo por la nulidad de otros campos.
const (
	ItemKindProduct = "product"
	ItemKindCustom  = "custom"
)

// LineItem es una línea de un presupuesto o venta.
//
// Para ítems de catálogo (product), Code y Description son una copia del
// catálogo al momento de agregar la línea; el catálogo puede cambiar después
// sin afectar documentos ya emitidos. DiscountPercent solo aplica a ítems de
// catálogo. LineTotal es derivado pero se persiste: es el monto acordado con
// el cliente y no se recalcula al releer el documento.
type LineItem struct {
	ID         string
	DocumentID string
	Kind       string // product | custom

	// Solo para Kind == product
	ProductID       string
	Code            string
	Description     string
	DiscountPercent decimal.Decimal // 0..100

	// Solo para Kind == custom
	CustomDescription string

	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal // USD
	LineTotal decimal.Decimal // USD, redondeado a 2 decimales

	Position  int // orden de presentación; irrelevante para los totales
	CreatedAt time.Time
}

// Document es la cabecera de un presupuesto o una venta, con sus líneas.
//
// Subtotal, TaxAmount, TotalForeign y TotalLocal son siempre derivados por el
// motor de precios (paquete pricing); nunca los edita el usuario. TotalLocal
// es NullDecimal: queda inválido (no cero) cuando el tipo de cambio no es un
// número positivo.
type Document struct {
	ID       string
	Kind     string // presupuesto | venta
	Number   int64  // consecutivo por tipo de documento
	ClientID string
	Date     time.Time

	TaxPercent   decimal.NullDecimal // IVA, 0..100; inválido = sin impuesto
	ExchangeRate decimal.Decimal     // pesos por USD, > 0
	ExtraAmount  decimal.NullDecimal // adicional fijo en USD; solo presupuestos

	Status        string // presupuestos: pendiente/aprobado/rechazado/importado
	PaymentStatus string // ventas: pendiente/parcial/pagado

	Items []LineItem

	Subtotal     decimal.Decimal     // USD
	TaxAmount    decimal.Decimal     // USD
	TotalForeign decimal.Decimal     // USD
	TotalLocal   decimal.NullDecimal // pesos; inválido si no hay tipo de cambio

	CreatedAt time.Time
	UpdatedAt time.Time
}
