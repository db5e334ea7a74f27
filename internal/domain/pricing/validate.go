package pricing

import (
	"errors"
	"fmt"

	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
)

// Códigos de error de validación. Son estables: los formularios y la API los
// usan para decidir qué campo marcar; el mensaje es solo para mostrar.
const (
	CodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
	CodeInvalidQuantity      = "INVALID_QUANTITY"
	CodeInvalidUnitPrice     = "INVALID_UNIT_PRICE"
	CodeInvalidDiscountRange = "INVALID_DISCOUNT_RANGE"
	CodeEmptyItemList        = "EMPTY_ITEM_LIST"
	CodeInvalidDerivedTotal  = "INVALID_DERIVED_TOTAL"
)

// ValidationError es un error de validación con código estable y campo
// afectado. Se devuelve en el momento de la acción que lo provoca (agregar
// línea, confirmar documento) y bloquea solo esa acción: nunca corrompe ni
// aplica a medias el estado en memoria.
type ValidationError struct {
	Code    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newValidationError(code, field, message string) *ValidationError {
	return &ValidationError{Code: code, Field: field, Message: message}
}

// ValidateNewItem aplica la política estricta del alta de línea: cantidad
// positiva, precio no negativo y, para ítems de catálogo, descuento dentro de
// [0, 100]. A diferencia del recálculo en vivo (que ajusta con ClampDiscount)
// acá un descuento fuera de rango se rechaza y la línea no se agrega. Las dos
// políticas son deliberadas y no deben unificarse.
func ValidateNewItem(item entity.LineItem) error {
	if !item.Quantity.IsPositive() {
		return newValidationError(CodeInvalidQuantity, "quantity", "la cantidad debe ser mayor a cero")
	}
	if item.UnitPrice.IsNegative() {
		return newValidationError(CodeInvalidUnitPrice, "unit_price", "el precio unitario no puede ser negativo")
	}
	switch item.Kind {
	case entity.ItemKindProduct:
		if item.ProductID == "" {
			return newValidationError(CodeMissingRequiredField, "product_id", "la línea de catálogo requiere un producto")
		}
		if item.DiscountPercent.IsNegative() || item.DiscountPercent.GreaterThan(hundred) {
			return newValidationError(CodeInvalidDiscountRange, "discount_percent", "el descuento debe estar entre 0 y 100")
		}
	case entity.ItemKindCustom:
		if item.CustomDescription == "" {
			return newValidationError(CodeMissingRequiredField, "custom_description", "la línea libre requiere una descripción")
		}
	default:
		return newValidationError(CodeMissingRequiredField, "kind", "tipo de línea desconocido")
	}
	return nil
}

// ValidateDocument aplica la validación de confirmación (submit): documento
// con al menos una línea, cliente, fecha y tipo de cambio positivo. Un
// documento sin líneas se rechaza siempre, sin importar la cabecera.
func ValidateDocument(doc *entity.Document) error {
	if len(doc.Items) == 0 {
		return newValidationError(CodeEmptyItemList, "items", "el documento no tiene líneas")
	}
	if doc.ClientID == "" {
		return newValidationError(CodeMissingRequiredField, "client_id", "el cliente es requerido")
	}
	if doc.Date.IsZero() {
		return newValidationError(CodeMissingRequiredField, "date", "la fecha es requerida")
	}
	if !doc.ExchangeRate.IsPositive() {
		return newValidationError(CodeMissingRequiredField, "exchange_rate", "el tipo de cambio debe ser mayor a cero")
	}
	return checkDerivedTotals(doc)
}

// checkDerivedTotals verifica que los totales de la cabecera coincidan con lo
// que deriva el motor. Un documento bien formado nunca falla acá: es una
// aserción defensiva contra datos malformados aguas arriba, no un camino de
// error normal.
func checkDerivedTotals(doc *entity.Document) error {
	want := ComputeDocumentTotals(doc.Items, doc.TaxPercent, doc.ExtraAmount, doc.ExchangeRate)
	if !doc.Subtotal.Equal(want.Subtotal) ||
		!doc.TaxAmount.Equal(want.TaxAmount) ||
		!doc.TotalForeign.Equal(want.TotalForeign) {
		return newValidationError(CodeInvalidDerivedTotal, "totals", "los totales derivados no son consistentes")
	}
	if doc.TotalLocal.Valid != want.TotalLocal.Valid {
		return newValidationError(CodeInvalidDerivedTotal, "total_local", "los totales derivados no son consistentes")
	}
	if doc.TotalLocal.Valid && !doc.TotalLocal.Decimal.Equal(want.TotalLocal.Decimal) {
		return newValidationError(CodeInvalidDerivedTotal, "total_local", "los totales derivados no son consistentes")
	}
	return nil
}

// IsValidationError devuelve el *ValidationError si err lo es o lo envuelve.
func IsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
