package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
)

// State es el estado de un documento en edición.
type State string

const (
	StateEmpty        State = "empty"         // documento nuevo, sin líneas ni cabecera
	StateItemsPending State = "items_pending" // en edición, todavía no confirmable
	StateValid        State = "valid"         // cabecera completa, ≥1 línea, tipo de cambio > 0
	StateSaving       State = "saving"        // confirmación en curso (guardado externo)
	StateSaved        State = "saved"
	StateSaveFailed   State = "save_failed"
)

// Editor mantiene un documento en edición y aplica el recálculo en cascada
// después de cada evento discreto de edición. Cada evento deja un snapshot
// consistente: los totales nunca quedan desactualizados respecto de las
// líneas o la cabecera. No hay timers ni transiciones en segundo plano; el
// estado cambia solo por ediciones y por el resultado del guardado.
//
// El editor es el dueño exclusivo de su documento mientras el formulario está
// abierto; no está pensado para uso concurrente.
type Editor struct {
	doc     entity.Document
	saving  State // StateSaving/StateSaved/StateSaveFailed; "" si es editable
	saveErr error
}

// NewEditor crea un editor para un documento nuevo del tipo dado.
func NewEditor(kind string) *Editor {
	return &Editor{doc: entity.Document{Kind: kind}}
}

// NewEditorFor crea un editor sobre un documento ya cargado (edición). Los
// totales se recalculan al cargar, por si la cabecera venía desactualizada.
func NewEditorFor(doc entity.Document) *Editor {
	doc.Items = append([]entity.LineItem(nil), doc.Items...)
	ApplyTotals(&doc)
	return &Editor{doc: doc}
}

// Document devuelve un snapshot del documento en edición.
func (e *Editor) Document() entity.Document {
	doc := e.doc
	doc.Items = append([]entity.LineItem(nil), e.doc.Items...)
	return doc
}

// State devuelve el estado actual del documento en edición.
func (e *Editor) State() State {
	if e.saving != "" {
		return e.saving
	}
	if len(e.doc.Items) == 0 && e.doc.ClientID == "" && e.doc.Date.IsZero() {
		return StateEmpty
	}
	if len(e.doc.Items) > 0 && e.doc.ClientID != "" && !e.doc.Date.IsZero() && e.doc.ExchangeRate.IsPositive() {
		return StateValid
	}
	return StateItemsPending
}

// SaveError devuelve el error del último guardado fallido, si lo hay.
func (e *Editor) SaveError() error { return e.saveErr }

// ── Eventos de cabecera ──────────────────────────────────────────────────────

// SetClient asigna el cliente del documento.
func (e *Editor) SetClient(clientID string) {
	e.editable()
	e.doc.ClientID = clientID
}

// SetDate asigna la fecha del documento.
func (e *Editor) SetDate(date time.Time) {
	e.editable()
	e.doc.Date = date
}

// SetTaxPercent asigna el IVA (%); inválido = sin impuesto.
func (e *Editor) SetTaxPercent(taxPercent decimal.NullDecimal) {
	e.editable()
	e.doc.TaxPercent = taxPercent
	ApplyTotals(&e.doc)
}

// SetExtraAmount asigna el adicional fijo (solo presupuestos).
func (e *Editor) SetExtraAmount(extra decimal.NullDecimal) {
	e.editable()
	e.doc.ExtraAmount = extra
	ApplyTotals(&e.doc)
}

// SetExchangeRate asigna el tipo de cambio. Un valor no positivo deja
// TotalLocal sin calcular, nunca en cero.
func (e *Editor) SetExchangeRate(rate decimal.Decimal) {
	e.editable()
	e.doc.ExchangeRate = rate
	ApplyTotals(&e.doc)
}

// ── Eventos de líneas ────────────────────────────────────────────────────────

// AddItem valida la línea con la política estricta del alta y, si pasa, la
// agrega con su total calculado. Si no pasa, la lista queda intacta.
func (e *Editor) AddItem(item entity.LineItem) error {
	e.editable()
	if err := ValidateNewItem(item); err != nil {
		return err
	}
	item.LineTotal = ItemTotal(item)
	item.Position = len(e.doc.Items)
	e.doc.Items = append(e.doc.Items, item)
	ApplyTotals(&e.doc)
	return nil
}

// RemoveItem quita la línea en la posición dada; no afecta al resto.
func (e *Editor) RemoveItem(index int) {
	e.editable()
	if index < 0 || index >= len(e.doc.Items) {
		return
	}
	e.doc.Items = append(e.doc.Items[:index], e.doc.Items[index+1:]...)
	for i := range e.doc.Items {
		e.doc.Items[i].Position = i
	}
	ApplyTotals(&e.doc)
}

// SetItemQuantity cambia la cantidad de una línea y recalcula su total. En
// líneas de catálogo el descuento vuelve al valor de la tabla de tramos: un
// descuento manual previo se pisa en silencio (contrato documentado en
// ResolveDefaultDiscount).
func (e *Editor) SetItemQuantity(index int, quantity decimal.Decimal) {
	e.editable()
	if index < 0 || index >= len(e.doc.Items) {
		return
	}
	item := &e.doc.Items[index]
	item.Quantity = quantity
	if item.Kind == entity.ItemKindProduct {
		item.DiscountPercent = ResolveDefaultDiscount(quantity)
	}
	item.LineTotal = ItemTotal(*item)
	ApplyTotals(&e.doc)
}

// SetItemUnitPrice cambia el precio unitario de una línea y recalcula su
// total. No toca el descuento.
func (e *Editor) SetItemUnitPrice(index int, unitPrice decimal.Decimal) {
	e.editable()
	if index < 0 || index >= len(e.doc.Items) {
		return
	}
	item := &e.doc.Items[index]
	item.UnitPrice = unitPrice
	item.LineTotal = ItemTotal(*item)
	ApplyTotals(&e.doc)
}

// SetItemDiscount carga un descuento manual en una línea de catálogo. En el
// recálculo en vivo rige la política permisiva: el valor se ajusta a [0, 100]
// con ClampDiscount al calcular el total, sin rechazar. El valor manual dura
// hasta el próximo cambio de cantidad. En líneas libres no hace nada.
func (e *Editor) SetItemDiscount(index int, discountPercent decimal.Decimal) {
	e.editable()
	if index < 0 || index >= len(e.doc.Items) {
		return
	}
	item := &e.doc.Items[index]
	if item.Kind != entity.ItemKindProduct {
		return
	}
	item.DiscountPercent = discountPercent
	item.LineTotal = ItemTotal(*item)
	ApplyTotals(&e.doc)
}

// ── Confirmación ─────────────────────────────────────────────────────────────

// Submit valida el documento completo y, si pasa, entra en StateSaving. El
// guardado en sí es externo; el que llama debe reportar el resultado con
// SaveSucceeded o SaveFailed. Si la validación falla, el documento queda
// editable y sin cambios.
func (e *Editor) Submit() error {
	e.editable()
	if err := ValidateDocument(&e.doc); err != nil {
		return err
	}
	e.saving = StateSaving
	return nil
}

// SaveSucceeded marca el guardado como exitoso (estado terminal).
func (e *Editor) SaveSucceeded() {
	if e.saving == StateSaving {
		e.saving = StateSaved
	}
}

// SaveFailed marca el intento como fallido conservando el borrador intacto
// para reintentar. El error queda disponible en SaveError y el estado en
// StateSaveFailed hasta la próxima edición, que devuelve el documento a
// Valid/ItemsPending.
func (e *Editor) SaveFailed(err error) {
	if e.saving == StateSaving {
		e.saving = StateSaveFailed
		e.saveErr = err
	}
}

// editable limpia el resultado de un guardado fallido ante una nueva edición:
// cada intento de guardado es terminal por intento.
func (e *Editor) editable() {
	if e.saving == StateSaveFailed {
		e.saving = ""
		e.saveErr = nil
	}
}
