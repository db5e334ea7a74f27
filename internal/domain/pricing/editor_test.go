package pricing_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/pricing"
)

func productItem(qty, price, discount string) entity.LineItem {
	return entity.LineItem{
		Kind:            entity.ItemKindProduct,
		ProductID:       "p-1",
		Code:            "A-100",
		Description:     "caño de 3/4",
		Quantity:        dec(qty),
		UnitPrice:       dec(price),
		DiscountPercent: dec(discount),
	}
}

// Descuento manual sobrevive hasta el próximo cambio de cantidad, que lo pisa
// con el valor de la tabla de tramos.
func TestEditor_DescuentoManualSePisaAlCambiarCantidad(t *testing.T) {
	e := pricing.NewEditor(entity.DocumentPresupuesto)
	require.NoError(t, e.AddItem(productItem("1", "2.00", "0")))

	// Descuento manual 50 con cantidad 1 (la tabla diría 0).
	e.SetItemDiscount(0, dec("50"))
	doc := e.Document()
	assert.Equal(t, "50", doc.Items[0].DiscountPercent.String())
	assert.Equal(t, "1.00", doc.Items[0].LineTotal.StringFixed(2))

	// Cambiar la cantidad a 10: la tabla dice 5 y pisa el 50 manual.
	e.SetItemQuantity(0, dec("10"))
	doc = e.Document()
	assert.Equal(t, "5", doc.Items[0].DiscountPercent.String())
	assert.Equal(t, "19.00", doc.Items[0].LineTotal.StringFixed(2))
}

// Editar solo el precio no re-resuelve el descuento.
func TestEditor_CambiarPrecioNoTocaDescuento(t *testing.T) {
	e := pricing.NewEditor(entity.DocumentPresupuesto)
	require.NoError(t, e.AddItem(productItem("1", "2.00", "0")))
	e.SetItemDiscount(0, dec("50"))

	e.SetItemUnitPrice(0, dec("4.00"))

	doc := e.Document()
	assert.Equal(t, "50", doc.Items[0].DiscountPercent.String())
	assert.Equal(t, "2.00", doc.Items[0].LineTotal.StringFixed(2))
}

// Alta de línea: política estricta. Descuento 150 se rechaza con código
// estable y la lista queda intacta (el recálculo en vivo, en cambio, ajusta).
func TestEditor_AltaConDescuentoFueraDeRangoSeRechaza(t *testing.T) {
	e := pricing.NewEditor(entity.DocumentPresupuesto)

	err := e.AddItem(productItem("10", "2.00", "150"))

	require.Error(t, err)
	ve, ok := pricing.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, pricing.CodeInvalidDiscountRange, ve.Code)
	assert.Empty(t, e.Document().Items, "la línea rechazada no debe agregarse")

	// En vivo (línea ya agregada) el mismo 150 se ajusta en silencio.
	require.NoError(t, e.AddItem(productItem("10", "2.00", "0")))
	e.SetItemDiscount(0, dec("150"))
	doc := e.Document()
	assert.Equal(t, "0.00", doc.Items[0].LineTotal.StringFixed(2))
	assert.False(t, doc.Items[0].LineTotal.IsNegative())
}

func TestEditor_AltaInvalida(t *testing.T) {
	e := pricing.NewEditor(entity.DocumentVenta)

	err := e.AddItem(productItem("0", "2.00", "0"))
	ve, ok := pricing.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, pricing.CodeInvalidQuantity, ve.Code)

	err = e.AddItem(productItem("1", "-2.00", "0"))
	ve, ok = pricing.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, pricing.CodeInvalidUnitPrice, ve.Code)

	err = e.AddItem(entity.LineItem{Kind: entity.ItemKindCustom, Quantity: dec("1"), UnitPrice: dec("1")})
	ve, ok = pricing.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, pricing.CodeMissingRequiredField, ve.Code)
}

// Todo cambio de líneas o cabecera recalcula la cascada completa en el mismo
// paso: el snapshot nunca muestra totales desactualizados.
func TestEditor_RecalculaEnCadaEvento(t *testing.T) {
	e := pricing.NewEditor(entity.DocumentPresupuesto)
	require.NoError(t, e.AddItem(productItem("10", "10.00", "5")))

	e.SetTaxPercent(nullDec("21"))
	e.SetExtraAmount(nullDec("5"))
	e.SetExchangeRate(dec("1000"))

	doc := e.Document()
	assert.Equal(t, "95.00", doc.Subtotal.StringFixed(2))
	assert.Equal(t, "19.95", doc.TaxAmount.StringFixed(2))
	assert.Equal(t, "119.95", doc.TotalForeign.StringFixed(2))
	require.True(t, doc.TotalLocal.Valid)
	assert.Equal(t, "119950.00", doc.TotalLocal.Decimal.StringFixed(2))

	// Quitar la línea deja el documento en cero, no con totales viejos.
	e.RemoveItem(0)
	doc = e.Document()
	assert.Equal(t, "0.00", doc.Subtotal.StringFixed(2))
	assert.Equal(t, "5.00", doc.TotalForeign.StringFixed(2), "el adicional sigue presente")
}

// Tipo de cambio inválido deja el total en pesos sin calcular.
func TestEditor_TipoDeCambioInvalidoDejaTotalLocalSinCalcular(t *testing.T) {
	e := pricing.NewEditor(entity.DocumentVenta)
	require.NoError(t, e.AddItem(productItem("1", "100.00", "0")))

	e.SetExchangeRate(decimal.Zero)

	doc := e.Document()
	assert.False(t, doc.TotalLocal.Valid)
}

func TestEditor_MaquinaDeEstados(t *testing.T) {
	e := pricing.NewEditor(entity.DocumentVenta)
	assert.Equal(t, pricing.StateEmpty, e.State())

	e.SetClient("c-1")
	assert.Equal(t, pricing.StateItemsPending, e.State())

	e.SetDate(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	e.SetExchangeRate(dec("1000"))
	assert.Equal(t, pricing.StateItemsPending, e.State(), "sin líneas todavía no es confirmable")

	require.NoError(t, e.AddItem(productItem("10", "2.00", "5")))
	assert.Equal(t, pricing.StateValid, e.State())

	require.NoError(t, e.Submit())
	assert.Equal(t, pricing.StateSaving, e.State())

	// Guardado fallido: vuelve a edición con el borrador intacto.
	saveErr := errors.New("sin conexión")
	e.SaveFailed(saveErr)
	assert.Equal(t, pricing.StateSaveFailed, e.State())
	assert.Equal(t, saveErr, e.SaveError())
	assert.Len(t, e.Document().Items, 1, "el borrador se conserva para reintentar")

	// Cualquier edición limpia el error y permite reintentar.
	e.SetItemQuantity(0, dec("10"))
	assert.Equal(t, pricing.StateValid, e.State())
	assert.NoError(t, e.SaveError())

	require.NoError(t, e.Submit())
	e.SaveSucceeded()
	assert.Equal(t, pricing.StateSaved, e.State())
}

// Confirmar sin líneas falla siempre, sin importar la cabecera.
func TestEditor_SubmitSinLineas(t *testing.T) {
	e := pricing.NewEditor(entity.DocumentVenta)
	e.SetClient("c-1")
	e.SetDate(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	e.SetExchangeRate(dec("1000"))

	err := e.Submit()

	require.Error(t, err)
	ve, ok := pricing.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, pricing.CodeEmptyItemList, ve.Code)
	assert.NotEqual(t, pricing.StateSaving, e.State())
}

// Confirmar sin cabecera completa reporta el campo faltante.
func TestEditor_SubmitSinCamposRequeridos(t *testing.T) {
	e := pricing.NewEditor(entity.DocumentVenta)
	require.NoError(t, e.AddItem(productItem("1", "2.00", "0")))

	err := e.Submit()

	require.Error(t, err)
	ve, ok := pricing.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, pricing.CodeMissingRequiredField, ve.Code)
	assert.Equal(t, "client_id", ve.Field)
}

// El editor sobre un documento cargado recalcula al abrir y no comparte las
// líneas con el original.
func TestEditor_CargaDocumentoExistente(t *testing.T) {
	quote := quoteForImport()
	e := pricing.NewEditorFor(*quote)

	e.SetItemQuantity(0, dec("50"))

	assert.Equal(t, "10", quote.Items[0].Quantity.String(), "el original no debe mutar")
	doc := e.Document()
	assert.Equal(t, "12", doc.Items[0].DiscountPercent.String(), "tramo ≥50")
}
