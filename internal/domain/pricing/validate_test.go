package pricing_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/pricing"
)

func validDocument() *entity.Document {
	doc := &entity.Document{
		Kind:         entity.DocumentVenta,
		ClientID:     "c-1",
		Date:         time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		ExchangeRate: dec("1000"),
		TaxPercent:   nullDec("21"),
		Items: []entity.LineItem{
			{
				Kind:              entity.ItemKindCustom,
				CustomDescription: "servicio",
				Quantity:          dec("1"),
				UnitPrice:         dec("100.00"),
				LineTotal:         dec("100.00"),
			},
		},
	}
	pricing.ApplyTotals(doc)
	return doc
}

func TestValidateDocument_OK(t *testing.T) {
	assert.NoError(t, pricing.ValidateDocument(validDocument()))
}

func TestValidateDocument_CamposRequeridos(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*entity.Document)
		code   string
		field  string
	}{
		{"sin cliente", func(d *entity.Document) { d.ClientID = "" }, pricing.CodeMissingRequiredField, "client_id"},
		{"sin fecha", func(d *entity.Document) { d.Date = time.Time{} }, pricing.CodeMissingRequiredField, "date"},
		{"sin líneas", func(d *entity.Document) { d.Items = nil; pricing.ApplyTotals(d) }, pricing.CodeEmptyItemList, "items"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := validDocument()
			tc.mutate(doc)
			err := pricing.ValidateDocument(doc)
			require.Error(t, err)
			ve, ok := pricing.IsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, tc.code, ve.Code)
			assert.Equal(t, tc.field, ve.Field)
		})
	}
}

// Aserción defensiva: totales de cabecera que no coinciden con lo que deriva
// el motor señalan datos malformados aguas arriba. Un documento que pasó por
// ApplyTotals nunca cae acá.
func TestValidateDocument_TotalesInconsistentes(t *testing.T) {
	doc := validDocument()
	doc.TotalForeign = dec("999.99")

	err := pricing.ValidateDocument(doc)

	require.Error(t, err)
	ve, ok := pricing.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, pricing.CodeInvalidDerivedTotal, ve.Code)
}

func TestValidationError_Mensaje(t *testing.T) {
	err := pricing.ValidateDocument(&entity.Document{Kind: entity.DocumentVenta})
	require.Error(t, err)
	assert.Contains(t, err.Error(), pricing.CodeEmptyItemList)
}
