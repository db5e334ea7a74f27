package sales

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/gestion-pyme/internal/application/dto"
	"github.com/tu-usuario/gestion-pyme/internal/domain"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/pricing"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// buildDocument arma el documento desde el request pasando cada línea y la
// confirmación por el motor de precios. Los totales enviados por el cliente
// nunca se usan: el servidor deriva todo de nuevo, así el documento guardado
// y el que mostró el formulario no pueden diferir.
func buildDocument(kind string, in dto.CreateDocumentRequest, productRepo repository.ProductRepository) (*entity.Document, error) {
	editor := pricing.NewEditor(kind)
	editor.SetClient(in.ClientID)

	if in.Date != "" {
		date, err := time.Parse(dateLayout, in.Date)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		editor.SetDate(date)
	}
	if in.TaxPercent != nil {
		editor.SetTaxPercent(decimal.NullDecimal{Decimal: *in.TaxPercent, Valid: true})
	}
	if kind == entity.DocumentPresupuesto && in.ExtraAmount != nil {
		editor.SetExtraAmount(decimal.NullDecimal{Decimal: *in.ExtraAmount, Valid: true})
	}
	editor.SetExchangeRate(in.ExchangeRate)

	for _, reqItem := range in.Items {
		item := entity.LineItem{
			Kind:            reqItem.Kind,
			Quantity:        reqItem.Quantity,
			UnitPrice:       reqItem.UnitPrice,
			DiscountPercent: reqItem.DiscountPercent,
		}
		switch reqItem.Kind {
		case entity.ItemKindProduct:
			product, err := productRepo.GetByID(reqItem.ProductID)
			if err != nil {
				return nil, err
			}
			if product == nil {
				return nil, domain.ErrNotFound
			}
			item.ProductID = product.ID
			item.Code = product.Code
			item.Description = product.Description
			// Precio en cero: se toma el del catálogo.
			if item.UnitPrice.IsZero() {
				item.UnitPrice = product.UnitPrice
			}
		case entity.ItemKindCustom:
			item.CustomDescription = reqItem.CustomDescription
		}
		if err := editor.AddItem(item); err != nil {
			return nil, err
		}
	}

	if err := editor.Submit(); err != nil {
		return nil, err
	}

	doc := editor.Document()
	switch kind {
	case entity.DocumentPresupuesto:
		doc.Status = in.Status
		if doc.Status == "" {
			doc.Status = entity.QuoteStatusPendiente
		}
	case entity.DocumentVenta:
		doc.PaymentStatus = in.Status
		if doc.PaymentStatus == "" {
			doc.PaymentStatus = entity.PaymentStatusPendiente
		}
	}
	return &doc, nil
}

func toDocumentResponse(doc *entity.Document, clientName string) *dto.DocumentResponse {
	resp := &dto.DocumentResponse{
		ID:            doc.ID,
		Kind:          doc.Kind,
		Number:        doc.Number,
		ClientID:      doc.ClientID,
		ClientName:    clientName,
		Date:          doc.Date.Format(dateLayout),
		ExchangeRate:  doc.ExchangeRate,
		Status:        doc.Status,
		PaymentStatus: doc.PaymentStatus,
		Items:         make([]dto.LineItemResponse, 0, len(doc.Items)),
		Subtotal:      doc.Subtotal,
		TaxAmount:     doc.TaxAmount,
		TotalForeign:  doc.TotalForeign,
		TotalLocal:    doc.TotalLocal,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}
	if doc.TaxPercent.Valid {
		tax := doc.TaxPercent.Decimal
		resp.TaxPercent = &tax
	}
	if doc.ExtraAmount.Valid {
		extra := doc.ExtraAmount.Decimal
		resp.ExtraAmount = &extra
	}
	for _, item := range doc.Items {
		resp.Items = append(resp.Items, dto.LineItemResponse{
			ID:                item.ID,
			Kind:              item.Kind,
			ProductID:         item.ProductID,
			Code:              item.Code,
			Description:       item.Description,
			CustomDescription: item.CustomDescription,
			Quantity:          item.Quantity,
			UnitPrice:         item.UnitPrice,
			DiscountPercent:   item.DiscountPercent,
			LineTotal:         item.LineTotal,
		})
	}
	return resp
}
