package sales

import (
	"context"

	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
)

// SaleTxRunner ejecuta el guardado de una venta y el ajuste de stock dentro
// de una misma transacción: si el stock no alcanza, no queda venta a medias.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		docRepo repository.DocumentRepository,
		productRepo repository.ProductRepository,
	) error) error
}

// DocumentPDFGenerator genera la representación en PDF de un presupuesto o
// una venta. Recibe los montos ya derivados por el motor de precios y solo
// los formatea; nunca los recalcula ni los vuelve a redondear.
type DocumentPDFGenerator interface {
	GenerateDocumentPDF(ctx context.Context, doc *entity.Document, client *entity.Client) ([]byte, error)
}
