package sales

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/gestion-pyme/internal/application/dto"
	"github.com/tu-usuario/gestion-pyme/internal/domain"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
	"github.com/tu-usuario/gestion-pyme/internal/domain/pricing"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
)

// QuoteUseCase casos de uso de presupuestos: CRUD, cambio de estado y
// conversión a borrador de venta. Todos los montos pasan por el motor de
// precios; los presupuestos no tocan stock.
type QuoteUseCase struct {
	docRepo     repository.DocumentRepository
	clientRepo  repository.ClientRepository
	productRepo repository.ProductRepository
}

// NewQuoteUseCase construye el caso de uso.
func NewQuoteUseCase(
	docRepo repository.DocumentRepository,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
) *QuoteUseCase {
	return &QuoteUseCase{docRepo: docRepo, clientRepo: clientRepo, productRepo: productRepo}
}

// Create valida y persiste un presupuesto nuevo.
func (uc *QuoteUseCase) Create(ctx context.Context, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	doc, err := buildDocument(entity.DocumentPresupuesto, in, uc.productRepo)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	doc.ID = uuid.New().String()
	doc.CreatedAt = now
	doc.UpdatedAt = now
	for i := range doc.Items {
		doc.Items[i].ID = uuid.New().String()
		doc.Items[i].DocumentID = doc.ID
		doc.Items[i].CreatedAt = now
	}
	if err := uc.docRepo.Create(doc); err != nil {
		return nil, err
	}
	return toDocumentResponse(doc, client.Name), nil
}

// GetByID obtiene un presupuesto con sus líneas.
func (uc *QuoteUseCase) GetByID(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.docRepo.GetByID(entity.DocumentPresupuesto, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return toDocumentResponse(doc, uc.clientName(doc.ClientID)), nil
}

// List lista presupuestos con paginación.
func (uc *QuoteUseCase) List(ctx context.Context, limit, offset int) (*dto.DocumentListResponse, error) {
	list, err := uc.docRepo.List(entity.DocumentPresupuesto, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DocumentResponse, 0, len(list))
	for _, doc := range list {
		items = append(items, *toDocumentResponse(doc, ""))
	}
	return &dto.DocumentListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update reemplaza cabecera y líneas de un presupuesto existente, derivando
// los totales de nuevo. El número y las fechas de alta se conservan.
func (uc *QuoteUseCase) Update(ctx context.Context, id string, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	existing, err := uc.docRepo.GetByID(entity.DocumentPresupuesto, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}

	doc, err := buildDocument(entity.DocumentPresupuesto, in, uc.productRepo)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	doc.ID = existing.ID
	doc.Number = existing.Number
	doc.CreatedAt = existing.CreatedAt
	doc.UpdatedAt = now
	for i := range doc.Items {
		doc.Items[i].ID = uuid.New().String()
		doc.Items[i].DocumentID = doc.ID
		doc.Items[i].CreatedAt = now
	}
	if err := uc.docRepo.Update(doc); err != nil {
		return nil, err
	}
	return toDocumentResponse(doc, uc.clientName(doc.ClientID)), nil
}

// UpdateStatus cambia el estado de un presupuesto sin tocar montos.
func (uc *QuoteUseCase) UpdateStatus(ctx context.Context, id, status string) error {
	switch status {
	case entity.QuoteStatusPendiente, entity.QuoteStatusAprobado,
		entity.QuoteStatusRechazado, entity.QuoteStatusImportado:
	default:
		return domain.ErrInvalidInput
	}
	doc, err := uc.docRepo.GetByID(entity.DocumentPresupuesto, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return domain.ErrNotFound
	}
	return uc.docRepo.UpdateStatus(entity.DocumentPresupuesto, id, status)
}

// Delete elimina un presupuesto con sus líneas.
func (uc *QuoteUseCase) Delete(ctx context.Context, id string) error {
	doc, err := uc.docRepo.GetByID(entity.DocumentPresupuesto, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return domain.ErrNotFound
	}
	return uc.docRepo.Delete(entity.DocumentPresupuesto, id)
}

// ImportToSale convierte un presupuesto en un borrador de venta, preservando
// los totales de línea ya acordados (pricing.QuoteToSaleDraft). El borrador
// no se persiste: es la vista previa; la confirmación va por
// SaleUseCase.CreateFromQuote, que persiste y descuenta stock.
func (uc *QuoteUseCase) ImportToSale(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	quote, err := uc.docRepo.GetByID(entity.DocumentPresupuesto, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrNotFound
	}
	draft := pricing.QuoteToSaleDraft(quote)
	draft.Date = time.Now()
	return toDocumentResponse(draft, uc.clientName(draft.ClientID)), nil
}

func (uc *QuoteUseCase) clientName(clientID string) string {
	client, _ := uc.clientRepo.GetByID(clientID)
	if client == nil {
		return ""
	}
	return client.Name
}
