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

// SaleUseCase casos de uso de ventas. Crear, actualizar o borrar una venta
// ajusta el stock de los productos involucrados en la misma transacción que
// el documento: nunca queda una venta guardada con stock sin descontar.
type SaleUseCase struct {
	txRunner    SaleTxRunner
	docRepo     repository.DocumentRepository
	clientRepo  repository.ClientRepository
	productRepo repository.ProductRepository
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner SaleTxRunner,
	docRepo repository.DocumentRepository,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
) *SaleUseCase {
	return &SaleUseCase{txRunner: txRunner, docRepo: docRepo, clientRepo: clientRepo, productRepo: productRepo}
}

// Create valida y persiste una venta nueva descontando stock. Si algún
// producto no tiene stock suficiente se hace rollback completo y se devuelve
// domain.ErrInsufficientStock.
func (uc *SaleUseCase) Create(ctx context.Context, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	client, err := uc.clientRepo.GetByID(in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}

	doc, err := buildDocument(entity.DocumentVenta, in, uc.productRepo)
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

	err = uc.txRunner.RunSale(ctx, func(docRepo repository.DocumentRepository, productRepo repository.ProductRepository) error {
		for _, item := range doc.Items {
			if item.Kind != entity.ItemKindProduct {
				continue
			}
			if err := productRepo.AdjustStock(item.ProductID, item.Quantity.Neg()); err != nil {
				return err
			}
		}
		return docRepo.Create(doc)
	})
	if err != nil {
		return nil, err
	}
	return toDocumentResponse(doc, client.Name), nil
}

// CreateFromQuote convierte un presupuesto en una venta persistida. A
// diferencia de Create, las líneas no se rederivan: los totales acordados en
// el presupuesto se preservan tal cual (pricing.QuoteToSaleDraft), por lo que
// volver a aplicar el descuento sobre el precio neto no puede achicarlos. En
// la misma transacción se descuenta stock y el presupuesto pasa a
// "importado"; un presupuesto ya importado devuelve ErrConflict.
func (uc *SaleUseCase) CreateFromQuote(ctx context.Context, quoteID string) (*dto.DocumentResponse, error) {
	quote, err := uc.docRepo.GetByID(entity.DocumentPresupuesto, quoteID)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrNotFound
	}
	if quote.Status == entity.QuoteStatusImportado {
		return nil, domain.ErrConflict
	}

	draft := pricing.QuoteToSaleDraft(quote)
	now := time.Now()
	draft.Date = now
	if err := pricing.ValidateDocument(draft); err != nil {
		return nil, err
	}
	draft.ID = uuid.New().String()
	draft.CreatedAt = now
	draft.UpdatedAt = now
	for i := range draft.Items {
		draft.Items[i].ID = uuid.New().String()
		draft.Items[i].DocumentID = draft.ID
		draft.Items[i].CreatedAt = now
	}

	err = uc.txRunner.RunSale(ctx, func(docRepo repository.DocumentRepository, productRepo repository.ProductRepository) error {
		for _, item := range draft.Items {
			if item.Kind != entity.ItemKindProduct {
				continue
			}
			if err := productRepo.AdjustStock(item.ProductID, item.Quantity.Neg()); err != nil {
				return err
			}
		}
		if err := docRepo.Create(draft); err != nil {
			return err
		}
		return docRepo.UpdateStatus(entity.DocumentPresupuesto, quoteID, entity.QuoteStatusImportado)
	})
	if err != nil {
		return nil, err
	}
	return toDocumentResponse(draft, uc.clientName(draft.ClientID)), nil
}

// GetByID obtiene una venta con sus líneas.
func (uc *SaleUseCase) GetByID(ctx context.Context, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.docRepo.GetByID(entity.DocumentVenta, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return toDocumentResponse(doc, uc.clientName(doc.ClientID)), nil
}

// List lista ventas con paginación.
func (uc *SaleUseCase) List(ctx context.Context, limit, offset int) (*dto.DocumentListResponse, error) {
	list, err := uc.docRepo.List(entity.DocumentVenta, limit, offset)
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

// Update reemplaza una venta existente. El stock de las líneas anteriores se
// devuelve y el de las nuevas se descuenta, todo en una transacción.
func (uc *SaleUseCase) Update(ctx context.Context, id string, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	existing, err := uc.docRepo.GetByID(entity.DocumentVenta, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}

	doc, err := buildDocument(entity.DocumentVenta, in, uc.productRepo)
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

	err = uc.txRunner.RunSale(ctx, func(docRepo repository.DocumentRepository, productRepo repository.ProductRepository) error {
		for _, item := range existing.Items {
			if item.Kind != entity.ItemKindProduct {
				continue
			}
			if err := productRepo.AdjustStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		for _, item := range doc.Items {
			if item.Kind != entity.ItemKindProduct {
				continue
			}
			if err := productRepo.AdjustStock(item.ProductID, item.Quantity.Neg()); err != nil {
				return err
			}
		}
		return docRepo.Update(doc)
	})
	if err != nil {
		return nil, err
	}
	return toDocumentResponse(doc, uc.clientName(doc.ClientID)), nil
}

// Delete elimina una venta devolviendo el stock de sus líneas de catálogo.
func (uc *SaleUseCase) Delete(ctx context.Context, id string) error {
	existing, err := uc.docRepo.GetByID(entity.DocumentVenta, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	return uc.txRunner.RunSale(ctx, func(docRepo repository.DocumentRepository, productRepo repository.ProductRepository) error {
		for _, item := range existing.Items {
			if item.Kind != entity.ItemKindProduct {
				continue
			}
			if err := productRepo.AdjustStock(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		return docRepo.Delete(entity.DocumentVenta, existing.ID)
	})
}

func (uc *SaleUseCase) clientName(clientID string) string {
	client, _ := uc.clientRepo.GetByID(clientID)
	if client == nil {
		return ""
	}
	return client.Name
}
