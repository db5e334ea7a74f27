package sales

import (
	"context"
	"fmt"

	"github.com/tu-usuario/gestion-pyme/internal/domain"
	"github.com/tu-usuario/gestion-pyme/internal/domain/repository"
)

// PDFUseCase genera el PDF de un presupuesto o una venta.
type PDFUseCase struct {
	docRepo    repository.DocumentRepository
	clientRepo repository.ClientRepository
	generator  DocumentPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	docRepo repository.DocumentRepository,
	clientRepo repository.ClientRepository,
	generator DocumentPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{docRepo: docRepo, clientRepo: clientRepo, generator: generator}
}

// DownloadDocumentPDF carga el documento con su cliente y genera el PDF.
// Devuelve los bytes y un nombre de archivo del estilo "presupuesto-0042.pdf".
func (uc *PDFUseCase) DownloadDocumentPDF(ctx context.Context, kind, id string) ([]byte, string, error) {
	doc, err := uc.docRepo.GetByID(kind, id)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener documento: %w", err)
	}
	if doc == nil {
		return nil, "", domain.ErrNotFound
	}
	client, err := uc.clientRepo.GetByID(doc.ClientID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}

	pdfBytes, err := uc.generator.GenerateDocumentPDF(ctx, doc, client)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar documento: %w", err)
	}
	filename := fmt.Sprintf("%s-%04d.pdf", doc.Kind, doc.Number)
	return pdfBytes, filename, nil
}
