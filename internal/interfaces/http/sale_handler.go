package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/gestion-pyme/internal/application/dto"
	"github.com/tu-usuario/gestion-pyme/internal/application/sales"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
)

// SaleHandler maneja las peticiones HTTP de ventas (protegido).
type SaleHandler struct {
	uc    *sales.SaleUseCase
	pdfUC *sales.PDFUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.SaleUseCase, pdfUC *sales.PDFUseCase) *SaleHandler {
	return &SaleHandler{uc: uc, pdfUC: pdfUC}
}

// Create POST /api/sales
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sale, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return documentError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// CreateFromQuote POST /api/sales/from-quote/:id
//
// Confirma el borrador que devolvió el import del presupuesto: persiste la
// venta preservando los totales de línea acordados, descuenta stock y marca
// el presupuesto como importado, todo en una transacción.
func (h *SaleHandler) CreateFromQuote(c *fiber.Ctx) error {
	sale, err := h.uc.CreateFromQuote(c.Context(), c.Params("id"))
	if err != nil {
		return documentError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// GetByID GET /api/sales/:id
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	sale, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return documentError(c, err)
	}
	if sale == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "venta no encontrada"})
	}
	return c.JSON(sale)
}

// List GET /api/sales?limit=20&offset=0
func (h *SaleHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return documentError(c, err)
	}
	return c.JSON(list)
}

// Update PUT /api/sales/:id
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sale, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return documentError(c, err)
	}
	return c.JSON(sale)
}

// Delete DELETE /api/sales/:id
func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return documentError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadPDF GET /api/sales/:id/pdf
func (h *SaleHandler) DownloadPDF(c *fiber.Ctx) error {
	return downloadDocumentPDF(c, h.pdfUC, entity.DocumentVenta)
}

// downloadDocumentPDF genera el PDF del documento y lo devuelve como adjunto.
func downloadDocumentPDF(c *fiber.Ctx, pdfUC *sales.PDFUseCase, kind string) error {
	pdfBytes, filename, err := pdfUC.DownloadDocumentPDF(c.Context(), kind, c.Params("id"))
	if err != nil {
		return documentError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
