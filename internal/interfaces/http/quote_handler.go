package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/gestion-pyme/internal/application/dto"
	"github.com/tu-usuario/gestion-pyme/internal/application/sales"
	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
)

// QuoteHandler maneja las peticiones HTTP de presupuestos (protegido).
type QuoteHandler struct {
	uc    *sales.QuoteUseCase
	pdfUC *sales.PDFUseCase
}

// NewQuoteHandler construye el handler.
func NewQuoteHandler(uc *sales.QuoteUseCase, pdfUC *sales.PDFUseCase) *QuoteHandler {
	return &QuoteHandler{uc: uc, pdfUC: pdfUC}
}

// Create POST /api/quotes
func (h *QuoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	quote, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return documentError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(quote)
}

// GetByID GET /api/quotes/:id
func (h *QuoteHandler) GetByID(c *fiber.Ctx) error {
	quote, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return documentError(c, err)
	}
	if quote == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "presupuesto no encontrado"})
	}
	return c.JSON(quote)
}

// List GET /api/quotes?limit=20&offset=0
func (h *QuoteHandler) List(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	list, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return documentError(c, err)
	}
	return c.JSON(list)
}

// Update PUT /api/quotes/:id
func (h *QuoteHandler) Update(c *fiber.Ctx) error {
	var in dto.CreateDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	quote, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return documentError(c, err)
	}
	return c.JSON(quote)
}

// UpdateStatus PATCH /api/quotes/:id/status
func (h *QuoteHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in.Status); err != nil {
		return documentError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete DELETE /api/quotes/:id
func (h *QuoteHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return documentError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ImportToSale POST /api/quotes/:id/import
//
// Devuelve el borrador de venta derivado del presupuesto, sin persistirlo: el
// usuario lo revisa y lo confirma con POST /api/sales/from-quote/:id.
func (h *QuoteHandler) ImportToSale(c *fiber.Ctx) error {
	draft, err := h.uc.ImportToSale(c.Context(), c.Params("id"))
	if err != nil {
		return documentError(c, err)
	}
	return c.JSON(draft)
}

// DownloadPDF GET /api/quotes/:id/pdf
func (h *QuoteHandler) DownloadPDF(c *fiber.Ctx) error {
	return downloadDocumentPDF(c, h.pdfUC, entity.DocumentPresupuesto)
}
