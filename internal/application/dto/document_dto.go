package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemRequest línea enviada por el formulario. Kind discrimina:
// "product" requiere product_id (code/description se toman del catálogo);
// "custom" requiere custom_description. El servidor recalcula siempre el
// total de línea; un line_total enviado por el cliente se ignora.
type LineItemRequest struct {
	Kind              string          `json:"kind"`
	ProductID         string          `json:"product_id,omitempty"`
	CustomDescription string          `json:"custom_description,omitempty"`
	Quantity          decimal.Decimal `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	DiscountPercent   decimal.Decimal `json:"discount_percent"`
}

// CreateDocumentRequest body para POST /api/quotes y POST /api/sales.
// extra_amount solo aplica a presupuestos; en ventas se ignora.
type CreateDocumentRequest struct {
	ClientID     string            `json:"client_id"`
	Date         string            `json:"date"` // YYYY-MM-DD
	TaxPercent   *decimal.Decimal  `json:"tax_percent,omitempty"`
	ExtraAmount  *decimal.Decimal  `json:"extra_amount,omitempty"`
	ExchangeRate decimal.Decimal   `json:"exchange_rate"`
	Status       string            `json:"status,omitempty"`
	Items        []LineItemRequest `json:"items"`
}

// LineItemResponse línea en respuestas.
type LineItemResponse struct {
	ID                string          `json:"id"`
	Kind              string          `json:"kind"`
	ProductID         string          `json:"product_id,omitempty"`
	Code              string          `json:"code,omitempty"`
	Description       string          `json:"description,omitempty"`
	CustomDescription string          `json:"custom_description,omitempty"`
	Quantity          decimal.Decimal `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	DiscountPercent   decimal.Decimal `json:"discount_percent"`
	LineTotal         decimal.Decimal `json:"line_total"`
}

// DocumentResponse presupuesto o venta con sus líneas y totales derivados.
// total_local es null cuando el tipo de cambio no permite calcularlo: "sin
// calcular" se transmite explícito, nunca como cero.
type DocumentResponse struct {
	ID            string              `json:"id"`
	Kind          string              `json:"kind"`
	Number        int64               `json:"number"`
	ClientID      string              `json:"client_id"`
	ClientName    string              `json:"client_name,omitempty"`
	Date          string              `json:"date"`
	TaxPercent    *decimal.Decimal    `json:"tax_percent"`
	ExtraAmount   *decimal.Decimal    `json:"extra_amount,omitempty"`
	ExchangeRate  decimal.Decimal     `json:"exchange_rate"`
	Status        string              `json:"status,omitempty"`
	PaymentStatus string              `json:"payment_status,omitempty"`
	Items         []LineItemResponse  `json:"items"`
	Subtotal      decimal.Decimal     `json:"subtotal"`
	TaxAmount     decimal.Decimal     `json:"tax_amount"`
	TotalForeign  decimal.Decimal     `json:"total_usd"`
	TotalLocal    decimal.NullDecimal `json:"total_ars"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// DocumentListResponse lista paginada de documentos.
type DocumentListResponse struct {
	Items []DocumentResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// UpdateStatusRequest body para PATCH /api/quotes/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
