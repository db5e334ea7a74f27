package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un artículo del catálogo. El precio unitario está en USD;
// la conversión a pesos se hace a nivel de documento con el tipo de cambio.
type Product struct {
	ID          string
	Code        string // código único del catálogo
	Description string
	UnitPrice   decimal.Decimal
	Stock       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
