package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías válidas para Expense.
const (
	ExpenseCategoryProveedores = "proveedores"
	ExpenseCategoryServicios   = "servicios"
	ExpenseCategoryImpuestos   = "impuestos"
	ExpenseCategoryOtros       = "otros"
)

// Expense representa un gasto del negocio (en pesos).
type Expense struct {
	ID          string
	Date        time.Time
	Description string
	Category    string // ver constantes ExpenseCategory*
	Amount      decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
