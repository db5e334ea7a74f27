package repository

import (
	"github.com/shopspring/decimal"

	"github.com/tu-usuario/gestion-pyme/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	// AdjustStock suma delta (negativo para descontar) al stock del producto.
	AdjustStock(productID string, delta decimal.Decimal) error
	Delete(id string) error
}
