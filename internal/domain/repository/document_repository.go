package repository

import "github.com/tu-usuario/gestion-pyme/internal/domain/entity"

// DocumentRepository define el puerto de persistencia para presupuestos y
// ventas (cabecera + líneas). Los montos viajan ya redondeados por el motor
// de precios; la capa de persistencia no vuelve a redondear.
type DocumentRepository interface {
	// Create persiste cabecera y líneas; asigna el número consecutivo del
	// tipo de documento.
	Create(doc *entity.Document) error
	GetByID(kind, id string) (*entity.Document, error)
	List(kind string, limit, offset int) ([]*entity.Document, error)
	// Update reemplaza cabecera y líneas completas del documento.
	Update(doc *entity.Document) error
	// UpdateStatus cambia solo el estado (presupuestos) sin tocar montos.
	UpdateStatus(kind, id, status string) error
	Delete(kind, id string) error
}
