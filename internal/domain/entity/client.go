package entity

import "time"

// Client representa un cliente de la empresa.
type Client struct {
	ID        string
	Name      string
	TaxID     string // CUIT o DNI
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
