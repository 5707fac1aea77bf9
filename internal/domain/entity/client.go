package entity

import "time"

// Client destinatario de los remitos de una empresa.
type Client struct {
	ID        string
	CompanyID string
	Name      string
	TaxID     string // CUIT/NIT, opcional
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
