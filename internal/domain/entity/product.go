package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto vendible de una empresa. Stock <= 0 se considera "sin stock" en el dashboard.
type Product struct {
	ID         string
	CompanyID  string
	CategoryID string // vacío si no tiene categoría
	Name       string
	Price      decimal.Decimal
	Stock      decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
