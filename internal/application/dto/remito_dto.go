package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRemitoItemRequest línea de un remito nuevo. UnitPrice nil = precio actual del producto.
type CreateRemitoItemRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// CreateRemitoRequest entrada de POST /api/remitos. StatusID vacío = primer estado activo.
type CreateRemitoRequest struct {
	CompanyID string                    `json:"company_id" validate:"omitempty,max=64"`
	ClientID  string                    `json:"client_id" validate:"required"`
	StatusID  string                    `json:"status" validate:"omitempty,max=64"`
	Notes     string                    `json:"notes" validate:"max=2000"`
	Items     []CreateRemitoItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateRemitoStatusRequest entrada de PUT /api/remitos/:id/status.
type UpdateRemitoStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// RemitoStatusDTO proyección mínima devuelta tras una transición.
type RemitoStatusDTO struct {
	ID       string    `json:"id"`
	Number   int64     `json:"number"`
	Status   string    `json:"status"`
	StatusAt time.Time `json:"status_at"`
}

// RemitoStatusResponse cuerpo de respuesta de PUT /api/remitos/:id/status.
type RemitoStatusResponse struct {
	Success bool            `json:"success"`
	Remito  RemitoStatusDTO `json:"remito"`
}

// RemitoItemResponse línea de un remito.
type RemitoItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// RemitoResponse salida completa de un remito.
type RemitoResponse struct {
	ID        string               `json:"id"`
	CompanyID string               `json:"company_id"`
	Number    int64                `json:"number"`
	ClientID  string               `json:"client_id"`
	Status    string               `json:"status"`
	StatusAt  time.Time            `json:"status_at"`
	Notes     string               `json:"notes"`
	Total     decimal.Decimal      `json:"total"`
	Items     []RemitoItemResponse `json:"items"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}
