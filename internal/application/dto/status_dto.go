package dto

import "time"

// CreateStatusRequest entrada de POST /api/statuses. CompanyID solo lo usa el operador privilegiado.
type CreateStatusRequest struct {
	CompanyID   string `json:"company_id" validate:"omitempty,max=64"`
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"max=500"`
	Color       string `json:"color" validate:"omitempty,max=32"`
	Icon        string `json:"icon" validate:"omitempty,max=64"`
	IsActive    *bool  `json:"is_active"`
	SortOrder   *int   `json:"sort_order" validate:"omitempty,min=0"`
}

// UpdateStatusRequest entrada de PUT /api/statuses/:id (campos opcionales).
type UpdateStatusRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Color       *string `json:"color" validate:"omitempty,max=32"`
	Icon        *string `json:"icon" validate:"omitempty,max=64"`
	IsActive    *bool   `json:"is_active"`
	SortOrder   *int    `json:"sort_order" validate:"omitempty,min=0"`
}

// StatusResponse salida de un estado.
type StatusResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon"`
	IsActive    bool      `json:"is_active"`
	IsDefault   bool      `json:"is_default"`
	SortOrder   int       `json:"sort_order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
