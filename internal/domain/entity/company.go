package entity

import "time"

// Company representa una organización/tenant del sistema. Todo dato de negocio se aísla por CompanyID.
type Company struct {
	ID        string
	Name      string // único a nivel global
	Status    string // active, suspended
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Estados de una empresa.
const (
	CompanyActive    = "active"
	CompanySuspended = "suspended"
)
