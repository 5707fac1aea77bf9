package entity

import "time"

// Category agrupa productos de una empresa.
type Category struct {
	ID        string
	CompanyID string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
