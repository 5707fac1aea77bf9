package entity

import "time"

// User usuario de una empresa. La emisión de credenciales vive fuera de este servicio;
// acá solo se cuenta para el dashboard.
type User struct {
	ID        string
	CompanyID string
	Email     string
	Name      string
	Role      string
	CreatedAt time.Time
}
