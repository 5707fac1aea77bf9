package entity

// Roles válidos en el token. RoleSuperAdmin es el operador privilegiado que puede actuar
// sobre todas las empresas; el resto queda fijado a su empresa de origen.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleUsuario    = "usuario"
)
