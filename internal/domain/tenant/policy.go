// Package tenant resuelve, en un único lugar, a qué empresa(s) puede acceder quien llama.
// Registro de estados, motor de transiciones y dashboard consumen la misma Policy.
package tenant

import (
	"strings"

	"github.com/jhoicas/remitos-api/internal/domain"
	"github.com/jhoicas/remitos-api/internal/domain/entity"
)

// Caller identidad ya autenticada de quien llama (extraída del token).
type Caller struct {
	UserID    string
	Role      string
	CompanyID string // empresa de origen; vacío para el operador privilegiado sin empresa
}

// Authenticated informa si la identidad trae un usuario.
func (c Caller) Authenticated() bool { return c.UserID != "" }

// Scope alcance efectivo de una operación. CompanyID vacío significa "todas las empresas"
// y solo lo produce la Policy para roles privilegiados.
type Scope struct {
	CompanyID string
}

// AllTenants informa si el alcance abarca todas las empresas.
func (s Scope) AllTenants() bool { return s.CompanyID == "" }

// ForCompany alcance fijado a una empresa.
func ForCompany(companyID string) Scope { return Scope{CompanyID: companyID} }

// Policy regla de autorización {rol, empresa de origen} → alcance permitido.
type Policy interface {
	// ResolveScope para lecturas: el privilegiado puede quedar sin empresa (todas).
	ResolveScope(caller Caller, requestedCompanyID string) (Scope, error)
	// ResolveWriteScope para escrituras que crean datos: siempre exige una empresa concreta.
	ResolveWriteScope(caller Caller, requestedCompanyID string) (Scope, error)
	// CanAccess informa si caller puede operar sobre datos de companyID.
	CanAccess(caller Caller, companyID string) bool
}

// RolePolicy implementación basada en el rol del token.
type RolePolicy struct {
	privileged map[string]struct{}
}

var _ Policy = (*RolePolicy)(nil)

// NewRolePolicy construye la política. Sin roles explícitos, solo superadmin es privilegiado.
func NewRolePolicy(privilegedRoles ...string) *RolePolicy {
	if len(privilegedRoles) == 0 {
		privilegedRoles = []string{entity.RoleSuperAdmin}
	}
	p := &RolePolicy{privileged: make(map[string]struct{}, len(privilegedRoles))}
	for _, r := range privilegedRoles {
		p.privileged[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}
	return p
}

// IsPrivileged informa si el rol puede operar sin quedar fijado a una empresa.
func (p *RolePolicy) IsPrivileged(role string) bool {
	_, ok := p.privileged[strings.ToLower(role)]
	return ok
}

// ResolveScope aplica la regla de alcance para lecturas.
//   - Sin identidad → ErrUnauthorized.
//   - Privilegiado → la empresa pedida, o todas si no pidió ninguna.
//   - Resto → su empresa de origen; pedir otra → ErrForbidden; sin empresa → ErrUnauthorized.
func (p *RolePolicy) ResolveScope(caller Caller, requestedCompanyID string) (Scope, error) {
	if !caller.Authenticated() {
		return Scope{}, domain.ErrUnauthorized
	}
	requested := strings.TrimSpace(requestedCompanyID)
	if p.IsPrivileged(caller.Role) {
		return ForCompany(requested), nil
	}
	if caller.CompanyID == "" {
		return Scope{}, domain.ErrUnauthorized
	}
	if requested != "" && requested != caller.CompanyID {
		return Scope{}, domain.ErrForbidden
	}
	return ForCompany(caller.CompanyID), nil
}

// ResolveWriteScope igual que ResolveScope pero un alcance "todas las empresas" no es válido.
func (p *RolePolicy) ResolveWriteScope(caller Caller, requestedCompanyID string) (Scope, error) {
	scope, err := p.ResolveScope(caller, requestedCompanyID)
	if err != nil {
		return Scope{}, err
	}
	if scope.AllTenants() {
		return Scope{}, domain.ErrTenantRequired
	}
	return scope, nil
}

// CanAccess se evalúa contra la empresa de la entidad ya cargada, nunca contra un parámetro.
func (p *RolePolicy) CanAccess(caller Caller, companyID string) bool {
	if !caller.Authenticated() {
		return false
	}
	if p.IsPrivileged(caller.Role) {
		return true
	}
	return caller.CompanyID != "" && caller.CompanyID == companyID
}
