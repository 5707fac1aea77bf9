package repository

import (
	"context"

	"github.com/jhoicas/remitos-api/internal/domain/entity"
)

// StatusRepository puerto de persistencia del catálogo de estados por empresa.
// Los Get devuelven (nil, nil) si el estado no existe.
type StatusRepository interface {
	// Create devuelve domain.ErrDuplicateName si (company_id, name) ya existe.
	Create(ctx context.Context, status *entity.Status) error
	GetByID(ctx context.Context, id string) (*entity.Status, error)
	GetByCompanyAndName(ctx context.Context, companyID, name string) (*entity.Status, error)
	// Update persiste todos los campos editables; domain.ErrDuplicateName ante colisión de nombre,
	// domain.ErrNotFound si no afectó filas.
	Update(ctx context.Context, status *entity.Status) error
	Delete(ctx context.Context, id string) error
	// List ordena por sort_order ASC, name ASC. companyID vacío = todas las empresas.
	List(ctx context.Context, companyID string, includeInactive bool) ([]*entity.Status, error)
	// MaxSortOrder devuelve el mayor sort_order de la empresa; found=false si no tiene estados.
	MaxSortOrder(ctx context.Context, companyID string) (max int, found bool, err error)
}
