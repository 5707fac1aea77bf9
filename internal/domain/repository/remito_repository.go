package repository

import (
	"context"
	"time"

	"github.com/jhoicas/remitos-api/internal/domain/entity"
)

// RemitoRepository puerto de persistencia de remitos y sus líneas.
type RemitoRepository interface {
	// Create asigna Number = max(number)+1 de la empresa y persiste remito e ítems atómicamente.
	Create(ctx context.Context, remito *entity.Remito) error
	// GetByID devuelve el remito con sus ítems, o (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Remito, error)
	// UpdateStatus es la única escritura de status_id. La actualización se condiciona a que el
	// remito pertenezca a companyID y a que statusID siga siendo un estado activo de esa empresa;
	// si la condición no se cumple devuelve domain.ErrInvalidStatus sin modificar nada.
	UpdateStatus(ctx context.Context, remitoID, companyID, statusID string, at time.Time) error
	// CountByStatus cuenta remitos cuyo status_id es exactamente statusID.
	CountByStatus(ctx context.Context, statusID string) (int, error)
}
