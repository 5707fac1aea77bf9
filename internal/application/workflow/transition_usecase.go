package workflow

import (
	"context"
	"time"

	"github.com/jhoicas/remitos-api/internal/application/dto"
	"github.com/jhoicas/remitos-api/internal/domain"
	"github.com/jhoicas/remitos-api/internal/domain/entity"
	"github.com/jhoicas/remitos-api/internal/domain/repository"
	"github.com/jhoicas/remitos-api/internal/domain/tenant"
	"github.com/jhoicas/remitos-api/pkg/logger"
)

// TransitionUseCase único camino legal para cambiar el estado de un remito.
//
// La máquina de estados la define cada empresa con sus datos: no hay grafo de transiciones,
// cualquier estado activo puede seguir a cualquier otro. Lo único que se exige es que el
// destino exista, esté activo y sea de la misma empresa que el remito.
type TransitionUseCase struct {
	remitos  repository.RemitoRepository
	statuses repository.StatusRepository
	policy   tenant.Policy
	log      *logger.Logger
	now      func() time.Time
}

// NewTransitionUseCase construye el motor de transiciones.
func NewTransitionUseCase(
	remitos repository.RemitoRepository,
	statuses repository.StatusRepository,
	policy tenant.Policy,
	log *logger.Logger,
) *TransitionUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &TransitionUseCase{
		remitos:  remitos,
		statuses: statuses,
		policy:   policy,
		log:      log.Component("transition_engine"),
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *TransitionUseCase) WithClock(now func() time.Time) *TransitionUseCase {
	uc.now = now
	return uc
}

// Transition mueve el remito al estado targetStatusID.
//
//  1. Carga el remito; inexistente o de otra empresa → ErrNotFound.
//  2. La empresa sale del remito cargado, nunca de un parámetro de quien llama.
//  3. Destino inexistente, inactivo o de otra empresa → ErrInvalidStatus.
//  4. Un único UPDATE atómico de status_id y status_at.
func (uc *TransitionUseCase) Transition(ctx context.Context, caller tenant.Caller, remitoID, targetStatusID string) (*dto.RemitoStatusResponse, error) {
	if _, err := uc.policy.ResolveScope(caller, ""); err != nil {
		return nil, err
	}

	remito, err := uc.remitos.GetByID(ctx, remitoID)
	if err != nil {
		return nil, err
	}
	if remito == nil || !uc.policy.CanAccess(caller, remito.CompanyID) {
		return nil, domain.ErrNotFound
	}

	target, err := uc.statuses.GetByID(ctx, targetStatusID)
	if err != nil {
		return nil, err
	}
	if !isValidTarget(target, remito.CompanyID) {
		return nil, domain.ErrInvalidStatus
	}

	at := uc.now()
	if err := uc.remitos.UpdateStatus(ctx, remito.ID, remito.CompanyID, target.ID, at); err != nil {
		return nil, err
	}

	uc.log.Debug().
		Str("remito_id", remito.ID).
		Str("company_id", remito.CompanyID).
		Str("from", remito.StatusID).
		Str("to", target.ID).
		Msg("transición de estado aplicada")

	return &dto.RemitoStatusResponse{
		Success: true,
		Remito: dto.RemitoStatusDTO{
			ID:       remito.ID,
			Number:   remito.Number,
			Status:   target.ID,
			StatusAt: at,
		},
	}, nil
}

// isValidTarget un estado puede asignarse a un remito de companyID si existe, está activo
// y pertenece a esa misma empresa.
func isValidTarget(st *entity.Status, companyID string) bool {
	return st != nil && st.IsActive && st.CompanyID == companyID
}
