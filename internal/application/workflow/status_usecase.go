// Package workflow contiene el catálogo de estados por empresa y el motor de transiciones
// de remitos. Toda validación de existencia, pertenencia al tenant, unicidad y uso vive acá,
// no en los handlers.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/remitos-api/internal/application/dto"
	"github.com/jhoicas/remitos-api/internal/domain"
	"github.com/jhoicas/remitos-api/internal/domain/entity"
	"github.com/jhoicas/remitos-api/internal/domain/repository"
	"github.com/jhoicas/remitos-api/internal/domain/tenant"
	"github.com/jhoicas/remitos-api/pkg/logger"
)

// StatusUseCase registro de estados de remito por empresa.
type StatusUseCase struct {
	statuses  repository.StatusRepository
	remitos   repository.RemitoRepository
	companies repository.CompanyRepository
	policy    tenant.Policy
	template  []entity.StatusSpec
	log       *logger.Logger
	now       func() time.Time
}

// NewStatusUseCase construye el registro. template es la plantilla que se siembra en cada
// empresa nueva; nil = entity.DefaultStatusTemplate().
func NewStatusUseCase(
	statuses repository.StatusRepository,
	remitos repository.RemitoRepository,
	companies repository.CompanyRepository,
	policy tenant.Policy,
	template []entity.StatusSpec,
	log *logger.Logger,
) *StatusUseCase {
	if template == nil {
		template = entity.DefaultStatusTemplate()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &StatusUseCase{
		statuses:  statuses,
		remitos:   remitos,
		companies: companies,
		policy:    policy,
		template:  template,
		log:       log.Component("status_registry"),
		now:       time.Now,
	}
}

// SeedDefaults inserta la plantilla en una empresa recién creada. Es idempotente: un estado
// de la plantilla que ya existe se omite. Sigue con el resto aunque una inserción falle y
// devuelve todos los errores juntos.
func (uc *StatusUseCase) SeedDefaults(ctx context.Context, companyID string) error {
	_, err := uc.seed(ctx, companyID)
	return err
}

// ReseedDefaults acción compensatoria para empresas que quedaron sin sembrar: crea los estados
// de la plantilla que falten y devuelve solo los creados. No toca estados existentes.
func (uc *StatusUseCase) ReseedDefaults(ctx context.Context, caller tenant.Caller, companyID string) ([]dto.StatusResponse, error) {
	scope, err := uc.policy.ResolveWriteScope(caller, companyID)
	if err != nil {
		return nil, err
	}
	if err := uc.requireCompany(ctx, scope.CompanyID); err != nil {
		return nil, err
	}
	created, err := uc.seed(ctx, scope.CompanyID)
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("company_id", scope.CompanyID).
		Int("created", len(created)).
		Msg("estados por defecto re-sembrados")
	return toStatusResponses(created), nil
}

func (uc *StatusUseCase) seed(ctx context.Context, companyID string) ([]*entity.Status, error) {
	if companyID == "" {
		return nil, domain.ErrTenantRequired
	}
	var (
		created []*entity.Status
		errs    []error
	)
	for _, spec := range uc.template {
		existing, err := uc.statuses.GetByCompanyAndName(ctx, companyID, spec.Name)
		if err != nil {
			errs = append(errs, fmt.Errorf("seed %q: %w", spec.Name, err))
			continue
		}
		if existing != nil {
			continue
		}
		now := uc.now()
		st := &entity.Status{
			ID:          uuid.New().String(),
			CompanyID:   companyID,
			Name:        spec.Name,
			Description: spec.Description,
			Color:       spec.Color,
			Icon:        spec.Icon,
			IsActive:    true,
			IsDefault:   true,
			SortOrder:   spec.SortOrder,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := uc.statuses.Create(ctx, st); err != nil {
			if errors.Is(err, domain.ErrDuplicateName) {
				continue // sembrado en paralelo
			}
			errs = append(errs, fmt.Errorf("seed %q: %w", spec.Name, err))
			continue
		}
		created = append(created, st)
	}
	return created, errors.Join(errs...)
}

// List devuelve los estados del alcance ordenados por (sort_order, name).
// El operador privilegiado sin empresa obtiene los de todas las empresas.
func (uc *StatusUseCase) List(ctx context.Context, caller tenant.Caller, companyID string, includeInactive bool) ([]dto.StatusResponse, error) {
	scope, err := uc.policy.ResolveScope(caller, companyID)
	if err != nil {
		return nil, err
	}
	list, err := uc.statuses.List(ctx, scope.CompanyID, includeInactive)
	if err != nil {
		return nil, fmt.Errorf("listar estados: %w", err)
	}
	return toStatusResponses(list), nil
}

// Create agrega un estado a la empresa. Nunca queda marcado como default.
// Sin sort_order explícito se ubica al final: max+1, o 100 si la empresa no tiene estados.
func (uc *StatusUseCase) Create(ctx context.Context, caller tenant.Caller, in dto.CreateStatusRequest) (*dto.StatusResponse, error) {
	scope, err := uc.policy.ResolveWriteScope(caller, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if err := uc.requireCompany(ctx, scope.CompanyID); err != nil {
		return nil, err
	}
	name := normalizeName(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	existing, err := uc.statuses.GetByCompanyAndName(ctx, scope.CompanyID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateName
	}

	sortOrder := entity.FirstCustomSortOrder
	if in.SortOrder != nil {
		sortOrder = *in.SortOrder
	} else {
		maxOrder, found, err := uc.statuses.MaxSortOrder(ctx, scope.CompanyID)
		if err != nil {
			return nil, err
		}
		if found {
			sortOrder = maxOrder + 1
		}
	}

	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}
	color := in.Color
	if color == "" {
		color = entity.DefaultStatusColor
	}
	icon := in.Icon
	if icon == "" {
		icon = entity.DefaultStatusIcon
	}

	now := uc.now()
	st := &entity.Status{
		ID:          uuid.New().String(),
		CompanyID:   scope.CompanyID,
		Name:        name,
		Description: in.Description,
		Color:       color,
		Icon:        icon,
		IsActive:    isActive,
		IsDefault:   false,
		SortOrder:   sortOrder,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.statuses.Create(ctx, st); err != nil {
		return nil, err
	}
	return toStatusResponse(st), nil
}

// Update edita un estado de la empresa de quien llama. Cualquier estado es editable,
// incluidos los default y su desactivación.
func (uc *StatusUseCase) Update(ctx context.Context, caller tenant.Caller, statusID string, in dto.UpdateStatusRequest) (*dto.StatusResponse, error) {
	st, err := uc.loadOwned(ctx, caller, statusID)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name := normalizeName(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name no puede ser vacío", domain.ErrInvalidInput)
		}
		if name != st.Name {
			other, err := uc.statuses.GetByCompanyAndName(ctx, st.CompanyID, name)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != st.ID {
				return nil, domain.ErrDuplicateName
			}
			st.Name = name
		}
	}
	if in.Description != nil {
		st.Description = *in.Description
	}
	if in.Color != nil {
		st.Color = *in.Color
	}
	if in.Icon != nil {
		st.Icon = *in.Icon
	}
	if in.IsActive != nil {
		st.IsActive = *in.IsActive
	}
	if in.SortOrder != nil {
		st.SortOrder = *in.SortOrder
	}
	st.UpdatedAt = uc.now()

	if err := uc.statuses.Update(ctx, st); err != nil {
		return nil, err
	}
	return toStatusResponse(st), nil
}

// Delete elimina un estado que ningún remito tiene asignado. Los default también se pueden
// borrar una vez que no están en uso.
func (uc *StatusUseCase) Delete(ctx context.Context, caller tenant.Caller, statusID string) error {
	st, err := uc.loadOwned(ctx, caller, statusID)
	if err != nil {
		return err
	}
	inUse, err := uc.remitos.CountByStatus(ctx, st.ID)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return domain.ErrInUse
	}
	return uc.statuses.Delete(ctx, st.ID)
}

// requireCompany la empresa destino de una escritura tiene que existir. Un superadmin puede
// nombrar cualquier company_id; uno inexistente es ErrNotFound, no estados huérfanos.
func (uc *StatusUseCase) requireCompany(ctx context.Context, companyID string) error {
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	return nil
}

// loadOwned carga el estado y verifica que pertenezca al alcance de quien llama.
// Inexistente y ajeno devuelven el mismo ErrNotFound para no filtrar existencia entre tenants.
func (uc *StatusUseCase) loadOwned(ctx context.Context, caller tenant.Caller, statusID string) (*entity.Status, error) {
	if _, err := uc.policy.ResolveScope(caller, ""); err != nil {
		return nil, err
	}
	st, err := uc.statuses.GetByID(ctx, statusID)
	if err != nil {
		return nil, err
	}
	if st == nil || !uc.policy.CanAccess(caller, st.CompanyID) {
		return nil, domain.ErrNotFound
	}
	return st, nil
}
