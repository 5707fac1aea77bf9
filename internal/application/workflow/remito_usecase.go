package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/remitos-api/internal/application/dto"
	"github.com/jhoicas/remitos-api/internal/domain"
	"github.com/jhoicas/remitos-api/internal/domain/entity"
	"github.com/jhoicas/remitos-api/internal/domain/repository"
	"github.com/jhoicas/remitos-api/internal/domain/tenant"
)

// RemitoUseCase alta y lectura de remitos. El estado inicial se valida con la misma regla
// que una transición; los cambios posteriores pasan solo por TransitionUseCase.
type RemitoUseCase struct {
	remitos  repository.RemitoRepository
	statuses repository.StatusRepository
	clients  repository.ClientRepository
	products repository.ProductRepository
	policy   tenant.Policy
	now      func() time.Time
}

// NewRemitoUseCase construye el caso de uso.
func NewRemitoUseCase(
	remitos repository.RemitoRepository,
	statuses repository.StatusRepository,
	clients repository.ClientRepository,
	products repository.ProductRepository,
	policy tenant.Policy,
) *RemitoUseCase {
	return &RemitoUseCase{
		remitos:  remitos,
		statuses: statuses,
		clients:  clients,
		products: products,
		policy:   policy,
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj (tests y cargas históricas).
func (uc *RemitoUseCase) WithClock(now func() time.Time) *RemitoUseCase {
	uc.now = now
	return uc
}

// Create da de alta un remito con número secuencial por empresa.
// Sin estado explícito toma el primer estado activo por (sort_order, name), normalmente "Pendiente".
func (uc *RemitoUseCase) Create(ctx context.Context, caller tenant.Caller, in dto.CreateRemitoRequest) (*dto.RemitoResponse, error) {
	scope, err := uc.policy.ResolveWriteScope(caller, in.CompanyID)
	if err != nil {
		return nil, err
	}
	companyID := scope.CompanyID

	client, err := uc.clients.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil || client.CompanyID != companyID {
		return nil, fmt.Errorf("%w: cliente inexistente", domain.ErrInvalidInput)
	}

	status, err := uc.initialStatus(ctx, companyID, in.StatusID)
	if err != nil {
		return nil, err
	}

	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: el remito necesita al menos un ítem", domain.ErrInvalidInput)
	}

	now := uc.now()
	remito := &entity.Remito{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		ClientID:  client.ID,
		StatusID:  status.ID,
		StatusAt:  now,
		Notes:     in.Notes,
		Total:     decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for i, line := range in.Items {
		product, err := uc.products.GetByID(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil || product.CompanyID != companyID {
			return nil, fmt.Errorf("%w: ítem %d: producto inexistente", domain.ErrInvalidInput, i+1)
		}
		if !line.Quantity.IsPositive() {
			return nil, fmt.Errorf("%w: ítem %d: la cantidad debe ser mayor a cero", domain.ErrInvalidInput, i+1)
		}
		price := product.Price
		if line.UnitPrice != nil {
			price = *line.UnitPrice
		}
		if price.IsNegative() {
			return nil, fmt.Errorf("%w: ítem %d: precio negativo", domain.ErrInvalidInput, i+1)
		}
		item := entity.NewRemitoItem(uuid.New().String(), remito.ID, product.ID, line.Quantity, price)
		remito.Items = append(remito.Items, item)
		remito.Total = remito.Total.Add(item.LineTotal)
	}

	if err := uc.remitos.Create(ctx, remito); err != nil {
		return nil, err
	}
	return toRemitoResponse(remito), nil
}

// GetByID devuelve el remito si pertenece al alcance de quien llama.
func (uc *RemitoUseCase) GetByID(ctx context.Context, caller tenant.Caller, id string) (*dto.RemitoResponse, error) {
	if _, err := uc.policy.ResolveScope(caller, ""); err != nil {
		return nil, err
	}
	remito, err := uc.remitos.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if remito == nil || !uc.policy.CanAccess(caller, remito.CompanyID) {
		return nil, domain.ErrNotFound
	}
	return toRemitoResponse(remito), nil
}

func (uc *RemitoUseCase) initialStatus(ctx context.Context, companyID, statusID string) (*entity.Status, error) {
	if statusID != "" {
		st, err := uc.statuses.GetByID(ctx, statusID)
		if err != nil {
			return nil, err
		}
		if !isValidTarget(st, companyID) {
			return nil, domain.ErrInvalidStatus
		}
		return st, nil
	}
	active, err := uc.statuses.List(ctx, companyID, false)
	if err != nil {
		return nil, err
	}
	if len(active) == 0 {
		return nil, fmt.Errorf("%w: la empresa no tiene estados activos", domain.ErrInvalidStatus)
	}
	return active[0], nil
}
