package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/remitos-api/internal/application/dto"
	"github.com/jhoicas/remitos-api/internal/domain"
	"github.com/jhoicas/remitos-api/internal/domain/entity"
	"github.com/jhoicas/remitos-api/internal/domain/repository"
	"github.com/jhoicas/remitos-api/pkg/logger"
)

// StatusSeeder siembra el catálogo de estados por defecto de una empresa recién creada.
// Lo implementa workflow.StatusUseCase.
type StatusSeeder interface {
	SeedDefaults(ctx context.Context, companyID string) error
}

// CompanyUseCase aplica reglas de negocio para empresas (casos de uso).
type CompanyUseCase struct {
	repo   repository.CompanyRepository
	seeder StatusSeeder
	log    *logger.Logger
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
// seeder puede ser nil (la empresa se crea sin estados).
func NewCompanyUseCase(repo repository.CompanyRepository, seeder StatusSeeder, log *logger.Logger) *CompanyUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CompanyUseCase{repo: repo, seeder: seeder, log: log.Component("company")}
}

// Create crea una nueva empresa y siembra sus estados por defecto.
// Devuelve domain.ErrDuplicate si el nombre ya existe. Un fallo de la siembra no revierte la
// empresa: se registra y la respuesta informa statuses_seeded=false.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      name,
		Status:    entity.CompanyActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}

	resp := entityToCompanyResponse(company)
	if uc.seeder != nil {
		seeded := true
		if err := uc.seeder.SeedDefaults(ctx, company.ID); err != nil {
			seeded = false
			uc.log.Error().Err(err).Str("company_id", company.ID).Msg("no se pudieron sembrar los estados por defecto")
		}
		resp.StatusesSeeded = &seeded
	}
	return resp, nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return entityToCompanyResponse(company), nil
}

// List lista empresas con paginación.
func (uc *CompanyUseCase) List(ctx context.Context, limit, offset int) (*dto.CompanyListResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// IsActive informa si la empresa existe y no está suspendida.
func (uc *CompanyUseCase) IsActive(ctx context.Context, companyID string) (bool, error) {
	company, err := uc.repo.GetByID(ctx, companyID)
	if err != nil {
		return false, err
	}
	return company != nil && company.Status == entity.CompanyActive, nil
}
