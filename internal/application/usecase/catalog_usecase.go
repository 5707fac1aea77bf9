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
	"github.com/jhoicas/remitos-api/internal/domain/tenant"
)

// CategoryUseCase alta y listado de categorías de producto.
type CategoryUseCase struct {
	repo   repository.CategoryRepository
	policy tenant.Policy
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, policy tenant.Policy) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, policy: policy}
}

// Create crea una categoría en la empresa de quien llama.
func (uc *CategoryUseCase) Create(ctx context.Context, caller tenant.Caller, companyID string, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	scope, err := uc.policy.ResolveWriteScope(caller, companyID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	now := time.Now()
	cat := &entity.Category{
		ID:        uuid.New().String(),
		CompanyID: scope.CompanyID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}
	return toCategoryResponse(cat), nil
}

// List lista categorías de la empresa.
func (uc *CategoryUseCase) List(ctx context.Context, caller tenant.Caller, companyID string, limit, offset int) (*dto.CategoryListResponse, error) {
	scope, err := uc.policy.ResolveWriteScope(caller, companyID)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByCompany(ctx, scope.CompanyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return &dto.CategoryListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

// ClientUseCase alta y listado de clientes.
type ClientUseCase struct {
	repo   repository.ClientRepository
	policy tenant.Policy
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository, policy tenant.Policy) *ClientUseCase {
	return &ClientUseCase{repo: repo, policy: policy}
}

// Create crea un cliente en la empresa de quien llama.
func (uc *ClientUseCase) Create(ctx context.Context, caller tenant.Caller, companyID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	scope, err := uc.policy.ResolveWriteScope(caller, companyID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	now := time.Now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		CompanyID: scope.CompanyID,
		Name:      name,
		TaxID:     strings.TrimSpace(in.TaxID),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// List lista clientes de la empresa.
func (uc *ClientUseCase) List(ctx context.Context, caller tenant.Caller, companyID string, limit, offset int) (*dto.ClientListResponse, error) {
	scope, err := uc.policy.ResolveWriteScope(caller, companyID)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByCompany(ctx, scope.CompanyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toClientResponse(c))
	}
	return &dto.ClientListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: c.ID, CompanyID: c.CompanyID, Name: c.Name, CreatedAt: c.CreatedAt}
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		TaxID:     c.TaxID,
		Email:     c.Email,
		Phone:     c.Phone,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
