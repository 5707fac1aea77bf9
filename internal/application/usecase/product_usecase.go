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

// ProductUseCase alta y listado de productos. El stock se carga como valor inicial;
// no hay movimientos de inventario.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	policy     tenant.Policy
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository, policy tenant.Policy) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories, policy: policy}
}

// Create crea un nuevo producto en la empresa de quien llama.
func (uc *ProductUseCase) Create(ctx context.Context, caller tenant.Caller, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	scope, err := uc.policy.ResolveWriteScope(caller, companyID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: el precio no puede ser negativo", domain.ErrInvalidInput)
	}
	if in.CategoryID != "" {
		cat, err := uc.categories.GetByID(ctx, in.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil || cat.CompanyID != scope.CompanyID {
			return nil, fmt.Errorf("%w: categoría inexistente", domain.ErrInvalidInput)
		}
	}
	now := time.Now()
	product := &entity.Product{
		ID:         uuid.New().String(),
		CompanyID:  scope.CompanyID,
		CategoryID: in.CategoryID,
		Name:       name,
		Price:      in.Price,
		Stock:      in.Stock,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos por empresa con paginación.
func (uc *ProductUseCase) List(ctx context.Context, caller tenant.Caller, companyID string, limit, offset int) (*dto.ProductListResponse, error) {
	scope, err := uc.policy.ResolveWriteScope(caller, companyID)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByCompany(ctx, scope.CompanyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:         p.ID,
		CompanyID:  p.CompanyID,
		CategoryID: p.CategoryID,
		Name:       p.Name,
		Price:      p.Price,
		Stock:      p.Stock,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
