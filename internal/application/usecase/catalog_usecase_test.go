package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/remitos-api/internal/application/dto"
	"github.com/jhoicas/remitos-api/internal/application/usecase"
	"github.com/jhoicas/remitos-api/internal/domain"
	"github.com/jhoicas/remitos-api/internal/domain/entity"
	"github.com/jhoicas/remitos-api/internal/domain/tenant"
	"github.com/jhoicas/remitos-api/internal/infrastructure/sqlite"
)

func TestCatalogUseCases_TenantPinned(t *testing.T) {
	db := openDB(t)
	policy := tenant.NewRolePolicy()
	categories := usecase.NewCategoryUseCase(sqlite.NewCategoryRepository(db), policy)
	products := usecase.NewProductUseCase(sqlite.NewProductRepository(db), sqlite.NewCategoryRepository(db), policy)
	clients := usecase.NewClientUseCase(sqlite.NewClientRepository(db), policy)
	ctx := context.Background()

	a := tenant.Caller{UserID: "ua", Role: entity.RoleUsuario, CompanyID: "A"}
	b := tenant.Caller{UserID: "ub", Role: entity.RoleAdmin, CompanyID: "B"}

	cat, err := categories.Create(ctx, a, "", dto.CreateCategoryRequest{Name: "Ferretería"})
	require.NoError(t, err)
	assert.Equal(t, "A", cat.CompanyID)

	p, err := products.Create(ctx, a, "", dto.CreateProductRequest{
		Name: "Tornillo", CategoryID: cat.ID, Price: decimal.RequireFromString("1.25"), Stock: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.Equal(t, cat.ID, p.CategoryID)

	_, err = products.Create(ctx, b, "", dto.CreateProductRequest{Name: "Robado", CategoryID: cat.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "categoría de otra empresa")

	_, err = products.Create(ctx, a, "", dto.CreateProductRequest{Name: "Negativo", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = clients.Create(ctx, a, "B", dto.CreateClientRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	cl, err := clients.Create(ctx, a, "", dto.CreateClientRequest{Name: " Ferretería Sur ", Email: "compras@sur.test"})
	require.NoError(t, err)
	assert.Equal(t, "Ferretería Sur", cl.Name)

	list, err := products.List(ctx, a, "", 20, 0)
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)

	list, err = products.List(ctx, b, "", 20, 0)
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	clientList, err := clients.List(ctx, a, "", 20, 0)
	require.NoError(t, err)
	assert.Len(t, clientList.Items, 1)

	catList, err := categories.List(ctx, a, "", 20, 0)
	require.NoError(t, err)
	assert.Len(t, catList.Items, 1)

	_, err = products.List(ctx, tenant.Caller{UserID: "root", Role: entity.RoleSuperAdmin}, "", 20, 0)
	assert.ErrorIs(t, err, domain.ErrTenantRequired)
}
