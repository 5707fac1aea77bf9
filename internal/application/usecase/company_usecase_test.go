package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jhoicas/remitos-api/internal/application/dto"
	"github.com/jhoicas/remitos-api/internal/application/usecase"
	"github.com/jhoicas/remitos-api/internal/application/workflow"
	"github.com/jhoicas/remitos-api/internal/domain"
	"github.com/jhoicas/remitos-api/internal/domain/tenant"
	"github.com/jhoicas/remitos-api/internal/infrastructure/sqlite"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := sqlite.Open(sqlite.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })
	return db
}

type failingSeeder struct{}

func (failingSeeder) SeedDefaults(context.Context, string) error { return errors.New("store caído") }

func TestCompanyUseCase_CreateSeedsStatuses(t *testing.T) {
	db := openDB(t)
	statusRepo := sqlite.NewStatusRepository(db)
	companyRepo := sqlite.NewCompanyRepository(db)
	registry := workflow.NewStatusUseCase(statusRepo, sqlite.NewRemitoRepository(db), companyRepo, tenant.NewRolePolicy(), nil, nil)
	uc := usecase.NewCompanyUseCase(companyRepo, registry, nil)
	ctx := context.Background()

	resp, err := uc.Create(ctx, dto.CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)
	require.NotNil(t, resp.StatusesSeeded)
	assert.True(t, *resp.StatusesSeeded)
	assert.Equal(t, "active", resp.Status)

	list, err := statusRepo.List(ctx, resp.ID, true)
	require.NoError(t, err)
	require.Len(t, list, 4)
	for i, name := range []string{"Pendiente", "Preparado", "Entregado", "Cancelado"} {
		assert.Equal(t, name, list[i].Name)
		assert.Equal(t, i+1, list[i].SortOrder)
		assert.True(t, list[i].IsActive)
		assert.True(t, list[i].IsDefault)
	}
}

func TestCompanyUseCase_SeedFailureDoesNotRollBack(t *testing.T) {
	db := openDB(t)
	uc := usecase.NewCompanyUseCase(sqlite.NewCompanyRepository(db), failingSeeder{}, nil)
	ctx := context.Background()

	resp, err := uc.Create(ctx, dto.CreateCompanyRequest{Name: "Acme"})
	require.NoError(t, err)
	require.NotNil(t, resp.StatusesSeeded)
	assert.False(t, *resp.StatusesSeeded)

	got, err := uc.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", got.Name)
}

func TestCompanyUseCase_DuplicateAndLookup(t *testing.T) {
	db := openDB(t)
	uc := usecase.NewCompanyUseCase(sqlite.NewCompanyRepository(db), nil, nil)
	ctx := context.Background()

	first, err := uc.Create(ctx, dto.CreateCompanyRequest{Name: " Acme "})
	require.NoError(t, err)
	assert.Equal(t, "Acme", first.Name)
	assert.Nil(t, first.StatusesSeeded)

	_, err = uc.Create(ctx, dto.CreateCompanyRequest{Name: "Acme"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateCompanyRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(ctx, dto.CreateCompanyRequest{Name: "Beta"})
	require.NoError(t, err)
	page, err := uc.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 10, page.Page.Limit)
}
