package workflow_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/remitos-api/internal/application/dto"
	"github.com/jhoicas/remitos-api/internal/application/workflow"
	"github.com/jhoicas/remitos-api/internal/domain/entity"
	"github.com/jhoicas/remitos-api/internal/domain/tenant"
	"github.com/jhoicas/remitos-api/internal/infrastructure/sqlite"
)

var baseTime = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

type fixture struct {
	statuses    *workflow.StatusUseCase
	transitions *workflow.TransitionUseCase
	remitos     *workflow.RemitoUseCase

	statusRepo  *sqlite.StatusRepo
	remitoRepo  *sqlite.RemitoRepo
	companyRepo *sqlite.CompanyRepo
	clientRepo  *sqlite.ClientRepo
	productRepo *sqlite.ProductRepo

	now time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := sqlite.Open(sqlite.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })

	f := &fixture{
		statusRepo:  sqlite.NewStatusRepository(db),
		remitoRepo:  sqlite.NewRemitoRepository(db),
		companyRepo: sqlite.NewCompanyRepository(db),
		clientRepo:  sqlite.NewClientRepository(db),
		productRepo: sqlite.NewProductRepository(db),
		now:         baseTime,
	}
	clock := func() time.Time { return f.now }
	policy := tenant.NewRolePolicy()

	f.statuses = workflow.NewStatusUseCase(f.statusRepo, f.remitoRepo, f.companyRepo, policy, nil, nil)
	f.transitions = workflow.NewTransitionUseCase(f.remitoRepo, f.statusRepo, policy, nil).WithClock(clock)
	f.remitos = workflow.NewRemitoUseCase(f.remitoRepo, f.statusRepo, f.clientRepo, f.productRepo, policy).WithClock(clock)
	return f
}

type seededCompany struct {
	ID        string
	ClientID  string
	ProductID string
	Caller    tenant.Caller
	Statuses  map[string]*entity.Status
}

// company crea la empresa con sus estados sembrados, un cliente y un producto.
func (f *fixture) company(t *testing.T, name string) *seededCompany {
	t.Helper()
	ctx := context.Background()
	c := &entity.Company{ID: uuid.NewString(), Name: name, Status: entity.CompanyActive, CreatedAt: f.now, UpdatedAt: f.now}
	require.NoError(t, f.companyRepo.Create(ctx, c))
	require.NoError(t, f.statuses.SeedDefaults(ctx, c.ID))

	cl := &entity.Client{ID: uuid.NewString(), CompanyID: c.ID, Name: "Cliente " + name, CreatedAt: f.now, UpdatedAt: f.now}
	require.NoError(t, f.clientRepo.Create(ctx, cl))
	p := &entity.Product{
		ID: uuid.NewString(), CompanyID: c.ID, Name: "Producto " + name,
		Price: decimal.NewFromInt(100), Stock: decimal.NewFromInt(10), CreatedAt: f.now, UpdatedAt: f.now,
	}
	require.NoError(t, f.productRepo.Create(ctx, p))

	list, err := f.statusRepo.List(ctx, c.ID, true)
	require.NoError(t, err)
	byName := make(map[string]*entity.Status, len(list))
	for _, s := range list {
		byName[s.Name] = s
	}
	return &seededCompany{
		ID:        c.ID,
		ClientID:  cl.ID,
		ProductID: p.ID,
		Caller:    tenant.Caller{UserID: "user-" + name, Role: entity.RoleAdmin, CompanyID: c.ID},
		Statuses:  byName,
	}
}

func (f *fixture) newRemito(t *testing.T, c *seededCompany, statusID string) *dto.RemitoResponse {
	t.Helper()
	resp, err := f.remitos.Create(context.Background(), c.Caller, dto.CreateRemitoRequest{
		ClientID: c.ClientID,
		StatusID: statusID,
		Items: []dto.CreateRemitoItemRequest{
			{ProductID: c.ProductID, Quantity: decimal.NewFromInt(2)},
		},
	})
	require.NoError(t, err)
	return resp
}

var superadmin = tenant.Caller{UserID: "root", Role: entity.RoleSuperAdmin}
