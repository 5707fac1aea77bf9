package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/jhoicas/remitos-api/internal/application/analytics"
	"github.com/jhoicas/remitos-api/internal/application/dto"
	"github.com/jhoicas/remitos-api/internal/domain"
	"github.com/jhoicas/remitos-api/internal/domain/entity"
	"github.com/jhoicas/remitos-api/internal/domain/repository"
	"github.com/jhoicas/remitos-api/internal/domain/tenant"
	"github.com/jhoicas/remitos-api/internal/infrastructure/sqlite"
)

var now = time.Date(2026, 5, 13, 15, 30, 0, 0, time.UTC)

var superadmin = tenant.Caller{UserID: "root", Role: entity.RoleSuperAdmin}

// ── store real (SQLite en memoria) ──────────────────────────────────────────

type store struct {
	db       *gorm.DB
	statuses *sqlite.StatusRepo
	remitos  *sqlite.RemitoRepo
	products *sqlite.ProductRepo
	uc       *analytics.DashboardUseCase
}

func newStore(t *testing.T) *store {
	t.Helper()
	db, err := sqlite.Open(sqlite.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlite.Close(db) })

	s := &store{
		db:       db,
		statuses: sqlite.NewStatusRepository(db),
		remitos:  sqlite.NewRemitoRepository(db),
		products: sqlite.NewProductRepository(db),
	}
	s.uc = analytics.NewDashboardUseCase(sqlite.NewAnalyticsRepository(db), s.statuses, tenant.NewRolePolicy(), nil).
		WithClock(func() time.Time { return now })
	return s
}

func (s *store) status(t *testing.T, companyID, name string, order int) *entity.Status {
	t.Helper()
	st := &entity.Status{
		ID: uuid.NewString(), CompanyID: companyID, Name: name, Color: "#" + name[:1] + "00000",
		IsActive: true, SortOrder: order, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, s.statuses.Create(context.Background(), st))
	return st
}

func (s *store) remito(t *testing.T, companyID, statusID string, createdAt time.Time, items ...entity.RemitoItem) {
	t.Helper()
	rm := &entity.Remito{
		ID: uuid.NewString(), CompanyID: companyID, ClientID: "c", StatusID: statusID,
		StatusAt: createdAt, Total: decimal.Zero, CreatedAt: createdAt, UpdatedAt: createdAt,
	}
	for _, it := range items {
		it.ID = uuid.NewString()
		rm.Items = append(rm.Items, it)
	}
	require.NoError(t, s.remitos.Create(context.Background(), rm))
}

func adminOf(companyID string) tenant.Caller {
	return tenant.Caller{UserID: "u-" + companyID, Role: entity.RoleAdmin, CompanyID: companyID}
}

func TestDashboard_ByDayWindow(t *testing.T) {
	s := newStore(t)
	const company = "company-x"
	pend := s.status(t, company, "Pendiente", 1)

	for i := 0; i < 3; i++ {
		s.remito(t, company, pend.ID, now.Add(-time.Duration(i)*time.Hour))
	}
	tenDaysAgo := now.AddDate(0, 0, -10)
	for i := 0; i < 2; i++ {
		s.remito(t, company, pend.ID, tenDaysAgo)
	}

	resp, err := s.uc.GetDashboard(context.Background(), adminOf(company), dto.DashboardRequest{})
	require.NoError(t, err)

	assert.Equal(t, 5, resp.TotalRemitos)
	assert.Equal(t, 3, resp.TodayRemitos)
	require.Len(t, resp.ByDay, 30)

	last := resp.ByDay[29]
	assert.Equal(t, "2026-05-13", last.Date)
	assert.Equal(t, "13/05", last.Label)
	assert.Equal(t, 3, last.Count)

	assert.Equal(t, "2026-05-03", resp.ByDay[19].Date)
	assert.Equal(t, 2, resp.ByDay[19].Count)

	for i, d := range resp.ByDay {
		if i == 19 || i == 29 {
			continue
		}
		assert.Zero(t, d.Count, d.Date)
	}
	assert.Equal(t, "2026-04-14", resp.ByDay[0].Date)
	assert.Equal(t, "siempre", resp.ProductsPeriod)
	assert.Empty(t, resp.Degraded)
}

func TestDashboard_CountIdentity(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	a := s.status(t, "A", "Pendiente", 1)
	b := s.status(t, "A", "Entregado", 2)
	foreign := s.status(t, "B", "Pendiente", 1)

	s.remito(t, "A", b.ID, now)
	s.remito(t, "A", a.ID, now.AddDate(0, 0, -2))
	s.remito(t, "A", a.ID, now.AddDate(0, -3, 0)) // fuera de by_day
	s.remito(t, "A", "estado-borrado", now)
	s.remito(t, "B", foreign.ID, now)

	for _, tc := range []struct {
		name   string
		caller tenant.Caller
		req    dto.DashboardRequest
	}{
		{"empresa", adminOf("A"), dto.DashboardRequest{}},
		{"todas", superadmin, dto.DashboardRequest{}},
		{"superadmin filtrando", superadmin, dto.DashboardRequest{CompanyID: "B"}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := s.uc.GetDashboard(ctx, tc.caller, tc.req)
			require.NoError(t, err)

			byStatus, byDay := 0, 0
			for _, st := range resp.ByStatus {
				byStatus += st.Count
			}
			for _, d := range resp.ByDay {
				byDay += d.Count
			}
			assert.Equal(t, resp.TotalRemitos, byStatus)
			assert.LessOrEqual(t, byDay, resp.TotalRemitos)
		})
	}

	resp, err := s.uc.GetDashboard(ctx, adminOf("A"), dto.DashboardRequest{})
	require.NoError(t, err)
	assert.Equal(t, 4, resp.TotalRemitos)
	require.Len(t, resp.ByStatus, 3)
	assert.Equal(t, "Pendiente", resp.ByStatus[0].Name)
	assert.Equal(t, 2, resp.ByStatus[0].Count)
	assert.Equal(t, "Entregado", resp.ByStatus[1].Name)
	assert.Equal(t, "Desconocido", resp.ByStatus[2].Name)
	assert.Equal(t, entity.DefaultStatusColor, resp.ByStatus[2].Color)
}

func TestDashboard_TenantGate(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	_, err := s.uc.GetDashboard(ctx, adminOf("A"), dto.DashboardRequest{CompanyID: "B"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = s.uc.GetDashboard(ctx, tenant.Caller{}, dto.DashboardRequest{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = s.uc.GetDashboard(ctx, adminOf("A"), dto.DashboardRequest{ProductsPeriod: "trimestre"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDashboard_TopProductsByPeriod(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	st := s.status(t, "A", "Pendiente", 1)

	mk := func(name string) *entity.Product {
		p := &entity.Product{
			ID: uuid.NewString(), CompanyID: "A", Name: name,
			Price: decimal.NewFromInt(1), Stock: decimal.NewFromInt(1), CreatedAt: now, UpdatedAt: now,
		}
		require.NoError(t, s.products.Create(ctx, p))
		return p
	}
	viejo := mk("Viejo")
	nuevo := mk("Nuevo")

	s.remito(t, "A", st.ID, now.AddDate(0, -2, 0),
		entity.NewRemitoItem("", "", viejo.ID, decimal.NewFromInt(50), decimal.NewFromInt(1)))
	s.remito(t, "A", st.ID, now,
		entity.NewRemitoItem("", "", nuevo.ID, decimal.NewFromInt(3), decimal.NewFromInt(1)))

	resp, err := s.uc.GetDashboard(ctx, adminOf("A"), dto.DashboardRequest{})
	require.NoError(t, err)
	require.Len(t, resp.TopProducts, 2)
	assert.Equal(t, "Viejo", resp.TopProducts[0].Name)

	resp, err = s.uc.GetDashboard(ctx, adminOf("A"), dto.DashboardRequest{ProductsPeriod: "hoy"})
	require.NoError(t, err)
	require.Len(t, resp.TopProducts, 1)
	assert.Equal(t, "Nuevo", resp.TopProducts[0].Name)
	assert.Equal(t, "hoy", resp.ProductsPeriod)

	assert.Equal(t, 2, resp.Counts.Products)
	assert.Equal(t, 2, resp.Counts.Today.Products)
	assert.Equal(t, 2, resp.Counts.ProductsInStock)
}

// ── aislamiento de fallas (mocks) ───────────────────────────────────────────

type mockAnalytics struct{ mock.Mock }

var _ repository.AnalyticsRepository = (*mockAnalytics)(nil)

func (m *mockAnalytics) ListRemitoActivity(ctx context.Context, companyID string) ([]entity.RemitoActivity, error) {
	args := m.Called(ctx, companyID)
	rows, _ := args.Get(0).([]entity.RemitoActivity)
	return rows, args.Error(1)
}

func (m *mockAnalytics) CountEntities(ctx context.Context, kind repository.CountKind, companyID string, since *time.Time) (int, error) {
	args := m.Called(ctx, kind, companyID, since)
	return args.Int(0), args.Error(1)
}

func (m *mockAnalytics) GetTopProducts(ctx context.Context, companyID string, since *time.Time, limit int) ([]repository.TopProductResult, error) {
	args := m.Called(ctx, companyID, since, limit)
	rows, _ := args.Get(0).([]repository.TopProductResult)
	return rows, args.Error(1)
}

type mockStatuses struct {
	mock.Mock
	repository.StatusRepository
}

func (m *mockStatuses) List(ctx context.Context, companyID string, includeInactive bool) ([]*entity.Status, error) {
	args := m.Called(ctx, companyID, includeInactive)
	rows, _ := args.Get(0).([]*entity.Status)
	return rows, args.Error(1)
}

var errBoom = errors.New("boom")

func TestDashboard_BranchFailuresDegrade(t *testing.T) {
	repo := &mockAnalytics{}
	statuses := &mockStatuses{}
	activity := []entity.RemitoActivity{{ID: "r1", StatusID: "s1", CreatedAt: now}}

	repo.On("ListRemitoActivity", mock.Anything, "A").Return(activity, nil)
	repo.On("CountEntities", mock.Anything, repository.CountUsers, "A", mock.Anything).Return(0, errBoom)
	repo.On("CountEntities", mock.Anything, mock.Anything, "A", mock.Anything).Return(7, nil)
	repo.On("GetTopProducts", mock.Anything, "A", mock.Anything, 5).Return(nil, errBoom)
	statuses.On("List", mock.Anything, "A", false).Return(nil, errBoom)

	uc := analytics.NewDashboardUseCase(repo, statuses, tenant.NewRolePolicy(), nil).
		WithClock(func() time.Time { return now })

	resp, err := uc.GetDashboard(context.Background(), adminOf("A"), dto.DashboardRequest{})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.TotalRemitos)
	assert.Equal(t, 7, resp.Counts.Clients)
	assert.Equal(t, 7, resp.Counts.Today.Categories)
	assert.Zero(t, resp.Counts.Users)
	assert.Zero(t, resp.Counts.Today.Users)
	assert.Empty(t, resp.TopProducts)
	require.Len(t, resp.ByStatus, 1)
	assert.Equal(t, "Desconocido", resp.ByStatus[0].Name)
	assert.Equal(t, []string{"statuses", "today_users", "users", "top_products"}, resp.Degraded)

	repo.AssertNumberOfCalls(t, "CountEntities", 12)
}

func TestDashboard_ScanFailureIsFatal(t *testing.T) {
	repo := &mockAnalytics{}
	statuses := &mockStatuses{}

	repo.On("ListRemitoActivity", mock.Anything, "A").Return(nil, errBoom)
	repo.On("CountEntities", mock.Anything, mock.Anything, "A", mock.Anything).Return(1, nil)
	repo.On("GetTopProducts", mock.Anything, "A", mock.Anything, 5).Return([]repository.TopProductResult{}, nil)
	statuses.On("List", mock.Anything, "A", false).Return([]*entity.Status{}, nil)

	uc := analytics.NewDashboardUseCase(repo, statuses, tenant.NewRolePolicy(), nil)

	_, err := uc.GetDashboard(context.Background(), adminOf("A"), dto.DashboardRequest{})
	assert.ErrorIs(t, err, errBoom)
}
