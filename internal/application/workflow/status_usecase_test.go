package workflow_test

import (
	"context"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/remitos-api/internal/application/dto"
	"github.com/jhoicas/remitos-api/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestSeedDefaults_FourDefaultStatuses(t *testing.T) {
	f := newFixture(t)
	c := f.company(t, "Acme")

	list, err := f.statuses.List(context.Background(), c.Caller, "", true)
	require.NoError(t, err)
	require.Len(t, list, 4)

	wantNames := []string{"Pendiente", "Preparado", "Entregado", "Cancelado"}
	colors := map[string]bool{}
	for i, s := range list {
		assert.Equal(t, wantNames[i], s.Name)
		assert.Equal(t, i+1, s.SortOrder)
		assert.True(t, s.IsActive)
		assert.True(t, s.IsDefault)
		colors[s.Color] = true
	}
	assert.Len(t, colors, 4, "cada estado por defecto tiene color propio")
}

func TestSeedDefaults_Idempotent(t *testing.T) {
	f := newFixture(t)
	c := f.company(t, "Acme")
	ctx := context.Background()

	require.NoError(t, f.statuses.SeedDefaults(ctx, c.ID))

	list, err := f.statusRepo.List(ctx, c.ID, true)
	require.NoError(t, err)
	assert.Len(t, list, 4)
}

func TestReseedDefaults_RestoresOnlyMissing(t *testing.T) {
	f := newFixture(t)
	c := f.company(t, "Acme")
	ctx := context.Background()

	require.NoError(t, f.statuses.Delete(ctx, c.Caller, c.Statuses["Cancelado"].ID))
	_, err := f.statuses.Update(ctx, c.Caller, c.Statuses["Pendiente"].ID, dto.UpdateStatusRequest{Color: ptr("#111111")})
	require.NoError(t, err)

	created, err := f.statuses.ReseedDefaults(ctx, superadmin, c.ID)
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "Cancelado", created[0].Name)

	pend, err := f.statusRepo.GetByID(ctx, c.Statuses["Pendiente"].ID)
	require.NoError(t, err)
	assert.Equal(t, "#111111", pend.Color, "los estados existentes no se tocan")

	again, err := f.statuses.ReseedDefaults(ctx, superadmin, c.ID)
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestReseedDefaults_RequiresCompany(t *testing.T) {
	f := newFixture(t)
	_, err := f.statuses.ReseedDefaults(context.Background(), superadmin, "")
	assert.ErrorIs(t, err, domain.ErrTenantRequired)
}

func TestStatusWrites_UnknownCompany(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.statuses.ReseedDefaults(ctx, superadmin, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, created)

	_, err = f.statuses.Create(ctx, superadmin, dto.CreateStatusRequest{Name: "X", CompanyID: "fantasma"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	all, err := f.statusRepo.List(ctx, "", true)
	require.NoError(t, err)
	assert.Empty(t, all, "no deben quedar estados huérfanos")
}

func TestCreateStatus_Uniqueness(t *testing.T) {
	f := newFixture(t)
	a := f.company(t, "A")
	b := f.company(t, "B")
	ctx := context.Background()

	_, err := f.statuses.Create(ctx, a.Caller, dto.CreateStatusRequest{Name: "En camino"})
	require.NoError(t, err)

	_, err = f.statuses.Create(ctx, a.Caller, dto.CreateStatusRequest{Name: "  En camino "})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	_, err = f.statuses.Create(ctx, b.Caller, dto.CreateStatusRequest{Name: "En camino"})
	assert.NoError(t, err, "el mismo nombre en otra empresa es válido")
}

func TestCreateStatus_NFCNamesCollide(t *testing.T) {
	f := newFixture(t)
	a := f.company(t, "A")
	ctx := context.Background()

	_, err := f.statuses.Create(ctx, a.Caller, dto.CreateStatusRequest{Name: "Revisi\u00f3n"})
	require.NoError(t, err)

	_, err = f.statuses.Create(ctx, a.Caller, dto.CreateStatusRequest{Name: "Revisio\u0301n"})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
}

func TestCreateStatus_Defaults(t *testing.T) {
	f := newFixture(t)
	a := f.company(t, "A")
	ctx := context.Background()

	st, err := f.statuses.Create(ctx, a.Caller, dto.CreateStatusRequest{Name: "Demorado"})
	require.NoError(t, err)
	assert.Equal(t, 5, st.SortOrder, "max(4)+1")
	assert.Equal(t, "#6b7280", st.Color)
	assert.Equal(t, "circle", st.Icon)
	assert.True(t, st.IsActive)
	assert.False(t, st.IsDefault)
	assert.Equal(t, a.ID, st.CompanyID)
}

func TestCreateStatus_FirstStatusGetsOrder100(t *testing.T) {
	f := newFixture(t)
	a := f.company(t, "A")
	ctx := context.Background()

	for _, s := range a.Statuses {
		require.NoError(t, f.statuses.Delete(ctx, a.Caller, s.ID))
	}

	st, err := f.statuses.Create(ctx, a.Caller, dto.CreateStatusRequest{Name: "Nuevo"})
	require.NoError(t, err)
	assert.Equal(t, 100, st.SortOrder)
}

func TestCreateStatus_TenantGate(t *testing.T) {
	f := newFixture(t)
	a := f.company(t, "A")
	b := f.company(t, "B")
	ctx := context.Background()

	_, err := f.statuses.Create(ctx, a.Caller, dto.CreateStatusRequest{CompanyID: b.ID, Name: "X"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.statuses.Create(ctx, superadmin, dto.CreateStatusRequest{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrTenantRequired)

	st, err := f.statuses.Create(ctx, superadmin, dto.CreateStatusRequest{CompanyID: b.ID, Name: "X"})
	require.NoError(t, err)
	assert.Equal(t, b.ID, st.CompanyID)
}

func TestListStatuses_Ordering(t *testing.T) {
	f := newFixture(t)
	a := f.company(t, "A")
	ctx := context.Background()

	for _, s := range a.Statuses {
		require.NoError(t, f.statuses.Delete(ctx, a.Caller, s.ID))
	}

	type in struct {
		name  string
		order int
	}
	inputs := []in{{"Zeta", 2}, {"Alfa", 2}, {"Beta", 1}, {"Gamma", 3}, {"Delta", 1}, {"Epsilon", 10}}
	rnd := rand.New(rand.NewSource(7))
	rnd.Shuffle(len(inputs), func(i, j int) { inputs[i], inputs[j] = inputs[j], inputs[i] })
	for _, s := range inputs {
		_, err := f.statuses.Create(ctx, a.Caller, dto.CreateStatusRequest{Name: s.name, SortOrder: ptr(s.order)})
		require.NoError(t, err)
	}

	list, err := f.statuses.List(ctx, a.Caller, "", true)
	require.NoError(t, err)
	require.Len(t, list, len(inputs))
	assert.True(t, sort.SliceIsSorted(list, func(i, j int) bool {
		if list[i].SortOrder != list[j].SortOrder {
			return list[i].SortOrder < list[j].SortOrder
		}
		return list[i].Name < list[j].Name
	}))
	assert.Equal(t, "Beta", list[0].Name)
	assert.Equal(t, "Epsilon", list[len(list)-1].Name)
}

func TestListStatuses_InactiveFilteredAndScopes(t *testing.T) {
	f := newFixture(t)
	a := f.company(t, "A")
	b := f.company(t, "B")
	ctx := context.Background()

	_, err := f.statuses.Update(ctx, a.Caller, a.Statuses["Cancelado"].ID, dto.UpdateStatusRequest{IsActive: ptr(false)})
	require.NoError(t, err)

	active, err := f.statuses.List(ctx, a.Caller, "", false)
	require.NoError(t, err)
	assert.Len(t, active, 3)

	_, err = f.statuses.List(ctx, a.Caller, b.ID, false)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	all, err := f.statuses.List(ctx, superadmin, "", true)
	require.NoError(t, err)
	assert.Len(t, all, 8)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	a := f.company(t, "A")
	b := f.company(t, "B")
	ctx := context.Background()

	t.Run("renombrar a un nombre existente", func(t *testing.T) {
		_, err := f.statuses.Update(ctx, a.Caller, a.Statuses["Preparado"].ID, dto.UpdateStatusRequest{Name: ptr("Pendiente")})
		assert.ErrorIs(t, err, domain.ErrDuplicateName)
	})

	t.Run("estado de otra empresa es inexistente", func(t *testing.T) {
		_, err := f.statuses.Update(ctx, a.Caller, b.Statuses["Preparado"].ID, dto.UpdateStatusRequest{Color: ptr("#000000")})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("default editable", func(t *testing.T) {
		got, err := f.statuses.Update(ctx, a.Caller, a.Statuses["Entregado"].ID, dto.UpdateStatusRequest{
			Name:      ptr("Recibido"),
			SortOrder: ptr(9),
			IsActive:  ptr(false),
		})
		require.NoError(t, err)
		assert.Equal(t, "Recibido", got.Name)
		assert.Equal(t, 9, got.SortOrder)
		assert.False(t, got.IsActive)
		assert.True(t, got.IsDefault)
	})

	t.Run("inexistente", func(t *testing.T) {
		_, err := f.statuses.Update(ctx, a.Caller, "nope", dto.UpdateStatusRequest{})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDeleteStatus_InUseGuard(t *testing.T) {
	f := newFixture(t)
	a := f.company(t, "A")
	ctx := context.Background()

	pend := a.Statuses["Pendiente"]
	rm := f.newRemito(t, a, pend.ID)

	err := f.statuses.Delete(ctx, a.Caller, pend.ID)
	assert.ErrorIs(t, err, domain.ErrInUse)

	_, err = f.transitions.Transition(ctx, a.Caller, rm.ID, a.Statuses["Preparado"].ID)
	require.NoError(t, err)

	require.NoError(t, f.statuses.Delete(ctx, a.Caller, pend.ID))

	got, err := f.statusRepo.GetByID(ctx, pend.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteStatus_OtherCompany(t *testing.T) {
	f := newFixture(t)
	a := f.company(t, "A")
	b := f.company(t, "B")

	err := f.statuses.Delete(context.Background(), a.Caller, b.Statuses["Cancelado"].ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
