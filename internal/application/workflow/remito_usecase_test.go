package workflow_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/remitos-api/internal/application/dto"
	"github.com/jhoicas/remitos-api/internal/domain"
)

func TestCreateRemito_DefaultsToFirstActiveStatus(t *testing.T) {
	f := newFixture(t)
	a := f.company(t, "A")

	rm := f.newRemito(t, a, "")
	assert.Equal(t, a.Statuses["Pendiente"].ID, rm.Status)
	assert.Equal(t, int64(1), rm.Number)
	assert.Equal(t, a.ID, rm.CompanyID)
	require.Len(t, rm.Items, 1)
	assert.True(t, rm.Total.Equal(decimal.NewFromInt(200)), "2 × 100")

	second := f.newRemito(t, a, "")
	assert.Equal(t, int64(2), second.Number)
}

func TestCreateRemito_PriceOverrideAndTotal(t *testing.T) {
	f := newFixture(t)
	a := f.company(t, "A")

	rm, err := f.remitos.Create(context.Background(), a.Caller, dto.CreateRemitoRequest{
		ClientID: a.ClientID,
		Items: []dto.CreateRemitoItemRequest{
			{ProductID: a.ProductID, Quantity: decimal.NewFromInt(3), UnitPrice: ptr(decimal.RequireFromString("12.50"))},
			{ProductID: a.ProductID, Quantity: decimal.NewFromInt(1)},
		},
	})
	require.NoError(t, err)
	assert.True(t, rm.Total.Equal(decimal.RequireFromString("137.5")))
	assert.True(t, rm.Items[0].LineTotal.Equal(decimal.RequireFromString("37.5")))
}

func TestCreateRemito_Validation(t *testing.T) {
	f := newFixture(t)
	a := f.company(t, "A")
	b := f.company(t, "B")
	ctx := context.Background()

	item := []dto.CreateRemitoItemRequest{{ProductID: a.ProductID, Quantity: decimal.NewFromInt(1)}}

	tests := []struct {
		name    string
		req     dto.CreateRemitoRequest
		wantErr error
	}{
		{"cliente de otra empresa", dto.CreateRemitoRequest{ClientID: b.ClientID, Items: item}, domain.ErrInvalidInput},
		{"estado de otra empresa", dto.CreateRemitoRequest{ClientID: a.ClientID, StatusID: b.Statuses["Pendiente"].ID, Items: item}, domain.ErrInvalidStatus},
		{"sin ítems", dto.CreateRemitoRequest{ClientID: a.ClientID}, domain.ErrInvalidInput},
		{"producto de otra empresa", dto.CreateRemitoRequest{ClientID: a.ClientID, Items: []dto.CreateRemitoItemRequest{
			{ProductID: b.ProductID, Quantity: decimal.NewFromInt(1)},
		}}, domain.ErrInvalidInput},
		{"cantidad cero", dto.CreateRemitoRequest{ClientID: a.ClientID, Items: []dto.CreateRemitoItemRequest{
			{ProductID: a.ProductID, Quantity: decimal.Zero},
		}}, domain.ErrInvalidInput},
		{"otra empresa pedida", dto.CreateRemitoRequest{CompanyID: b.ID, ClientID: b.ClientID, Items: item}, domain.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.remitos.Create(ctx, a.Caller, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateRemito_NoActiveStatuses(t *testing.T) {
	f := newFixture(t)
	a := f.company(t, "A")
	ctx := context.Background()

	for _, s := range a.Statuses {
		_, err := f.statuses.Update(ctx, a.Caller, s.ID, dto.UpdateStatusRequest{IsActive: ptr(false)})
		require.NoError(t, err)
	}
	_, err := f.remitos.Create(ctx, a.Caller, dto.CreateRemitoRequest{
		ClientID: a.ClientID,
		Items:    []dto.CreateRemitoItemRequest{{ProductID: a.ProductID, Quantity: decimal.NewFromInt(1)}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestGetRemito_TenantScoped(t *testing.T) {
	f := newFixture(t)
	a := f.company(t, "A")
	b := f.company(t, "B")
	ctx := context.Background()

	rm := f.newRemito(t, a, "")

	got, err := f.remitos.GetByID(ctx, a.Caller, rm.ID)
	require.NoError(t, err)
	assert.Equal(t, rm.ID, got.ID)
	assert.Len(t, got.Items, 1)

	_, err = f.remitos.GetByID(ctx, b.Caller, rm.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.remitos.GetByID(ctx, superadmin, rm.ID)
	assert.NoError(t, err)
}
