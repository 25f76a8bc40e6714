package service

import (
	"context"
	"testing"

	"bookalink/internal/apperr"
	"bookalink/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderService_List(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewOrderService(f.orders)
	dana := f.seller(t, "dana")

	orders, err := svc.List(ctx, dana.ID)
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)

	orderID := startMugOrder(t, f)
	owner := mustOrder(t, f, orderID).SellerID

	orders, err = svc.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, orderID, orders[0].ID)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewOrderService(f.orders)
	orderID := startMugOrder(t, f)
	owner := mustOrder(t, f, orderID).SellerID
	stranger := f.seller(t, "mallory")

	err := svc.UpdateStatus(ctx, owner, orderID, "shipped")
	assert.True(t, apperr.IsValidation(err))

	err = svc.UpdateStatus(ctx, stranger.ID, orderID, model.OrderCompleted)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, model.OrderPending, mustOrder(t, f, orderID).Status)

	require.NoError(t, svc.UpdateStatus(ctx, owner, orderID, model.OrderCompleted))
	assert.Equal(t, model.OrderCompleted, mustOrder(t, f, orderID).Status)

	err = svc.UpdateStatus(ctx, owner, uuid.NewString(), model.OrderCancelled)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
