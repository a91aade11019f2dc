package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farhanm/taxilink/internal/pkg/models"
)

func TestAddPendingOffer_DeduplicatesByOrderID(t *testing.T) {
	// Arrange
	uc, _, _, _ := newTestDriverUC(t)

	// Act
	assert.True(t, uc.AddPendingOffer(models.OrderOffer{OrderID: "order-1", EstimatedFare: 10000}))
	assert.False(t, uc.AddPendingOffer(models.OrderOffer{OrderID: "order-1", EstimatedFare: 12000}))
	assert.True(t, uc.AddPendingOffer(models.OrderOffer{OrderID: "order-2"}))

	// Assert: arrival order preserved, duplicate dropped whole.
	offers := uc.PendingOffers()
	require.Len(t, offers, 2)
	assert.Equal(t, "order-1", offers[0].OrderID)
	assert.Equal(t, 10000.0, offers[0].EstimatedFare)
	assert.Equal(t, "order-2", offers[1].OrderID)
}

func TestAddPendingOffer_CurrentOrderNeverQueued(t *testing.T) {
	// Arrange
	uc, _, _, _ := newTestDriverUC(t)
	uc.identity = *driverIdentity()
	uc.SetCurrentOrder(context.Background(), &models.OrderSnapshot{
		ID:     "order-current",
		Status: models.OrderStatusPickup,
	})

	// Act
	added := uc.AddPendingOffer(models.OrderOffer{OrderID: "order-current"})

	// Assert
	assert.False(t, added)
	assert.Empty(t, uc.PendingOffers())
}

func TestAcceptOffer_PromotesOfferToCurrentOrder(t *testing.T) {
	// Arrange
	uc, _, gw, _ := newTestDriverUC(t)
	uc.identity = *driverIdentity()
	uc.AddPendingOffer(models.OrderOffer{OrderID: "order-1"})
	uc.AddPendingOffer(models.OrderOffer{OrderID: "order-2"})

	gw.EXPECT().
		AcceptOrder(gomock.Any(), "drv-1", "order-1").
		Return(&models.OrderSnapshot{
			ID:       "order-1",
			Status:   models.OrderStatusAssigned,
			DriverID: "drv-1",
		}, nil)

	// Act
	err := uc.AcceptOffer(context.Background(), "order-1")

	// Assert: accepted order is current and out of the queue.
	require.NoError(t, err)
	current := uc.CurrentOrder()
	require.NotNil(t, current)
	assert.Equal(t, "order-1", current.ID)

	offers := uc.PendingOffers()
	require.Len(t, offers, 1)
	assert.Equal(t, "order-2", offers[0].OrderID)
}

func TestAcceptOffer_FailureKeepsOfferPending(t *testing.T) {
	// Arrange
	uc, _, gw, _ := newTestDriverUC(t)
	uc.identity = *driverIdentity()
	uc.AddPendingOffer(models.OrderOffer{OrderID: "order-1"})

	gw.EXPECT().
		AcceptOrder(gomock.Any(), "drv-1", "order-1").
		Return(nil, errors.New("already taken"))

	// Act
	err := uc.AcceptOffer(context.Background(), "order-1")

	// Assert: the offer stays, unmarked, so the UI can retry or drop it.
	assert.Error(t, err)
	assert.Nil(t, uc.CurrentOrder())
	offers := uc.PendingOffers()
	require.Len(t, offers, 1)
	assert.False(t, offers[0].Processing)
}

func TestAcceptOffer_UnknownOffer(t *testing.T) {
	uc, _, _, _ := newTestDriverUC(t)
	uc.identity = *driverIdentity()

	err := uc.AcceptOffer(context.Background(), "order-phantom")
	assert.Error(t, err)
}

func TestCompleteOrder_FoldsFareIntoCounters(t *testing.T) {
	// Arrange
	uc, _, gw, _ := newTestDriverUC(t)
	uc.identity = *driverIdentity()
	ctx := context.Background()
	uc.SetCurrentOrder(ctx, &models.OrderSnapshot{
		ID:     "order-1",
		Status: models.OrderStatusInProgress,
	})
	uc.mu.Lock()
	uc.todayEarnings = 20000
	uc.completedOrders = 1
	uc.mu.Unlock()

	gw.EXPECT().CompleteOrder(gomock.Any(), "drv-1", "order-1").Return(15000.0, nil)

	// Act
	err := uc.CompleteOrder(ctx)

	// Assert
	require.NoError(t, err)
	assert.Nil(t, uc.CurrentOrder())
	assert.Equal(t, 35000.0, uc.TodayEarnings())
	assert.Equal(t, 2, uc.CompletedOrders())
}

func TestCompleteOrder_NoCurrentOrder(t *testing.T) {
	uc, _, _, _ := newTestDriverUC(t)
	uc.identity = *driverIdentity()

	err := uc.CompleteOrder(context.Background())
	assert.Error(t, err)
}

func TestViews_CanAcceptNewOrders(t *testing.T) {
	// Arrange
	uc, _, _, _ := newTestDriverUC(t)
	uc.identity = *driverIdentity()
	ctx := context.Background()

	assert.False(t, uc.CanAcceptNewOrders(), "offline driver takes nothing")

	uc.mu.Lock()
	uc.isOnline = true
	uc.mu.Unlock()
	assert.True(t, uc.CanAcceptNewOrders())

	uc.SetCurrentOrder(ctx, &models.OrderSnapshot{ID: "order-1", Status: models.OrderStatusPickup})
	assert.False(t, uc.CanAcceptNewOrders(), "busy driver takes nothing")
	assert.True(t, uc.HasActiveOrder())
}

func TestViews_CanCancelOrder(t *testing.T) {
	uc, _, _, _ := newTestDriverUC(t)
	uc.identity = *driverIdentity()
	ctx := context.Background()

	assert.False(t, uc.CanCancelOrder())

	uc.SetCurrentOrder(ctx, &models.OrderSnapshot{ID: "o", Status: models.OrderStatusAssigned})
	assert.True(t, uc.CanCancelOrder())

	uc.UpdateOrderStatus(ctx, models.OrderStatusInProgress)
	assert.False(t, uc.CanCancelOrder(), "no backing out with the passenger aboard")
}
