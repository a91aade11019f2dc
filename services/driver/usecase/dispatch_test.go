package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farhanm/taxilink/internal/pkg/models"
)

func TestHandleMessage_NewOrderBecomesPendingOffer(t *testing.T) {
	// Arrange
	uc, _, _, _ := newTestDriverUC(t)
	uc.identity = *driverIdentity()

	// Act
	uc.HandleMessage(models.RealtimeMessage{
		Type:                 models.MessageNewOrder,
		OrderID:              "order-1",
		OrderNumber:          "ORD-0001",
		PassengerID:          "pass-1",
		PickupAddress:        "Jl. Sudirman 1",
		PickupLatitude:       -6.21,
		PickupLongitude:      106.82,
		DestinationAddress:   "Jl. Thamrin 9",
		DestinationLatitude:  -6.19,
		DestinationLongitude: 106.82,
		Distance:             3.4,
		EstimatedFare:        18000,
	})

	// Assert
	offers := uc.PendingOffers()
	require.Len(t, offers, 1)
	offer := offers[0]
	assert.Equal(t, "order-1", offer.OrderID)
	assert.Equal(t, "Jl. Sudirman 1", offer.Pickup.Address)
	assert.Equal(t, 18000.0, offer.EstimatedFare)
	assert.Equal(t, 30, offer.Countdown)
	assert.False(t, offer.Processing)
	assert.False(t, offer.Timestamp.IsZero())
}

func TestHandleMessage_DuplicateNewOrderDropped(t *testing.T) {
	// Arrange
	uc, _, _, _ := newTestDriverUC(t)
	uc.identity = *driverIdentity()
	msg := models.RealtimeMessage{
		Type:    models.MessageNewOrder,
		OrderID: "order-1",
	}

	// Act: the broker redelivers the same offer.
	uc.HandleMessage(msg)
	uc.HandleMessage(msg)

	// Assert
	assert.Len(t, uc.PendingOffers(), 1)
}

func TestHandleMessage_CancellationRemovesPendingOffer(t *testing.T) {
	// Arrange
	uc, _, _, _ := newTestDriverUC(t)
	uc.identity = *driverIdentity()
	uc.AddPendingOffer(models.OrderOffer{OrderID: "order-1", OrderNumber: "ORD-0001"})
	uc.AddPendingOffer(models.OrderOffer{OrderID: "order-2"})

	// Act: the cancellation arrives under the display number.
	uc.HandleMessage(models.RealtimeMessage{
		Type:        models.MessageOrderCancelled,
		OrderNumber: "ORD-0001",
	})

	// Assert
	offers := uc.PendingOffers()
	require.Len(t, offers, 1)
	assert.Equal(t, "order-2", offers[0].OrderID)
}

func TestHandleMessage_CancellationClearsCurrentOrder(t *testing.T) {
	// Arrange
	uc, _, _, _ := newTestDriverUC(t)
	uc.identity = *driverIdentity()
	ctx := context.Background()
	uc.SetCurrentOrder(ctx, &models.OrderSnapshot{
		ID:          "order-1",
		OrderNumber: "ORD-0001",
		Status:      models.OrderStatusAssigned,
	})
	uc.SetNavigation(ctx, &models.NavigationInfo{Polyline: "abc"})
	uc.mu.Lock()
	uc.isOnline = true
	uc.todayEarnings = 25000
	uc.mu.Unlock()

	// Act
	uc.HandleMessage(models.RealtimeMessage{
		Type:    models.MessageOrderCancelled,
		OrderID: "order-1",
		Reason:  "passenger cancelled",
	})

	// Assert: the order and route go, the session and counters stay.
	assert.Nil(t, uc.CurrentOrder())
	assert.Nil(t, uc.Navigation())
	assert.True(t, uc.IsOnline())
	assert.Equal(t, 25000.0, uc.TodayEarnings())
}

func TestHandleMessage_CancellationMatchesAlternateIds(t *testing.T) {
	cases := []struct {
		name string
		msg  models.RealtimeMessage
	}{
		{
			name: "display number only",
			msg:  models.RealtimeMessage{Type: models.MessageOrderCancelled, OrderID: "ORD-0001"},
		},
		{
			name: "alternate primary id",
			msg:  models.RealtimeMessage{Type: models.MessageOrderCancelled, OrderID: "legacy-77"},
		},
		{
			name: "order number field",
			msg:  models.RealtimeMessage{Type: models.MessageOrderCancelled, OrderNumber: "ORD-0001"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange: none of the messages carry the primary id.
			uc, _, _, _ := newTestDriverUC(t)
			uc.identity = *driverIdentity()
			uc.SetCurrentOrder(context.Background(), &models.OrderSnapshot{
				ID:          "order-1",
				OrderID:     "legacy-77",
				OrderNumber: "ORD-0001",
				Status:      models.OrderStatusAssigned,
			})

			// Act
			uc.HandleMessage(tc.msg)

			// Assert
			assert.Nil(t, uc.CurrentOrder())
		})
	}
}

func TestHandleMessage_CancellationForUnrelatedOrderIgnored(t *testing.T) {
	// Arrange
	uc, _, _, _ := newTestDriverUC(t)
	uc.identity = *driverIdentity()
	uc.SetCurrentOrder(context.Background(), &models.OrderSnapshot{
		ID:     "order-1",
		Status: models.OrderStatusPickup,
	})

	// Act
	uc.HandleMessage(models.RealtimeMessage{
		Type:    models.MessageOrderCancelled,
		OrderID: "order-unrelated",
	})

	// Assert
	assert.NotNil(t, uc.CurrentOrder())
}

func TestHandleMessage_StatusChangeOnCurrentOrder(t *testing.T) {
	// Arrange
	uc, _, _, _ := newTestDriverUC(t)
	uc.identity = *driverIdentity()
	uc.SetCurrentOrder(context.Background(), &models.OrderSnapshot{
		ID:     "order-1",
		Status: models.OrderStatusAssigned,
	})

	// Act
	uc.HandleMessage(models.RealtimeMessage{
		Type:    models.MessageOrderStatusChange,
		OrderID: "order-1",
		Status:  models.OrderStatusInProgress,
	})

	// Assert
	current := uc.CurrentOrder()
	require.NotNil(t, current)
	assert.Equal(t, models.OrderStatusInProgress, current.Status)
}

func TestHandleMessage_ForwardsEverythingToObservers(t *testing.T) {
	// Arrange
	uc, _, _, _ := newTestDriverUC(t)
	uc.identity = *driverIdentity()
	var seen []string
	uc.RegisterObserver(func(msg models.RealtimeMessage) {
		seen = append(seen, msg.Type)
	})

	// Act
	uc.HandleMessage(models.RealtimeMessage{Type: models.MessageNewOrder, OrderID: "order-1"})
	uc.HandleMessage(models.RealtimeMessage{Type: "SYSTEM_NOTICE"})

	// Assert
	assert.Equal(t, []string{models.MessageNewOrder, "SYSTEM_NOTICE"}, seen)
}
