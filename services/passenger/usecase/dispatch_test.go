package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farhanm/taxilink/internal/pkg/models"
)

func trackedOrderUC(t *testing.T) *OrderUC {
	t.Helper()
	uc, _, _, _ := newTestOrderUC(t)
	uc.identity = *passengerIdentity()
	uc.SetCurrentOrder(context.Background(), &models.OrderSnapshot{
		ID:          "order-42",
		OrderNumber: "ORD-0042",
		Status:      models.OrderStatusPending,
		PassengerID: "pass-1",
	})
	return uc
}

func TestHandleMessage_OrderAssigned(t *testing.T) {
	// Arrange
	uc := trackedOrderUC(t)

	// Act
	uc.HandleMessage(models.RealtimeMessage{
		Type:     models.MessageOrderAssigned,
		DriverID: "drv-1",
		Order:    &models.OrderSnapshot{ID: "order-42", DriverID: "drv-1"},
		Driver:   &models.DriverInfo{ID: "drv-1", Name: "Budi", PlateNumber: "B 1234 XYZ"},
	})

	// Assert
	assert.Equal(t, models.OrderStatusAssigned, uc.OrderStatus())
	driver := uc.DriverInfo()
	require.NotNil(t, driver)
	assert.Equal(t, "drv-1", driver.ID)

	current := uc.CurrentOrder()
	require.NotNil(t, current)
	assert.Equal(t, "ORD-0042", current.OrderNumber, "patch must not blank cached fields")
}

func TestHandleMessage_DriverLocationOnlyPatchesTrackedDriver(t *testing.T) {
	// Arrange
	uc := trackedOrderUC(t)
	ctx := context.Background()
	uc.SetDriverInfo(ctx, &models.DriverInfo{ID: "drv-1", Latitude: 1, Longitude: 1})

	// Act: an update for a different driver, then the tracked one.
	uc.HandleMessage(models.RealtimeMessage{
		Type:     models.MessageDriverLocation,
		DriverID: "drv-other",
		Latitude: 99, Longitude: 99,
	})
	uc.HandleMessage(models.RealtimeMessage{
		Type:     models.MessageDriverLocation,
		DriverID: "drv-1",
		Latitude: -6.2, Longitude: 106.8,
	})

	// Assert
	driver := uc.DriverInfo()
	require.NotNil(t, driver)
	assert.Equal(t, -6.2, driver.Latitude)
	assert.Equal(t, 106.8, driver.Longitude)
}

func TestHandleMessage_StatusChangeMatchesAlternateIDs(t *testing.T) {
	tests := []struct {
		name    string
		msgID   string
		msgNum  string
		applied bool
	}{
		{"primary id", "order-42", "", true},
		{"display number", "", "ORD-0042", true},
		{"unrelated order", "order-99", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			uc := trackedOrderUC(t)

			// Act
			uc.HandleMessage(models.RealtimeMessage{
				Type:        models.MessageOrderStatusChange,
				OrderID:     tt.msgID,
				OrderNumber: tt.msgNum,
				Status:      models.OrderStatusPickup,
			})

			// Assert
			if tt.applied {
				assert.Equal(t, models.OrderStatusPickup, uc.OrderStatus())
			} else {
				assert.Equal(t, models.OrderStatusPending, uc.OrderStatus())
			}
		})
	}
}

func TestHandleMessage_CancellationClearsState(t *testing.T) {
	// Arrange
	uc := trackedOrderUC(t)
	uc.SetDriverInfo(context.Background(), &models.DriverInfo{ID: "drv-1"})

	// Act: the cancellation arrives under the display number.
	uc.HandleMessage(models.RealtimeMessage{
		Type:        models.MessageOrderStatusChange,
		OrderNumber: "ORD-0042",
		Status:      models.OrderStatusCancelled,
	})

	// Assert
	assert.Nil(t, uc.CurrentOrder())
	assert.Nil(t, uc.DriverInfo())
	assert.Empty(t, uc.OrderStatus())
}

func TestHandleMessage_ForwardsToObservers(t *testing.T) {
	// Arrange
	uc := trackedOrderUC(t)
	var seen []string
	uc.RegisterObserver(func(msg models.RealtimeMessage) {
		seen = append(seen, msg.Type)
	})

	// Act: unknown types are forwarded untouched.
	uc.HandleMessage(models.RealtimeMessage{Type: "PROMO_BANNER"})
	uc.HandleMessage(models.RealtimeMessage{
		Type:    models.MessageOrderStatusChange,
		OrderID: "order-42",
		Status:  models.OrderStatusPickup,
	})

	// Assert
	assert.Equal(t, []string{"PROMO_BANNER", models.MessageOrderStatusChange}, seen)
}

func TestHandleMessage_ObserverPanicIsContained(t *testing.T) {
	// Arrange
	uc := trackedOrderUC(t)
	uc.RegisterObserver(func(models.RealtimeMessage) {
		panic("broken UI hook")
	})
	var delivered bool
	uc.RegisterObserver(func(models.RealtimeMessage) {
		delivered = true
	})

	// Act
	assert.NotPanics(t, func() {
		uc.HandleMessage(models.RealtimeMessage{
			Type:    models.MessageOrderStatusChange,
			OrderID: "order-42",
			Status:  models.OrderStatusPickup,
		})
	})

	// Assert: state applied and later observers still ran.
	assert.Equal(t, models.OrderStatusPickup, uc.OrderStatus())
	assert.True(t, delivered)
}
