package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderSnapshot_Matches(t *testing.T) {
	order := &OrderSnapshot{
		ID:          "uuid-1",
		OrderID:     "legacy-1",
		OrderNumber: "ORD-0001",
	}

	assert.True(t, order.Matches("uuid-1"))
	assert.True(t, order.Matches("legacy-1"))
	assert.True(t, order.Matches("ORD-0001"))
	assert.False(t, order.Matches("other"))
	assert.False(t, order.Matches(""))

	var nilOrder *OrderSnapshot
	assert.False(t, nilOrder.Matches("uuid-1"))
}

func TestOrderSnapshot_Active(t *testing.T) {
	for _, status := range []string{
		OrderStatusScheduled, OrderStatusPending, OrderStatusAssigned,
		OrderStatusPickup, OrderStatusInProgress,
	} {
		assert.True(t, (&OrderSnapshot{Status: status}).Active(), status)
	}
	assert.False(t, (&OrderSnapshot{Status: OrderStatusCompleted}).Active())
	assert.False(t, (&OrderSnapshot{Status: OrderStatusCancelled}).Active())

	var nilOrder *OrderSnapshot
	assert.False(t, nilOrder.Active())
}

func TestIdentity_OwnerID(t *testing.T) {
	passenger := &Identity{AccountID: "acc-1", Role: RolePassenger, PassengerID: "pass-1"}
	assert.Equal(t, "pass-1", passenger.OwnerID())

	driver := &Identity{AccountID: "acc-2", Role: RoleDriver, DriverID: "drv-1"}
	assert.Equal(t, "drv-1", driver.OwnerID())

	// Falls back to the account id while the role-specific id is missing.
	fresh := &Identity{AccountID: "acc-3", Role: RoleDriver}
	assert.Equal(t, "acc-3", fresh.OwnerID())
	assert.False(t, fresh.Complete())
}
