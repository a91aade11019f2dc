package usecase

import (
	"time"

	"github.com/farhanm/taxilink/internal/pkg/models"
)

// Computed views over the session state. Pure derivations, recomputed on
// read.

// HasActiveOrder reports whether an order is currently tracked.
func (uc *OrderUC) HasActiveOrder() bool {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.currentOrder != nil
}

// CanOrder reports whether a new order may be placed: no active order and
// no unpaid orders.
func (uc *OrderUC) CanOrder() bool {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.currentOrder == nil && !uc.hasUnpaid
}

// CanCancelOrder reports whether the current order may still be
// cancelled. Reservation orders are cancellable until their scheduled
// time; real-time orders until the trip starts.
func (uc *OrderUC) CanCancelOrder() bool {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	if uc.currentOrder == nil {
		return false
	}

	if uc.currentOrder.OrderType == models.OrderTypeReservation {
		if uc.currentOrder.ScheduledTime == nil {
			return false
		}
		return uc.currentOrder.ScheduledTime.After(time.Now())
	}

	switch uc.orderStatus {
	case models.OrderStatusPending, models.OrderStatusAssigned, models.OrderStatusPickup:
		return true
	}
	return false
}

// ChannelConnected reports whether the push channel is live.
func (uc *OrderUC) ChannelConnected() bool {
	return uc.ch != nil && uc.ch.Connected()
}
