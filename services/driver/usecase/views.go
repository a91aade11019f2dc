package usecase

import "github.com/farhanm/taxilink/internal/pkg/models"

// HasActiveOrder reports whether an in-flight order is tracked.
func (uc *DriverUC) HasActiveOrder() bool {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.currentOrder != nil && uc.currentOrder.Active()
}

// CanAcceptNewOrders reports whether new offers may be taken: online and
// not already serving an order.
func (uc *DriverUC) CanAcceptNewOrders() bool {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.isOnline && (uc.currentOrder == nil || !uc.currentOrder.Active())
}

// CanCancelOrder reports whether the in-flight order may still be backed
// out of. Once the passenger is in the car the ride runs to completion.
func (uc *DriverUC) CanCancelOrder() bool {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	if uc.currentOrder == nil {
		return false
	}
	switch uc.currentOrder.Status {
	case models.OrderStatusAssigned, models.OrderStatusPickup:
		return true
	}
	return false
}

// StatusDetail summarises the session for the hosting UI.
func (uc *DriverUC) StatusDetail() models.DriverStatusDetail {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return models.DriverStatusDetail{
		IsOnlineAndFree: uc.isOnline && uc.currentOrder == nil,
		TodayEarnings:   uc.todayEarnings,
		CompletedOrders: uc.completedOrders,
	}
}

// ChannelConnected reports the channel's connection state.
func (uc *DriverUC) ChannelConnected() bool {
	return uc.ch != nil && uc.ch.Connected()
}
