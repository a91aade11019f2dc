package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/farhanm/taxilink/internal/pkg/constants"
	"github.com/farhanm/taxilink/internal/pkg/logger"
	"github.com/farhanm/taxilink/internal/pkg/models"
)

// CurrentOrder returns a copy of the current order, or nil.
func (uc *OrderUC) CurrentOrder() *models.OrderSnapshot {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	if uc.currentOrder == nil {
		return nil
	}
	order := *uc.currentOrder
	return &order
}

// OrderStatus returns the current order status, or "" when no order is
// tracked.
func (uc *OrderUC) OrderStatus() string {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.orderStatus
}

// DriverInfo returns a copy of the assigned driver's info, or nil.
func (uc *OrderUC) DriverInfo() *models.DriverInfo {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	if uc.driverInfo == nil {
		return nil
	}
	info := *uc.driverInfo
	return &info
}

// HasUnpaidOrders reports the unpaid-order flag from the last fetch.
func (uc *OrderUC) HasUnpaidOrders() bool {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.hasUnpaid
}

// SetCurrentOrder adopts an order as the session's current order and
// persists it before returning.
func (uc *OrderUC) SetCurrentOrder(ctx context.Context, order *models.OrderSnapshot) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.setCurrentOrderLocked(ctx, order)
}

func (uc *OrderUC) setCurrentOrderLocked(ctx context.Context, order *models.OrderSnapshot) {
	uc.currentOrder = order
	if order != nil {
		uc.orderStatus = order.Status
		if uc.orderStatus == "" {
			uc.orderStatus = models.OrderStatusPending
		}
	} else {
		uc.orderStatus = ""
		uc.driverInfo = nil
	}
	uc.persistLocked(ctx)
}

// SetDriverInfo records the assigned driver's contact and position info.
func (uc *OrderUC) SetDriverInfo(ctx context.Context, info *models.DriverInfo) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.driverInfo = info
	uc.persistLocked(ctx)
}

// UpdateOrderStatus overwrites the status field of the tracked order.
func (uc *OrderUC) UpdateOrderStatus(ctx context.Context, status string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.updateOrderStatusLocked(ctx, status)
}

func (uc *OrderUC) updateOrderStatusLocked(ctx context.Context, status string) {
	uc.orderStatus = status
	if uc.currentOrder != nil {
		uc.currentOrder.Status = status
		uc.persistLocked(ctx)
	}
}

// ClearState empties the order session state and removes its persisted
// record.
func (uc *OrderUC) ClearState(ctx context.Context) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.clearStateLocked(ctx)
}

func (uc *OrderUC) clearStateLocked(ctx context.Context) {
	uc.currentOrder = nil
	uc.orderStatus = ""
	uc.driverInfo = nil
	uc.discardPersistedLocked(ctx)
}

// persistLocked writes the session state through to the snapshot store.
// Called on every mutation so a reload immediately afterwards never loses
// it.
func (uc *OrderUC) persistLocked(ctx context.Context) {
	if uc.currentOrder == nil {
		uc.discardPersistedLocked(ctx)
		return
	}
	ownerID := uc.identity.OwnerID()
	if ownerID == "" {
		return
	}

	record := models.PassengerRecord{
		OwnerID:     ownerID,
		Order:       uc.currentOrder,
		OrderStatus: uc.orderStatus,
		Driver:      uc.driverInfo,
		SavedAt:     models.NowMillis(),
	}
	raw, err := json.Marshal(record)
	if err != nil {
		logger.Error("Failed to marshal order record", logger.Err(err))
		return
	}

	if err := uc.store.Set(ctx, constants.KeyCurrentOrder, string(raw)); err != nil {
		logger.Error("Failed to persist order record", logger.Err(err))
		return
	}
	_ = uc.store.Set(ctx, constants.KeyOrderStatus, uc.orderStatus)
	_ = uc.store.Set(ctx, constants.KeyOrderUserID, ownerID)
	if uc.driverInfo != nil {
		if info, err := json.Marshal(uc.driverInfo); err == nil {
			_ = uc.store.Set(ctx, constants.KeyDriverInfo, string(info))
		}
	} else {
		_ = uc.store.Delete(ctx, constants.KeyDriverInfo)
	}
}

func (uc *OrderUC) discardPersistedLocked(ctx context.Context) {
	if err := uc.store.Delete(ctx,
		constants.KeyCurrentOrder, constants.KeyOrderStatus,
		constants.KeyDriverInfo, constants.KeyOrderUserID,
	); err != nil {
		logger.Error("Failed to clear persisted order state", logger.Err(err))
	}
}

// CancelOrder requests cancellation of the current order and clears the
// session state on success.
func (uc *OrderUC) CancelOrder(ctx context.Context, reason string) error {
	uc.mu.RLock()
	order := uc.currentOrder
	uc.mu.RUnlock()

	if order == nil {
		return fmt.Errorf("no current order to cancel")
	}
	if !uc.CanCancelOrder() {
		return fmt.Errorf("order %s is not cancellable in status %s", order.ID, order.Status)
	}

	if err := uc.orderGW.CancelOrder(ctx, order.ID, reason); err != nil {
		return fmt.Errorf("failed to cancel order: %w", err)
	}

	uc.ClearState(ctx)
	return nil
}
