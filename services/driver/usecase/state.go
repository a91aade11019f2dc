package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mmcloughlin/geohash"

	"github.com/farhanm/taxilink/internal/pkg/constants"
	"github.com/farhanm/taxilink/internal/pkg/logger"
	"github.com/farhanm/taxilink/internal/pkg/models"
)

// IsOnline reports whether the driver is accepting work.
func (uc *DriverUC) IsOnline() bool {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.isOnline
}

// Position returns the last recorded driver position.
func (uc *DriverUC) Position() models.Place {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.position
}

// CurrentOrder returns a copy of the in-flight order, or nil.
func (uc *DriverUC) CurrentOrder() *models.OrderSnapshot {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	if uc.currentOrder == nil {
		return nil
	}
	order := *uc.currentOrder
	return &order
}

// Navigation returns a copy of the current route info, or nil.
func (uc *DriverUC) Navigation() *models.NavigationInfo {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	if uc.navigation == nil {
		return nil
	}
	nav := *uc.navigation
	return &nav
}

// TodayEarnings returns the running fare total for the day.
func (uc *DriverUC) TodayEarnings() float64 {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.todayEarnings
}

// CompletedOrders returns today's completed order count.
func (uc *DriverUC) CompletedOrders() int {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.completedOrders
}

// SetOnline flips the driver's availability on the server and locally.
// Going online opens the channel; going offline with no in-flight order
// closes it.
func (uc *DriverUC) SetOnline(ctx context.Context, online bool) error {
	uc.mu.RLock()
	identity := uc.identity
	uc.mu.RUnlock()

	driverID := identity.OwnerID()
	if driverID == "" {
		return fmt.Errorf("no authenticated driver")
	}

	var err error
	if online {
		err = uc.driverGW.GoOnline(ctx, driverID)
	} else {
		err = uc.driverGW.GoOffline(ctx, driverID)
	}
	if err != nil {
		return fmt.Errorf("failed to change availability: %w", err)
	}

	uc.mu.Lock()
	uc.isOnline = online
	if !online {
		uc.pendingOffers = nil
	}
	hasOrder := uc.currentOrder != nil
	orderID := ""
	if hasOrder {
		orderID = uc.currentOrder.ID
	}
	uc.persistLocked(ctx)
	uc.mu.Unlock()

	if uc.ch == nil {
		return nil
	}
	if online {
		if err := uc.ch.Connect(identity, orderID); err != nil {
			logger.Error("Failed to attach channel going online", logger.Err(err))
		}
	} else if !hasOrder {
		uc.ch.Close()
	}
	return nil
}

// UpdatePosition records a new driver position and geohash, and publishes
// it when the channel is up.
func (uc *DriverUC) UpdatePosition(ctx context.Context, latitude, longitude float64) {
	uc.mu.Lock()
	uc.position = models.Place{Latitude: latitude, Longitude: longitude}
	uc.positionGeohash = geohash.Encode(latitude, longitude)
	driverID := uc.identity.OwnerID()
	hash := uc.positionGeohash
	uc.persistLocked(ctx)
	uc.mu.Unlock()

	if uc.ch == nil || !uc.ch.Connected() {
		return
	}
	update := models.LocationUpdate{
		DriverID:  driverID,
		Latitude:  latitude,
		Longitude: longitude,
		Geohash:   hash,
		Timestamp: models.NowMillis(),
	}
	if err := uc.ch.Publish(constants.DestLocationUpdate, update); err != nil {
		logger.Warn("Failed to publish location update", logger.Err(err))
	}
}

// SetCurrentOrder adopts an order as the driver's in-flight order. The
// matching pending offer, if any, is removed so the queue never holds the
// accepted order.
func (uc *DriverUC) SetCurrentOrder(ctx context.Context, order *models.OrderSnapshot) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.setCurrentOrderLocked(ctx, order)
}

func (uc *DriverUC) setCurrentOrderLocked(ctx context.Context, order *models.OrderSnapshot) {
	uc.currentOrder = order
	uc.navigation = nil
	if order != nil {
		if order.Status == "" {
			order.Status = models.OrderStatusAssigned
		}
		uc.removePendingLocked(order.ID)
		uc.removePendingLocked(order.OrderID)
		uc.removePendingLocked(order.OrderNumber)
	}
	uc.persistLocked(ctx)
}

// SetNavigation records the route for the current order.
func (uc *DriverUC) SetNavigation(ctx context.Context, nav *models.NavigationInfo) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.navigation = nav
	uc.persistLocked(ctx)
}

// UpdateOrderStatus overwrites the in-flight order's status.
func (uc *DriverUC) UpdateOrderStatus(ctx context.Context, status string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.updateOrderStatusLocked(ctx, status)
}

func (uc *DriverUC) updateOrderStatusLocked(ctx context.Context, status string) {
	if uc.currentOrder == nil {
		return
	}
	uc.currentOrder.Status = status
	uc.persistLocked(ctx)
}

// UpdateEarnings overwrites the day's counters, used when the server
// reports fresher totals than the running ones.
func (uc *DriverUC) UpdateEarnings(ctx context.Context, earnings float64, completed int) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.todayEarnings = earnings
	uc.completedOrders = completed
	uc.persistLocked(ctx)
}

// ClearOrderState drops the in-flight order and its route while keeping
// availability, position, and the day's counters.
func (uc *DriverUC) ClearOrderState(ctx context.Context) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.clearOrderStateLocked(ctx)
}

func (uc *DriverUC) clearOrderStateLocked(ctx context.Context) {
	uc.currentOrder = nil
	uc.navigation = nil
	uc.persistLocked(ctx)
}

// ClearState empties the entire driver session and removes its persisted
// record.
func (uc *DriverUC) ClearState(ctx context.Context) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.clearStateLocked(ctx)
}

func (uc *DriverUC) clearStateLocked(ctx context.Context) {
	uc.isOnline = false
	uc.position = models.Place{}
	uc.positionGeohash = ""
	uc.currentOrder = nil
	uc.navigation = nil
	uc.todayEarnings = 0
	uc.completedOrders = 0
	uc.pendingOffers = nil
	uc.discardPersistedLocked(ctx)
}

// persistLocked writes the driver session through to the snapshot store.
// Pending offers are excluded: they expire in seconds and must not
// survive a reload.
func (uc *DriverUC) persistLocked(ctx context.Context) {
	ownerID := uc.identity.OwnerID()
	if ownerID == "" {
		return
	}

	state := models.DriverState{
		DriverID:        ownerID,
		IsOnline:        uc.isOnline,
		Position:        uc.position,
		PositionGeohash: uc.positionGeohash,
		CurrentOrder:    uc.currentOrder,
		Navigation:      uc.navigation,
		TodayEarnings:   uc.todayEarnings,
		CompletedOrders: uc.completedOrders,
		SavedAt:         models.NowMillis(),
	}
	raw, err := json.Marshal(state)
	if err != nil {
		logger.Error("Failed to marshal driver state", logger.Err(err))
		return
	}

	if err := uc.store.Set(ctx, constants.KeyDriverState, string(raw)); err != nil {
		logger.Error("Failed to persist driver state", logger.Err(err))
		return
	}
	_ = uc.store.Set(ctx, constants.KeyDriverUserID, ownerID)
}

func (uc *DriverUC) discardPersistedLocked(ctx context.Context) {
	if err := uc.store.Delete(ctx,
		constants.KeyDriverState, constants.KeyDriverUserID,
	); err != nil {
		logger.Error("Failed to clear persisted driver state", logger.Err(err))
	}
}
