package usecase

import (
	"context"
	"fmt"

	"github.com/farhanm/taxilink/internal/pkg/logger"
	"github.com/farhanm/taxilink/internal/pkg/models"
)

// PendingOffers returns a copy of the pending offer queue in arrival
// order.
func (uc *DriverUC) PendingOffers() []models.OrderOffer {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	offers := make([]models.OrderOffer, len(uc.pendingOffers))
	copy(offers, uc.pendingOffers)
	return offers
}

// AddPendingOffer appends an offer to the queue. Duplicates by order id
// are dropped, and an offer for the in-flight order is never queued.
func (uc *DriverUC) AddPendingOffer(offer models.OrderOffer) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.addPendingLocked(offer)
}

func (uc *DriverUC) addPendingLocked(offer models.OrderOffer) bool {
	if uc.currentOrder != nil && uc.currentOrder.Matches(offer.OrderID) {
		return false
	}
	for _, existing := range uc.pendingOffers {
		if existing.OrderID == offer.OrderID {
			return false
		}
	}
	uc.pendingOffers = append(uc.pendingOffers, offer)
	return true
}

// RemovePendingOffer drops the offer matching the given id, if present.
func (uc *DriverUC) RemovePendingOffer(id string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.removePendingLocked(id)
}

func (uc *DriverUC) removePendingLocked(id string) bool {
	if id == "" {
		return false
	}
	for i, offer := range uc.pendingOffers {
		if offer.OrderID == id || (offer.OrderNumber != "" && offer.OrderNumber == id) {
			uc.pendingOffers = append(uc.pendingOffers[:i], uc.pendingOffers[i+1:]...)
			return true
		}
	}
	return false
}

// ClearPendingOffers empties the offer queue.
func (uc *DriverUC) ClearPendingOffers() {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.pendingOffers = nil
}

// AcceptOffer confirms a pending offer with the server. On success the
// returned snapshot becomes the current order and the offer leaves the
// queue; on failure the offer stays pending and is unmarked.
func (uc *DriverUC) AcceptOffer(ctx context.Context, offerID string) error {
	uc.mu.Lock()
	idx := -1
	for i, offer := range uc.pendingOffers {
		if offer.OrderID == offerID {
			idx = i
			break
		}
	}
	if idx < 0 {
		uc.mu.Unlock()
		return fmt.Errorf("no pending offer %s", offerID)
	}
	if uc.pendingOffers[idx].Processing {
		uc.mu.Unlock()
		return fmt.Errorf("offer %s is already being processed", offerID)
	}
	uc.pendingOffers[idx].Processing = true
	driverID := uc.identity.OwnerID()
	uc.mu.Unlock()

	order, err := uc.driverGW.AcceptOrder(ctx, driverID, offerID)
	if err != nil {
		uc.mu.Lock()
		for i := range uc.pendingOffers {
			if uc.pendingOffers[i].OrderID == offerID {
				uc.pendingOffers[i].Processing = false
			}
		}
		uc.mu.Unlock()
		return fmt.Errorf("failed to accept order: %w", err)
	}

	uc.mu.Lock()
	uc.setCurrentOrderLocked(ctx, order)
	uc.mu.Unlock()

	logger.Info("Order accepted",
		logger.String("order_id", orderID(order)),
		logger.String("driver_id", driverID))
	return nil
}

// CompleteOrder finishes the in-flight order, folds the settled fare into
// the day's counters, and clears the order state.
func (uc *DriverUC) CompleteOrder(ctx context.Context) error {
	uc.mu.RLock()
	order := uc.currentOrder
	driverID := uc.identity.OwnerID()
	uc.mu.RUnlock()

	if order == nil {
		return fmt.Errorf("no current order to complete")
	}

	fare, err := uc.driverGW.CompleteOrder(ctx, driverID, order.ID)
	if err != nil {
		return fmt.Errorf("failed to complete order: %w", err)
	}

	uc.mu.Lock()
	uc.todayEarnings += fare
	uc.completedOrders++
	uc.clearOrderStateLocked(ctx)
	uc.mu.Unlock()

	logger.Info("Order completed",
		logger.String("order_id", orderID(order)),
		logger.Float64("fare", fare))
	return nil
}
