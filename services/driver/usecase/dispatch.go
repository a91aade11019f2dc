package usecase

import (
	"context"
	"time"

	"github.com/farhanm/taxilink/internal/pkg/logger"
	"github.com/farhanm/taxilink/internal/pkg/models"
	"github.com/farhanm/taxilink/services/driver"
)

// HandleMessage applies one inbound channel message to the session state,
// then forwards it to every registered observer.
func (uc *DriverUC) HandleMessage(msg models.RealtimeMessage) {
	ctx := context.Background()

	switch msg.Type {
	case models.MessageNewOrder:
		uc.handleNewOrder(msg)
	case models.MessageOrderCancelled:
		uc.handleOrderCancelled(ctx, msg)
	case models.MessageOrderStatusChange:
		uc.handleStatusChange(ctx, msg)
	default:
		logger.Debug("Unknown message type, forwarding only",
			logger.String("type", msg.Type))
	}

	uc.forward(msg)
}

func (uc *DriverUC) handleNewOrder(msg models.RealtimeMessage) {
	offer := models.OrderOffer{
		OrderID:     msg.OrderID,
		OrderNumber: msg.OrderNumber,
		OrderType:   msg.OrderType,
		Pickup: models.Place{
			Latitude:  msg.PickupLatitude,
			Longitude: msg.PickupLongitude,
			Address:   msg.PickupAddress,
		},
		Destination: models.Place{
			Latitude:  msg.DestinationLatitude,
			Longitude: msg.DestinationLongitude,
			Address:   msg.DestinationAddress,
		},
		PassengerID:   msg.PassengerID,
		Distance:      msg.Distance,
		EstimatedFare: msg.EstimatedFare,
		Timestamp:     models.Now(),
		Countdown:     uc.offerCountdown(),
		Processing:    false,
	}
	if msg.ScheduledTime != nil {
		t := time.Time(*msg.ScheduledTime)
		offer.ScheduledTime = &t
	}

	uc.mu.Lock()
	added := uc.addPendingLocked(offer)
	uc.mu.Unlock()

	if !added {
		logger.Debug("Duplicate order offer, dropping",
			logger.String("order_id", msg.OrderID))
		return
	}
	logger.Info("New order offer queued",
		logger.String("order_id", msg.OrderID),
		logger.Float64("estimated_fare", msg.EstimatedFare))
}

func (uc *DriverUC) handleOrderCancelled(ctx context.Context, msg models.RealtimeMessage) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	removed := uc.removePendingLocked(msg.OrderID) || uc.removePendingLocked(msg.OrderNumber)
	if removed {
		logger.Info("Pending offer cancelled",
			logger.String("order_id", msg.OrderID))
	}

	if uc.currentOrder != nil &&
		(uc.currentOrder.Matches(msg.OrderID) || uc.currentOrder.Matches(msg.OrderNumber)) {
		logger.Warn("Current order cancelled by the other side",
			logger.String("order_id", orderID(uc.currentOrder)),
			logger.String("reason", msg.Reason))
		uc.clearOrderStateLocked(ctx)
	}
}

func (uc *DriverUC) handleStatusChange(ctx context.Context, msg models.RealtimeMessage) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if !uc.currentOrder.Matches(msg.OrderID) && !uc.currentOrder.Matches(msg.OrderNumber) {
		logger.Debug("Status change for unrelated order, dropping",
			logger.String("message_order", msg.OrderID))
		return
	}

	uc.updateOrderStatusLocked(ctx, msg.Status)
	logger.Info("Order status changed",
		logger.String("order_id", orderID(uc.currentOrder)),
		logger.String("status", msg.Status))

	if msg.Status == models.OrderStatusCancelled {
		uc.clearOrderStateLocked(ctx)
	}
}

// forward hands the message to the registered observers. Best-effort:
// observer panics are contained so a broken UI hook cannot take the
// engine down.
func (uc *DriverUC) forward(msg models.RealtimeMessage) {
	uc.mu.RLock()
	observers := make([]driver.Observer, len(uc.observers))
	copy(observers, uc.observers)
	uc.mu.RUnlock()

	for _, obs := range observers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logger.Warn("Observer panicked", logger.Any("panic", r))
				}
			}()
			obs(msg)
		}()
	}
}
