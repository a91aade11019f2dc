package usecase

import (
	"context"

	"github.com/farhanm/taxilink/internal/pkg/logger"
	"github.com/farhanm/taxilink/internal/pkg/models"
	"github.com/farhanm/taxilink/services/passenger"
)

// HandleMessage applies one inbound channel message to the session state,
// then forwards it to every registered observer. Messages whose subject
// does not match the tracked order or driver are dropped as irrelevant.
func (uc *OrderUC) HandleMessage(msg models.RealtimeMessage) {
	ctx := context.Background()

	switch msg.Type {
	case models.MessageOrderAssigned:
		uc.handleOrderAssigned(ctx, msg)
	case models.MessageDriverLocation:
		uc.handleDriverLocation(ctx, msg)
	case models.MessageOrderStatusChange:
		uc.handleStatusChange(ctx, msg)
	default:
		logger.Debug("Unknown message type, forwarding only",
			logger.String("type", msg.Type))
	}

	uc.forward(msg)
}

func (uc *OrderUC) handleOrderAssigned(ctx context.Context, msg models.RealtimeMessage) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if msg.Order != nil {
		merged := patchOrder(uc.currentOrder, msg.Order)
		merged.Status = models.OrderStatusAssigned
		uc.setCurrentOrderLocked(ctx, merged)
	}
	if msg.Driver != nil {
		uc.driverInfo = msg.Driver
	}
	uc.updateOrderStatusLocked(ctx, models.OrderStatusAssigned)

	logger.Info("Driver assigned to current order",
		logger.String("order_id", orderID(uc.currentOrder)),
		logger.String("driver_id", msg.DriverID))
}

func (uc *OrderUC) handleDriverLocation(ctx context.Context, msg models.RealtimeMessage) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	// Only the tracked counterpart's position is patched.
	if uc.driverInfo == nil || msg.DriverID != uc.driverInfo.ID {
		return
	}
	uc.driverInfo.Latitude = msg.Latitude
	uc.driverInfo.Longitude = msg.Longitude
	uc.persistLocked(ctx)
}

func (uc *OrderUC) handleStatusChange(ctx context.Context, msg models.RealtimeMessage) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	// Servers emit either the primary id or the display number; both are
	// checked before the change is applied.
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
		uc.clearStateLocked(ctx)
	}
}

// forward hands the message to the registered observers. Best-effort:
// observer panics are contained so a broken UI hook cannot take the
// engine down.
func (uc *OrderUC) forward(msg models.RealtimeMessage) {
	uc.mu.RLock()
	observers := make([]passenger.Observer, len(uc.observers))
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

// patchOrder overlays the non-zero fields of src onto a copy of dst.
// Fields missing from the payload never blank existing data: the schema
// is append/patch, not replace.
func patchOrder(dst, src *models.OrderSnapshot) *models.OrderSnapshot {
	if dst == nil {
		order := *src
		return &order
	}
	merged := *dst
	if src.ID != "" {
		merged.ID = src.ID
	}
	if src.OrderID != "" {
		merged.OrderID = src.OrderID
	}
	if src.OrderNumber != "" {
		merged.OrderNumber = src.OrderNumber
	}
	if src.Status != "" {
		merged.Status = src.Status
	}
	if src.OrderType != "" {
		merged.OrderType = src.OrderType
	}
	if src.ScheduledTime != nil {
		merged.ScheduledTime = src.ScheduledTime
	}
	if src.Pickup != (models.Place{}) {
		merged.Pickup = src.Pickup
	}
	if src.Destination != (models.Place{}) {
		merged.Destination = src.Destination
	}
	if src.PassengerID != "" {
		merged.PassengerID = src.PassengerID
	}
	if src.DriverID != "" {
		merged.DriverID = src.DriverID
	}
	if src.Fare != 0 {
		merged.Fare = src.Fare
	}
	if !src.Timestamp.IsZero() {
		merged.Timestamp = src.Timestamp
	}
	return &merged
}
