package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/farhanm/taxilink/internal/pkg/constants"
	"github.com/farhanm/taxilink/internal/pkg/logger"
	"github.com/farhanm/taxilink/internal/pkg/models"
	"github.com/farhanm/taxilink/internal/pkg/storage"
)

// Init runs the driver restore protocol: ownership-gated restore of the
// persisted snapshot, two concurrent authoritative fetches, the merge
// decision table, write-back, and the delayed channel attach.
func (uc *DriverUC) Init(ctx context.Context) error {
	identity, err := uc.accounts.EnsureIdentity(ctx)
	if err != nil {
		uc.ClearState(ctx)
		return err
	}

	uc.mu.Lock()
	uc.identity = *identity
	uc.mu.Unlock()

	uc.restore(ctx, identity)

	var (
		wg          sync.WaitGroup
		serverOrder *models.OrderSnapshot
		detail      *models.DriverStatusDetail
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		order, err := uc.driverGW.GetCurrentOrder(ctx, identity.OwnerID())
		if err != nil {
			logger.Warn("Current order fetch failed, treating as absent", logger.Err(err))
			return
		}
		serverOrder = order
	}()
	go func() {
		defer wg.Done()
		d, err := uc.driverGW.GetStatusDetail(ctx, identity.OwnerID())
		if err != nil {
			logger.Warn("Status detail fetch failed, keeping cached counters", logger.Err(err))
			return
		}
		detail = d
	}()
	wg.Wait()

	uc.mu.Lock()
	uc.mergeLocked(ctx, serverOrder, detail)
	attach := uc.currentOrder != nil || uc.isOnline
	uc.mu.Unlock()

	// Channel attach is delayed so a push event cannot race ahead of the
	// merge and get overwritten by it.
	if attach {
		uc.scheduleAttach(*identity)
	}
	return nil
}

// restore adopts the persisted snapshot as tentative state. The snapshot
// is discarded, and deleted, when it belongs to another account or
// exceeds the snapshot TTL. Pending offers are never part of it.
func (uc *DriverUC) restore(ctx context.Context, identity *models.Identity) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	ownerID := identity.OwnerID()

	savedOwner, err := uc.store.Get(ctx, constants.KeyDriverUserID)
	if err == nil && savedOwner != ownerID {
		logger.Warn("Persisted driver state belongs to another account, discarding",
			logger.String("saved_owner", savedOwner),
			logger.String("current_owner", ownerID))
		uc.discardPersistedLocked(ctx)
		return
	}

	raw, err := uc.store.Get(ctx, constants.KeyDriverState)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("Failed to read persisted driver state", logger.Err(err))
		}
		return
	}

	var state models.DriverState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		logger.Warn("Persisted driver state unreadable, discarding", logger.Err(err))
		uc.discardPersistedLocked(ctx)
		return
	}

	if state.DriverID != "" && state.DriverID != ownerID {
		logger.Warn("Persisted driver state owner mismatch, discarding",
			logger.String("state_owner", state.DriverID),
			logger.String("current_owner", ownerID))
		uc.discardPersistedLocked(ctx)
		return
	}

	age := time.Duration(models.NowMillis()-state.SavedAt) * time.Millisecond
	if age > uc.snapshotTTL() {
		logger.Warn("Persisted driver state expired, discarding",
			logger.Duration("age", age))
		uc.discardPersistedLocked(ctx)
		return
	}

	uc.isOnline = state.IsOnline
	uc.position = state.Position
	uc.positionGeohash = state.PositionGeohash
	uc.currentOrder = state.CurrentOrder
	uc.navigation = state.Navigation
	uc.todayEarnings = state.TodayEarnings
	uc.completedOrders = state.CompletedOrders

	logger.Info("Restored tentative driver state",
		logger.Bool("is_online", uc.isOnline),
		logger.String("order_id", orderID(uc.currentOrder)))
}

// mergeLocked applies the merge decision table over the tentative state
// and the fetched server data. An order on the server forces the driver
// online: the server would not hold an assignment for an offline driver.
// The status detail, when it arrived, is authoritative for the day's
// counters.
func (uc *DriverUC) mergeLocked(ctx context.Context, server *models.OrderSnapshot, detail *models.DriverStatusDetail) {
	// Persist only on branches that changed state. With nothing cached and
	// nothing on the server there is no action, and a record the restore
	// just discarded must stay deleted.
	dirty := false

	if detail != nil {
		if detail.TodayEarnings != uc.todayEarnings || detail.CompletedOrders != uc.completedOrders {
			uc.todayEarnings = detail.TodayEarnings
			uc.completedOrders = detail.CompletedOrders
			dirty = true
		}
		if detail.IsOnlineAndFree && !uc.isOnline {
			uc.isOnline = true
			dirty = true
		}
	}

	tentative := uc.currentOrder

	switch {
	case tentative == nil && server != nil:
		logger.Info("Server has an order the cache does not, adopting",
			logger.String("order_id", orderID(server)))
		uc.isOnline = true
		uc.setCurrentOrderLocked(ctx, server)
		dirty = false

	case tentative != nil && server == nil:
		logger.Warn("Cached order no longer on the server, clearing",
			logger.String("order_id", orderID(tentative)))
		uc.clearOrderStateLocked(ctx)
		dirty = false

	case tentative != nil && server != nil && sameOrder(tentative, server):
		if !uc.isOnline {
			uc.isOnline = true
			dirty = true
		}
		if tentative.Status != server.Status {
			logger.Info("Order status corrected by server",
				logger.String("order_id", orderID(tentative)),
				logger.String("cached_status", tentative.Status),
				logger.String("server_status", server.Status))
			uc.updateOrderStatusLocked(ctx, server.Status)
			dirty = false
		}

	case tentative != nil && server != nil:
		logger.Warn("Cached order differs from server order, server wins",
			logger.String("cached_order", orderID(tentative)),
			logger.String("server_order", orderID(server)))
		uc.navigation = nil
		uc.isOnline = true
		uc.setCurrentOrderLocked(ctx, server)
		dirty = false
	}

	if dirty {
		uc.persistLocked(ctx)
	}
}

// scheduleAttach opens the channel after a short fixed delay, letting the
// hosting UI finish mounting first.
func (uc *DriverUC) scheduleAttach(identity models.Identity) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.ch == nil || uc.attachTimer != nil {
		return
	}
	orderID := ""
	if uc.currentOrder != nil {
		orderID = uc.currentOrder.ID
	}
	uc.attachTimer = time.AfterFunc(uc.attachDelay(), func() {
		uc.mu.Lock()
		uc.attachTimer = nil
		uc.mu.Unlock()
		if err := uc.ch.Connect(identity, orderID); err != nil {
			logger.Error("Failed to attach channel", logger.Err(err))
		}
	})
}

// Connect opens the channel immediately.
func (uc *DriverUC) Connect(ctx context.Context) error {
	identity, err := uc.accounts.EnsureIdentity(ctx)
	if err != nil {
		return err
	}
	orderID := ""
	if order := uc.CurrentOrder(); order != nil {
		orderID = order.ID
	}
	return uc.ch.Connect(*identity, orderID)
}

// Teardown stops timers, closes the channel, and empties in-memory and
// persisted state. Registered as the engine's logout hook.
func (uc *DriverUC) Teardown() {
	uc.mu.Lock()
	if uc.attachTimer != nil {
		uc.attachTimer.Stop()
		uc.attachTimer = nil
	}
	ch := uc.ch
	uc.mu.Unlock()

	if ch != nil {
		ch.Close()
	}

	ctx := context.Background()
	uc.mu.Lock()
	uc.clearStateLocked(ctx)
	uc.identity = models.Identity{}
	uc.mu.Unlock()
}

func sameOrder(a, b *models.OrderSnapshot) bool {
	return a.Matches(b.ID) || a.Matches(b.OrderID) || a.Matches(b.OrderNumber)
}

func orderID(o *models.OrderSnapshot) string {
	if o == nil {
		return ""
	}
	if o.OrderNumber != "" {
		return o.OrderNumber
	}
	return o.ID
}
