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

// Init runs the restore protocol: ownership-gated restore of the
// persisted snapshot, two concurrent authoritative fetches, the merge
// decision table, write-back, and the delayed channel attach.
func (uc *OrderUC) Init(ctx context.Context) error {
	identity, err := uc.accounts.EnsureIdentity(ctx)
	if err != nil {
		uc.ClearState(ctx)
		return err
	}

	uc.mu.Lock()
	uc.identity = *identity
	uc.mu.Unlock()

	uc.restore(ctx, identity)

	// Both fetches race independently; the merge waits for both.
	// A transient failure counts as "no server data", never a blocked
	// restore.
	var (
		wg          sync.WaitGroup
		serverOrder *models.OrderSnapshot
		unpaid      bool
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		order, err := uc.orderGW.GetCurrentOrder(ctx, identity.OwnerID())
		if err != nil {
			logger.Warn("Current order fetch failed, treating as absent", logger.Err(err))
			return
		}
		serverOrder = order
	}()
	go func() {
		defer wg.Done()
		flag, err := uc.orderGW.HasUnpaidOrders(ctx, identity.OwnerID())
		if err != nil {
			logger.Warn("Unpaid orders fetch failed, treating as none", logger.Err(err))
			return
		}
		unpaid = flag
	}()
	wg.Wait()

	uc.mu.Lock()
	uc.hasUnpaid = unpaid
	uc.mergeLocked(ctx, serverOrder)
	active := uc.currentOrder != nil
	uc.mu.Unlock()

	// Channel attach is delayed so a push event cannot race ahead of the
	// merge and get overwritten by it.
	if active {
		uc.scheduleAttach(*identity)
	}
	return nil
}

// restore adopts the persisted record as tentative state. The record is
// discarded, and deleted, when it has no owner, belongs to another
// account, or exceeds the snapshot TTL.
func (uc *OrderUC) restore(ctx context.Context, identity *models.Identity) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	ownerID := identity.OwnerID()

	savedOwner, err := uc.store.Get(ctx, constants.KeyOrderUserID)
	if err == nil && savedOwner != ownerID {
		logger.Warn("Persisted order belongs to another account, discarding",
			logger.String("saved_owner", savedOwner),
			logger.String("current_owner", ownerID))
		uc.discardPersistedLocked(ctx)
		return
	}

	raw, err := uc.store.Get(ctx, constants.KeyCurrentOrder)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("Failed to read persisted order", logger.Err(err))
		}
		return
	}

	var record models.PassengerRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		logger.Warn("Persisted order unreadable, discarding", logger.Err(err))
		uc.discardPersistedLocked(ctx)
		return
	}

	if record.OwnerID != "" && record.OwnerID != ownerID {
		logger.Warn("Persisted record owner mismatch, discarding",
			logger.String("record_owner", record.OwnerID),
			logger.String("current_owner", ownerID))
		uc.discardPersistedLocked(ctx)
		return
	}
	if record.Order != nil && record.Order.PassengerID != "" && record.Order.PassengerID != ownerID {
		logger.Warn("Persisted order passenger mismatch, discarding",
			logger.String("order_passenger", record.Order.PassengerID),
			logger.String("current_owner", ownerID))
		uc.discardPersistedLocked(ctx)
		return
	}

	age := time.Duration(models.NowMillis()-record.SavedAt) * time.Millisecond
	if age > uc.snapshotTTL() {
		logger.Warn("Persisted record expired, discarding",
			logger.Duration("age", age))
		uc.discardPersistedLocked(ctx)
		return
	}

	uc.currentOrder = record.Order
	uc.orderStatus = record.OrderStatus
	uc.driverInfo = record.Driver
	if uc.orderStatus == "" && record.Order != nil {
		uc.orderStatus = record.Order.Status
	}

	logger.Info("Restored tentative order state",
		logger.String("order_id", orderID(record.Order)),
		logger.String("status", uc.orderStatus))
}

// mergeLocked applies the merge decision table over the tentative state
// and the fetched server snapshot. The server is the tie-breaker on
// conflicting live data; the local cache is trusted for fields the server
// snapshot does not carry.
func (uc *OrderUC) mergeLocked(ctx context.Context, server *models.OrderSnapshot) {
	tentative := uc.currentOrder

	switch {
	case tentative == nil && server != nil:
		logger.Info("Server has an order the cache does not, adopting",
			logger.String("order_id", orderID(server)))
		uc.setCurrentOrderLocked(ctx, server)

	case tentative != nil && server == nil:
		logger.Warn("Cached order no longer on the server, clearing",
			logger.String("order_id", orderID(tentative)))
		uc.clearStateLocked(ctx)

	case tentative != nil && server != nil && sameOrder(tentative, server):
		if tentative.Status != server.Status {
			logger.Info("Order status corrected by server",
				logger.String("order_id", orderID(tentative)),
				logger.String("cached_status", tentative.Status),
				logger.String("server_status", server.Status))
			uc.updateOrderStatusLocked(ctx, server.Status)
		}

	case tentative != nil && server != nil:
		logger.Warn("Cached order differs from server order, server wins",
			logger.String("cached_order", orderID(tentative)),
			logger.String("server_order", orderID(server)))
		uc.driverInfo = nil
		uc.setCurrentOrderLocked(ctx, server)
	}
}

// scheduleAttach opens the channel after a short fixed delay, letting the
// hosting UI finish mounting first.
func (uc *OrderUC) scheduleAttach(identity models.Identity) {
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

// Connect opens the channel immediately, used by order-creating actions.
func (uc *OrderUC) Connect(ctx context.Context) error {
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
func (uc *OrderUC) Teardown() {
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
	uc.currentOrder = nil
	uc.orderStatus = ""
	uc.driverInfo = nil
	uc.hasUnpaid = false
	uc.discardPersistedLocked(ctx)
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
