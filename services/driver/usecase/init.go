package usecase

import (
	"sync"
	"time"

	"github.com/farhanm/taxilink/internal/pkg/channel"
	"github.com/farhanm/taxilink/internal/pkg/models"
	"github.com/farhanm/taxilink/internal/pkg/storage"
	"github.com/farhanm/taxilink/services/driver"
)

// DriverUC is the driver-side reconciliation engine: online state,
// position, the current order, the pending offer queue, and the earnings
// counters, reconciled across the persisted snapshot, the server, and
// the push channel.
type DriverUC struct {
	mu       sync.RWMutex
	accounts driver.AccountProvider
	driverGW driver.DriverGW
	store    storage.Store
	ch       *channel.Channel
	cfg      *models.Config

	identity        models.Identity
	isOnline        bool
	position        models.Place
	positionGeohash string
	currentOrder    *models.OrderSnapshot
	navigation      *models.NavigationInfo
	todayEarnings   float64
	completedOrders int
	// pendingOffers is insertion-ordered and unique by order id. Never
	// persisted: offers expire in seconds.
	pendingOffers []models.OrderOffer

	observers   []driver.Observer
	attachTimer *time.Timer
}

// NewDriverUC creates a new driver usecase instance. The channel is owned
// by the engine.
func NewDriverUC(
	accounts driver.AccountProvider,
	driverGW driver.DriverGW,
	store storage.Store,
	ch *channel.Channel,
	cfg *models.Config,
) *DriverUC {
	uc := &DriverUC{
		accounts: accounts,
		driverGW: driverGW,
		store:    store,
		ch:       ch,
		cfg:      cfg,
	}
	if ch != nil {
		ch.SetHandler(uc.HandleMessage)
		ch.SetKeepAlive(uc.keepAlive)
	}
	return uc
}

// keepAlive holds while the session is worth a reconnect: an in-flight
// order or an online driver.
func (uc *DriverUC) keepAlive() bool {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	return uc.currentOrder != nil || uc.isOnline
}

// RegisterObserver appends an observer to the forwarding list.
func (uc *DriverUC) RegisterObserver(obs driver.Observer) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.observers = append(uc.observers, obs)
}

func (uc *DriverUC) snapshotTTL() time.Duration {
	hours := 24
	if uc.cfg != nil && uc.cfg.Session.SnapshotTTLHours > 0 {
		hours = uc.cfg.Session.SnapshotTTLHours
	}
	return time.Duration(hours) * time.Hour
}

func (uc *DriverUC) attachDelay() time.Duration {
	ms := 1500
	if uc.cfg != nil && uc.cfg.Channel.AttachDelayMs > 0 {
		ms = uc.cfg.Channel.AttachDelayMs
	}
	return time.Duration(ms) * time.Millisecond
}

func (uc *DriverUC) offerCountdown() int {
	if uc.cfg != nil && uc.cfg.Session.OfferCountdownSec > 0 {
		return uc.cfg.Session.OfferCountdownSec
	}
	return 30
}
