package usecase

import (
	"sync"
	"time"

	"github.com/farhanm/taxilink/internal/pkg/channel"
	"github.com/farhanm/taxilink/internal/pkg/models"
	"github.com/farhanm/taxilink/internal/pkg/storage"
	"github.com/farhanm/taxilink/services/passenger"
)

// OrderUC is the passenger-side reconciliation engine. It merges the
// persisted snapshot, the fetched server snapshot, and streamed channel
// events into one authoritative session state.
type OrderUC struct {
	mu       sync.RWMutex
	accounts passenger.AccountProvider
	orderGW  passenger.PassengerGW
	store    storage.Store
	ch       *channel.Channel
	cfg      *models.Config

	identity     models.Identity
	currentOrder *models.OrderSnapshot
	orderStatus  string
	driverInfo   *models.DriverInfo
	hasUnpaid    bool

	observers   []passenger.Observer
	attachTimer *time.Timer
}

// NewOrderUC creates a new passenger order usecase instance. The channel
// is owned by the engine: the engine opens and closes it, and its
// keep-alive and message handler are bound here.
func NewOrderUC(
	accounts passenger.AccountProvider,
	orderGW passenger.PassengerGW,
	store storage.Store,
	ch *channel.Channel,
	cfg *models.Config,
) *OrderUC {
	uc := &OrderUC{
		accounts: accounts,
		orderGW:  orderGW,
		store:    store,
		ch:       ch,
		cfg:      cfg,
	}
	if ch != nil {
		ch.SetHandler(uc.HandleMessage)
		ch.SetKeepAlive(uc.HasActiveOrder)
	}
	return uc
}

// RegisterObserver appends an observer to the forwarding list.
func (uc *OrderUC) RegisterObserver(obs passenger.Observer) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.observers = append(uc.observers, obs)
}

func (uc *OrderUC) snapshotTTL() time.Duration {
	hours := 24
	if uc.cfg != nil && uc.cfg.Session.SnapshotTTLHours > 0 {
		hours = uc.cfg.Session.SnapshotTTLHours
	}
	return time.Duration(hours) * time.Hour
}

func (uc *OrderUC) attachDelay() time.Duration {
	ms := 1500
	if uc.cfg != nil && uc.cfg.Channel.AttachDelayMs > 0 {
		ms = uc.cfg.Channel.AttachDelayMs
	}
	return time.Duration(ms) * time.Millisecond
}
