package passenger

import (
	"context"

	"github.com/farhanm/taxilink/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/farhanm/taxilink/services/passenger PassengerGW,AccountProvider

// PassengerGW is the order backend contract. Fetches are idempotent and
// read-only; a transient failure is treated as "no server data" by the
// restore protocol.
type PassengerGW interface {
	// GetCurrentOrder returns the passenger's in-flight order, or nil
	// when there is none.
	GetCurrentOrder(ctx context.Context, passengerID string) (*models.OrderSnapshot, error)
	// HasUnpaidOrders reports whether the passenger has unpaid orders
	// blocking new ones.
	HasUnpaidOrders(ctx context.Context, passengerID string) (bool, error)
	// CancelOrder requests cancellation of the given order.
	CancelOrder(ctx context.Context, orderID, reason string) error
}

// AccountProvider yields the authenticated identity the engine is
// parameterized by.
type AccountProvider interface {
	EnsureIdentity(ctx context.Context) (*models.Identity, error)
}

// Observer receives every dispatched realtime message after local state
// mutation. Forwarding is best-effort and optional: the engine never
// assumes a UI is present.
type Observer func(msg models.RealtimeMessage)
