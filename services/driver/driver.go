package driver

import (
	"context"

	"github.com/farhanm/taxilink/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/farhanm/taxilink/services/driver DriverGW,AccountProvider

// DriverGW is the driver backend contract. The two fetch calls are
// idempotent and read-only; transient failures are treated as "no server
// data" during restore.
type DriverGW interface {
	// GetCurrentOrder returns the driver's in-flight order, or nil when
	// there is none.
	GetCurrentOrder(ctx context.Context, driverID string) (*models.OrderSnapshot, error)
	// GetStatusDetail returns the driver's account-level status flags.
	GetStatusDetail(ctx context.Context, driverID string) (*models.DriverStatusDetail, error)
	// AcceptOrder confirms an offer; the returned snapshot becomes the
	// current order.
	AcceptOrder(ctx context.Context, driverID, orderID string) (*models.OrderSnapshot, error)
	// CompleteOrder finishes the current order and returns the settled
	// fare.
	CompleteOrder(ctx context.Context, driverID, orderID string) (float64, error)
	// GoOnline / GoOffline flip the driver's availability on the server.
	GoOnline(ctx context.Context, driverID string) error
	GoOffline(ctx context.Context, driverID string) error
}

// AccountProvider yields the authenticated identity the engine is
// parameterized by.
type AccountProvider interface {
	EnsureIdentity(ctx context.Context) (*models.Identity, error)
}

// Observer receives every dispatched realtime message after local state
// mutation, best-effort.
type Observer func(msg models.RealtimeMessage)
