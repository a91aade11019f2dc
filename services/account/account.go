package account

import (
	"context"
	"errors"

	"github.com/farhanm/taxilink/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/farhanm/taxilink/services/account AccountGW

// ErrNotAuthenticated is returned when an operation requires an identity
// and none is established.
var ErrNotAuthenticated = errors.New("account: not authenticated")

// ErrIncompleteIdentity is returned when the role-specific id is still
// missing after a profile refresh. Operations that require identity must
// not proceed on it.
var ErrIncompleteIdentity = errors.New("account: incomplete identity")

// LoginRequest carries login credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"userType,omitempty"`
}

// RegisterRequest carries registration data.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"userType"`
}

// AccountGW is the auth backend contract.
type AccountGW interface {
	Login(ctx context.Context, req *LoginRequest) (*models.Identity, error)
	Register(ctx context.Context, req *RegisterRequest) (*models.Identity, error)
	Logout(ctx context.Context, token string) error
	GetProfile(ctx context.Context, token string) (*models.Identity, error)
	UpdateProfile(ctx context.Context, token string, profile *models.Identity) (*models.Identity, error)
	ChangePassword(ctx context.Context, token, oldPassword, newPassword string) error
	DriverOffline(ctx context.Context, token, driverID string) error
}
