package usecase

import (
	"sync"

	"github.com/farhanm/taxilink/internal/pkg/models"
	"github.com/farhanm/taxilink/internal/pkg/storage"
	"github.com/farhanm/taxilink/services/account"
)

// AccountUC owns the authenticated identity and its lifecycle. All other
// components are parameterized by it.
type AccountUC struct {
	mu        sync.RWMutex
	identity  *models.Identity
	accountGW account.AccountGW
	store     storage.Store
	cfg       *models.Config
	teardowns []func()
}

// NewAccountUC creates a new account usecase instance
func NewAccountUC(
	accountGW account.AccountGW,
	store storage.Store,
	cfg *models.Config,
) *AccountUC {
	return &AccountUC{
		accountGW: accountGW,
		store:     store,
		cfg:       cfg,
	}
}

// RegisterTeardown registers a hook invoked during logout, before the
// identity is cleared. Dependent components (session engines, channel)
// register here so a stale channel can never write into a cleared
// account's persisted record.
func (uc *AccountUC) RegisterTeardown(fn func()) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.teardowns = append(uc.teardowns, fn)
}
