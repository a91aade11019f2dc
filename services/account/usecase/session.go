package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/farhanm/taxilink/internal/pkg/constants"
	"github.com/farhanm/taxilink/internal/pkg/logger"
	"github.com/farhanm/taxilink/internal/pkg/models"
	"github.com/farhanm/taxilink/internal/pkg/storage"
	"github.com/farhanm/taxilink/internal/pkg/token"
	"github.com/farhanm/taxilink/services/account"
)

// CurrentIdentity returns a copy of the active identity or
// ErrNotAuthenticated.
func (uc *AccountUC) CurrentIdentity() (*models.Identity, error) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	if uc.identity == nil {
		return nil, account.ErrNotAuthenticated
	}
	identity := *uc.identity
	return &identity, nil
}

// Restore loads a previously persisted identity from the snapshot store.
// An expired token is treated as unauthenticated and the stored identity
// is dropped.
func (uc *AccountUC) Restore(ctx context.Context) error {
	tok, err := uc.store.Get(ctx, constants.KeyToken)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read persisted token: %w", err)
	}

	if err := uc.checkToken(tok); err != nil {
		logger.Info("Persisted token unusable, clearing stored identity", logger.Err(err))
		return uc.store.Delete(ctx, constants.KeyToken, constants.KeyUser)
	}

	raw, err := uc.store.Get(ctx, constants.KeyUser)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to read persisted profile: %w", err)
	}

	var identity models.Identity
	if err := json.Unmarshal([]byte(raw), &identity); err != nil {
		logger.Warn("Persisted profile unreadable, clearing stored identity", logger.Err(err))
		return uc.store.Delete(ctx, constants.KeyToken, constants.KeyUser)
	}
	identity.Token = tok

	uc.mu.Lock()
	uc.identity = &identity
	uc.mu.Unlock()

	logger.Info("Restored identity from snapshot store",
		logger.String("account_id", identity.AccountID),
		logger.String("role", identity.Role))
	return nil
}

// checkToken gates a persisted token. With the shared secret configured
// the signature is verified as well; otherwise only the expiry claim is
// inspected.
func (uc *AccountUC) checkToken(tok string) error {
	if uc.cfg != nil && uc.cfg.JWT.Secret != "" {
		if _, err := token.Validate(tok, uc.cfg.JWT.Secret); err != nil {
			return err
		}
	}
	return token.CheckExpiry(tok)
}

// Login establishes the identity and persists the token plus minimal
// profile.
func (uc *AccountUC) Login(ctx context.Context, req *account.LoginRequest) (*models.Identity, error) {
	identity, err := uc.accountGW.Login(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := uc.adopt(ctx, identity); err != nil {
		return nil, err
	}
	return identity, nil
}

// Register establishes a fresh identity and persists it.
func (uc *AccountUC) Register(ctx context.Context, req *account.RegisterRequest) (*models.Identity, error) {
	identity, err := uc.accountGW.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := uc.adopt(ctx, identity); err != nil {
		return nil, err
	}
	return identity, nil
}

func (uc *AccountUC) adopt(ctx context.Context, identity *models.Identity) error {
	uc.mu.Lock()
	uc.identity = identity
	uc.mu.Unlock()
	return uc.persist(ctx, identity)
}

func (uc *AccountUC) persist(ctx context.Context, identity *models.Identity) error {
	profile, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	if err := uc.store.Set(ctx, constants.KeyToken, identity.Token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	if err := uc.store.Set(ctx, constants.KeyUser, string(profile)); err != nil {
		return fmt.Errorf("failed to persist profile: %w", err)
	}
	return nil
}

// EnsureIdentity returns the active identity, refreshing the profile from
// the server when the role-specific id is missing. Fails with
// ErrIncompleteIdentity when the id is still missing after refresh.
func (uc *AccountUC) EnsureIdentity(ctx context.Context) (*models.Identity, error) {
	uc.mu.RLock()
	current := uc.identity
	uc.mu.RUnlock()

	if current == nil {
		return nil, account.ErrNotAuthenticated
	}
	if current.Complete() {
		identity := *current
		return &identity, nil
	}

	logger.Warn("Identity missing role-specific id, refreshing profile",
		logger.String("account_id", current.AccountID),
		logger.String("role", current.Role))

	fresh, err := uc.accountGW.GetProfile(ctx, current.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh profile: %w", err)
	}

	// Merge: server fields win, but the token never comes back from the
	// profile endpoint and must be preserved.
	merged := *fresh
	merged.Token = current.Token
	if merged.AccountID == "" {
		merged.AccountID = current.AccountID
	}
	if merged.Role == "" {
		merged.Role = current.Role
	}

	uc.mu.Lock()
	uc.identity = &merged
	uc.mu.Unlock()

	if err := uc.persist(ctx, &merged); err != nil {
		return nil, err
	}

	if !merged.Complete() {
		return nil, account.ErrIncompleteIdentity
	}
	identity := merged
	return &identity, nil
}

// UpdateProfile pushes profile changes to the server and adopts the
// server's view, preserving the token.
func (uc *AccountUC) UpdateProfile(ctx context.Context, profile *models.Identity) (*models.Identity, error) {
	uc.mu.RLock()
	current := uc.identity
	uc.mu.RUnlock()

	if current == nil {
		return nil, account.ErrNotAuthenticated
	}

	updated, err := uc.accountGW.UpdateProfile(ctx, current.Token, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	merged := *updated
	merged.Token = current.Token
	if merged.AccountID == "" {
		merged.AccountID = current.AccountID
	}
	if merged.Role == "" {
		merged.Role = current.Role
	}

	uc.mu.Lock()
	uc.identity = &merged
	uc.mu.Unlock()

	if err := uc.persist(ctx, &merged); err != nil {
		return nil, err
	}
	identity := merged
	return &identity, nil
}

// ChangePassword swaps the account password through the gateway. The
// session and its token stay valid.
func (uc *AccountUC) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	uc.mu.RLock()
	current := uc.identity
	uc.mu.RUnlock()

	if current == nil {
		return account.ErrNotAuthenticated
	}
	if err := uc.accountGW.ChangePassword(ctx, current.Token, oldPassword, newPassword); err != nil {
		return fmt.Errorf("failed to change password: %w", err)
	}
	return nil
}

// Logout tears the session down in strict order: best-effort driver
// offline, server-side token invalidation, dependent component teardown,
// then identity and persisted state removal. The teardown hooks run
// before the identity is cleared so reconnect timers and the channel are
// already dead when the keys go away.
func (uc *AccountUC) Logout(ctx context.Context) error {
	uc.mu.RLock()
	current := uc.identity
	teardowns := make([]func(), len(uc.teardowns))
	copy(teardowns, uc.teardowns)
	uc.mu.RUnlock()

	if current == nil {
		return account.ErrNotAuthenticated
	}

	if current.Role == models.RoleDriver && current.DriverID != "" {
		if err := uc.accountGW.DriverOffline(ctx, current.Token, current.DriverID); err != nil {
			logger.Warn("Failed to mark driver offline during logout", logger.Err(err))
		}
	}

	if err := uc.accountGW.Logout(ctx, current.Token); err != nil {
		logger.Warn("Failed to invalidate server-side token", logger.Err(err))
	}

	for _, teardown := range teardowns {
		teardown()
	}

	uc.mu.Lock()
	uc.identity = nil
	uc.mu.Unlock()

	return uc.store.Delete(ctx,
		constants.KeyToken, constants.KeyUser,
		constants.KeyCurrentOrder, constants.KeyOrderStatus,
		constants.KeyDriverInfo, constants.KeyOrderUserID,
		constants.KeyDriverState, constants.KeyDriverUserID,
	)
}
