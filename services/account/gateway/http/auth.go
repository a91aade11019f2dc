package gateway_http

import (
	"context"
	"fmt"
	"time"

	"github.com/farhanm/taxilink/internal/pkg/httpclient"
	"github.com/farhanm/taxilink/internal/pkg/models"
	"github.com/farhanm/taxilink/services/account"
)

// AuthClient is an HTTP client for the auth backend
type AuthClient struct {
	client *httpclient.Client
}

// NewAuthClient creates a new auth HTTP client
func NewAuthClient(authServiceURL string, timeout time.Duration) *AuthClient {
	return &AuthClient{
		client: httpclient.NewClient(authServiceURL, timeout),
	}
}

// apiResponse is the backend's standard envelope
type apiResponse struct {
	Code    int              `json:"code"`
	Message string           `json:"message,omitempty"`
	Data    *models.Identity `json:"data,omitempty"`
}

// Login authenticates and returns the established identity
func (g *AuthClient) Login(ctx context.Context, req *account.LoginRequest) (*models.Identity, error) {
	var resp apiResponse
	if err := g.client.Post(ctx, "/api/users/login", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to send login request: %w", err)
	}
	if resp.Code != 200 || resp.Data == nil {
		return nil, fmt.Errorf("login rejected: %s", resp.Message)
	}
	g.client.SetToken(resp.Data.Token)
	return resp.Data, nil
}

// Register creates an account and returns the established identity
func (g *AuthClient) Register(ctx context.Context, req *account.RegisterRequest) (*models.Identity, error) {
	var resp apiResponse
	if err := g.client.Post(ctx, "/api/users/register", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to send register request: %w", err)
	}
	if resp.Code != 200 || resp.Data == nil {
		return nil, fmt.Errorf("registration rejected: %s", resp.Message)
	}
	g.client.SetToken(resp.Data.Token)
	return resp.Data, nil
}

// Logout invalidates the server-side token
func (g *AuthClient) Logout(ctx context.Context, token string) error {
	g.client.SetToken(token)
	if err := g.client.Post(ctx, "/api/users/logout", nil, nil); err != nil {
		return fmt.Errorf("failed to send logout request: %w", err)
	}
	return nil
}

// GetProfile fetches the current profile, including role-specific ids
func (g *AuthClient) GetProfile(ctx context.Context, token string) (*models.Identity, error) {
	g.client.SetToken(token)
	var resp apiResponse
	if err := g.client.Get(ctx, "/api/users/info", &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	if resp.Code != 200 || resp.Data == nil {
		return nil, fmt.Errorf("profile fetch rejected: %s", resp.Message)
	}
	return resp.Data, nil
}

// UpdateProfile pushes profile changes and returns the server's view
func (g *AuthClient) UpdateProfile(ctx context.Context, token string, profile *models.Identity) (*models.Identity, error) {
	g.client.SetToken(token)
	var resp apiResponse
	if err := g.client.Post(ctx, "/api/users/info", profile, &resp); err != nil {
		return nil, fmt.Errorf("failed to send profile update: %w", err)
	}
	if resp.Code != 200 || resp.Data == nil {
		return nil, fmt.Errorf("profile update rejected: %s", resp.Message)
	}
	return resp.Data, nil
}

// ChangePassword swaps the account password, verifying the old one
func (g *AuthClient) ChangePassword(ctx context.Context, token, oldPassword, newPassword string) error {
	g.client.SetToken(token)
	body := map[string]string{
		"oldPassword": oldPassword,
		"newPassword": newPassword,
	}
	var resp apiResponse
	if err := g.client.Post(ctx, "/api/users/password", body, &resp); err != nil {
		return fmt.Errorf("failed to send password change: %w", err)
	}
	if resp.Code != 200 {
		return fmt.Errorf("password change rejected: %s", resp.Message)
	}
	return nil
}

// DriverOffline marks the driver offline, used best-effort during logout
func (g *AuthClient) DriverOffline(ctx context.Context, token, driverID string) error {
	g.client.SetToken(token)
	path := fmt.Sprintf("/api/drivers/%s/offline", driverID)
	if err := g.client.Post(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("failed to send offline request: %w", err)
	}
	return nil
}
