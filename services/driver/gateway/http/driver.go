package gateway_http

import (
	"context"
	"fmt"
	"time"

	"github.com/farhanm/taxilink/internal/pkg/httpclient"
	"github.com/farhanm/taxilink/internal/pkg/models"
	"github.com/farhanm/taxilink/internal/pkg/retry"
)

// DriverClient is an HTTP client for the driver backend
type DriverClient struct {
	client  *httpclient.Client
	retrier *retry.Retrier
}

// NewDriverClient creates a new driver HTTP client
func NewDriverClient(driverServiceURL string, timeout time.Duration) *DriverClient {
	return &DriverClient{
		client:  httpclient.NewClient(driverServiceURL, timeout),
		retrier: retry.NewWithDefaults(),
	}
}

// SetToken sets the bearer token for subsequent requests
func (g *DriverClient) SetToken(token string) {
	g.client.SetToken(token)
}

type orderResponse struct {
	Code    int                   `json:"code"`
	Message string                `json:"message,omitempty"`
	Data    *models.OrderSnapshot `json:"data,omitempty"`
}

type detailResponse struct {
	Code    int                        `json:"code"`
	Message string                     `json:"message,omitempty"`
	Data    *models.DriverStatusDetail `json:"data,omitempty"`
}

type fareResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
	Data    struct {
		Fare float64 `json:"fare"`
	} `json:"data"`
}

// GetCurrentOrder fetches the driver's in-flight order. Returns nil when
// the server reports none.
func (g *DriverClient) GetCurrentOrder(ctx context.Context, driverID string) (*models.OrderSnapshot, error) {
	path := fmt.Sprintf("/api/drivers/%s/current-order", driverID)

	var resp orderResponse
	err := g.retrier.Execute(ctx, func(ctx context.Context) error {
		return g.client.Get(ctx, path, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current order: %w", err)
	}
	if resp.Code != 200 {
		return nil, fmt.Errorf("current order fetch rejected: %s", resp.Message)
	}
	return resp.Data, nil
}

// GetStatusDetail fetches the driver's account-level status flags.
func (g *DriverClient) GetStatusDetail(ctx context.Context, driverID string) (*models.DriverStatusDetail, error) {
	path := fmt.Sprintf("/api/drivers/%s/status-detail", driverID)

	var resp detailResponse
	err := g.retrier.Execute(ctx, func(ctx context.Context) error {
		return g.client.Get(ctx, path, &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch status detail: %w", err)
	}
	if resp.Code != 200 {
		return nil, fmt.Errorf("status detail fetch rejected: %s", resp.Message)
	}
	return resp.Data, nil
}

// AcceptOrder confirms an offer on the server and returns the resulting
// order snapshot.
func (g *DriverClient) AcceptOrder(ctx context.Context, driverID, orderID string) (*models.OrderSnapshot, error) {
	path := fmt.Sprintf("/api/orders/%s/accept", orderID)
	body := map[string]string{"driverId": driverID}

	var resp orderResponse
	if err := g.client.Post(ctx, path, body, &resp); err != nil {
		return nil, fmt.Errorf("failed to accept order: %w", err)
	}
	if resp.Code != 200 {
		return nil, fmt.Errorf("order accept rejected: %s", resp.Message)
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("order accept returned no order")
	}
	return resp.Data, nil
}

// CompleteOrder finishes the given order and returns the settled fare.
func (g *DriverClient) CompleteOrder(ctx context.Context, driverID, orderID string) (float64, error) {
	path := fmt.Sprintf("/api/orders/%s/complete", orderID)
	body := map[string]string{"driverId": driverID}

	var resp fareResponse
	if err := g.client.Post(ctx, path, body, &resp); err != nil {
		return 0, fmt.Errorf("failed to complete order: %w", err)
	}
	if resp.Code != 200 {
		return 0, fmt.Errorf("order complete rejected: %s", resp.Message)
	}
	return resp.Data.Fare, nil
}

// GoOnline marks the driver available on the server.
func (g *DriverClient) GoOnline(ctx context.Context, driverID string) error {
	path := fmt.Sprintf("/api/drivers/%s/online", driverID)
	if err := g.client.Post(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("failed to go online: %w", err)
	}
	return nil
}

// GoOffline marks the driver unavailable on the server.
func (g *DriverClient) GoOffline(ctx context.Context, driverID string) error {
	path := fmt.Sprintf("/api/drivers/%s/offline", driverID)
	if err := g.client.Post(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("failed to go offline: %w", err)
	}
	return nil
}
