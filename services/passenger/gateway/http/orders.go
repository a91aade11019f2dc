package gateway_http

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/farhanm/taxilink/internal/pkg/httpclient"
	"github.com/farhanm/taxilink/internal/pkg/models"
	"github.com/farhanm/taxilink/internal/pkg/retry"
)

// OrderClient is an HTTP client for the order backend
type OrderClient struct {
	client  *httpclient.Client
	retrier *retry.Retrier
}

// NewOrderClient creates a new order HTTP client
func NewOrderClient(orderServiceURL string, timeout time.Duration) *OrderClient {
	return &OrderClient{
		client:  httpclient.NewClient(orderServiceURL, timeout),
		retrier: retry.NewWithDefaults(),
	}
}

// SetToken sets the bearer token for subsequent requests
func (g *OrderClient) SetToken(token string) {
	g.client.SetToken(token)
}

type orderResponse struct {
	Code    int                   `json:"code"`
	Message string                `json:"message,omitempty"`
	Data    *models.OrderSnapshot `json:"data,omitempty"`
}

type listResponse struct {
	Code    int               `json:"code"`
	Message string            `json:"message,omitempty"`
	Data    []json.RawMessage `json:"data,omitempty"`
}

// GetCurrentOrder fetches the passenger's in-flight order. Returns nil
// when the server reports none.
func (g *OrderClient) GetCurrentOrder(ctx context.Context, passengerID string) (*models.OrderSnapshot, error) {
	path := fmt.Sprintf("/api/orders/passenger/%s/current", passengerID)

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

// HasUnpaidOrders reports whether the passenger has unpaid orders.
func (g *OrderClient) HasUnpaidOrders(ctx context.Context, passengerID string) (bool, error) {
	path := fmt.Sprintf("/api/orders/unpaid?passengerId=%s", passengerID)

	var resp listResponse
	err := g.retrier.Execute(ctx, func(ctx context.Context) error {
		return g.client.Get(ctx, path, &resp)
	})
	if err != nil {
		return false, fmt.Errorf("failed to fetch unpaid orders: %w", err)
	}
	if resp.Code != 200 {
		return false, fmt.Errorf("unpaid orders fetch rejected: %s", resp.Message)
	}
	return len(resp.Data) > 0, nil
}

// CancelOrder requests cancellation of the given order.
func (g *OrderClient) CancelOrder(ctx context.Context, orderID, reason string) error {
	path := fmt.Sprintf("/api/orders/%s/cancel", orderID)
	body := map[string]string{"reason": reason}

	if err := g.client.Post(ctx, path, body, nil); err != nil {
		return fmt.Errorf("failed to cancel order: %w", err)
	}
	return nil
}
