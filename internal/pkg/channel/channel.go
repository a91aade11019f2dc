package channel

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/farhanm/taxilink/internal/pkg/constants"
	"github.com/farhanm/taxilink/internal/pkg/logger"
	"github.com/farhanm/taxilink/internal/pkg/models"
	"github.com/google/uuid"
)

// Status is the channel connection state.
type Status int

const (
	StatusDisconnected Status = iota
	StatusConnecting
	StatusConnected
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusDisconnected:
		return "DISCONNECTED"
	case StatusConnecting:
		return "CONNECTING"
	case StatusConnected:
		return "CONNECTED"
	case StatusError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// Handler consumes decoded realtime messages.
type Handler func(msg models.RealtimeMessage)

// KeepAlive decides whether a dropped connection is worth re-establishing.
// Idle sessions (no active order, driver offline, logged out) must not
// produce reconnect storms.
type KeepAlive func() bool

// Config tunes the channel lifecycle.
type Config struct {
	ReconnectDelay time.Duration
}

// Channel is the client's real-time push link. At most one live
// connection per identity: Connect force-tears-down any existing
// connection first, and every transport callback is checked against the
// connection generation so a torn-down instance can never deliver.
type Channel struct {
	mu        sync.Mutex
	transport Transport
	endpoint  string
	cfg       Config

	status         Status
	conn           Conn
	subs           []Subscription
	generation     uint64
	reconnectTimer *time.Timer

	identity models.Identity
	orderID  string

	handler   Handler
	keepAlive KeepAlive
}

// New creates a channel over the given transport and endpoint
func New(transport Transport, endpoint string, cfg Config) *Channel {
	if cfg.ReconnectDelay == 0 {
		cfg.ReconnectDelay = 5 * time.Second
	}
	return &Channel{
		transport: transport,
		endpoint:  endpoint,
		cfg:       cfg,
		status:    StatusDisconnected,
	}
}

// SetHandler registers the message handler. Must be set before Connect.
func (c *Channel) SetHandler(h Handler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handler = h
}

// SetKeepAlive registers the reconnect predicate.
func (c *Channel) SetKeepAlive(fn KeepAlive) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.keepAlive = fn
}

// Status returns the current connection status.
func (c *Channel) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Connected reports whether the channel currently has a live connection.
func (c *Channel) Connected() bool {
	return c.Status() == StatusConnected
}

// SubscriptionCount reports the number of active destination
// subscriptions.
func (c *Channel) SubscriptionCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.subs)
}

// Connect opens the channel for the given identity, subscribing to its
// destinations and announcing the session. An existing connection is
// force-torn-down first.
func (c *Channel) Connect(identity models.Identity, orderID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		logger.Info("Force closing existing channel connection",
			logger.String("user_id", identity.OwnerID()))
		c.teardownLocked()
	}

	c.identity = identity
	c.orderID = orderID
	c.status = StatusConnecting
	c.generation++
	gen := c.generation

	conn, err := c.transport.Open(c.endpoint, Hooks{
		OnDisconnect: func(err error) { c.handleDisconnect(gen, err) },
		OnError: func(err error) {
			logger.Error("Channel transport error", logger.Err(err))
		},
	})
	if err != nil {
		c.status = StatusError
		return fmt.Errorf("failed to open channel: %w", err)
	}
	c.conn = conn

	if err := c.subscribeLocked(gen); err != nil {
		c.teardownLocked()
		c.status = StatusError
		return err
	}

	if err := c.announceLocked(); err != nil {
		// The subscriptions are live; a failed announcement is logged
		// but does not bring the channel down.
		logger.Warn("Failed to publish connect announcement", logger.Err(err))
	}

	c.status = StatusConnected
	logger.Info("Channel connected",
		logger.String("user_id", c.identity.OwnerID()),
		logger.String("role", c.identity.Role),
		logger.Int("subscriptions", len(c.subs)))
	return nil
}

// subscribeLocked subscribes the identity-scoped destinations: the order
// queue, the notification queue, the connection-ack queue, and the
// broadcast topic as a redundant backup path.
func (c *Channel) subscribeLocked(gen uint64) error {
	ownerID := c.identity.OwnerID()

	topic := fmt.Sprintf(constants.DestPassengerTopic, ownerID)
	if c.identity.Role == models.RoleDriver {
		topic = fmt.Sprintf(constants.DestDriverTopic, ownerID)
	}

	destinations := []string{
		fmt.Sprintf(constants.DestOrderQueue, ownerID),
		fmt.Sprintf(constants.DestNotificationQueue, ownerID),
		fmt.Sprintf(constants.DestConnectionQueue, ownerID),
		topic,
	}

	for _, dest := range destinations {
		sub, err := c.conn.Subscribe(dest, func(payload []byte) {
			c.deliver(gen, payload)
		})
		if err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", dest, err)
		}
		c.subs = append(c.subs, sub)
	}
	return nil
}

// announceLocked publishes the connect announcement with a fresh
// timestamp and session id, disambiguating sessions opened in quick
// succession.
func (c *Channel) announceLocked() error {
	dest := constants.DestPassengerConnect
	sessionType := constants.SessionTypePassenger
	if c.identity.Role == models.RoleDriver {
		dest = constants.DestDriverConnect
		sessionType = constants.SessionTypeDriver
	}

	announcement := models.ConnectAnnouncement{
		UserID:      c.identity.OwnerID(),
		Role:        c.identity.Role,
		OrderID:     c.orderID,
		SessionID:   uuid.NewString(),
		SessionType: sessionType,
		Timestamp:   models.NowMillis(),
	}

	payload, err := json.Marshal(announcement)
	if err != nil {
		return fmt.Errorf("failed to marshal connect announcement: %w", err)
	}
	return c.conn.Publish(dest, payload)
}

// Publish sends a JSON payload to a destination over the live connection.
func (c *Channel) Publish(destination string, v interface{}) error {
	c.mu.Lock()
	conn := c.conn
	connected := c.status == StatusConnected
	c.mu.Unlock()

	if !connected || conn == nil {
		return fmt.Errorf("channel is not connected")
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	return conn.Publish(destination, payload)
}

// deliver decodes one inbound frame and hands it to the handler.
// Malformed payloads are logged and dropped without affecting channel
// health. Frames from a superseded connection generation are dropped.
func (c *Channel) deliver(gen uint64, payload []byte) {
	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return
	}
	handler := c.handler
	c.mu.Unlock()

	if handler == nil {
		return
	}

	var msg models.RealtimeMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		logger.Warn("Dropping malformed channel message", logger.Err(err))
		return
	}

	handler(msg)
}

// handleDisconnect reacts to a transport-level drop. Exactly one
// reconnect attempt is scheduled, and only when the keep-alive predicate
// still holds.
func (c *Channel) handleDisconnect(gen uint64, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return
	}

	logger.Warn("Channel disconnected", logger.Err(err))
	c.status = StatusDisconnected

	if c.keepAlive == nil || !c.keepAlive() {
		logger.Debug("Idle session, not scheduling reconnect")
		return
	}
	if c.reconnectTimer != nil {
		return
	}

	logger.Info("Scheduling channel reconnect",
		logger.Duration("delay", c.cfg.ReconnectDelay))
	c.reconnectTimer = time.AfterFunc(c.cfg.ReconnectDelay, c.reconnect)
}

// reconnect fires from the backoff timer. It no-ops when the channel has
// already been re-established by a user action or torn down by logout.
func (c *Channel) reconnect() {
	c.mu.Lock()
	c.reconnectTimer = nil
	if c.status == StatusConnected || c.status == StatusConnecting {
		c.mu.Unlock()
		return
	}
	if c.keepAlive == nil || !c.keepAlive() {
		c.mu.Unlock()
		return
	}
	identity := c.identity
	orderID := c.orderID
	c.mu.Unlock()

	if err := c.Connect(identity, orderID); err != nil {
		logger.Error("Channel reconnect failed", logger.Err(err))
	}
}

// Close tears the channel down: clears any pending reconnect, drops every
// subscription, and invalidates the connection generation so stale
// callbacks can never deliver.
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.teardownLocked()
	c.status = StatusDisconnected
}

func (c *Channel) teardownLocked() {
	if c.reconnectTimer != nil {
		c.reconnectTimer.Stop()
		c.reconnectTimer = nil
	}
	for _, sub := range c.subs {
		if err := sub.Unsubscribe(); err != nil {
			logger.Debug("Failed to unsubscribe destination", logger.Err(err))
		}
	}
	c.subs = nil
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
	c.generation++
}
