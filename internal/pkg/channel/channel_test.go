package channel

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/farhanm/taxilink/internal/pkg/constants"
	"github.com/farhanm/taxilink/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTransport records every opened connection and lets tests drive
// disconnect hooks by hand.
type fakeTransport struct {
	mu      sync.Mutex
	conns   []*fakeConn
	openErr error
}

func (t *fakeTransport) Open(endpoint string, hooks Hooks) (Conn, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.openErr != nil {
		return nil, t.openErr
	}
	conn := &fakeConn{hooks: hooks, subs: map[string]func([]byte){}}
	t.conns = append(t.conns, conn)
	return conn, nil
}

func (t *fakeTransport) lastConn() *fakeConn {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.conns) == 0 {
		return nil
	}
	return t.conns[len(t.conns)-1]
}

func (t *fakeTransport) openCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.conns)
}

type fakeConn struct {
	mu        sync.Mutex
	hooks     Hooks
	subs      map[string]func([]byte)
	published map[string][][]byte
	closed    bool
	liveSubs  int
}

func (c *fakeConn) Subscribe(destination string, handler func(payload []byte)) (Subscription, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs[destination] = handler
	c.liveSubs++
	return &fakeSub{conn: c}, nil
}

func (c *fakeConn) Publish(destination string, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.published == nil {
		c.published = map[string][][]byte{}
	}
	c.published[destination] = append(c.published[destination], payload)
	return nil
}

func (c *fakeConn) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

// emit pushes a raw frame into a subscribed destination.
func (c *fakeConn) emit(destination string, payload []byte) {
	c.mu.Lock()
	handler := c.subs[destination]
	c.mu.Unlock()
	if handler != nil {
		handler(payload)
	}
}

func (c *fakeConn) activeSubscriptions() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.liveSubs
}

type fakeSub struct {
	conn *fakeConn
	once sync.Once
}

func (s *fakeSub) Unsubscribe() error {
	s.once.Do(func() {
		s.conn.mu.Lock()
		s.conn.liveSubs--
		s.conn.mu.Unlock()
	})
	return nil
}

func passengerIdentity() models.Identity {
	return models.Identity{
		AccountID:   "acc-1",
		Role:        models.RolePassenger,
		PassengerID: "pass-1",
		Token:       "token-1",
	}
}

func TestConnect_SubscribesAllDestinationsAndAnnounces(t *testing.T) {
	// Arrange
	transport := &fakeTransport{}
	ch := New(transport, "nats://localhost:4222", Config{})

	// Act
	err := ch.Connect(passengerIdentity(), "order-1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, StatusConnected, ch.Status())
	assert.Equal(t, 4, ch.SubscriptionCount())

	conn := transport.lastConn()
	require.NotNil(t, conn)
	assert.Contains(t, conn.subs, "user.pass-1.queue.orders")
	assert.Contains(t, conn.subs, "user.pass-1.queue.notifications")
	assert.Contains(t, conn.subs, "user.pass-1.queue.connection")
	assert.Contains(t, conn.subs, "topic.passenger.pass-1")

	announcements := conn.published[constants.DestPassengerConnect]
	require.Len(t, announcements, 1)

	var ann models.ConnectAnnouncement
	require.NoError(t, json.Unmarshal(announcements[0], &ann))
	assert.Equal(t, "pass-1", ann.UserID)
	assert.Equal(t, "order-1", ann.OrderID)
	assert.Equal(t, constants.SessionTypePassenger, ann.SessionType)
	assert.NotEmpty(t, ann.SessionID)
	assert.NotZero(t, ann.Timestamp)
}

func TestConnect_DriverUsesDriverDestinations(t *testing.T) {
	// Arrange
	transport := &fakeTransport{}
	ch := New(transport, "nats://localhost:4222", Config{})
	identity := models.Identity{
		AccountID: "acc-2",
		Role:      models.RoleDriver,
		DriverID:  "drv-1",
	}

	// Act
	err := ch.Connect(identity, "")

	// Assert
	require.NoError(t, err)
	conn := transport.lastConn()
	assert.Contains(t, conn.subs, "topic.driver.drv-1")
	assert.Len(t, conn.published[constants.DestDriverConnect], 1)
}

func TestConnect_ForceTearsDownExistingConnection(t *testing.T) {
	// Arrange
	transport := &fakeTransport{}
	ch := New(transport, "nats://localhost:4222", Config{})
	require.NoError(t, ch.Connect(passengerIdentity(), ""))
	first := transport.lastConn()

	// Act
	require.NoError(t, ch.Connect(passengerIdentity(), ""))

	// Assert: the old connection is fully released, never leaked.
	assert.True(t, first.closed)
	assert.Equal(t, 0, first.activeSubscriptions())
	assert.Equal(t, 2, transport.openCount())
	assert.Equal(t, 4, ch.SubscriptionCount())
}

func TestDeliver_StaleGenerationIsDropped(t *testing.T) {
	// Arrange
	transport := &fakeTransport{}
	ch := New(transport, "nats://localhost:4222", Config{})

	var received []models.RealtimeMessage
	var mu sync.Mutex
	ch.SetHandler(func(msg models.RealtimeMessage) {
		mu.Lock()
		received = append(received, msg)
		mu.Unlock()
	})

	require.NoError(t, ch.Connect(passengerIdentity(), ""))
	stale := transport.lastConn()
	require.NoError(t, ch.Connect(passengerIdentity(), ""))
	live := transport.lastConn()

	payload, _ := json.Marshal(models.RealtimeMessage{Type: models.MessageOrderStatusChange})

	// Act: the superseded connection fires a late callback.
	stale.emit("user.pass-1.queue.orders", payload)
	live.emit("user.pass-1.queue.orders", payload)

	// Assert
	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, received, 1)
}

func TestDeliver_MalformedPayloadIsDropped(t *testing.T) {
	// Arrange
	transport := &fakeTransport{}
	ch := New(transport, "nats://localhost:4222", Config{})

	var received int
	var mu sync.Mutex
	ch.SetHandler(func(models.RealtimeMessage) {
		mu.Lock()
		received++
		mu.Unlock()
	})
	require.NoError(t, ch.Connect(passengerIdentity(), ""))
	conn := transport.lastConn()

	// Act
	conn.emit("user.pass-1.queue.orders", []byte("{not json"))
	conn.emit("user.pass-1.queue.orders", []byte(`{"type":"ORDER_ASSIGNED"}`))

	// Assert: the bad frame is dropped, the channel stays healthy.
	assert.Equal(t, StatusConnected, ch.Status())
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, received)
}

func TestDisconnect_ReconnectsOnceWhileKeepAliveHolds(t *testing.T) {
	// Arrange
	transport := &fakeTransport{}
	ch := New(transport, "nats://localhost:4222", Config{ReconnectDelay: 20 * time.Millisecond})
	ch.SetKeepAlive(func() bool { return true })
	require.NoError(t, ch.Connect(passengerIdentity(), "order-1"))
	conn := transport.lastConn()

	// Act: a double disconnect schedules only a single attempt.
	conn.hooks.OnDisconnect(errors.New("broken pipe"))
	conn.hooks.OnDisconnect(errors.New("broken pipe"))

	assert.Equal(t, StatusDisconnected, ch.Status())

	// Assert
	assert.Eventually(t, func() bool {
		return ch.Connected()
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, transport.openCount())
}

func TestDisconnect_ManualReconnectSupersedesPendingTimer(t *testing.T) {
	// Arrange
	transport := &fakeTransport{}
	ch := New(transport, "nats://localhost:4222", Config{ReconnectDelay: 30 * time.Millisecond})
	ch.SetKeepAlive(func() bool { return true })
	require.NoError(t, ch.Connect(passengerIdentity(), "order-1"))
	conn := transport.lastConn()
	conn.hooks.OnDisconnect(errors.New("broken pipe"))

	// Act: a user action re-establishes the channel before the timer fires.
	require.NoError(t, ch.Connect(passengerIdentity(), "order-1"))

	// Assert: the timer finds a live channel and opens nothing extra.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, StatusConnected, ch.Status())
	assert.Equal(t, 2, transport.openCount())
	assert.Equal(t, 4, ch.SubscriptionCount())
}

func TestDisconnect_IdleSessionDoesNotReconnect(t *testing.T) {
	// Arrange
	transport := &fakeTransport{}
	ch := New(transport, "nats://localhost:4222", Config{ReconnectDelay: 10 * time.Millisecond})
	ch.SetKeepAlive(func() bool { return false })
	require.NoError(t, ch.Connect(passengerIdentity(), ""))
	conn := transport.lastConn()

	// Act
	conn.hooks.OnDisconnect(errors.New("broken pipe"))

	// Assert
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, StatusDisconnected, ch.Status())
	assert.Equal(t, 1, transport.openCount())
}

func TestClose_CancelsPendingReconnect(t *testing.T) {
	// Arrange
	transport := &fakeTransport{}
	ch := New(transport, "nats://localhost:4222", Config{ReconnectDelay: 20 * time.Millisecond})
	ch.SetKeepAlive(func() bool { return true })
	require.NoError(t, ch.Connect(passengerIdentity(), "order-1"))
	conn := transport.lastConn()
	conn.hooks.OnDisconnect(errors.New("broken pipe"))

	// Act
	ch.Close()

	// Assert
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, StatusDisconnected, ch.Status())
	assert.Equal(t, 1, transport.openCount())
	assert.Equal(t, 0, ch.SubscriptionCount())
	assert.Equal(t, 0, conn.activeSubscriptions())
}

func TestPublish_RequiresLiveConnection(t *testing.T) {
	// Arrange
	transport := &fakeTransport{}
	ch := New(transport, "nats://localhost:4222", Config{})

	// Act
	err := ch.Publish("app.driver.location", map[string]string{"driverId": "drv-1"})

	// Assert
	assert.Error(t, err)
}

func TestConnect_OpenFailureSetsErrorStatus(t *testing.T) {
	// Arrange
	transport := &fakeTransport{openErr: errors.New("connection refused")}
	ch := New(transport, "nats://localhost:4222", Config{})

	// Act
	err := ch.Connect(passengerIdentity(), "")

	// Assert
	assert.Error(t, err)
	assert.Equal(t, StatusError, ch.Status())
	assert.Equal(t, 0, ch.SubscriptionCount())
}
