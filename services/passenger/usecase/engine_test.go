package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farhanm/taxilink/internal/pkg/channel"
	"github.com/farhanm/taxilink/internal/pkg/constants"
	"github.com/farhanm/taxilink/internal/pkg/models"
	"github.com/farhanm/taxilink/internal/pkg/storage"
	"github.com/farhanm/taxilink/services/passenger/mocks"
)

// memTransport is an in-process channel transport for end-to-end engine
// tests.
type memTransport struct {
	mu   sync.Mutex
	conn *memConn
}

func (t *memTransport) Open(endpoint string, hooks channel.Hooks) (channel.Conn, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.conn = &memConn{subs: map[string]func([]byte){}}
	return t.conn, nil
}

func (t *memTransport) push(destination string, msg models.RealtimeMessage) {
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()
	if conn == nil {
		return
	}
	payload, _ := json.Marshal(msg)
	conn.mu.Lock()
	handler := conn.subs[destination]
	conn.mu.Unlock()
	if handler != nil {
		handler(payload)
	}
}

type memConn struct {
	mu   sync.Mutex
	subs map[string]func([]byte)
}

func (c *memConn) Subscribe(destination string, handler func(payload []byte)) (channel.Subscription, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs[destination] = handler
	return memSub{}, nil
}

func (c *memConn) Publish(destination string, payload []byte) error { return nil }
func (c *memConn) Close()                                           {}

type memSub struct{}

func (memSub) Unsubscribe() error { return nil }

// The full restore walk: a stale persisted record, a fresher server
// snapshot, the delayed channel attach, and a live status change arriving
// over the channel afterwards.
func TestEngine_RestoreThenLiveUpdates(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	accounts := mocks.NewMockAccountProvider(ctrl)
	gw := mocks.NewMockPassengerGW(ctrl)
	store := storage.NewMemoryStore()
	transport := &memTransport{}
	ch := channel.New(transport, "mem://", channel.Config{})

	cfg := &models.Config{
		Channel: models.ChannelConfig{AttachDelayMs: 10},
	}
	uc := NewOrderUC(accounts, gw, store, ch, cfg)

	persistRecord(t, store, models.PassengerRecord{
		OwnerID: "pass-1",
		Order: &models.OrderSnapshot{
			ID:          "order-42",
			OrderNumber: "ORD-0042",
			Status:      models.OrderStatusAssigned,
			PassengerID: "pass-1",
		},
		OrderStatus: models.OrderStatusAssigned,
		SavedAt:     models.NowMillis(),
	})

	accounts.EXPECT().EnsureIdentity(gomock.Any()).Return(passengerIdentity(), nil)
	gw.EXPECT().GetCurrentOrder(gomock.Any(), "pass-1").Return(&models.OrderSnapshot{
		ID:          "order-42",
		OrderNumber: "ORD-0042",
		Status:      models.OrderStatusPickup,
		PassengerID: "pass-1",
	}, nil)
	gw.EXPECT().HasUnpaidOrders(gomock.Any(), "pass-1").Return(false, nil)

	// Act
	require.NoError(t, uc.Init(context.Background()))

	// Assert: the server's status won and the record was rewritten.
	assert.Equal(t, models.OrderStatusPickup, uc.OrderStatus())
	raw, err := store.Get(context.Background(), constants.KeyCurrentOrder)
	require.NoError(t, err)
	var record models.PassengerRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &record))
	assert.Equal(t, models.OrderStatusPickup, record.OrderStatus)

	// The channel attaches after the configured delay with the full
	// destination set.
	require.Eventually(t, func() bool {
		return ch.Connected()
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 4, ch.SubscriptionCount())

	// A live status change lands through the order queue.
	transport.push("user.pass-1.queue.orders", models.RealtimeMessage{
		Type:    models.MessageOrderStatusChange,
		OrderID: "order-42",
		Status:  models.OrderStatusInProgress,
	})
	assert.Equal(t, models.OrderStatusInProgress, uc.OrderStatus())

	// Cancellation under the display number clears everything.
	transport.push("user.pass-1.queue.orders", models.RealtimeMessage{
		Type:        models.MessageOrderStatusChange,
		OrderNumber: "ORD-0042",
		Status:      models.OrderStatusCancelled,
	})
	assert.Nil(t, uc.CurrentOrder())
	assert.Equal(t, 0, store.Len())

	uc.Teardown()
	assert.False(t, ch.Connected())
}
