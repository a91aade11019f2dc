package channel

import (
	"fmt"

	"github.com/nats-io/nats.go"
)

// NATSTransport opens channel connections over NATS. The transport's own
// reconnect machinery is disabled: reconnect policy belongs to the
// channel, which must apply the fixed backoff and the keep-alive
// predicate instead of retrying unconditionally.
type NATSTransport struct {
	opts []nats.Option
}

// NewNATSTransport creates a NATS-backed channel transport
func NewNATSTransport(opts ...nats.Option) *NATSTransport {
	return &NATSTransport{opts: opts}
}

func (t *NATSTransport) Open(endpoint string, hooks Hooks) (Conn, error) {
	opts := append([]nats.Option{
		nats.NoReconnect(),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if hooks.OnDisconnect != nil {
				hooks.OnDisconnect(err)
			}
		}),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			if hooks.OnError != nil {
				hooks.OnError(err)
			}
		}),
	}, t.opts...)

	conn, err := nats.Connect(endpoint, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS server: %w", err)
	}

	return &natsConn{conn: conn}, nil
}

type natsConn struct {
	conn *nats.Conn
}

func (c *natsConn) Subscribe(destination string, handler func(payload []byte)) (Subscription, error) {
	sub, err := c.conn.Subscribe(destination, func(msg *nats.Msg) {
		handler(msg.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to destination: %w", err)
	}
	return sub, nil
}

func (c *natsConn) Publish(destination string, payload []byte) error {
	if err := c.conn.Publish(destination, payload); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

func (c *natsConn) Close() {
	c.conn.Close()
}
