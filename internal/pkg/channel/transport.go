package channel

// Transport abstracts the push link primitive. The channel owns the
// lifecycle and reconnect policy; the transport only opens connections
// and moves frames.
type Transport interface {
	Open(endpoint string, hooks Hooks) (Conn, error)
}

// Hooks are transport callbacks. A hook may fire on any goroutine; the
// channel guards them by connection generation.
type Hooks struct {
	OnDisconnect func(err error)
	OnError      func(err error)
}

// Conn is one live connection.
type Conn interface {
	Subscribe(destination string, handler func(payload []byte)) (Subscription, error)
	Publish(destination string, payload []byte) error
	Close()
}

// Subscription is one active destination subscription.
type Subscription interface {
	Unsubscribe() error
}
