package models

// Config holds all client configuration, populated from environment
// variables by internal/pkg/config.
type Config struct {
	App      AppConfig
	Services ServicesConfig
	Redis    RedisConfig
	NATS     NATSConfig
	Channel  ChannelConfig
	Session  SessionConfig
	JWT      JWTConfig
	Logger   LoggerConfig
}

// AppConfig holds application metadata.
type AppConfig struct {
	Name        string `json:"name"`
	Environment string `json:"environment"`
	Version     string `json:"version"`
	Debug       bool   `json:"debug"`
}

// ServicesConfig holds the base URLs of the backend REST services the
// client fetches authoritative snapshots from.
type ServicesConfig struct {
	AuthServiceURL   string `json:"auth_service_url"`
	OrderServiceURL  string `json:"order_service_url"`
	DriverServiceURL string `json:"driver_service_url"`
	Timeout          int    `json:"timeout"` // seconds
}

// RedisConfig holds connection parameters for the snapshot store.
type RedisConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Password string `json:"password"`
	DB       int    `json:"db"`
	PoolSize int    `json:"pool_size"`
	// Prefix scopes keys to one device profile so that two clients
	// sharing a Redis never read each other's snapshots.
	Prefix string `json:"prefix"`
}

// NATSConfig holds the push channel endpoint.
type NATSConfig struct {
	URL string `json:"url"`
}

// ChannelConfig tunes the real-time channel lifecycle.
type ChannelConfig struct {
	AttachDelayMs     int `json:"attach_delay_ms"`     // delay before the post-restore attach
	ReconnectDelaySec int `json:"reconnect_delay_sec"` // fixed backoff after a drop
}

// SessionConfig tunes the restore protocol.
type SessionConfig struct {
	SnapshotTTLHours  int `json:"snapshot_ttl_hours"`  // persisted records older than this are discarded
	OfferCountdownSec int `json:"offer_countdown_sec"` // initial countdown on a new offer
}

// JWTConfig holds what the client needs to inspect its own token.
type JWTConfig struct {
	Secret string `json:"secret"`
	Issuer string `json:"issuer"`
}

// LoggerConfig holds logger configuration.
type LoggerConfig struct {
	Level    string `json:"level"`
	FilePath string `json:"file_path"`
}
