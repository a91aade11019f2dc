package constants

// Channel destination formats. Identity-scoped queues plus a broadcast
// topic kept as a redundant backup path.
const (
	DestOrderQueue        = "user.%s.queue.orders"        // Format: user.{user_id}.queue.orders
	DestNotificationQueue = "user.%s.queue.notifications" // Format: user.{user_id}.queue.notifications
	DestConnectionQueue   = "user.%s.queue.connection"    // Format: user.{user_id}.queue.connection
	DestDriverTopic       = "topic.driver.%s"             // Format: topic.driver.{driver_id}
	DestPassengerTopic    = "topic.passenger.%s"          // Format: topic.passenger.{passenger_id}
)

// Destinations the client publishes to.
const (
	DestPassengerConnect = "app.passenger.connect"
	DestDriverConnect    = "app.driver.connect"
	DestLocationUpdate   = "app.driver.location"
)

// Session types carried in connect announcements.
const (
	SessionTypePassenger = "PASSENGER_SESSION"
	SessionTypeDriver    = "DRIVER_SESSION"
)
