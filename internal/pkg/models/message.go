package models

// Realtime message types delivered over the push channel.
const (
	MessageOrderAssigned     = "ORDER_ASSIGNED"
	MessageDriverLocation    = "DRIVER_LOCATION"
	MessageOrderStatusChange = "ORDER_STATUS_CHANGE"
	MessageNewOrder          = "NEW_ORDER"
	MessageOrderCancelled    = "ORDER_CANCELLED"
)

// RealtimeMessage is the envelope delivered on every channel destination.
// Only Type is guaranteed; the remaining fields depend on the type and
// unknown types are forwarded untouched to registered observers.
type RealtimeMessage struct {
	Type        string         `json:"type"`
	OrderID     string         `json:"orderId,omitempty"`
	OrderNumber string         `json:"orderNumber,omitempty"`
	DriverID    string         `json:"driverId,omitempty"`
	PassengerID string         `json:"passengerId,omitempty"`
	Status      string         `json:"status,omitempty"`
	Latitude    float64        `json:"latitude,omitempty"`
	Longitude   float64        `json:"longitude,omitempty"`
	Reason      string         `json:"reason,omitempty"`
	Timestamp   int64          `json:"timestamp,omitempty"`
	Order       *OrderSnapshot `json:"order,omitempty"`
	Driver      *DriverInfo    `json:"driver,omitempty"`

	// NEW_ORDER payloads carry the offer fields inline rather than
	// nested under Order.
	OrderType            string     `json:"orderType,omitempty"`
	PickupAddress        string     `json:"pickupAddress,omitempty"`
	DestinationAddress   string     `json:"destinationAddress,omitempty"`
	PickupLatitude       float64    `json:"pickupLatitude,omitempty"`
	PickupLongitude      float64    `json:"pickupLongitude,omitempty"`
	DestinationLatitude  float64    `json:"destinationLatitude,omitempty"`
	DestinationLongitude float64    `json:"destinationLongitude,omitempty"`
	Distance             float64    `json:"distance,omitempty"`
	EstimatedFare        float64    `json:"estimatedFare,omitempty"`
	ScheduledTime        *TimeMilli `json:"scheduledTime,omitempty"`
}

// ConnectAnnouncement is published once per successful channel connection.
// The fresh timestamp and session id disambiguate sessions opened in
// quick succession.
type ConnectAnnouncement struct {
	UserID      string `json:"userId"`
	Role        string `json:"role"`
	OrderID     string `json:"orderId,omitempty"`
	SessionID   string `json:"sessionId"`
	SessionType string `json:"sessionType"`
	Timestamp   int64  `json:"timestamp"`
}

// LocationUpdate is published by the driver client on position changes.
type LocationUpdate struct {
	DriverID  string  `json:"driverId"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Geohash   string  `json:"geohash,omitempty"`
	Timestamp int64   `json:"timestamp"`
}
