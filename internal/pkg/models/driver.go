package models

import "time"

// NavigationInfo holds the route the driver UI renders for the current
// order. It is dependent state: cleared whenever the current order is
// replaced or cancelled.
type NavigationInfo struct {
	DistanceMeters  float64 `json:"distanceMeters,omitempty"`
	DurationSeconds float64 `json:"durationSeconds,omitempty"`
	Polyline        string  `json:"polyline,omitempty"`
}

// DriverState is the persisted driver session snapshot. Pending offers are
// deliberately absent: they expire in seconds and are never restored.
type DriverState struct {
	DriverID        string          `json:"driverId"`
	IsOnline        bool            `json:"isOnline"`
	Position        Place           `json:"position"`
	PositionGeohash string          `json:"positionGeohash,omitempty"`
	CurrentOrder    *OrderSnapshot  `json:"currentOrder,omitempty"`
	Navigation      *NavigationInfo `json:"navigation,omitempty"`
	TodayEarnings   float64         `json:"todayEarnings"`
	CompletedOrders int             `json:"completedOrders"`
	SavedAt         int64           `json:"savedAt"`
}

// OrderOffer is a candidate order pushed to a driver before acceptance.
// Unique by OrderID within the pending queue.
type OrderOffer struct {
	OrderID       string     `json:"orderId"`
	OrderNumber   string     `json:"orderNumber,omitempty"`
	OrderType     string     `json:"orderType,omitempty"`
	Pickup        Place      `json:"pickup"`
	Destination   Place      `json:"destination"`
	PassengerID   string     `json:"passengerId,omitempty"`
	Distance      float64    `json:"distance,omitempty"`
	EstimatedFare float64    `json:"estimatedFare,omitempty"`
	ScheduledTime *time.Time `json:"scheduledTime,omitempty"`
	Timestamp     time.Time  `json:"timestamp,omitempty"`
	Countdown     int        `json:"countdown"`
	Processing    bool       `json:"processing"`
}

// DriverStatusDetail is the server's account-level status flags for a
// driver, fetched during restore.
type DriverStatusDetail struct {
	IsOnlineAndFree bool    `json:"isOnlineAndFree"`
	TodayEarnings   float64 `json:"todayEarnings"`
	CompletedOrders int     `json:"completedOrders"`
}
