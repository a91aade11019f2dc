package models

import "time"

// Order lifecycle statuses as reported by the server and the push channel.
const (
	OrderStatusScheduled  = "SCHEDULED"
	OrderStatusPending    = "PENDING"
	OrderStatusAssigned   = "ASSIGNED"
	OrderStatusPickup     = "PICKUP"
	OrderStatusInProgress = "IN_PROGRESS"
	OrderStatusCompleted  = "COMPLETED"
	OrderStatusCancelled  = "CANCELLED"
)

// Order types.
const (
	OrderTypeRealTime    = "REAL_TIME"
	OrderTypeReservation = "RESERVATION"
)

// Place is a geographical point with a display address.
type Place struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// OrderSnapshot is the client's view of one order as reported by the
// server or the push channel. Servers identify orders either by the
// primary id or by the human-facing order number, so both are carried.
type OrderSnapshot struct {
	ID string `json:"id"`
	// OrderID is an alternate primary id some payloads carry instead of
	// id. Matching must consider both.
	OrderID       string     `json:"orderId,omitempty"`
	OrderNumber   string     `json:"orderNumber,omitempty"`
	Status        string     `json:"status"`
	OrderType     string     `json:"orderType"`
	ScheduledTime *time.Time `json:"scheduledTime,omitempty"`
	Pickup        Place      `json:"pickup"`
	Destination   Place      `json:"destination"`
	PassengerID   string     `json:"passengerId"`
	DriverID      string     `json:"driverId,omitempty"`
	Fare          float64    `json:"fare,omitempty"`
	Timestamp     time.Time  `json:"timestamp,omitempty"`
}

// Matches reports whether the given id refers to this order by primary
// id, alternate id, or order number. First match wins; the fields are
// never cross-checked against each other.
func (o *OrderSnapshot) Matches(id string) bool {
	if o == nil || id == "" {
		return false
	}
	if o.ID == id {
		return true
	}
	if o.OrderID != "" && o.OrderID == id {
		return true
	}
	return o.OrderNumber != "" && o.OrderNumber == id
}

// Active reports whether the order is still in flight from the client's
// perspective.
func (o *OrderSnapshot) Active() bool {
	if o == nil {
		return false
	}
	switch o.Status {
	case OrderStatusScheduled, OrderStatusPending, OrderStatusAssigned,
		OrderStatusPickup, OrderStatusInProgress:
		return true
	}
	return false
}

// DriverInfo is the passenger-side view of the assigned driver.
type DriverInfo struct {
	ID          string  `json:"id"`
	Name        string  `json:"name,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	PlateNumber string  `json:"plateNumber,omitempty"`
	CarModel    string  `json:"carModel,omitempty"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
}

// PassengerRecord is the persisted passenger session snapshot, tagged with
// the owning account for the ownership gate.
type PassengerRecord struct {
	OwnerID     string         `json:"ownerId"`
	Order       *OrderSnapshot `json:"order,omitempty"`
	OrderStatus string         `json:"orderStatus,omitempty"`
	Driver      *DriverInfo    `json:"driver,omitempty"`
	SavedAt     int64          `json:"savedAt"`
}
