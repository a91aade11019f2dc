package models

// Role determines which session engine an account drives and which
// ownership checks apply.
const (
	RolePassenger = "PASSENGER"
	RoleDriver    = "DRIVER"
	RoleAdmin     = "ADMIN"
)

// Identity represents the authenticated account context. It is created on
// login, destroyed on logout, and immutable in between except for token
// refresh.
type Identity struct {
	AccountID   string `json:"id"`
	Role        string `json:"userType"`
	Token       string `json:"token"`
	Username    string `json:"username"`
	Phone       string `json:"phone,omitempty"`
	PassengerID string `json:"passengerId,omitempty"`
	DriverID    string `json:"driverId,omitempty"`
}

// OwnerID returns the role-specific id used for ownership checks and
// channel destinations, falling back to the generic account id.
func (i *Identity) OwnerID() string {
	switch i.Role {
	case RolePassenger:
		if i.PassengerID != "" {
			return i.PassengerID
		}
	case RoleDriver:
		if i.DriverID != "" {
			return i.DriverID
		}
	}
	return i.AccountID
}

// Complete reports whether the role-specific id required by the session
// engines is present.
func (i *Identity) Complete() bool {
	switch i.Role {
	case RolePassenger:
		return i.PassengerID != ""
	case RoleDriver:
		return i.DriverID != ""
	}
	return i.AccountID != ""
}
