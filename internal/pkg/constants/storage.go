package constants

// Snapshot store keys. The passenger side spreads its record over several
// keys, the driver side persists one composite record; both pair the
// payload with an owner key that gates restore.
const (
	KeyCurrentOrder = "currentOrder"
	KeyOrderStatus  = "orderStatus"
	KeyDriverInfo   = "driverInfo"
	KeyOrderUserID  = "orderUserId"

	KeyDriverState  = "driverState"
	KeyDriverUserID = "driverUserId"

	KeyToken = "token"
	KeyUser  = "user"
)
