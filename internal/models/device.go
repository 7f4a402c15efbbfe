package models

type HolterKind string

const (
	HolterRhythm   HolterKind = "rhythm"
	HolterPressure HolterKind = "pressure"
)

type ResourceStatus string

const (
	ResourceAvailable ResourceStatus = "available"
	ResourceInUse     ResourceStatus = "in_use"
	ResourceBroken    ResourceStatus = "broken"
)

// Device is a wearable Holter monitor loaned to patients for a fixed
// number of days.
type Device struct {
	ID           string         `json:"id"`
	Kind         HolterKind     `json:"kind"`
	SerialNumber string         `json:"serial_number"`
	Status       ResourceStatus `json:"status"`
}

// Cable is a lead cable paired with a device for the duration of an
// appointment. Cables are tracked independently of devices.
type Cable struct {
	ID           string         `json:"id"`
	SerialNumber string         `json:"serial_number"`
	Status       ResourceStatus `json:"status"`
}
