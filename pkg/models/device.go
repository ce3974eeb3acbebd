package models

import "time"

type DeviceStatus string

const (
	DeviceStatusActive   DeviceStatus = "active"
	DeviceStatusInactive DeviceStatus = "inactive"
)

// Device is a registered telemetry source for a user.
type Device struct {
	ID         string       `json:"id"`
	UserID     string       `json:"user_id"`
	Name       string       `json:"name"`
	Class      DeviceClass  `json:"device_class"`
	Status     DeviceStatus `json:"status"`
	CreatedAt  time.Time    `json:"created_at"`
	LastActive *time.Time   `json:"last_active,omitempty"`
}
