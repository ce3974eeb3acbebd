package models

import "time"

type DeviceClass string

const (
	DeviceLaptop DeviceClass = "laptop"
	DeviceMobile DeviceClass = "mobile"
)

type Category string

const (
	CategoryProductive    Category = "productive"
	CategorySocial        Category = "social"
	CategoryEntertainment Category = "entertainment"
	CategoryBrowser       Category = "browser"
	CategoryDevelopment   Category = "development"
	CategoryCommunication Category = "communication"
	CategoryOther         Category = "other"
)

// LaptopSample is a laptop usage record as reported by the desktop tracker.
// Timestamps arrive as strings and are validated by the normalizer.
type LaptopSample struct {
	DeviceID      string  `json:"device_id"`
	UserID        string  `json:"user_id"`
	Timestamp     string  `json:"timestamp"`
	SessionID     string  `json:"session_id,omitempty"`
	ActiveApp     string  `json:"active_app"`
	UsageDuration float64 `json:"usage_duration"` // minutes of foreground activity
	SessionLength float64 `json:"session_length"` // minutes
	IdleTime      float64 `json:"idle_time"`      // minutes
	TimeOfDay     string  `json:"time_of_day,omitempty"`
	Keystrokes    int     `json:"keystrokes,omitempty"`
	MouseClicks   int     `json:"mouse_clicks,omitempty"`
}

// MobileSample is a mobile usage record as reported by the companion app.
type MobileSample struct {
	DeviceID              string  `json:"device_id"`
	UserID                string  `json:"user_id"`
	Timestamp             string  `json:"timestamp"`
	SessionID             string  `json:"session_id,omitempty"`
	AppName               string  `json:"app_name"`
	ScreenTime            float64 `json:"screen_time"` // minutes
	Category              string  `json:"category,omitempty"`
	NotificationsReceived int     `json:"notifications_received,omitempty"`
}

// UsageEvent is the unified record both device sources normalize into.
// Events are immutable once produced and always handled as a sequence
// ordered by timestamp.
type UsageEvent struct {
	Timestamp       time.Time   `json:"timestamp"`
	DeviceClass     DeviceClass `json:"device_class"`
	AppName         string      `json:"app_name"`
	DurationMinutes float64     `json:"duration_minutes"`
	Category        Category    `json:"category"`
	IsIdle          bool        `json:"is_idle"`
	TimeOfDay       string      `json:"time_of_day"`
}

// TimeOfDay buckets an hour into the coarse labels the trackers report.
func TimeOfDay(t time.Time) string {
	hour := t.Hour()
	switch {
	case hour >= 5 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	case hour >= 17 && hour < 22:
		return "evening"
	default:
		return "night"
	}
}
