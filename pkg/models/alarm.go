package models

import "time"

// AlarmStatus tracks an armed alarm within the current session
type AlarmStatus string

const (
	AlarmStatusArmed   AlarmStatus = "Armed"   // Timer is running
	AlarmStatusStopped AlarmStatus = "Stopped" // Timer was stopped before firing (app quit)
)

// ArmedAlarm is the in-memory handle for a one-shot alarm timer. It is never persisted.
type ArmedAlarm struct {
	ID     string      // Session-unique identifier (UUID)
	Label  string      // Alarm label, the persisted identity
	FireAt time.Time   // When the timer fires
	Delay  time.Duration
	Status AlarmStatus
}

// RoundToMinute rounds a time down to the nearest minute
func RoundToMinute(t time.Time) time.Time {
	return t.Truncate(time.Minute)
}
