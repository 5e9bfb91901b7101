package models

import "time"

// Event is a calendar event read during iCal import
type Event struct {
	ID        string    // iCal event UID
	Title     string    // Event title/summary
	StartTime time.Time // Event start time
	EndTime   time.Time // Event end time
	Status    string    // Event status (CONFIRMED, CANCELLED, NEEDS-ACTION)
}
