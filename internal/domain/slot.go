package domain

import (
	"time"
)

// TimeSlot is a derived, never persisted candidate start time. Datetime is
// the slot start in the store's timezone; the slot spans the half-open
// interval [Datetime, Datetime+service duration).
type TimeSlot struct {
	Time      string    `json:"time"`
	Datetime  time.Time `json:"datetime"`
	Available bool      `json:"available"`
}

// BusyInterval is an occupied window reported by an external calendar.
type BusyInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// DayAvailability is the availability response for one artist/service/date.
type DayAvailability struct {
	Date    string     `json:"date"`
	Artist  *Artist    `json:"artist"`
	Service *Service   `json:"service"`
	Slots   []TimeSlot `json:"slots"`
}
