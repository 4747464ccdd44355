package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrSlotTaken         = errors.New("requested time slot is already taken")
	ErrNoArtistAvailable = errors.New("no artist available for the requested time")
	ErrMalformedSchedule = errors.New("artist schedule is malformed")
	ErrGuardianRequired  = errors.New("guardian information is required for minors")
	ErrAlreadyExists     = errors.New("already exists")
	// ErrInvalidInput marks errors caused by the caller's data; handlers map
	// it to 400 with the message intact, everything unmarked becomes a 500.
	ErrInvalidInput = errors.New("invalid input")
)
