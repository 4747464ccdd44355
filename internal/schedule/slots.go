package schedule

import (
	"fmt"
	"time"

	"atelier/internal/domain"
)

// MaxStepMinutes caps the stride between candidate slot starts. Services
// shorter than this align slots to their own duration instead.
const MaxStepMinutes = 30

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps uses strict half-open semantics: touching endpoints do not
// overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && iv.End.After(other.Start)
}

// GenerateSlots walks the artist's working window for the given date and
// emits every candidate start whose full service interval fits before the
// window's end and does not intersect a declared break.
//
// A non-working day, a non-positive duration, or an unparseable start/end
// time all yield an empty sequence; callers treat that as "no availability",
// not as an error. Malformed break windows are ignored rather than
// suppressing the whole day.
func GenerateSlots(date time.Time, loc *time.Location, day domain.DaySchedule, serviceDurationMinutes int) []domain.TimeSlot {
	if serviceDurationMinutes <= 0 || !day.IsWorking {
		return nil
	}

	startMin, okStart := domain.ParseClock(day.StartTime)
	endMin, okEnd := domain.ParseClock(day.EndTime)
	if !okStart || !okEnd {
		return nil
	}

	type breakSpan struct{ start, end int }
	var breaks []breakSpan
	for _, br := range day.Breaks {
		bStart, okS := domain.ParseClock(br.StartTime)
		bEnd, okE := domain.ParseClock(br.EndTime)
		if !okS || !okE || bStart >= bEnd {
			continue
		}
		breaks = append(breaks, breakSpan{start: bStart, end: bEnd})
	}

	step := serviceDurationMinutes
	if step > MaxStepMinutes {
		step = MaxStepMinutes
	}

	year, month, dayOfMonth := date.Date()

	var slots []domain.TimeSlot
	for cur := startMin; cur+serviceDurationMinutes <= endMin; cur += step {
		candidateEnd := cur + serviceDurationMinutes

		blocked := false
		for _, br := range breaks {
			if cur < br.end && candidateEnd > br.start {
				blocked = true
				break
			}
		}
		if blocked {
			continue
		}

		slots = append(slots, domain.TimeSlot{
			Time:      fmt.Sprintf("%02d:%02d", cur/60, cur%60),
			Datetime:  time.Date(year, month, dayOfMonth, cur/60, cur%60, 0, 0, loc),
			Available: true,
		})
	}

	return slots
}

// ResolveAvailability marks each candidate slot against the busy intervals
// (blocking appointments plus external calendar busy time) and, when the
// slot's date is the current calendar day in its own location, removes slots
// whose start is not strictly after now.
func ResolveAvailability(slots []domain.TimeSlot, serviceDurationMinutes int, busy []Interval, now time.Time) []domain.TimeSlot {
	duration := time.Duration(serviceDurationMinutes) * time.Minute

	slots = FilterElapsed(slots, now)

	resolved := make([]domain.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		window := Interval{Start: slot.Datetime, End: slot.Datetime.Add(duration)}
		slot.Available = true
		for _, b := range busy {
			if window.Overlaps(b) {
				slot.Available = false
				break
			}
		}

		resolved = append(resolved, slot)
	}

	return resolved
}

// FilterElapsed drops slots on now's calendar day, in the slot's own
// location, whose start is not strictly after now. Other days pass through
// untouched. Cached availability for today is re-filtered with this on every
// read, so an entry written minutes ago never serves an elapsed slot.
func FilterElapsed(slots []domain.TimeSlot, now time.Time) []domain.TimeSlot {
	kept := make([]domain.TimeSlot, 0, len(slots))
	for _, slot := range slots {
		localNow := now.In(slot.Datetime.Location())
		sy, sm, sd := slot.Datetime.Date()
		ny, nm, nd := localNow.Date()
		if sy == ny && sm == nm && sd == nd && !slot.Datetime.After(localNow) {
			continue
		}
		kept = append(kept, slot)
	}
	return kept
}

// BlockingIntervals extracts the occupied intervals from a day's
// appointments, skipping cancelled and no-show entries.
func BlockingIntervals(appointments []domain.Appointment) []Interval {
	var busy []Interval
	for _, apt := range appointments {
		if !apt.Status.Blocks() {
			continue
		}
		busy = append(busy, Interval{Start: apt.StartTime, End: apt.EndTime})
	}
	return busy
}
