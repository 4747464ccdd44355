package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/internal/domain"
)

var testDate = time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

func workingDay(start, end string, breaks ...domain.BreakWindow) domain.DaySchedule {
	return domain.DaySchedule{
		IsWorking: true,
		StartTime: start,
		EndTime:   end,
		Breaks:    breaks,
	}
}

func slotTimes(slots []domain.TimeSlot) []string {
	times := make([]string, 0, len(slots))
	for _, s := range slots {
		times = append(times, s.Time)
	}
	return times
}

func TestGenerateSlotsDeterministic(t *testing.T) {
	day := workingDay("09:00", "18:00", domain.BreakWindow{StartTime: "13:00", EndTime: "14:00"})

	first := GenerateSlots(testDate, time.UTC, day, 60)
	second := GenerateSlots(testDate, time.UTC, day, 60)

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
}

func TestGenerateSlotsBreakExclusion(t *testing.T) {
	day := workingDay("09:00", "18:00", domain.BreakWindow{StartTime: "13:00", EndTime: "14:00"})

	slots := GenerateSlots(testDate, time.UTC, day, 60)
	times := slotTimes(slots)

	// 12:30 would end 13:30, inside the break; 14:00 touches the break end
	// and must be offered.
	assert.NotContains(t, times, "12:30")
	assert.NotContains(t, times, "13:00")
	assert.NotContains(t, times, "13:30")
	assert.Contains(t, times, "14:00")
	assert.Contains(t, times, "12:00")

	breakStart := time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)
	breakEnd := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	for _, s := range slots {
		end := s.Datetime.Add(60 * time.Minute)
		overlaps := s.Datetime.Before(breakEnd) && end.After(breakStart)
		assert.Falsef(t, overlaps, "slot %s overlaps the break", s.Time)
	}
}

func TestGenerateSlotsStepAlignment(t *testing.T) {
	t.Run("short service steps by its own duration", func(t *testing.T) {
		slots := GenerateSlots(testDate, time.UTC, workingDay("09:00", "10:00"), 20)

		assert.Equal(t, []string{"09:00", "09:20", "09:40"}, slotTimes(slots))
	})

	t.Run("long service steps by thirty minutes", func(t *testing.T) {
		slots := GenerateSlots(testDate, time.UTC, workingDay("09:00", "11:00"), 60)

		assert.Equal(t, []string{"09:00", "09:30", "10:00"}, slotTimes(slots))
	})
}

func TestGenerateSlotsLastSlotFits(t *testing.T) {
	slots := GenerateSlots(testDate, time.UTC, workingDay("09:00", "18:00"), 60)
	times := slotTimes(slots)

	// A 17:30 candidate would end 18:30, past the window.
	assert.Contains(t, times, "17:00")
	assert.NotContains(t, times, "17:30")
}

func TestGenerateSlotsMalformedSchedule(t *testing.T) {
	tests := []struct {
		name string
		day  domain.DaySchedule
	}{
		{"not working", domain.DaySchedule{IsWorking: false, StartTime: "09:00", EndTime: "18:00"}},
		{"missing start", domain.DaySchedule{IsWorking: true, EndTime: "18:00"}},
		{"missing end", domain.DaySchedule{IsWorking: true, StartTime: "09:00"}},
		{"missing minute", workingDay("09", "18:00")},
		{"garbage start", workingDay("late", "18:00")},
		{"hour out of range", workingDay("25:00", "26:00")},
		{"empty day", domain.DaySchedule{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, GenerateSlots(testDate, time.UTC, tt.day, 60))
		})
	}
}

func TestGenerateSlotsZeroDuration(t *testing.T) {
	assert.Empty(t, GenerateSlots(testDate, time.UTC, workingDay("09:00", "18:00"), 0))
}

func TestResolveAvailabilityHalfOpenOverlap(t *testing.T) {
	slots := []domain.TimeSlot{
		{Time: "09:30", Datetime: time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC), Available: true},
		{Time: "11:00", Datetime: time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC), Available: true},
	}
	busy := []Interval{{
		Start: time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC),
	}}

	// Resolve on a day before the slots so nothing is filtered as past.
	now := time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC)
	resolved := ResolveAvailability(slots, 60, busy, now)

	require.Len(t, resolved, 2)
	assert.False(t, resolved[0].Available, "09:30-10:30 overlaps the 10:00-11:00 appointment")
	assert.True(t, resolved[1].Available, "11:00-12:00 only touches the appointment end")
}

func TestResolveAvailabilityPastSlotFiltering(t *testing.T) {
	day := workingDay("09:00", "18:00")
	slots := GenerateSlots(testDate, time.UTC, day, 60)
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	resolved := ResolveAvailability(slots, 60, nil, now)

	require.NotEmpty(t, resolved)
	for _, s := range resolved {
		assert.Truef(t, s.Datetime.After(now), "slot %s is not strictly after now", s.Time)
	}
	// 15:00 itself is removed, not merely marked unavailable.
	assert.NotContains(t, slotTimes(resolved), "15:00")
	assert.Contains(t, slotTimes(resolved), "15:30")
}

func TestResolveAvailabilityFutureDateNotFiltered(t *testing.T) {
	slots := GenerateSlots(testDate, time.UTC, workingDay("09:00", "18:00"), 60)
	now := time.Date(2026, 3, 9, 15, 0, 0, 0, time.UTC)

	resolved := ResolveAvailability(slots, 60, nil, now)

	assert.Len(t, resolved, len(slots))
}

func TestBlockingIntervals(t *testing.T) {
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	appointments := []domain.Appointment{
		{StartTime: start, EndTime: start.Add(time.Hour), Status: domain.AppointmentStatusConfirmed},
		{StartTime: start.Add(2 * time.Hour), EndTime: start.Add(3 * time.Hour), Status: domain.AppointmentStatusCancelled},
		{StartTime: start.Add(4 * time.Hour), EndTime: start.Add(5 * time.Hour), Status: domain.AppointmentStatusNoShow},
		{StartTime: start.Add(6 * time.Hour), EndTime: start.Add(7 * time.Hour), Status: domain.AppointmentStatusPending},
	}

	busy := BlockingIntervals(appointments)

	require.Len(t, busy, 2)
	assert.Equal(t, start, busy[0].Start)
	assert.Equal(t, start.Add(6*time.Hour), busy[1].Start)
}

func TestFilterElapsed(t *testing.T) {
	slots := GenerateSlots(testDate, time.UTC, workingDay("09:00", "18:00"), 60)
	now := time.Date(2026, 3, 10, 11, 15, 0, 0, time.UTC)

	kept := FilterElapsed(slots, now)

	require.NotEmpty(t, kept)
	for _, s := range kept {
		assert.True(t, s.Datetime.After(now), "slot %s has already started", s.Time)
	}
	assert.NotContains(t, slotTimes(kept), "11:00")
	assert.Contains(t, slotTimes(kept), "11:30")

	// A later date passes through untouched even when now is past midnight
	// of the slot day.
	tomorrow := GenerateSlots(testDate.AddDate(0, 0, 1), time.UTC, workingDay("09:00", "18:00"), 60)
	assert.Len(t, FilterElapsed(tomorrow, now), len(tomorrow))
}
