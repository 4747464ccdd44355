package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in      string
		minutes int
		ok      bool
	}{
		{"00:00", 0, true},
		{"09:30", 570, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"9:30", 0, false},
		{"09:60", 0, false},
		{"0930", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		minutes, ok := ParseClock(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		if tc.ok {
			assert.Equal(t, tc.minutes, minutes, "input %q", tc.in)
		}
	}
}

func TestWeekScheduleValidate(t *testing.T) {
	require.NoError(t, DefaultWeekSchedule().Validate())

	inverted := WeekSchedule{"monday": {IsWorking: true, StartTime: "18:00", EndTime: "09:00"}}
	assert.ErrorIs(t, inverted.Validate(), ErrMalformedSchedule)

	garbage := WeekSchedule{"monday": {IsWorking: true, StartTime: "soon", EndTime: "later"}}
	assert.ErrorIs(t, garbage.Validate(), ErrMalformedSchedule)

	// A day off is not inspected, whatever its window says.
	dayOff := WeekSchedule{"sunday": {IsWorking: false, StartTime: "bad", EndTime: "worse"}}
	assert.NoError(t, dayOff.Validate())

	badBreak := WeekSchedule{"monday": {
		IsWorking: true,
		StartTime: "09:00",
		EndTime:   "18:00",
		Breaks:    []BreakWindow{{StartTime: "14:00", EndTime: "13:00"}},
	}}
	assert.ErrorIs(t, badBreak.Validate(), ErrMalformedSchedule)
}

func TestWeekScheduleDay(t *testing.T) {
	week := DefaultWeekSchedule()

	monday := week.Day(mustDate(t, "2026-03-09"))
	assert.True(t, monday.IsWorking)

	sunday := week.Day(mustDate(t, "2026-03-15"))
	assert.False(t, sunday.IsWorking)

	var none WeekSchedule
	assert.False(t, none.Day(mustDate(t, "2026-03-09")).IsWorking)
}
