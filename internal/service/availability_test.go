package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"atelier/internal/calendar"
	"atelier/internal/domain"
	"atelier/internal/schedule"
)

type availabilityFixture struct {
	stores    *memStoreRepo
	artists   *memArtistRepo
	services  *memServiceRepo
	appts     *memAppointmentRepo
	calendars *calendar.Registry
	static    *calendar.StaticProvider
	svc       *AvailabilityServiceImpl
}

func newAvailabilityFixture(t *testing.T, now time.Time) *availabilityFixture {
	t.Helper()

	f := &availabilityFixture{
		stores: &memStoreRepo{stores: map[int64]domain.Store{
			1: {ID: 1, Name: "Downtown", Slug: "downtown", Timezone: "UTC"},
		}},
		artists: &memArtistRepo{artists: []domain.Artist{
			{ID: 1, StoreID: 1, Name: "Anna", Schedule: domain.DefaultWeekSchedule(), IsActive: true},
		}},
		services: &memServiceRepo{services: map[int64]domain.Service{
			1: {ID: 1, StoreID: 1, Name: "Haircut", DurationMinutes: 60, Price: 50, IsActive: true},
			2: {ID: 2, StoreID: 2, Name: "Elsewhere", DurationMinutes: 30, Price: 20, IsActive: true},
		}},
		appts:     newMemAppointmentRepo(),
		calendars: calendar.NewRegistry(),
		static:    calendar.NewStaticProvider("static"),
	}
	f.calendars.Register(f.static)

	f.svc = NewAvailabilityService(
		f.artists, f.services, f.stores, f.appts, nil, f.calendars,
		func() time.Time { return now }, zap.NewNop(),
	)
	return f
}

func slotByTime(t *testing.T, day *domain.DayAvailability, clock string) domain.TimeSlot {
	t.Helper()
	for _, slot := range day.Slots {
		if slot.Time == clock {
			return slot
		}
	}
	t.Fatalf("slot %s not offered", clock)
	return domain.TimeSlot{}
}

func TestDayAvailabilityMarksBookedSlots(t *testing.T) {
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	f := newAvailabilityFixture(t, now)
	f.appts.seed(domain.Appointment{
		ID:        1,
		ArtistID:  1,
		StartTime: time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		Status:    domain.AppointmentStatusConfirmed,
	})

	day, err := f.svc.DayAvailability(context.Background(), 1, 1, "2026-03-10")
	require.NoError(t, err)
	require.NotNil(t, day)

	// The whole [10:30, 12:00) band collides with the 11:00 appointment for
	// a 60-minute service; 10:00 and 12:00 border it and stay open.
	assert.False(t, slotByTime(t, day, "10:30").Available)
	assert.False(t, slotByTime(t, day, "11:00").Available)
	assert.False(t, slotByTime(t, day, "11:30").Available)
	assert.True(t, slotByTime(t, day, "10:00").Available)
	assert.True(t, slotByTime(t, day, "12:00").Available)
}

func TestDayAvailabilityIgnoresCancelled(t *testing.T) {
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	f := newAvailabilityFixture(t, now)
	f.appts.seed(domain.Appointment{
		ID:        1,
		ArtistID:  1,
		StartTime: time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
		Status:    domain.AppointmentStatusCancelled,
	})

	day, err := f.svc.DayAvailability(context.Background(), 1, 1, "2026-03-10")
	require.NoError(t, err)
	assert.True(t, slotByTime(t, day, "11:00").Available)
}

func TestDayAvailabilityDropsPastSlotsToday(t *testing.T) {
	now := time.Date(2026, 3, 10, 11, 15, 0, 0, time.UTC)
	f := newAvailabilityFixture(t, now)

	day, err := f.svc.DayAvailability(context.Background(), 1, 1, "2026-03-10")
	require.NoError(t, err)
	require.NotEmpty(t, day.Slots)

	for _, slot := range day.Slots {
		assert.True(t, slot.Datetime.After(now), "slot %s is in the past", slot.Time)
	}
}

func TestDayAvailabilityMergesExternalCalendar(t *testing.T) {
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	f := newAvailabilityFixture(t, now)
	f.artists.artists[0].CalendarProvider = "static"
	f.artists.artists[0].CalendarID = "cal-1"
	f.static.SetBusy("cal-1", []schedule.Interval{{
		Start: time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
		End:   time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC),
	}})

	day, err := f.svc.DayAvailability(context.Background(), 1, 1, "2026-03-10")
	require.NoError(t, err)

	assert.False(t, slotByTime(t, day, "13:30").Available)
	assert.False(t, slotByTime(t, day, "14:00").Available)
	assert.False(t, slotByTime(t, day, "14:30").Available)
	assert.True(t, slotByTime(t, day, "13:00").Available)
	assert.True(t, slotByTime(t, day, "15:00").Available)
}

// An unknown or failing external provider must not break the widget; the
// artist's own appointments still drive availability.
func TestDayAvailabilityUnknownProviderIsAdvisory(t *testing.T) {
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	f := newAvailabilityFixture(t, now)
	f.artists.artists[0].CalendarProvider = "gone"
	f.artists.artists[0].CalendarID = "cal-1"

	day, err := f.svc.DayAvailability(context.Background(), 1, 1, "2026-03-10")
	require.NoError(t, err)
	assert.NotEmpty(t, day.Slots)
}

func TestDayAvailabilityServiceFromAnotherStore(t *testing.T) {
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	f := newAvailabilityFixture(t, now)

	_, err := f.svc.DayAvailability(context.Background(), 1, 2, "2026-03-10")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDayAvailabilityNonWorkingDay(t *testing.T) {
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	f := newAvailabilityFixture(t, now)

	// 2026-03-15 is a Sunday, the default day off.
	day, err := f.svc.DayAvailability(context.Background(), 1, 1, "2026-03-15")
	require.NoError(t, err)
	assert.Empty(t, day.Slots)
}

func TestDayAvailabilityRejectsBadDate(t *testing.T) {
	now := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	f := newAvailabilityFixture(t, now)

	_, err := f.svc.DayAvailability(context.Background(), 1, 1, "10.03.2026")
	require.Error(t, err)
}
