package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"atelier/internal/calendar"
	"atelier/internal/domain"
)

var bookingNow = time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

type bookingFixture struct {
	stores    *memStoreRepo
	artists   *memArtistRepo
	services  *memServiceRepo
	clients   *memClientRepo
	appts     *memAppointmentRepo
	enqueuer  *memEnqueuer
	calendars *calendar.Registry
	booking   *BookingServiceImpl
}

func newBookingFixture(t *testing.T) *bookingFixture {
	t.Helper()

	f := &bookingFixture{
		stores: &memStoreRepo{stores: map[int64]domain.Store{
			1: {ID: 1, Name: "Downtown", Slug: "downtown", Timezone: "UTC"},
		}},
		artists: &memArtistRepo{artists: []domain.Artist{
			{ID: 1, StoreID: 1, Name: "Anna", Schedule: domain.DefaultWeekSchedule(), IsActive: true},
			{ID: 2, StoreID: 1, Name: "Boris", Schedule: domain.DefaultWeekSchedule(), IsActive: true},
		}},
		services: &memServiceRepo{services: map[int64]domain.Service{
			1: {ID: 1, StoreID: 1, Name: "Haircut", DurationMinutes: 60, Price: 50, IsActive: true},
		}},
		clients:   newMemClientRepo(),
		appts:     newMemAppointmentRepo(),
		enqueuer:  &memEnqueuer{},
		calendars: calendar.NewRegistry(),
	}

	now := func() time.Time { return bookingNow }
	logger := zap.NewNop()

	availability := NewAvailabilityService(
		f.artists, f.services, f.stores, f.appts, nil, f.calendars, now, logger,
	)
	f.booking = NewBookingService(
		f.appts, f.artists, f.services, f.clients, f.stores,
		availability, nil, f.enqueuer, time.Hour, now, logger,
	)
	return f
}

func adultBookingClient(phone string) domain.BookingClient {
	return domain.BookingClient{
		FirstName: "maria",
		LastName:  "ivanova",
		Phone:     phone,
		BirthDate: "1990-05-01",
	}
}

func artistRef(id int64) *int64 { return &id }

func TestBookCreatesClientAndAppointment(t *testing.T) {
	f := newBookingFixture(t)

	result, err := f.booking.Book(context.Background(), domain.BookingRequest{
		StoreID:   1,
		ServiceID: 1,
		ArtistID:  artistRef(1),
		Date:      "2026-03-10",
		Time:      "10:00",
		Client:    adultBookingClient("+79991234567"),
		Notes:     "first visit",
	})
	require.NoError(t, err)
	require.NotNil(t, result)

	appt, err := f.appts.GetByID(context.Background(), result.AppointmentID)
	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentStatusPending, appt.Status)
	assert.Equal(t, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC), appt.StartTime)
	assert.Equal(t, time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC), appt.EndTime)
	assert.Equal(t, 50.0, appt.Price)

	client, err := f.clients.GetByID(context.Background(), result.ClientID)
	require.NoError(t, err)
	assert.Equal(t, "Maria", client.FirstName)
	assert.Equal(t, "+79991234567", client.Phone)

	require.Len(t, f.enqueuer.reminders, 1)
	assert.Equal(t, result.AppointmentID, f.enqueuer.reminders[0].AppointmentID)
	assert.Equal(t, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), f.enqueuer.reminders[0].SendAt)
}

func TestBookReusesClientByPhone(t *testing.T) {
	f := newBookingFixture(t)
	f.clients.seed(domain.Client{ID: 7, StoreID: 1, FirstName: "Maria", LastName: "Ivanova", Phone: "+79991234567"})

	result, err := f.booking.Book(context.Background(), domain.BookingRequest{
		StoreID:   1,
		ServiceID: 1,
		ArtistID:  artistRef(1),
		Date:      "2026-03-10",
		Time:      "12:00",
		Client:    adultBookingClient("+7 (999) 123-45-67"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), result.ClientID)
}

func TestBookRejectsPastTime(t *testing.T) {
	f := newBookingFixture(t)

	_, err := f.booking.Book(context.Background(), domain.BookingRequest{
		StoreID:   1,
		ServiceID: 1,
		ArtistID:  artistRef(1),
		Date:      "2026-03-09",
		Time:      "10:00",
		Client:    adultBookingClient("+79991234567"),
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.appts.appts)
}

func TestBookMinorRequiresGuardian(t *testing.T) {
	f := newBookingFixture(t)

	minor := adultBookingClient("+79991234567")
	minor.BirthDate = "2012-06-15"

	_, err := f.booking.Book(context.Background(), domain.BookingRequest{
		StoreID:   1,
		ServiceID: 1,
		ArtistID:  artistRef(1),
		Date:      "2026-03-10",
		Time:      "10:00",
		Client:    minor,
	})
	require.ErrorIs(t, err, domain.ErrGuardianRequired)

	minor.Guardian = &domain.GuardianInfo{FullName: "Olga Ivanova", Phone: "+79990000000", Relationship: "mother"}
	result, err := f.booking.Book(context.Background(), domain.BookingRequest{
		StoreID:   1,
		ServiceID: 1,
		ArtistID:  artistRef(1),
		Date:      "2026-03-10",
		Time:      "10:00",
		Client:    minor,
	})
	require.NoError(t, err)

	client, err := f.clients.GetByID(context.Background(), result.ClientID)
	require.NoError(t, err)
	require.NotNil(t, client.Guardian)
	assert.Equal(t, "Olga Ivanova", client.Guardian.FullName)
}

func TestBookKnownMinorWithoutStoredGuardian(t *testing.T) {
	f := newBookingFixture(t)
	birth := time.Date(2012, 6, 15, 0, 0, 0, 0, time.UTC)
	f.clients.seed(domain.Client{ID: 3, StoreID: 1, FirstName: "Petya", LastName: "Ivanov", Phone: "+79991234567", BirthDate: &birth})

	req := domain.BookingRequest{
		StoreID:   1,
		ServiceID: 1,
		ArtistID:  artistRef(1),
		Date:      "2026-03-10",
		Time:      "10:00",
		Client: domain.BookingClient{
			FirstName: "Petya",
			LastName:  "Ivanov",
			Phone:     "+79991234567",
		},
	}
	_, err := f.booking.Book(context.Background(), req)
	require.ErrorIs(t, err, domain.ErrGuardianRequired)

	// Guardian supplied on a later booking gets stored on the client record.
	req.Client.Guardian = &domain.GuardianInfo{FullName: "Olga Ivanova", Phone: "+79990000000", Relationship: "mother"}
	_, err = f.booking.Book(context.Background(), req)
	require.NoError(t, err)

	client, err := f.clients.GetByID(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, client.Guardian)
}

func TestBookAutoSelectSkipsBusyArtist(t *testing.T) {
	f := newBookingFixture(t)
	f.appts.seed(domain.Appointment{
		ID:        100,
		StoreID:   1,
		ClientID:  1,
		ArtistID:  1,
		ServiceID: 1,
		StartTime: time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC),
		Status:    domain.AppointmentStatusConfirmed,
	})

	result, err := f.booking.Book(context.Background(), domain.BookingRequest{
		StoreID:   1,
		ServiceID: 1,
		Date:      "2026-03-10",
		Time:      "10:00",
		Client:    adultBookingClient("+79991234567"),
	})
	require.NoError(t, err)

	appt, err := f.appts.GetByID(context.Background(), result.AppointmentID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), appt.ArtistID)
}

func TestBookNoArtistAvailable(t *testing.T) {
	f := newBookingFixture(t)
	for artistID := int64(1); artistID <= 2; artistID++ {
		f.appts.seed(domain.Appointment{
			ID:        100 + artistID,
			StoreID:   1,
			ClientID:  1,
			ArtistID:  artistID,
			ServiceID: 1,
			StartTime: time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC),
			Status:    domain.AppointmentStatusConfirmed,
		})
	}

	_, err := f.booking.Book(context.Background(), domain.BookingRequest{
		StoreID:   1,
		ServiceID: 1,
		Date:      "2026-03-10",
		Time:      "10:30",
		Client:    adultBookingClient("+79991234567"),
	})
	require.ErrorIs(t, err, domain.ErrNoArtistAvailable)
}

// Concurrent bookings of the same artist and slot must resolve to exactly one
// created appointment; everyone else gets ErrSlotTaken.
func TestBookConcurrentSameSlot(t *testing.T) {
	f := newBookingFixture(t)

	const attempts = 16
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.booking.Book(context.Background(), domain.BookingRequest{
				StoreID:   1,
				ServiceID: 1,
				ArtistID:  artistRef(1),
				Date:      "2026-03-10",
				Time:      "15:00",
				Client:    adultBookingClient(fmt.Sprintf("+7999000%04d", i)),
			})
		}(i)
	}
	wg.Wait()

	succeeded, taken := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrSlotTaken):
			taken++
		default:
			t.Fatalf("unexpected booking error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, taken)
	assert.Len(t, f.appts.appts, 1)
}
