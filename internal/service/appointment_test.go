package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"atelier/internal/domain"
)

func seededAppointmentService(t *testing.T) (*AppointmentServiceImpl, *memAppointmentRepo) {
	t.Helper()
	repo := newMemAppointmentRepo()
	repo.seed(domain.Appointment{
		ID:        1,
		StoreID:   1,
		ClientID:  1,
		ArtistID:  1,
		ServiceID: 1,
		StartTime: time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC),
		Status:    domain.AppointmentStatusConfirmed,
	})
	repo.seed(domain.Appointment{
		ID:        2,
		StoreID:   1,
		ClientID:  2,
		ArtistID:  1,
		ServiceID: 1,
		StartTime: time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC),
		Status:    domain.AppointmentStatusPending,
	})
	return NewAppointmentService(repo, nil, zap.NewNop()), repo
}

func timeRef(t time.Time) *time.Time { return &t }

func TestAppointmentReschedule(t *testing.T) {
	svc, repo := seededAppointmentService(t)

	err := svc.Update(context.Background(), 2, domain.UpdateAppointmentDTO{
		StartTime: timeRef(time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC)),
		EndTime:   timeRef(time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC)),
	})
	require.NoError(t, err)

	appt, err := repo.GetByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC), appt.StartTime)
}

func TestAppointmentRescheduleConflict(t *testing.T) {
	svc, _ := seededAppointmentService(t)

	err := svc.Update(context.Background(), 2, domain.UpdateAppointmentDTO{
		StartTime: timeRef(time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC)),
		EndTime:   timeRef(time.Date(2026, 3, 10, 11, 30, 0, 0, time.UTC)),
	})
	require.ErrorIs(t, err, domain.ErrSlotTaken)
}

func TestAppointmentRescheduleOntoItself(t *testing.T) {
	// Rescheduling within an appointment's own window must not conflict
	// with itself.
	svc, _ := seededAppointmentService(t)

	err := svc.Update(context.Background(), 1, domain.UpdateAppointmentDTO{
		StartTime: timeRef(time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC)),
		EndTime:   timeRef(time.Date(2026, 3, 10, 11, 30, 0, 0, time.UTC)),
	})
	require.NoError(t, err)
}

func TestAppointmentRescheduleInvertedWindow(t *testing.T) {
	svc, _ := seededAppointmentService(t)

	err := svc.Update(context.Background(), 2, domain.UpdateAppointmentDTO{
		StartTime: timeRef(time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC)),
		EndTime:   timeRef(time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC)),
	})
	require.Error(t, err)
}

func TestAppointmentCancelFreesSlot(t *testing.T) {
	svc, repo := seededAppointmentService(t)

	require.NoError(t, svc.Cancel(context.Background(), 1))

	appt, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, domain.AppointmentStatusCancelled, appt.Status)

	// The freed window accepts a new booking.
	_, err = repo.Create(context.Background(), domain.CreateAppointmentRecord{
		StoreID:   1,
		ClientID:  3,
		ArtistID:  1,
		ServiceID: 1,
		StartTime: time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 3, 10, 11, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
}

func TestAppointmentUpdateStatusUnknown(t *testing.T) {
	svc, _ := seededAppointmentService(t)

	err := svc.UpdateStatus(context.Background(), 99, domain.AppointmentStatusConfirmed)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
