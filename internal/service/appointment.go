package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"atelier/internal/cache"
	"atelier/internal/domain"
	"atelier/internal/repository"
)

type AppointmentServiceImpl struct {
	repo   repository.AppointmentRepository
	cache  *cache.AvailabilityCache
	logger *zap.Logger
}

func NewAppointmentService(repo repository.AppointmentRepository, availCache *cache.AvailabilityCache, logger *zap.Logger) *AppointmentServiceImpl {
	return &AppointmentServiceImpl{repo: repo, cache: availCache, logger: logger}
}

func (s *AppointmentServiceImpl) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AppointmentServiceImpl) Update(ctx context.Context, id int64, dto domain.UpdateAppointmentDTO) error {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Rescheduling re-checks conflicts against everyone else's blocking
	// appointments before touching the row.
	if dto.StartTime != nil || dto.EndTime != nil {
		start, end := appt.StartTime, appt.EndTime
		if dto.StartTime != nil {
			start = *dto.StartTime
		}
		if dto.EndTime != nil {
			end = *dto.EndTime
		}
		if !end.After(start) {
			return fmt.Errorf("appointment end %s is not after start %s", end, start)
		}

		conflicts, err := s.repo.CountConflicts(ctx, appt.ArtistID, start, end, &id)
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return domain.ErrSlotTaken
		}
	}

	if err := s.repo.Update(ctx, id, dto); err != nil {
		return err
	}

	s.invalidateDays(ctx, appt, dto)
	return nil
}

func (s *AppointmentServiceImpl) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	// Cancellations and no-shows free the interval for new bookings.
	if appt.Status.Blocks() != status.Blocks() {
		s.cache.InvalidateArtistDate(ctx, appt.ArtistID, appt.StartTime.Format("2006-01-02"))
	}

	return nil
}

func (s *AppointmentServiceImpl) Cancel(ctx context.Context, id int64) error {
	return s.UpdateStatus(ctx, id, domain.AppointmentStatusCancelled)
}

func (s *AppointmentServiceImpl) List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, int, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	total, err := s.repo.CountByFilter(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	appointments, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return appointments, total, nil
}

func (s *AppointmentServiceImpl) invalidateDays(ctx context.Context, appt *domain.Appointment, dto domain.UpdateAppointmentDTO) {
	s.cache.InvalidateArtistDate(ctx, appt.ArtistID, appt.StartTime.Format("2006-01-02"))
	if dto.StartTime != nil {
		s.cache.InvalidateArtistDate(ctx, appt.ArtistID, dto.StartTime.Format("2006-01-02"))
	}
}
