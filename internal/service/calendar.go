package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"atelier/internal/calendar"
	"atelier/internal/domain"
	"atelier/internal/repository"
)

type CalendarServiceImpl struct {
	registry *calendar.Registry
	apptRepo repository.AppointmentRepository
	logger   *zap.Logger
}

func NewCalendarService(registry *calendar.Registry, apptRepo repository.AppointmentRepository, logger *zap.Logger) *CalendarServiceImpl {
	return &CalendarServiceImpl{registry: registry, apptRepo: apptRepo, logger: logger}
}

func (s *CalendarServiceImpl) Providers() []string {
	if s.registry == nil {
		return nil
	}
	return s.registry.Names()
}

func (s *CalendarServiceImpl) BusyIntervals(ctx context.Context, provider, calendarID string, from, to time.Time) ([]domain.BusyInterval, error) {
	p, err := s.registry.Get(provider)
	if err != nil {
		return nil, err
	}
	if !to.After(from) {
		return nil, fmt.Errorf("interval end %s is not after start %s: %w", to, from, domain.ErrInvalidInput)
	}

	intervals, err := p.ListBusyIntervals(ctx, calendarID, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing busy intervals from %s: %w", provider, err)
	}

	merged := calendar.MergeBusy(intervals)
	busy := make([]domain.BusyInterval, 0, len(merged))
	for _, iv := range merged {
		busy = append(busy, domain.BusyInterval{Start: iv.Start, End: iv.End})
	}

	return busy, nil
}

func (s *CalendarServiceImpl) PushAppointment(ctx context.Context, provider, calendarID string, appointmentID int64) (string, error) {
	p, err := s.registry.Get(provider)
	if err != nil {
		return "", err
	}

	appt, err := s.apptRepo.GetByID(ctx, appointmentID)
	if err != nil {
		return "", err
	}

	event := calendar.Event{
		Summary:     fmt.Sprintf("%s: %s", appt.ServiceName, appt.ClientName),
		Description: appt.Notes,
		Start:       appt.StartTime,
		End:         appt.EndTime,
	}

	eventID, err := p.CreateEvent(ctx, calendarID, event)
	if err != nil {
		return "", fmt.Errorf("creating event in %s: %w", provider, err)
	}

	s.logger.Info("appointment pushed to external calendar",
		zap.Int64("appointmentId", appointmentID),
		zap.String("provider", provider),
		zap.String("eventId", eventID))

	return eventID, nil
}

func (s *CalendarServiceImpl) RemoveEvent(ctx context.Context, provider, calendarID, eventID string) error {
	p, err := s.registry.Get(provider)
	if err != nil {
		return err
	}

	if err := p.DeleteEvent(ctx, calendarID, eventID); err != nil {
		return fmt.Errorf("deleting event from %s: %w", provider, err)
	}

	return nil
}
