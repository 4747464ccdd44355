package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"atelier/internal/cache"
	"atelier/internal/calendar"
	"atelier/internal/domain"
	"atelier/internal/repository"
	"atelier/internal/schedule"
)

type AvailabilityServiceImpl struct {
	artistRepo  repository.ArtistRepository
	serviceRepo repository.ServiceRepository
	storeRepo   repository.StoreRepository
	apptRepo    repository.AppointmentRepository
	cache       *cache.AvailabilityCache
	calendars   *calendar.Registry
	now         func() time.Time
	logger      *zap.Logger
}

func NewAvailabilityService(
	artistRepo repository.ArtistRepository,
	serviceRepo repository.ServiceRepository,
	storeRepo repository.StoreRepository,
	apptRepo repository.AppointmentRepository,
	availCache *cache.AvailabilityCache,
	calendars *calendar.Registry,
	now func() time.Time,
	logger *zap.Logger,
) *AvailabilityServiceImpl {
	return &AvailabilityServiceImpl{
		artistRepo:  artistRepo,
		serviceRepo: serviceRepo,
		storeRepo:   storeRepo,
		apptRepo:    apptRepo,
		cache:       availCache,
		calendars:   calendars,
		now:         now,
		logger:      logger,
	}
}

func (s *AvailabilityServiceImpl) DayAvailability(ctx context.Context, artistID, serviceID int64, date string) (*domain.DayAvailability, error) {
	if cached, ok := s.cache.Get(ctx, artistID, serviceID, date); ok {
		cached.Slots = schedule.FilterElapsed(cached.Slots, s.now())
		return cached, nil
	}

	artist, err := s.artistRepo.GetByID(ctx, artistID)
	if err != nil {
		return nil, err
	}

	svc, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if svc.StoreID != artist.StoreID {
		return nil, fmt.Errorf("service %d for artist %d: %w", serviceID, artistID, domain.ErrNotFound)
	}

	store, err := s.storeRepo.GetByID(ctx, artist.StoreID)
	if err != nil {
		return nil, err
	}

	loc := store.Location()
	dayStart, err := time.ParseInLocation("2006-01-02", date, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", date)
	}
	dayEnd := dayStart.AddDate(0, 0, 1)

	slots := schedule.GenerateSlots(dayStart, loc, artist.Schedule.Day(dayStart), svc.DurationMinutes)

	busy, err := s.busyIntervals(ctx, artist, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	day := &domain.DayAvailability{
		Date:    date,
		Artist:  artist,
		Service: svc,
		Slots:   schedule.ResolveAvailability(slots, svc.DurationMinutes, busy, s.now()),
	}

	s.cache.Set(ctx, artistID, serviceID, date, day)

	return day, nil
}

// busyIntervals gathers the artist's blocking appointments plus the busy
// windows of their linked external calendar, coalesced into one sorted set.
func (s *AvailabilityServiceImpl) busyIntervals(ctx context.Context, artist *domain.Artist, from, to time.Time) ([]schedule.Interval, error) {
	appointments, err := s.apptRepo.ListForArtistInterval(ctx, artist.ID, from, to)
	if err != nil {
		return nil, err
	}

	busy := schedule.BlockingIntervals(appointments)

	if artist.CalendarProvider != "" && artist.CalendarID != "" && s.calendars != nil {
		provider, err := s.calendars.Get(artist.CalendarProvider)
		if err != nil {
			s.logger.Warn("artist references unknown calendar provider",
				zap.Int64("artistId", artist.ID), zap.String("provider", artist.CalendarProvider))
		} else {
			external, err := provider.ListBusyIntervals(ctx, artist.CalendarID, from, to)
			if err != nil {
				// External calendars are advisory for availability; a
				// provider outage must not take the booking widget down.
				s.logger.Warn("listing external busy intervals failed",
					zap.Int64("artistId", artist.ID), zap.String("provider", artist.CalendarProvider), zap.Error(err))
			} else {
				busy = append(busy, external...)
			}
		}
	}

	return calendar.MergeBusy(busy), nil
}
