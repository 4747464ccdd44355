package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"atelier/internal/cache"
	"atelier/internal/domain"
	"atelier/internal/repository"
	"atelier/pkg/validator"
)

type BookingServiceImpl struct {
	apptRepo     repository.AppointmentRepository
	artistRepo   repository.ArtistRepository
	serviceRepo  repository.ServiceRepository
	clientRepo   repository.ClientRepository
	storeRepo    repository.StoreRepository
	availability AvailabilityService
	cache        *cache.AvailabilityCache
	enqueuer     TaskEnqueuer
	reminderLead time.Duration
	now          func() time.Time
	logger       *zap.Logger
}

func NewBookingService(
	apptRepo repository.AppointmentRepository,
	artistRepo repository.ArtistRepository,
	serviceRepo repository.ServiceRepository,
	clientRepo repository.ClientRepository,
	storeRepo repository.StoreRepository,
	availability AvailabilityService,
	availCache *cache.AvailabilityCache,
	enqueuer TaskEnqueuer,
	reminderLead time.Duration,
	now func() time.Time,
	logger *zap.Logger,
) *BookingServiceImpl {
	return &BookingServiceImpl{
		apptRepo:     apptRepo,
		artistRepo:   artistRepo,
		serviceRepo:  serviceRepo,
		clientRepo:   clientRepo,
		storeRepo:    storeRepo,
		availability: availability,
		cache:        availCache,
		enqueuer:     enqueuer,
		reminderLead: reminderLead,
		now:          now,
		logger:       logger,
	}
}

func (s *BookingServiceImpl) Book(ctx context.Context, req domain.BookingRequest) (*domain.BookingResult, error) {
	store, err := s.storeRepo.GetByID(ctx, req.StoreID)
	if err != nil {
		return nil, err
	}

	svc, err := s.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		return nil, err
	}
	if svc.StoreID != store.ID || !svc.IsActive {
		return nil, fmt.Errorf("service %d: %w", req.ServiceID, domain.ErrNotFound)
	}

	loc := store.Location()
	start, err := time.ParseInLocation("2006-01-02 15:04", req.Date+" "+req.Time, loc)
	if err != nil {
		return nil, fmt.Errorf("invalid date or time %q %q: %w", req.Date, req.Time, domain.ErrInvalidInput)
	}
	if !start.After(s.now()) {
		return nil, fmt.Errorf("requested time is in the past: %w", domain.ErrInvalidInput)
	}
	end := start.Add(time.Duration(svc.DurationMinutes) * time.Minute)

	clientID, err := s.resolveClient(ctx, store.ID, req.Client)
	if err != nil {
		return nil, err
	}

	artistID, err := s.resolveArtist(ctx, store.ID, svc.ID, req.ArtistID, req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	appointmentID, err := s.apptRepo.Create(ctx, domain.CreateAppointmentRecord{
		StoreID:   store.ID,
		ClientID:  clientID,
		ArtistID:  artistID,
		ServiceID: svc.ID,
		StartTime: start,
		EndTime:   end,
		Price:     svc.Price,
		Notes:     req.Notes,
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateArtistDate(ctx, artistID, req.Date)

	if s.enqueuer != nil {
		sendAt := start.Add(-s.reminderLead)
		if sendAt.After(s.now()) {
			if err := s.enqueuer.EnqueueReminder(ctx, appointmentID, sendAt); err != nil {
				s.logger.Warn("scheduling reminder failed", zap.Int64("appointmentId", appointmentID), zap.Error(err))
			}
		}
	}

	s.logger.Info("appointment booked",
		zap.Int64("appointmentId", appointmentID),
		zap.Int64("artistId", artistID),
		zap.Int64("clientId", clientID),
		zap.Time("start", start))

	return &domain.BookingResult{AppointmentID: appointmentID, ClientID: clientID}, nil
}

// resolveClient finds the store's client by phone or creates a new record.
// Minors must arrive with guardian info; an existing client record without a
// stored guardian is rejected the same way.
func (s *BookingServiceImpl) resolveClient(ctx context.Context, storeID int64, bc domain.BookingClient) (int64, error) {
	if !validator.ValidatePhone(bc.Phone) {
		return 0, fmt.Errorf("invalid phone number %q: %w", bc.Phone, domain.ErrInvalidInput)
	}
	phone := validator.FormatPhone(bc.Phone)

	var birthDate *time.Time
	if bc.BirthDate != "" {
		parsed, err := time.Parse("2006-01-02", bc.BirthDate)
		if err != nil {
			return 0, fmt.Errorf("invalid birth date %q, expected YYYY-MM-DD: %w", bc.BirthDate, domain.ErrInvalidInput)
		}
		birthDate = &parsed
	}

	if existing, err := s.clientRepo.GetByPhone(ctx, storeID, phone); err == nil {
		if err := s.checkGuardian(existing.BirthDate, birthDate, existing.Guardian, bc.Guardian); err != nil {
			return 0, err
		}
		if bc.Guardian != nil && existing.Guardian == nil {
			if err := s.clientRepo.Update(ctx, existing.ID, domain.UpdateClientDTO{Guardian: bc.Guardian}); err != nil {
				s.logger.Warn("storing guardian info failed", zap.Int64("clientId", existing.ID), zap.Error(err))
			}
		}
		return existing.ID, nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return 0, err
	}

	if err := s.checkGuardian(nil, birthDate, nil, bc.Guardian); err != nil {
		return 0, err
	}

	return s.clientRepo.Create(ctx, storeID, domain.CreateClientDTO{
		FirstName: validator.FormatName(bc.FirstName),
		LastName:  validator.FormatName(bc.LastName),
		Phone:     phone,
		Email:     bc.Email,
		BirthDate: birthDate,
		Guardian:  bc.Guardian,
		Medical:   bc.Medical,
	})
}

func (s *BookingServiceImpl) checkGuardian(storedBirth, requestBirth *time.Time, storedGuardian, requestGuardian *domain.GuardianInfo) error {
	birth := requestBirth
	if birth == nil {
		birth = storedBirth
	}
	if birth == nil || !domain.IsMinorAt(*birth, s.now()) {
		return nil
	}
	if storedGuardian == nil && requestGuardian == nil {
		return domain.ErrGuardianRequired
	}
	return nil
}

// resolveArtist validates an explicitly requested artist or auto-selects the
// first artist of the service whose requested slot is still free and marked
// available.
func (s *BookingServiceImpl) resolveArtist(ctx context.Context, storeID, serviceID int64, requested *int64, date, slotTime string) (int64, error) {
	if requested != nil {
		artist, err := s.artistRepo.GetByID(ctx, *requested)
		if err != nil {
			return 0, err
		}
		if artist.StoreID != storeID || !artist.IsActive {
			return 0, fmt.Errorf("artist %d: %w", *requested, domain.ErrNotFound)
		}
		return artist.ID, nil
	}

	candidates, err := s.artistRepo.ListByService(ctx, storeID, serviceID)
	if err != nil {
		return 0, err
	}

	for _, artist := range candidates {
		day, err := s.availability.DayAvailability(ctx, artist.ID, serviceID, date)
		if err != nil {
			s.logger.Warn("availability for auto-select failed", zap.Int64("artistId", artist.ID), zap.Error(err))
			continue
		}
		for _, slot := range day.Slots {
			if slot.Time == slotTime && slot.Available {
				return artist.ID, nil
			}
		}
	}

	return 0, domain.ErrNoArtistAvailable
}
