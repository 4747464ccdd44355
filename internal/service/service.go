package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"atelier/config"
	"atelier/internal/cache"
	"atelier/internal/calendar"
	"atelier/internal/domain"
	"atelier/internal/repository"
	"atelier/internal/storage"
)

// TaskEnqueuer schedules background work. The asynq-backed implementation
// lives in the worker package; a nil enqueuer means automation is disabled.
type TaskEnqueuer interface {
	EnqueueReminder(ctx context.Context, appointmentID int64, sendAt time.Time) error
	EnqueueBirthday(ctx context.Context, clientID int64) error
}

type Deps struct {
	Repos       *repository.Repositories
	Logger      *zap.Logger
	Config      *config.Config
	FileStorage storage.FileStorage
	Cache       *cache.AvailabilityCache
	Calendars   *calendar.Registry
	Enqueuer    TaskEnqueuer
	// Now is the clock for availability and booking decisions. Defaults to
	// time.Now; tests pin it.
	Now func() time.Time
}

type Services struct {
	Auth         AuthService
	User         UserService
	Store        StoreService
	Artist       ArtistService
	Catalog      CatalogService
	Client       ClientService
	Availability AvailabilityService
	Booking      BookingService
	Appointment  AppointmentService
	Calendar     CalendarService
}

func NewServices(deps Deps) *Services {
	if deps.Now == nil {
		deps.Now = time.Now
	}

	availability := NewAvailabilityService(
		deps.Repos.Artist, deps.Repos.Service, deps.Repos.Store, deps.Repos.Appointment,
		deps.Cache, deps.Calendars, deps.Now, deps.Logger,
	)

	return &Services{
		Auth:         NewAuthService(deps.Repos.Auth, deps.Repos.User, deps.Config.JWT, deps.Logger),
		User:         NewUserService(deps.Repos.User, deps.Logger),
		Store:        NewStoreService(deps.Repos.Store, deps.Logger),
		Artist:       NewArtistService(deps.Repos.Artist, deps.Repos.Service, deps.FileStorage, deps.Logger),
		Catalog:      NewCatalogService(deps.Repos.Service, deps.Logger),
		Client:       NewClientService(deps.Repos.Client, deps.Repos.Communication, deps.Logger),
		Availability: availability,
		Booking: NewBookingService(
			deps.Repos.Appointment, deps.Repos.Artist, deps.Repos.Service, deps.Repos.Client, deps.Repos.Store,
			availability, deps.Cache, deps.Enqueuer, deps.Config.Automation.ReminderLead, deps.Now, deps.Logger,
		),
		Appointment: NewAppointmentService(deps.Repos.Appointment, deps.Cache, deps.Logger),
		Calendar:    NewCalendarService(deps.Calendars, deps.Repos.Appointment, deps.Logger),
	}
}

type AuthService interface {
	Register(ctx context.Context, dto domain.RegisterRequest) (int64, error)
	Login(ctx context.Context, dto domain.LoginRequest, userAgent, ip string) (*domain.Tokens, error)
	RefreshTokens(ctx context.Context, refreshToken, userAgent, ip string) (*domain.Tokens, error)
	Logout(ctx context.Context, refreshToken string) error
	ParseToken(ctx context.Context, token string) (int64, domain.UserRole, error)
}

type UserService interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id int64, currentPassword, newPassword string) error
}

type StoreService interface {
	Create(ctx context.Context, dto domain.CreateStoreDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Store, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Store, error)
	Update(ctx context.Context, id int64, dto domain.UpdateStoreDTO) error
	List(ctx context.Context, limit, offset int) ([]domain.Store, int, error)
}

type ArtistService interface {
	Create(ctx context.Context, storeID int64, dto domain.CreateArtistDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Artist, error)
	Update(ctx context.Context, id int64, dto domain.UpdateArtistDTO) error
	UpdateSchedule(ctx context.Context, id int64, schedule domain.WeekSchedule) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.ArtistFilter) ([]domain.Artist, int, error)

	UploadPhoto(ctx context.Context, id int64, photo []byte, filename string) error
	DeletePhoto(ctx context.Context, id int64) error

	AddService(ctx context.Context, artistID, serviceID int64) error
	RemoveService(ctx context.Context, artistID, serviceID int64) error
}

type CatalogService interface {
	Create(ctx context.Context, storeID int64, dto domain.CreateServiceDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	Update(ctx context.Context, id int64, dto domain.UpdateServiceDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.ServiceFilter) ([]domain.Service, int, error)
}

type ClientService interface {
	Create(ctx context.Context, storeID int64, dto domain.CreateClientDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	Update(ctx context.Context, id int64, dto domain.UpdateClientDTO) error
	List(ctx context.Context, filter domain.ClientFilter) ([]domain.Client, int, error)
	ListCommunications(ctx context.Context, filter domain.CommunicationFilter) ([]domain.Communication, int, error)
}

type AvailabilityService interface {
	// DayAvailability computes the bookable slots for one artist, service
	// and date. Slots overlapped by blocking appointments or external
	// calendar busy windows are marked unavailable; slots already past on
	// the current store day are omitted.
	DayAvailability(ctx context.Context, artistID, serviceID int64, date string) (*domain.DayAvailability, error)
}

type BookingService interface {
	// Book creates an appointment from the public widget. A nil ArtistID
	// auto-selects the first free artist who performs the service.
	Book(ctx context.Context, req domain.BookingRequest) (*domain.BookingResult, error)
}

type AppointmentService interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, id int64, dto domain.UpdateAppointmentDTO) error
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, int, error)
}

type CalendarService interface {
	Providers() []string
	// BusyIntervals queries one named provider for busy windows, merged and
	// sorted.
	BusyIntervals(ctx context.Context, provider, calendarID string, from, to time.Time) ([]domain.BusyInterval, error)
	// PushAppointment mirrors an appointment into an external calendar and
	// returns the created event ID.
	PushAppointment(ctx context.Context, provider, calendarID string, appointmentID int64) (string, error)
	RemoveEvent(ctx context.Context, provider, calendarID, eventID string) error
}
