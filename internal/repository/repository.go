package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"atelier/internal/domain"
)

type Repositories struct {
	Store         StoreRepository
	User          UserRepository
	Auth          AuthRepository
	Artist        ArtistRepository
	Service       ServiceRepository
	Client        ClientRepository
	Appointment   AppointmentRepository
	Communication CommunicationRepository
}

func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		Store:         NewStoreRepository(db),
		User:          NewUserRepository(db),
		Auth:          NewAuthRepository(db),
		Artist:        NewArtistRepository(db),
		Service:       NewServiceRepository(db),
		Client:        NewClientRepository(db),
		Appointment:   NewAppointmentRepository(db),
		Communication: NewCommunicationRepository(db),
	}
}

type StoreRepository interface {
	Create(ctx context.Context, dto domain.CreateStoreDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Store, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Store, error)
	Update(ctx context.Context, id int64, dto domain.UpdateStoreDTO) error
	List(ctx context.Context, limit, offset int) ([]domain.Store, int, error)
}

type UserRepository interface {
	Create(ctx context.Context, dto domain.CreateUserDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, id int64, dto domain.UpdateUserDTO) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}

type AuthRepository interface {
	CreateSession(ctx context.Context, session domain.Session) error
	GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteSessionsByUserID(ctx context.Context, userID int64) error
}

type ArtistRepository interface {
	Create(ctx context.Context, storeID int64, dto domain.CreateArtistDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Artist, error)
	Update(ctx context.Context, id int64, dto domain.UpdateArtistDTO) error
	UpdateSchedule(ctx context.Context, id int64, schedule domain.WeekSchedule) error
	UpdatePhoto(ctx context.Context, id int64, photoURL string) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.ArtistFilter) ([]domain.Artist, int, error)
	ListByService(ctx context.Context, storeID, serviceID int64) ([]domain.Artist, error)
	AddService(ctx context.Context, artistID, serviceID int64) error
	RemoveService(ctx context.Context, artistID, serviceID int64) error
}

type ServiceRepository interface {
	Create(ctx context.Context, storeID int64, dto domain.CreateServiceDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	Update(ctx context.Context, id int64, dto domain.UpdateServiceDTO) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter domain.ServiceFilter) ([]domain.Service, int, error)
}

type ClientRepository interface {
	Create(ctx context.Context, storeID int64, dto domain.CreateClientDTO) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Client, error)
	GetByPhone(ctx context.Context, storeID int64, phone string) (*domain.Client, error)
	Update(ctx context.Context, id int64, dto domain.UpdateClientDTO) error
	List(ctx context.Context, filter domain.ClientFilter) ([]domain.Client, int, error)
	ListWithBirthday(ctx context.Context, month time.Month, day int) ([]domain.Client, error)
}

type AppointmentRepository interface {
	// Create re-checks for an overlapping blocking appointment and inserts
	// inside one transaction; the overlap exclusion constraint backstops the
	// race between concurrent bookings. Returns domain.ErrSlotTaken on
	// conflict.
	Create(ctx context.Context, rec domain.CreateAppointmentRecord) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	Update(ctx context.Context, id int64, dto domain.UpdateAppointmentDTO) error
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	List(ctx context.Context, filter domain.AppointmentFilter) ([]domain.Appointment, error)
	CountByFilter(ctx context.Context, filter domain.AppointmentFilter) (int, error)
	// ListForArtistInterval returns the blocking appointments overlapping
	// [from, to) for one artist, the conflict set for availability.
	ListForArtistInterval(ctx context.Context, artistID int64, from, to time.Time) ([]domain.Appointment, error)
	// CountConflicts is the booking-time guard: blocking appointments
	// overlapping [start, end), optionally excluding one appointment when
	// rescheduling.
	CountConflicts(ctx context.Context, artistID int64, start, end time.Time, excludeID *int64) (int, error)
	ListStartingBetween(ctx context.Context, from, to time.Time) ([]domain.Appointment, error)
}

type CommunicationRepository interface {
	Create(ctx context.Context, comm domain.Communication) (int64, error)
	List(ctx context.Context, filter domain.CommunicationFilter) ([]domain.Communication, int, error)
}
