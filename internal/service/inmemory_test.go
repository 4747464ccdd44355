package service

import (
	"context"
	"sync"
	"time"

	"atelier/internal/domain"
)

// In-memory repositories for service tests. Only the paths the booking and
// availability services touch carry real behavior; memAppointmentRepo mirrors
// the transactional contract of the Postgres implementation: the overlap
// check and the insert happen under one lock, so concurrent bookings of the
// same slot resolve to exactly one winner.

type memStoreRepo struct {
	stores map[int64]domain.Store
}

func (r *memStoreRepo) Create(_ context.Context, _ domain.CreateStoreDTO) (int64, error) {
	return 0, domain.ErrNotFound
}

func (r *memStoreRepo) GetByID(_ context.Context, id int64) (*domain.Store, error) {
	store, ok := r.stores[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &store, nil
}

func (r *memStoreRepo) GetBySlug(_ context.Context, slug string) (*domain.Store, error) {
	for _, store := range r.stores {
		if store.Slug == slug {
			s := store
			return &s, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memStoreRepo) Update(_ context.Context, _ int64, _ domain.UpdateStoreDTO) error {
	return domain.ErrNotFound
}

func (r *memStoreRepo) List(_ context.Context, _, _ int) ([]domain.Store, int, error) {
	return nil, 0, nil
}

type memArtistRepo struct {
	artists []domain.Artist
}

func (r *memArtistRepo) Create(_ context.Context, _ int64, _ domain.CreateArtistDTO) (int64, error) {
	return 0, domain.ErrNotFound
}

func (r *memArtistRepo) GetByID(_ context.Context, id int64) (*domain.Artist, error) {
	for _, artist := range r.artists {
		if artist.ID == id {
			a := artist
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memArtistRepo) Update(_ context.Context, _ int64, _ domain.UpdateArtistDTO) error {
	return domain.ErrNotFound
}

func (r *memArtistRepo) UpdateSchedule(_ context.Context, _ int64, _ domain.WeekSchedule) error {
	return domain.ErrNotFound
}

func (r *memArtistRepo) UpdatePhoto(_ context.Context, _ int64, _ string) error {
	return domain.ErrNotFound
}

func (r *memArtistRepo) Delete(_ context.Context, _ int64) error {
	return domain.ErrNotFound
}

func (r *memArtistRepo) List(_ context.Context, _ domain.ArtistFilter) ([]domain.Artist, int, error) {
	return r.artists, len(r.artists), nil
}

func (r *memArtistRepo) ListByService(_ context.Context, storeID, _ int64) ([]domain.Artist, error) {
	var out []domain.Artist
	for _, artist := range r.artists {
		if artist.StoreID == storeID && artist.IsActive {
			out = append(out, artist)
		}
	}
	return out, nil
}

func (r *memArtistRepo) AddService(_ context.Context, _, _ int64) error    { return nil }
func (r *memArtistRepo) RemoveService(_ context.Context, _, _ int64) error { return nil }

type memServiceRepo struct {
	services map[int64]domain.Service
}

func (r *memServiceRepo) Create(_ context.Context, _ int64, _ domain.CreateServiceDTO) (int64, error) {
	return 0, domain.ErrNotFound
}

func (r *memServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	svc, ok := r.services[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &svc, nil
}

func (r *memServiceRepo) Update(_ context.Context, _ int64, _ domain.UpdateServiceDTO) error {
	return domain.ErrNotFound
}

func (r *memServiceRepo) Delete(_ context.Context, _ int64) error { return domain.ErrNotFound }

func (r *memServiceRepo) List(_ context.Context, _ domain.ServiceFilter) ([]domain.Service, int, error) {
	return nil, 0, nil
}

type memClientRepo struct {
	mu      sync.Mutex
	nextID  int64
	clients map[int64]domain.Client
}

func newMemClientRepo() *memClientRepo {
	return &memClientRepo{nextID: 1, clients: make(map[int64]domain.Client)}
}

func (r *memClientRepo) seed(client domain.Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[client.ID] = client
	if client.ID >= r.nextID {
		r.nextID = client.ID + 1
	}
}

func (r *memClientRepo) Create(_ context.Context, storeID int64, dto domain.CreateClientDTO) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := r.nextID
	r.nextID++
	r.clients[id] = domain.Client{
		ID:        id,
		StoreID:   storeID,
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Phone:     dto.Phone,
		Email:     dto.Email,
		BirthDate: dto.BirthDate,
		Guardian:  dto.Guardian,
		Medical:   dto.Medical,
	}
	return id, nil
}

func (r *memClientRepo) GetByID(_ context.Context, id int64) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	client, ok := r.clients[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &client, nil
}

func (r *memClientRepo) GetByPhone(_ context.Context, storeID int64, phone string) (*domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, client := range r.clients {
		if client.StoreID == storeID && client.Phone == phone {
			c := client
			return &c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memClientRepo) Update(_ context.Context, id int64, dto domain.UpdateClientDTO) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	client, ok := r.clients[id]
	if !ok {
		return domain.ErrNotFound
	}
	if dto.Guardian != nil {
		client.Guardian = dto.Guardian
	}
	if dto.BirthDate != nil {
		client.BirthDate = dto.BirthDate
	}
	r.clients[id] = client
	return nil
}

func (r *memClientRepo) List(_ context.Context, _ domain.ClientFilter) ([]domain.Client, int, error) {
	return nil, 0, nil
}

func (r *memClientRepo) ListWithBirthday(_ context.Context, month time.Month, day int) ([]domain.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Client
	for _, client := range r.clients {
		if client.BirthDate != nil && client.BirthDate.Month() == month && client.BirthDate.Day() == day {
			out = append(out, client)
		}
	}
	return out, nil
}

type memAppointmentRepo struct {
	mu     sync.Mutex
	nextID int64
	appts  map[int64]domain.Appointment
}

func newMemAppointmentRepo() *memAppointmentRepo {
	return &memAppointmentRepo{nextID: 1, appts: make(map[int64]domain.Appointment)}
}

func (r *memAppointmentRepo) seed(appt domain.Appointment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appts[appt.ID] = appt
	if appt.ID >= r.nextID {
		r.nextID = appt.ID + 1
	}
}

func (r *memAppointmentRepo) Create(_ context.Context, rec domain.CreateAppointmentRecord) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, appt := range r.appts {
		if appt.ArtistID != rec.ArtistID || !appt.Status.Blocks() {
			continue
		}
		if rec.StartTime.Before(appt.EndTime) && appt.StartTime.Before(rec.EndTime) {
			return 0, domain.ErrSlotTaken
		}
	}
	id := r.nextID
	r.nextID++
	r.appts[id] = domain.Appointment{
		ID:        id,
		StoreID:   rec.StoreID,
		ClientID:  rec.ClientID,
		ArtistID:  rec.ArtistID,
		ServiceID: rec.ServiceID,
		StartTime: rec.StartTime,
		EndTime:   rec.EndTime,
		Status:    domain.AppointmentStatusPending,
		Price:     rec.Price,
		Notes:     rec.Notes,
	}
	return id, nil
}

func (r *memAppointmentRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.appts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &appt, nil
}

func (r *memAppointmentRepo) Update(_ context.Context, id int64, dto domain.UpdateAppointmentDTO) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.appts[id]
	if !ok {
		return domain.ErrNotFound
	}
	if dto.StartTime != nil {
		appt.StartTime = *dto.StartTime
	}
	if dto.EndTime != nil {
		appt.EndTime = *dto.EndTime
	}
	if dto.Status != nil {
		appt.Status = *dto.Status
	}
	if dto.Notes != nil {
		appt.Notes = *dto.Notes
	}
	r.appts[id] = appt
	return nil
}

func (r *memAppointmentRepo) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	appt, ok := r.appts[id]
	if !ok {
		return domain.ErrNotFound
	}
	appt.Status = status
	r.appts[id] = appt
	return nil
}

func (r *memAppointmentRepo) List(_ context.Context, _ domain.AppointmentFilter) ([]domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Appointment, 0, len(r.appts))
	for _, appt := range r.appts {
		out = append(out, appt)
	}
	return out, nil
}

func (r *memAppointmentRepo) CountByFilter(_ context.Context, _ domain.AppointmentFilter) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.appts), nil
}

func (r *memAppointmentRepo) ListForArtistInterval(_ context.Context, artistID int64, from, to time.Time) ([]domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Appointment
	for _, appt := range r.appts {
		if appt.ArtistID != artistID || !appt.Status.Blocks() {
			continue
		}
		if appt.StartTime.Before(to) && from.Before(appt.EndTime) {
			out = append(out, appt)
		}
	}
	return out, nil
}

func (r *memAppointmentRepo) CountConflicts(_ context.Context, artistID int64, start, end time.Time, excludeID *int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, appt := range r.appts {
		if appt.ArtistID != artistID || !appt.Status.Blocks() {
			continue
		}
		if excludeID != nil && appt.ID == *excludeID {
			continue
		}
		if start.Before(appt.EndTime) && appt.StartTime.Before(end) {
			count++
		}
	}
	return count, nil
}

func (r *memAppointmentRepo) ListStartingBetween(_ context.Context, from, to time.Time) ([]domain.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Appointment
	for _, appt := range r.appts {
		if appt.Status != domain.AppointmentStatusPending && appt.Status != domain.AppointmentStatusConfirmed {
			continue
		}
		if !appt.StartTime.Before(from) && appt.StartTime.Before(to) {
			out = append(out, appt)
		}
	}
	return out, nil
}

type recordedReminder struct {
	AppointmentID int64
	SendAt        time.Time
}

type memEnqueuer struct {
	mu        sync.Mutex
	reminders []recordedReminder
	birthdays []int64
}

func (e *memEnqueuer) EnqueueReminder(_ context.Context, appointmentID int64, sendAt time.Time) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reminders = append(e.reminders, recordedReminder{AppointmentID: appointmentID, SendAt: sendAt})
	return nil
}

func (e *memEnqueuer) EnqueueBirthday(_ context.Context, clientID int64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.birthdays = append(e.birthdays, clientID)
	return nil
}
