package domain

import (
	"time"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
)

// Blocks reports whether an appointment in this status occupies its
// interval for conflict purposes. Cancelled and no-show appointments do not.
func (s AppointmentStatus) Blocks() bool {
	return s != AppointmentStatusCancelled && s != AppointmentStatusNoShow
}

type Appointment struct {
	ID        int64             `json:"id"`
	StoreID   int64             `json:"store_id"`
	ClientID  int64             `json:"client_id"`
	ArtistID  int64             `json:"artist_id"`
	ServiceID int64             `json:"service_id"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time"`
	Status    AppointmentStatus `json:"status"`
	Price     float64           `json:"price"`
	Notes     string            `json:"notes,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	ClientName  string `json:"client_name,omitempty"`
	ClientPhone string `json:"client_phone,omitempty"`
	ArtistName  string `json:"artist_name,omitempty"`
	ServiceName string `json:"service_name,omitempty"`
}

// CreateAppointmentRecord is the repository-level shape of a new
// appointment; the booking service resolves client/artist/price before
// handing it over.
type CreateAppointmentRecord struct {
	StoreID   int64
	ClientID  int64
	ArtistID  int64
	ServiceID int64
	StartTime time.Time
	EndTime   time.Time
	Price     float64
	Notes     string
}

type UpdateAppointmentDTO struct {
	Status    *AppointmentStatus `json:"status" binding:"omitempty,oneof=pending confirmed completed cancelled no_show"`
	StartTime *time.Time         `json:"start_time"`
	EndTime   *time.Time         `json:"end_time"`
	Notes     *string            `json:"notes"`
}

type AppointmentFilter struct {
	StoreID   *int64             `json:"store_id"`
	ClientID  *int64             `json:"client_id"`
	ArtistID  *int64             `json:"artist_id"`
	ServiceID *int64             `json:"service_id"`
	Status    *AppointmentStatus `json:"status"`
	StartDate *time.Time         `json:"start_date"`
	EndDate   *time.Time         `json:"end_date"`
	Limit     int                `json:"limit"`
	Offset    int                `json:"offset"`
}
