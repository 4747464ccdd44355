package domain

// BookingClient is the client payload on the public booking surface.
// BirthDate uses YYYY-MM-DD; a minor without guardian info is rejected.
type BookingClient struct {
	FirstName string        `json:"first_name" binding:"required"`
	LastName  string        `json:"last_name" binding:"required"`
	Phone     string        `json:"phone" binding:"required"`
	Email     string        `json:"email" binding:"omitempty,email"`
	BirthDate string        `json:"birth_date"`
	Guardian  *GuardianInfo `json:"guardian"`
	Medical   *MedicalInfo  `json:"medical"`
}

// BookingRequest books a service at a concrete date/time. ArtistID nil means
// auto-select: the first active artist who performs the service and has the
// requested interval free.
type BookingRequest struct {
	StoreID   int64         `json:"store_id" binding:"required"`
	ServiceID int64         `json:"service_id" binding:"required"`
	ArtistID  *int64        `json:"artist_id"`
	Date      string        `json:"date" binding:"required"`
	Time      string        `json:"time" binding:"required"`
	Client    BookingClient `json:"client" binding:"required"`
	Notes     string        `json:"notes"`
}

type BookingResult struct {
	AppointmentID int64 `json:"appointment_id"`
	ClientID      int64 `json:"client_id"`
}
