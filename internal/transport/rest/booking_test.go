package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"atelier/internal/domain"
	"atelier/internal/service"
)

type stubBookingService struct {
	result *domain.BookingResult
	err    error
}

func (s *stubBookingService) Book(_ context.Context, _ domain.BookingRequest) (*domain.BookingResult, error) {
	return s.result, s.err
}

func postBooking(t *testing.T, booking service.BookingService) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewHandler(&service.Services{Booking: booking}, zap.NewNop(), nil)

	body, err := json.Marshal(domain.BookingRequest{
		StoreID:   1,
		ServiceID: 1,
		Date:      "2026-03-10",
		Time:      "10:00",
		Client: domain.BookingClient{
			FirstName: "Maria",
			LastName:  "Ivanova",
			Phone:     "+79991234567",
		},
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.createBooking(c)
	return rec
}

func TestCreateBookingSuccessIs200(t *testing.T) {
	rec := postBooking(t, &stubBookingService{
		result: &domain.BookingResult{AppointmentID: 42, ClientID: 7},
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"appointment_id":42`)
	assert.Contains(t, rec.Body.String(), `"client_id":7`)
}

func TestCreateBookingConflictIs400(t *testing.T) {
	for _, sentinel := range []error{domain.ErrSlotTaken, domain.ErrNoArtistAvailable} {
		rec := postBooking(t, &stubBookingService{err: sentinel})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "error %v", sentinel)
	}
}

func TestCreateBookingValidationIs400(t *testing.T) {
	rec := postBooking(t, &stubBookingService{
		err: fmt.Errorf("invalid phone number %q: %w", "oops", domain.ErrInvalidInput),
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid phone number")
}

func TestCreateBookingNotFoundIs404(t *testing.T) {
	rec := postBooking(t, &stubBookingService{
		err: fmt.Errorf("service 9: %w", domain.ErrNotFound),
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// Repository failures must surface as a generic 500, never echoing internal
// error text to the public widget.
func TestCreateBookingInternalErrorIs500(t *testing.T) {
	rec := postBooking(t, &stubBookingService{
		err: fmt.Errorf("checking for conflicting appointments: connection refused"),
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}
