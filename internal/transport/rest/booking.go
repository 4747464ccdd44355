package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"atelier/internal/domain"
)

// @Summary Book an appointment
// @Description Books a service for a client at a concrete date and time. Omitting artist_id auto-selects a free artist.
// @Tags Bookings
// @Accept json
// @Produce json
// @Param input body domain.BookingRequest true "Booking request"
// @Success 200 {object} domain.BookingResult
// @Failure 400 {object} errorResponseBody "Validation error or conflict"
// @Failure 404 {object} errorResponseBody "Store, service or artist not found"
// @Failure 500 {object} errorResponseBody "Internal server error"
// @Router /bookings [post]
func (h *Handler) createBooking(c *gin.Context) {
	var req domain.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "malformed request body")
		return
	}

	result, err := h.services.Booking.Book(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotTaken):
			badRequestResponse(c, "the selected time is no longer available")
		case errors.Is(err, domain.ErrNoArtistAvailable):
			badRequestResponse(c, "no artist is available at the selected time")
		case errors.Is(err, domain.ErrGuardianRequired):
			badRequestResponse(c, "guardian information is required for clients under 18")
		case errors.Is(err, domain.ErrNotFound):
			notFoundResponse(c, "store, service or artist not found")
		case errors.Is(err, domain.ErrInvalidInput):
			badRequestResponse(c, err.Error())
		default:
			h.logger.Error("booking failed", zap.Error(err))
			internalServerErrorResponse(c)
		}
		return
	}

	successResponse(c, http.StatusOK, result)
}
