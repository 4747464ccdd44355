package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"atelier/internal/domain"
	"atelier/pkg/validator"
)

// @Summary Day availability
// @Description Returns the bookable time slots for an artist, service and date
// @Tags Availability
// @Produce json
// @Param artist_id query int true "Artist ID"
// @Param service_id query int true "Service ID"
// @Param store_id query int false "Store ID, rejects artists from other stores"
// @Param date query string true "Date in YYYY-MM-DD"
// @Success 200 {object} domain.DayAvailability
// @Failure 400 {object} errorResponseBody "Malformed parameters"
// @Failure 404 {object} errorResponseBody "Artist or service not found"
// @Failure 500 {object} errorResponseBody "Internal server error"
// @Router /availability [get]
func (h *Handler) getAvailability(c *gin.Context) {
	artistID, err := strconv.ParseInt(c.Query("artist_id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "malformed artist_id")
		return
	}

	serviceID, err := strconv.ParseInt(c.Query("service_id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "malformed service_id")
		return
	}

	date := c.Query("date")
	if !validator.ValidateDate(date) {
		badRequestResponse(c, "malformed date, expected YYYY-MM-DD")
		return
	}

	day, err := h.services.Availability.DayAvailability(c.Request.Context(), artistID, serviceID, date)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			notFoundResponse(c, "artist or service not found")
		case errors.Is(err, domain.ErrMalformedSchedule):
			h.logger.Error("artist schedule is malformed", zap.Int64("artistId", artistID), zap.Error(err))
			internalServerErrorResponse(c)
		default:
			h.logger.Error("computing availability failed", zap.Error(err))
			internalServerErrorResponse(c)
		}
		return
	}

	if rawStoreID := c.Query("store_id"); rawStoreID != "" {
		storeID, err := strconv.ParseInt(rawStoreID, 10, 64)
		if err != nil {
			badRequestResponse(c, "malformed store_id")
			return
		}
		if day.Artist.StoreID != storeID {
			notFoundResponse(c, "artist not found in this store")
			return
		}
	}

	successResponse(c, http.StatusOK, day)
}
