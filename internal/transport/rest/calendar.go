package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"atelier/internal/domain"
)

type pushEventRequest struct {
	Provider      string `json:"provider" binding:"required"`
	CalendarID    string `json:"calendar_id" binding:"required"`
	AppointmentID int64  `json:"appointment_id" binding:"required"`
}

type removeEventRequest struct {
	Provider   string `json:"provider" binding:"required"`
	CalendarID string `json:"calendar_id" binding:"required"`
	EventID    string `json:"event_id" binding:"required"`
}

// @Summary Configured calendar providers
// @Tags Calendars
// @Produce json
// @Success 200 {array} string
// @Security ApiKeyAuth
// @Router /calendars/providers [get]
func (h *Handler) getCalendarProviders(c *gin.Context) {
	successResponse(c, http.StatusOK, h.services.Calendar.Providers())
}

// @Summary Busy intervals from an external calendar
// @Tags Calendars
// @Produce json
// @Param provider query string true "Provider name"
// @Param calendar_id query string true "Calendar ID at the provider"
// @Param from query string true "Range start (RFC 3339)"
// @Param to query string true "Range end (RFC 3339)"
// @Success 200 {array} domain.BusyInterval
// @Failure 400 {object} errorResponseBody "Malformed parameters"
// @Failure 404 {object} errorResponseBody "Unknown provider"
// @Failure 500 {object} errorResponseBody "Internal server error"
// @Security ApiKeyAuth
// @Router /calendars/busy [get]
func (h *Handler) getCalendarBusy(c *gin.Context) {
	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		badRequestResponse(c, "malformed from timestamp, expected RFC 3339")
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		badRequestResponse(c, "malformed to timestamp, expected RFC 3339")
		return
	}

	busy, err := h.services.Calendar.BusyIntervals(c.Request.Context(), c.Query("provider"), c.Query("calendar_id"), from, to)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			notFoundResponse(c, "unknown calendar provider")
		case errors.Is(err, domain.ErrInvalidInput):
			badRequestResponse(c, err.Error())
		default:
			h.logger.Error("listing calendar busy intervals failed", zap.Error(err))
			internalServerErrorResponse(c)
		}
		return
	}

	successResponse(c, http.StatusOK, busy)
}

// @Summary Push an appointment to an external calendar
// @Tags Calendars
// @Accept json
// @Produce json
// @Param input body pushEventRequest true "Provider, calendar and appointment"
// @Success 201 {object} map[string]interface{} "Created event ID"
// @Failure 404 {object} errorResponseBody "Unknown provider or appointment"
// @Failure 500 {object} errorResponseBody "Internal server error"
// @Security ApiKeyAuth
// @Router /calendars/events [post]
func (h *Handler) pushAppointmentToCalendar(c *gin.Context) {
	var req pushEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "malformed request body")
		return
	}

	eventID, err := h.services.Calendar.PushAppointment(c.Request.Context(), req.Provider, req.CalendarID, req.AppointmentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "unknown provider or appointment")
			return
		}
		h.logger.Error("pushing appointment to calendar failed", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	createdResponse(c, gin.H{"event_id": eventID})
}

// @Summary Remove an event from an external calendar
// @Tags Calendars
// @Accept json
// @Produce json
// @Param input body removeEventRequest true "Provider, calendar and event"
// @Success 204 "Removed"
// @Failure 404 {object} errorResponseBody "Unknown provider"
// @Failure 500 {object} errorResponseBody "Internal server error"
// @Security ApiKeyAuth
// @Router /calendars/events [delete]
func (h *Handler) removeCalendarEvent(c *gin.Context) {
	var req removeEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "malformed request body")
		return
	}

	if err := h.services.Calendar.RemoveEvent(c.Request.Context(), req.Provider, req.CalendarID, req.EventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "unknown calendar provider")
			return
		}
		h.logger.Error("removing calendar event failed", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	noContentResponse(c)
}
