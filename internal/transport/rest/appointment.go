package rest

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"atelier/internal/domain"
)

type updateStatusRequest struct {
	Status domain.AppointmentStatus `json:"status" binding:"required,oneof=pending confirmed completed cancelled no_show"`
}

// @Summary List appointments
// @Tags Appointments
// @Produce json
// @Param store_id query int false "Filter by store"
// @Param artist_id query int false "Filter by artist"
// @Param client_id query int false "Filter by client"
// @Param status query string false "Filter by status"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date, exclusive (YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} paginatedResponse
// @Security ApiKeyAuth
// @Router /appointments [get]
func (h *Handler) getAppointments(c *gin.Context) {
	page, pageSize := paginationParams(c)

	filter := domain.AppointmentFilter{Limit: pageSize, Offset: (page - 1) * pageSize}
	if v := c.Query("store_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			badRequestResponse(c, "malformed store_id")
			return
		}
		filter.StoreID = &id
	}
	if v := c.Query("artist_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			badRequestResponse(c, "malformed artist_id")
			return
		}
		filter.ArtistID = &id
	}
	if v := c.Query("client_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			badRequestResponse(c, "malformed client_id")
			return
		}
		filter.ClientID = &id
	}
	if v := c.Query("status"); v != "" {
		status := domain.AppointmentStatus(v)
		filter.Status = &status
	}
	if v := c.Query("from"); v != "" {
		from, err := time.Parse("2006-01-02", v)
		if err != nil {
			badRequestResponse(c, "malformed from date")
			return
		}
		filter.StartDate = &from
	}
	if v := c.Query("to"); v != "" {
		to, err := time.Parse("2006-01-02", v)
		if err != nil {
			badRequestResponse(c, "malformed to date")
			return
		}
		filter.EndDate = &to
	}

	appointments, total, err := h.services.Appointment.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("listing appointments failed", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	paginatedSuccessResponse(c, appointments, total, page, pageSize)
}

// @Summary Appointment by ID
// @Tags Appointments
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} domain.Appointment
// @Failure 404 {object} errorResponseBody "Appointment not found"
// @Security ApiKeyAuth
// @Router /appointments/{id} [get]
func (h *Handler) getAppointmentByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "malformed ID")
		return
	}

	appt, err := h.services.Appointment.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, "appointment not found")
		return
	}

	successResponse(c, http.StatusOK, appt)
}

// @Summary Update an appointment
// @Description Reschedules or annotates an appointment. A new time that overlaps another blocking appointment is rejected.
// @Tags Appointments
// @Accept json
// @Produce json
// @Param id path int true "Appointment ID"
// @Param input body domain.UpdateAppointmentDTO true "Fields to update"
// @Success 200 {object} messageResponseType
// @Failure 404 {object} errorResponseBody "Appointment not found"
// @Failure 409 {object} errorResponseBody "New time conflicts with another appointment"
// @Security ApiKeyAuth
// @Router /appointments/{id} [put]
func (h *Handler) updateAppointment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "malformed ID")
		return
	}

	var req domain.UpdateAppointmentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "malformed request body")
		return
	}

	if err := h.services.Appointment.Update(c.Request.Context(), id, req); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			notFoundResponse(c, "appointment not found")
		case errors.Is(err, domain.ErrSlotTaken):
			conflictResponse(c, "the new time conflicts with another appointment")
		default:
			h.logger.Error("updating appointment failed", zap.Int64("appointmentId", id), zap.Error(err))
			badRequestResponse(c, err.Error())
		}
		return
	}

	messageResponse(c, http.StatusOK, "appointment updated")
}

// @Summary Change appointment status
// @Tags Appointments
// @Accept json
// @Produce json
// @Param id path int true "Appointment ID"
// @Param input body updateStatusRequest true "New status"
// @Success 200 {object} messageResponseType
// @Failure 404 {object} errorResponseBody "Appointment not found"
// @Security ApiKeyAuth
// @Router /appointments/{id}/status [put]
func (h *Handler) updateAppointmentStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "malformed ID")
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "malformed request body")
		return
	}

	if err := h.services.Appointment.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "appointment not found")
			return
		}
		h.logger.Error("updating appointment status failed", zap.Int64("appointmentId", id), zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	messageResponse(c, http.StatusOK, "status updated")
}

// @Summary Cancel an appointment
// @Tags Appointments
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 204 "Cancelled"
// @Failure 404 {object} errorResponseBody "Appointment not found"
// @Security ApiKeyAuth
// @Router /appointments/{id} [delete]
func (h *Handler) cancelAppointment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "malformed ID")
		return
	}

	if err := h.services.Appointment.Cancel(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "appointment not found")
			return
		}
		h.logger.Error("cancelling appointment failed", zap.Int64("appointmentId", id), zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	noContentResponse(c)
}
