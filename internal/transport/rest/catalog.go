package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"atelier/internal/domain"
)

type createServiceRequest struct {
	StoreID int64 `json:"store_id" binding:"required"`
	domain.CreateServiceDTO
}

// @Summary Create a service
// @Tags Services
// @Accept json
// @Produce json
// @Param input body createServiceRequest true "Service data"
// @Success 201 {object} map[string]interface{} "Created service ID"
// @Failure 400 {object} errorResponseBody "Validation error"
// @Security ApiKeyAuth
// @Router /services [post]
func (h *Handler) createService(c *gin.Context) {
	var req createServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "malformed request body")
		return
	}

	id, err := h.services.Catalog.Create(c.Request.Context(), req.StoreID, req.CreateServiceDTO)
	if err != nil {
		h.logger.Error("creating service failed", zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary List services
// @Tags Services
// @Produce json
// @Param store_id query int false "Filter by store"
// @Param category query string false "Filter by category"
// @Param active query bool false "Filter by active flag"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} paginatedResponse
// @Router /services [get]
func (h *Handler) getServices(c *gin.Context) {
	page, pageSize := paginationParams(c)

	filter := domain.ServiceFilter{Limit: pageSize, Offset: (page - 1) * pageSize}
	if v := c.Query("store_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			badRequestResponse(c, "malformed store_id")
			return
		}
		filter.StoreID = &id
	}
	if v := c.Query("category"); v != "" {
		filter.Category = &v
	}
	if v := c.Query("active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			badRequestResponse(c, "malformed active flag")
			return
		}
		filter.Active = &active
	}

	services, total, err := h.services.Catalog.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("listing services failed", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	paginatedSuccessResponse(c, services, total, page, pageSize)
}

// @Summary Service by ID
// @Tags Services
// @Produce json
// @Param id path int true "Service ID"
// @Success 200 {object} domain.Service
// @Failure 404 {object} errorResponseBody "Service not found"
// @Router /services/{id} [get]
func (h *Handler) getServiceByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "malformed ID")
		return
	}

	svc, err := h.services.Catalog.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, "service not found")
		return
	}

	successResponse(c, http.StatusOK, svc)
}

// @Summary Update a service
// @Tags Services
// @Accept json
// @Produce json
// @Param id path int true "Service ID"
// @Param input body domain.UpdateServiceDTO true "Fields to update"
// @Success 200 {object} messageResponseType
// @Failure 404 {object} errorResponseBody "Service not found"
// @Security ApiKeyAuth
// @Router /services/{id} [put]
func (h *Handler) updateService(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "malformed ID")
		return
	}

	var req domain.UpdateServiceDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "malformed request body")
		return
	}

	if err := h.services.Catalog.Update(c.Request.Context(), id, req); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "service not found")
			return
		}
		h.logger.Error("updating service failed", zap.Int64("serviceId", id), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "service updated")
}

// @Summary Deactivate a service
// @Tags Services
// @Produce json
// @Param id path int true "Service ID"
// @Success 204 "Deactivated"
// @Failure 404 {object} errorResponseBody "Service not found"
// @Security ApiKeyAuth
// @Router /services/{id} [delete]
func (h *Handler) deleteService(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "malformed ID")
		return
	}

	if err := h.services.Catalog.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "service not found")
			return
		}
		h.logger.Error("deactivating service failed", zap.Int64("serviceId", id), zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	noContentResponse(c)
}
