package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"atelier/internal/domain"
)

type createClientRequest struct {
	StoreID int64 `json:"store_id" binding:"required"`
	domain.CreateClientDTO
}

// @Summary Create a client
// @Tags Clients
// @Accept json
// @Produce json
// @Param input body createClientRequest true "Client data"
// @Success 201 {object} map[string]interface{} "Created client ID"
// @Failure 400 {object} errorResponseBody "Validation error or duplicate phone"
// @Security ApiKeyAuth
// @Router /clients [post]
func (h *Handler) createClient(c *gin.Context) {
	var req createClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "malformed request body")
		return
	}

	id, err := h.services.Client.Create(c.Request.Context(), req.StoreID, req.CreateClientDTO)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			conflictResponse(c, "a client with this phone already exists")
			return
		}
		h.logger.Error("creating client failed", zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary List clients
// @Tags Clients
// @Produce json
// @Param store_id query int false "Filter by store"
// @Param search query string false "Search in name and phone"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} paginatedResponse
// @Security ApiKeyAuth
// @Router /clients [get]
func (h *Handler) getClients(c *gin.Context) {
	page, pageSize := paginationParams(c)

	filter := domain.ClientFilter{Limit: pageSize, Offset: (page - 1) * pageSize}
	if v := c.Query("store_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			badRequestResponse(c, "malformed store_id")
			return
		}
		filter.StoreID = &id
	}
	if v := c.Query("search"); v != "" {
		filter.Search = &v
	}

	clients, total, err := h.services.Client.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("listing clients failed", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	paginatedSuccessResponse(c, clients, total, page, pageSize)
}

// @Summary Client by ID
// @Tags Clients
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} domain.Client
// @Failure 404 {object} errorResponseBody "Client not found"
// @Security ApiKeyAuth
// @Router /clients/{id} [get]
func (h *Handler) getClientByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "malformed ID")
		return
	}

	client, err := h.services.Client.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, "client not found")
		return
	}

	successResponse(c, http.StatusOK, client)
}

// @Summary Update a client
// @Tags Clients
// @Accept json
// @Produce json
// @Param id path int true "Client ID"
// @Param input body domain.UpdateClientDTO true "Fields to update"
// @Success 200 {object} messageResponseType
// @Failure 404 {object} errorResponseBody "Client not found"
// @Security ApiKeyAuth
// @Router /clients/{id} [put]
func (h *Handler) updateClient(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "malformed ID")
		return
	}

	var req domain.UpdateClientDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "malformed request body")
		return
	}

	if err := h.services.Client.Update(c.Request.Context(), id, req); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "client not found")
			return
		}
		h.logger.Error("updating client failed", zap.Int64("clientId", id), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "client updated")
}

// @Summary Client communication history
// @Tags Clients
// @Produce json
// @Param id path int true "Client ID"
// @Param kind query string false "Filter by kind (reminder, birthday, confirmation)"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} paginatedResponse
// @Security ApiKeyAuth
// @Router /clients/{id}/communications [get]
func (h *Handler) getClientCommunications(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "malformed ID")
		return
	}

	page, pageSize := paginationParams(c)
	filter := domain.CommunicationFilter{ClientID: &id, Limit: pageSize, Offset: (page - 1) * pageSize}
	if v := c.Query("kind"); v != "" {
		kind := domain.CommunicationKind(v)
		filter.Kind = &kind
	}

	comms, total, err := h.services.Client.ListCommunications(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("listing communications failed", zap.Int64("clientId", id), zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	paginatedSuccessResponse(c, comms, total, page, pageSize)
}
