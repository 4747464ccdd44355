package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"atelier/internal/domain"
)

// @Summary Create a store
// @Tags Stores
// @Accept json
// @Produce json
// @Param input body domain.CreateStoreDTO true "Store data"
// @Success 201 {object} map[string]interface{} "Created store ID"
// @Failure 400 {object} errorResponseBody "Validation error"
// @Security ApiKeyAuth
// @Router /stores [post]
func (h *Handler) createStore(c *gin.Context) {
	var req domain.CreateStoreDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "malformed request body")
		return
	}

	id, err := h.services.Store.Create(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("creating store failed", zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary List stores
// @Tags Stores
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} paginatedResponse
// @Security ApiKeyAuth
// @Router /stores [get]
func (h *Handler) getStores(c *gin.Context) {
	page, pageSize := paginationParams(c)

	stores, total, err := h.services.Store.List(c.Request.Context(), pageSize, (page-1)*pageSize)
	if err != nil {
		h.logger.Error("listing stores failed", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	paginatedSuccessResponse(c, stores, total, page, pageSize)
}

// @Summary Store by ID
// @Tags Stores
// @Produce json
// @Param id path int true "Store ID"
// @Success 200 {object} domain.Store
// @Failure 404 {object} errorResponseBody "Store not found"
// @Security ApiKeyAuth
// @Router /stores/{id} [get]
func (h *Handler) getStoreByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "malformed ID")
		return
	}

	store, err := h.services.Store.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, "store not found")
		return
	}

	successResponse(c, http.StatusOK, store)
}

// @Summary Store by slug
// @Description Public lookup used by the booking widget.
// @Tags Stores
// @Produce json
// @Param slug path string true "Store slug"
// @Success 200 {object} domain.Store
// @Failure 404 {object} errorResponseBody "Store not found"
// @Router /stores/by-slug/{slug} [get]
func (h *Handler) getStoreBySlug(c *gin.Context) {
	store, err := h.services.Store.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		notFoundResponse(c, "store not found")
		return
	}

	successResponse(c, http.StatusOK, store)
}

// @Summary Update a store
// @Tags Stores
// @Accept json
// @Produce json
// @Param id path int true "Store ID"
// @Param input body domain.UpdateStoreDTO true "Fields to update"
// @Success 200 {object} messageResponseType
// @Failure 404 {object} errorResponseBody "Store not found"
// @Security ApiKeyAuth
// @Router /stores/{id} [put]
func (h *Handler) updateStore(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "malformed ID")
		return
	}

	var req domain.UpdateStoreDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "malformed request body")
		return
	}

	if err := h.services.Store.Update(c.Request.Context(), id, req); err != nil {
		h.logger.Error("updating store failed", zap.Int64("storeId", id), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "store updated")
}

func paginationParams(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
