package rest

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"atelier/internal/domain"
)

const maxPhotoSize = 10 << 20 // 10 MB

type createArtistRequest struct {
	StoreID int64 `json:"store_id" binding:"required"`
	domain.CreateArtistDTO
}

// @Summary Create an artist
// @Tags Artists
// @Accept json
// @Produce json
// @Param input body createArtistRequest true "Artist data"
// @Success 201 {object} map[string]interface{} "Created artist ID"
// @Failure 400 {object} errorResponseBody "Validation error"
// @Security ApiKeyAuth
// @Router /artists [post]
func (h *Handler) createArtist(c *gin.Context) {
	var req createArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "malformed request body")
		return
	}

	id, err := h.services.Artist.Create(c.Request.Context(), req.StoreID, req.CreateArtistDTO)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedSchedule) {
			badRequestResponse(c, "malformed schedule")
			return
		}
		h.logger.Error("creating artist failed", zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary List artists
// @Tags Artists
// @Produce json
// @Param store_id query int false "Filter by store"
// @Param service_id query int false "Filter by performed service"
// @Param active query bool false "Filter by active flag"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} paginatedResponse
// @Router /artists [get]
func (h *Handler) getArtists(c *gin.Context) {
	page, pageSize := paginationParams(c)

	filter := domain.ArtistFilter{Limit: pageSize, Offset: (page - 1) * pageSize}
	if v := c.Query("store_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			badRequestResponse(c, "malformed store_id")
			return
		}
		filter.StoreID = &id
	}
	if v := c.Query("service_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			badRequestResponse(c, "malformed service_id")
			return
		}
		filter.ServiceID = &id
	}
	if v := c.Query("active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			badRequestResponse(c, "malformed active flag")
			return
		}
		filter.Active = &active
	}

	artists, total, err := h.services.Artist.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("listing artists failed", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	paginatedSuccessResponse(c, artists, total, page, pageSize)
}

// @Summary Artist by ID
// @Tags Artists
// @Produce json
// @Param id path int true "Artist ID"
// @Success 200 {object} domain.Artist
// @Failure 404 {object} errorResponseBody "Artist not found"
// @Router /artists/{id} [get]
func (h *Handler) getArtistByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "malformed ID")
		return
	}

	artist, err := h.services.Artist.GetByID(c.Request.Context(), id)
	if err != nil {
		notFoundResponse(c, "artist not found")
		return
	}

	successResponse(c, http.StatusOK, artist)
}

// @Summary Update an artist
// @Tags Artists
// @Accept json
// @Produce json
// @Param id path int true "Artist ID"
// @Param input body domain.UpdateArtistDTO true "Fields to update"
// @Success 200 {object} messageResponseType
// @Failure 404 {object} errorResponseBody "Artist not found"
// @Security ApiKeyAuth
// @Router /artists/{id} [put]
func (h *Handler) updateArtist(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "malformed ID")
		return
	}

	var req domain.UpdateArtistDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "malformed request body")
		return
	}

	if err := h.services.Artist.Update(c.Request.Context(), id, req); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "artist not found")
			return
		}
		h.logger.Error("updating artist failed", zap.Int64("artistId", id), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "artist updated")
}

// @Summary Replace an artist's weekly schedule
// @Tags Artists
// @Accept json
// @Produce json
// @Param id path int true "Artist ID"
// @Param input body domain.WeekSchedule true "Weekly schedule"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Malformed schedule"
// @Failure 404 {object} errorResponseBody "Artist not found"
// @Security ApiKeyAuth
// @Router /artists/{id}/schedule [put]
func (h *Handler) updateArtistSchedule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "malformed ID")
		return
	}

	var schedule domain.WeekSchedule
	if err := c.ShouldBindJSON(&schedule); err != nil {
		badRequestResponse(c, "malformed request body")
		return
	}

	if err := h.services.Artist.UpdateSchedule(c.Request.Context(), id, schedule); err != nil {
		switch {
		case errors.Is(err, domain.ErrMalformedSchedule):
			badRequestResponse(c, "malformed schedule")
		case errors.Is(err, domain.ErrNotFound):
			notFoundResponse(c, "artist not found")
		default:
			h.logger.Error("updating artist schedule failed", zap.Int64("artistId", id), zap.Error(err))
			internalServerErrorResponse(c)
		}
		return
	}

	messageResponse(c, http.StatusOK, "schedule updated")
}

// @Summary Deactivate an artist
// @Tags Artists
// @Produce json
// @Param id path int true "Artist ID"
// @Success 204 "Deactivated"
// @Failure 404 {object} errorResponseBody "Artist not found"
// @Security ApiKeyAuth
// @Router /artists/{id} [delete]
func (h *Handler) deleteArtist(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "malformed ID")
		return
	}

	if err := h.services.Artist.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "artist not found")
			return
		}
		h.logger.Error("deactivating artist failed", zap.Int64("artistId", id), zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	noContentResponse(c)
}

// @Summary Upload artist photo
// @Tags Artists
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Artist ID"
// @Param photo formData file true "Image file"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Not an image or too large"
// @Security ApiKeyAuth
// @Router /artists/{id}/photo [post]
func (h *Handler) uploadArtistPhoto(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "malformed ID")
		return
	}

	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		badRequestResponse(c, "photo file is required")
		return
	}
	defer file.Close()

	if header.Size > maxPhotoSize {
		badRequestResponse(c, "photo exceeds the 10 MB limit")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoSize))
	if err != nil {
		h.logger.Error("reading uploaded photo failed", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	if err := h.services.Artist.UploadPhoto(c.Request.Context(), id, data, header.Filename); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "artist not found")
			return
		}
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "photo uploaded")
}

// @Summary Delete artist photo
// @Tags Artists
// @Produce json
// @Param id path int true "Artist ID"
// @Success 204 "Deleted"
// @Failure 404 {object} errorResponseBody "Artist not found"
// @Security ApiKeyAuth
// @Router /artists/{id}/photo [delete]
func (h *Handler) deleteArtistPhoto(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "malformed ID")
		return
	}

	if err := h.services.Artist.DeletePhoto(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "artist not found")
			return
		}
		h.logger.Error("deleting artist photo failed", zap.Int64("artistId", id), zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	noContentResponse(c)
}

// @Summary Link an artist to a service
// @Tags Artists
// @Produce json
// @Param id path int true "Artist ID"
// @Param serviceId path int true "Service ID"
// @Success 200 {object} messageResponseType
// @Failure 404 {object} errorResponseBody "Artist or service not found"
// @Security ApiKeyAuth
// @Router /artists/{id}/services/{serviceId} [post]
func (h *Handler) addArtistService(c *gin.Context) {
	artistID, serviceID, ok := artistServiceIDs(c)
	if !ok {
		return
	}

	if err := h.services.Artist.AddService(c.Request.Context(), artistID, serviceID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFoundResponse(c, "artist or service not found")
			return
		}
		h.logger.Error("linking artist to service failed", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	messageResponse(c, http.StatusOK, "service linked")
}

// @Summary Unlink an artist from a service
// @Tags Artists
// @Produce json
// @Param id path int true "Artist ID"
// @Param serviceId path int true "Service ID"
// @Success 204 "Unlinked"
// @Security ApiKeyAuth
// @Router /artists/{id}/services/{serviceId} [delete]
func (h *Handler) removeArtistService(c *gin.Context) {
	artistID, serviceID, ok := artistServiceIDs(c)
	if !ok {
		return
	}

	if err := h.services.Artist.RemoveService(c.Request.Context(), artistID, serviceID); err != nil {
		h.logger.Error("unlinking artist from service failed", zap.Error(err))
		internalServerErrorResponse(c)
		return
	}

	noContentResponse(c)
}

func artistServiceIDs(c *gin.Context) (artistID, serviceID int64, ok bool) {
	artistID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequestResponse(c, "malformed artist ID")
		return 0, 0, false
	}
	serviceID, err = strconv.ParseInt(c.Param("serviceId"), 10, 64)
	if err != nil {
		badRequestResponse(c, "malformed service ID")
		return 0, 0, false
	}
	return artistID, serviceID, true
}
