package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"atelier/internal/domain"
)

type updatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// @Summary Current user profile
// @Tags Users
// @Produce json
// @Success 200 {object} domain.User
// @Failure 401 {object} errorResponseBody "Not authenticated"
// @Security ApiKeyAuth
// @Router /users/me [get]
func (h *Handler) getCurrentUser(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	user, err := h.services.User.GetByID(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("loading current user failed", zap.Int64("userId", userID), zap.Error(err))
		notFoundResponse(c, "user not found")
		return
	}

	successResponse(c, http.StatusOK, user)
}

// @Summary Update current user
// @Tags Users
// @Accept json
// @Produce json
// @Param input body domain.UpdateUserDTO true "Fields to update"
// @Success 200 {object} messageResponseType
// @Failure 401 {object} errorResponseBody "Not authenticated"
// @Security ApiKeyAuth
// @Router /users/me [put]
func (h *Handler) updateCurrentUser(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Phone     *string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "malformed request body")
		return
	}

	err = h.services.User.Update(c.Request.Context(), userID, domain.UpdateUserDTO{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		h.logger.Error("updating user failed", zap.Int64("userId", userID), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "profile updated")
}

// @Summary Change password
// @Tags Users
// @Accept json
// @Produce json
// @Param input body updatePasswordRequest true "Current and new password"
// @Success 200 {object} messageResponseType
// @Failure 400 {object} errorResponseBody "Wrong current password"
// @Failure 401 {object} errorResponseBody "Not authenticated"
// @Security ApiKeyAuth
// @Router /users/me/password [put]
func (h *Handler) updatePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "malformed request body")
		return
	}

	if err := h.services.User.UpdatePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		badRequestResponse(c, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "password updated")
}
