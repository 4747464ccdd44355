package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"atelier/internal/domain"
)

// @Summary Register a staff user
// @Description Creates a staff account for a store. Admin only.
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body domain.RegisterRequest true "Registration data"
// @Success 201 {object} map[string]interface{} "Created user ID"
// @Failure 400 {object} errorResponseBody "Validation error"
// @Failure 403 {object} errorResponseBody "Access denied"
// @Security ApiKeyAuth
// @Router /auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "malformed request body")
		return
	}

	id, err := h.services.Auth.Register(c.Request.Context(), req)
	if err != nil {
		h.logger.Warn("registration failed", zap.String("email", req.Email), zap.Error(err))
		badRequestResponse(c, err.Error())
		return
	}

	createdResponse(c, gin.H{"id": id})
}

// @Summary Log in
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body domain.LoginRequest true "Credentials"
// @Success 200 {object} domain.Tokens
// @Failure 401 {object} errorResponseBody "Invalid credentials"
// @Router /auth/login [post]
func (h *Handler) login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "malformed request body")
		return
	}

	tokens, err := h.services.Auth.Login(c.Request.Context(), req, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	successResponse(c, http.StatusOK, tokens)
}

// @Summary Refresh tokens
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body domain.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} domain.Tokens
// @Failure 401 {object} errorResponseBody "Invalid refresh token"
// @Router /auth/refresh [post]
func (h *Handler) refreshTokens(c *gin.Context) {
	var req domain.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "malformed request body")
		return
	}

	tokens, err := h.services.Auth.RefreshTokens(c.Request.Context(), req.RefreshToken, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	successResponse(c, http.StatusOK, tokens)
}

// @Summary Log out
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body domain.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} messageResponseType
// @Failure 401 {object} errorResponseBody "Invalid refresh token"
// @Router /auth/logout [post]
func (h *Handler) logout(c *gin.Context) {
	var req domain.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequestResponse(c, "malformed request body")
		return
	}

	if err := h.services.Auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		errorResponse(c, http.StatusUnauthorized, err.Error())
		return
	}

	messageResponse(c, http.StatusOK, "logged out")
}
