// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campusflow/enroll/internal/app/models/dto"
	"github.com/campusflow/enroll/internal/app/services"
	"github.com/campusflow/enroll/internal/middleware"
	"github.com/campusflow/enroll/internal/pkg/session"
)

// AuthController handles authentication related operations
type AuthController struct {
	authService *services.AuthService
	sessions    *session.Manager
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, sessions *session.Manager, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		sessions:    sessions,
		logger:      logger,
	}
}

// Login verifies credentials, issues the session cookie and returns the
// bearer token alongside the profile
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	response, err := c.authService.Login(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.sessions.Issue(ctx, response.User.ID); err != nil {
		c.logger.Error().Err(err).Int64("userId", response.User.ID).Msg("Failed to issue session")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(response))
}

// Logout destroys the caller's session. The bearer token, if any, stays
// valid until expiry.
func (c *AuthController) Logout(ctx *gin.Context) {
	if err := c.sessions.Destroy(ctx); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.MessageResponse{Message: "Logged out"}))
}

// CurrentUser echoes the authenticated profile
func (c *AuthController) CurrentUser(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	profile, err := c.authService.CurrentUser(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profile))
}

// ChangePassword replaces the caller's password
func (c *AuthController) ChangePassword(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	var req dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	if err := c.authService.ChangePassword(ctx.Request.Context(), user.ID, req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.MessageResponse{Message: "Password changed"}))
}

// UpdateProfile updates the caller's student profile
func (c *AuthController) UpdateProfile(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	profile, err := c.authService.UpdateProfile(ctx.Request.Context(), user.ID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(profile))
}
