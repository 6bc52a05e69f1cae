package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campusflow/enroll/internal/app/models/dto"
	"github.com/campusflow/enroll/internal/app/services"
	"github.com/campusflow/enroll/internal/middleware"
)

// AdminController handles dashboard, notification and maintenance
// endpoints
type AdminController struct {
	reportService       *services.ReportService
	notificationService *services.NotificationService
	authService         *services.AuthService
	logger              zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(reportService *services.ReportService, notificationService *services.NotificationService, authService *services.AuthService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		reportService:       reportService,
		notificationService: notificationService,
		authService:         authService,
		logger:              logger,
	}
}

// Dashboard returns aggregate enrollment counts
func (c *AdminController) Dashboard(ctx *gin.Context) {
	response, err := c.reportService.Dashboard(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(response))
}

// SendEmail fans an email out to the given recipients
func (c *AdminController) SendEmail(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	var req dto.SendEmailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	response, err := c.notificationService.SendEmail(ctx.Request.Context(), user.ID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(response))
}

// SendSMS fans an SMS out to the given recipients
func (c *AdminController) SendSMS(ctx *gin.Context) {
	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	var req dto.SendSMSRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	response, err := c.notificationService.SendSMS(ctx.Request.Context(), user.ID, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(response))
}

// ListNotifications returns the notification audit log
func (c *AdminController) ListNotifications(ctx *gin.Context) {
	notifications, err := c.notificationService.ListNotifications(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(notifications))
}

// ListLoginAttempts returns the login audit log
func (c *AdminController) ListLoginAttempts(ctx *gin.Context) {
	attempts, err := c.authService.ListLoginAttempts(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(attempts))
}

// RehashPasswords upgrades stored plaintext credentials to bcrypt
func (c *AdminController) RehashPasswords(ctx *gin.Context) {
	response, err := c.authService.RehashLegacyPasswords(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(response))
}
