package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campusflow/enroll/internal/app/models/dto"
	"github.com/campusflow/enroll/internal/app/services"
	"github.com/campusflow/enroll/internal/middleware"
)

// CatalogController handles course and subject endpoints
type CatalogController struct {
	catalogService *services.CatalogService
	logger         zerolog.Logger
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService *services.CatalogService, logger zerolog.Logger) *CatalogController {
	return &CatalogController{
		catalogService: catalogService,
		logger:         logger,
	}
}

// CreateCourse adds a new course
func (c *CatalogController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	course, err := c.catalogService.CreateCourse(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(course))
}

// ListCourses returns the course catalog
func (c *CatalogController) ListCourses(ctx *gin.Context) {
	courses, err := c.catalogService.ListCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(courses))
}

// GetCourse fetches one course
func (c *CatalogController) GetCourse(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	course, err := c.catalogService.GetCourse(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(course))
}

// UpdateCourse applies a partial course update
func (c *CatalogController) UpdateCourse(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	course, err := c.catalogService.UpdateCourse(ctx.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(course))
}

// DeleteCourse removes a course without subjects
func (c *CatalogController) DeleteCourse(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := c.catalogService.DeleteCourse(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.MessageResponse{Message: "Course deleted"}))
}

// CreateSubject adds a new subject
func (c *CatalogController) CreateSubject(ctx *gin.Context) {
	var req dto.CreateSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	subject, err := c.catalogService.CreateSubject(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(subject))
}

// ListSubjects returns subjects matching the query filters
func (c *CatalogController) ListSubjects(ctx *gin.Context) {
	var filter dto.SubjectFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	subjects, err := c.catalogService.ListSubjects(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(subjects))
}

// GetSubject fetches one subject
func (c *CatalogController) GetSubject(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	subject, err := c.catalogService.GetSubject(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(subject))
}

// UpdateSubject applies a partial subject update
func (c *CatalogController) UpdateSubject(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	subject, err := c.catalogService.UpdateSubject(ctx.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(subject))
}

// DeleteSubject removes a subject
func (c *CatalogController) DeleteSubject(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := c.catalogService.DeleteSubject(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.MessageResponse{Message: "Subject deleted"}))
}
