package controllers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/campusflow/enroll/internal/app/models"
	"github.com/campusflow/enroll/internal/app/models/dto"
	"github.com/campusflow/enroll/internal/app/services"
	"github.com/campusflow/enroll/internal/middleware"
	"github.com/campusflow/enroll/internal/pkg/apperrors"
)

// StudentController handles student registration, review and enrollment
// endpoints
type StudentController struct {
	studentService *services.StudentService
	reportService  *services.ReportService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, reportService *services.ReportService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		reportService:  reportService,
		logger:         logger,
	}
}

// Register handles the public student registration form
func (c *StudentController) Register(ctx *gin.Context) {
	var req dto.RegisterStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	student, err := c.studentService.Register(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(student))
}

// List returns students matching the query filters
func (c *StudentController) List(ctx *gin.Context) {
	filter, ok := bindStudentFilter(ctx)
	if !ok {
		return
	}

	students, err := c.studentService.ListStudents(ctx.Request.Context(), filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(students))
}

// Export streams the filtered student list as a CSV attachment
func (c *StudentController) Export(ctx *gin.Context) {
	filter, ok := bindStudentFilter(ctx)
	if !ok {
		return
	}

	filename := fmt.Sprintf("students-%s.csv", time.Now().Format("2006-01-02"))
	ctx.Header("Content-Type", "text/csv; charset=utf-8")
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := c.reportService.ExportStudentsCSV(ctx.Request.Context(), filter, ctx.Writer); err != nil {
		// Headers may already be out; log instead of rewriting the response.
		c.logger.Error().Err(err).Msg("CSV export failed mid-stream")
	}
}

// Get fetches one student
func (c *StudentController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.GetStudent(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student))
}

// Update applies a partial admin update
func (c *StudentController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	student, err := c.studentService.UpdateStudent(ctx.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student))
}

// Delete removes the student, their enrollments and the login account
func (c *StudentController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	if err := c.studentService.DeleteStudent(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.MessageResponse{Message: "Student deleted"}))
}

// Approve moves a pending student to enrolled
func (c *StudentController) Approve(ctx *gin.Context) {
	c.transition(ctx, c.studentService.Approve)
}

// Reject moves a pending student to rejected
func (c *StudentController) Reject(ctx *gin.Context) {
	c.transition(ctx, c.studentService.Reject)
}

func (c *StudentController) transition(ctx *gin.Context, fn func(ctx context.Context, id int64) (*models.Student, error)) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	student, err := fn(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student))
}

// AssignSubjects replaces the student's enrollments with the given set
func (c *StudentController) AssignSubjects(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	var req dto.AssignSubjectsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleBindingError(ctx, err)
		return
	}

	response, err := c.studentService.AssignSubjects(ctx.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(response))
}

// Enrollments lists a student's enrollments with the unit total. Students
// may only read their own; admins may read any.
func (c *StudentController) Enrollments(ctx *gin.Context) {
	id, ok := pathID(ctx)
	if !ok {
		return
	}

	user, ok := middleware.CurrentUser(ctx)
	if !ok {
		ctx.Status(http.StatusUnauthorized)
		return
	}

	if user.RoleType != models.RoleAdmin {
		own, err := c.studentService.GetStudentByUserID(ctx.Request.Context(), user.ID)
		if err != nil || own.ID != id {
			middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
			return
		}
	}

	response, err := c.studentService.Enrollments(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(response))
}

func bindStudentFilter(ctx *gin.Context) (dto.StudentFilter, bool) {
	var filter dto.StudentFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleBindingError(ctx, err)
		return filter, false
	}
	return filter, true
}

// pathID parses the :id path segment
func pathID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid id parameter")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return 0, false
	}
	return id, true
}
