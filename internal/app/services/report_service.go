package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/campusflow/enroll/internal/app/models"
	"github.com/campusflow/enroll/internal/app/models/dto"
	"github.com/campusflow/enroll/internal/app/repositories"
)

// ReportService computes dashboard aggregates and the student CSV export
type ReportService struct {
	store repositories.Store
}

// NewReportService creates a new ReportService
func NewReportService(store repositories.Store) *ReportService {
	return &ReportService{store: store}
}

// Dashboard aggregates student counts by status, year level and course,
// plus catalog sizes and the pending review backlog.
func (s *ReportService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	students, err := s.store.ListStudents(ctx, dto.StudentFilter{})
	if err != nil {
		return nil, err
	}
	courses, err := s.store.ListCourses(ctx)
	if err != nil {
		return nil, err
	}
	subjects, err := s.store.ListSubjects(ctx, dto.SubjectFilter{})
	if err != nil {
		return nil, err
	}

	courseNames := make(map[int64]string, len(courses))
	for _, course := range courses {
		courseNames[course.ID] = course.Code
	}

	response := &dto.DashboardResponse{
		TotalStudents: int64(len(students)),
		TotalCourses:  int64(len(courses)),
		TotalSubjects: int64(len(subjects)),
		ByStatus:      make(map[models.StudentStatus]int64),
		ByYearLevel:   make(map[int]int64),
		ByCourse:      make(map[string]int64),
	}

	for _, student := range students {
		response.ByStatus[student.Status]++
		response.ByYearLevel[student.YearLevel]++
		if student.CourseID != nil {
			if code, ok := courseNames[*student.CourseID]; ok {
				response.ByCourse[code]++
			}
		}
		if student.Status == models.StatusPending {
			response.PendingReviews++
		}
	}
	return response, nil
}

var exportHeader = []string{
	"student_id", "first_name", "last_name", "email",
	"course", "year_level", "section", "status", "registered_at",
}

// ExportStudentsCSV streams the filtered student list as RFC 4180 CSV
// with a header row.
func (s *ReportService) ExportStudentsCSV(ctx context.Context, filter dto.StudentFilter, w io.Writer) error {
	students, err := s.store.ListStudents(ctx, filter)
	if err != nil {
		return err
	}

	courses, err := s.store.ListCourses(ctx)
	if err != nil {
		return err
	}
	courseNames := make(map[int64]string, len(courses))
	for _, course := range courses {
		courseNames[course.ID] = course.Code
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, student := range students {
		courseCode := ""
		if student.CourseID != nil {
			courseCode = courseNames[*student.CourseID]
		}
		section := ""
		if student.Section != nil {
			section = *student.Section
		}
		record := []string{
			student.StudentID,
			student.FirstName,
			student.LastName,
			student.Email,
			courseCode,
			strconv.Itoa(student.YearLevel),
			section,
			string(student.Status),
			student.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}
