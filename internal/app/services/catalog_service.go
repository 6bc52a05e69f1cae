package services

import (
	"context"

	"github.com/campusflow/enroll/internal/app/models"
	"github.com/campusflow/enroll/internal/app/models/dto"
	"github.com/campusflow/enroll/internal/app/repositories"
	"github.com/campusflow/enroll/internal/pkg/apperrors"
	"github.com/campusflow/enroll/internal/pkg/logger"
)

// CatalogService handles course and subject administration
type CatalogService struct {
	store repositories.Store
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(store repositories.Store) *CatalogService {
	return &CatalogService{store: store}
}

// CreateCourse adds a course with a unique code
func (s *CatalogService) CreateCourse(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error) {
	taken, err := s.store.CourseCodeExists(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrCourseCodeExists
	}

	course := &models.Course{
		Code:        req.Code,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.store.CreateCourse(ctx, course); err != nil {
		return nil, err
	}

	logger.Info().Int64("courseId", course.ID).Str("code", course.Code).Msg("Course created")
	return course, nil
}

// GetCourse fetches one course
func (s *CatalogService) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	return s.store.GetCourseByID(ctx, id)
}

// ListCourses returns the full course catalog
func (s *CatalogService) ListCourses(ctx context.Context) ([]*models.Course, error) {
	return s.store.ListCourses(ctx)
}

// UpdateCourse applies a partial course update
func (s *CatalogService) UpdateCourse(ctx context.Context, id int64, req dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.store.GetCourseByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil && *req.Code != course.Code {
		taken, err := s.store.CourseCodeExists(ctx, *req.Code)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.ErrCourseCodeExists
		}
		course.Code = *req.Code
	}
	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.Description != nil {
		course.Description = *req.Description
	}

	if err := s.store.UpdateCourse(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// DeleteCourse removes a course. Courses that still have subjects or
// students cannot be deleted.
func (s *CatalogService) DeleteCourse(ctx context.Context, id int64) error {
	if _, err := s.store.GetCourseByID(ctx, id); err != nil {
		return err
	}

	subjects, err := s.store.ListSubjects(ctx, dto.SubjectFilter{CourseID: &id})
	if err != nil {
		return err
	}
	if len(subjects) > 0 {
		return apperrors.ErrCourseHasSubjects
	}

	students, err := s.store.ListStudents(ctx, dto.StudentFilter{CourseID: &id})
	if err != nil {
		return err
	}
	if len(students) > 0 {
		return apperrors.ErrCourseHasStudents
	}

	if err := s.store.DeleteCourse(ctx, id); err != nil {
		return err
	}
	logger.Info().Int64("courseId", id).Msg("Course deleted")
	return nil
}

// CreateSubject adds a subject with a unique code under an existing course
func (s *CatalogService) CreateSubject(ctx context.Context, req dto.CreateSubjectRequest) (*models.Subject, error) {
	taken, err := s.store.SubjectCodeExists(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.ErrSubjectCodeExists
	}

	if _, err := s.store.GetCourseByID(ctx, req.CourseID); err != nil {
		return nil, err
	}

	subject := &models.Subject{
		Code:       req.Code,
		Name:       req.Name,
		Units:      req.Units,
		Schedule:   req.Schedule,
		Instructor: req.Instructor,
		CourseID:   req.CourseID,
		YearLevel:  req.YearLevel,
	}
	if err := s.store.CreateSubject(ctx, subject); err != nil {
		return nil, err
	}

	logger.Info().Int64("subjectId", subject.ID).Str("code", subject.Code).Msg("Subject created")
	return subject, nil
}

// GetSubject fetches one subject
func (s *CatalogService) GetSubject(ctx context.Context, id int64) (*models.Subject, error) {
	return s.store.GetSubjectByID(ctx, id)
}

// ListSubjects returns subjects matching the filter
func (s *CatalogService) ListSubjects(ctx context.Context, filter dto.SubjectFilter) ([]*models.Subject, error) {
	return s.store.ListSubjects(ctx, filter)
}

// UpdateSubject applies a partial subject update
func (s *CatalogService) UpdateSubject(ctx context.Context, id int64, req dto.UpdateSubjectRequest) (*models.Subject, error) {
	subject, err := s.store.GetSubjectByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil && *req.Code != subject.Code {
		taken, err := s.store.SubjectCodeExists(ctx, *req.Code)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.ErrSubjectCodeExists
		}
		subject.Code = *req.Code
	}
	if req.CourseID != nil {
		if _, err := s.store.GetCourseByID(ctx, *req.CourseID); err != nil {
			return nil, err
		}
		subject.CourseID = *req.CourseID
	}
	if req.Name != nil {
		subject.Name = *req.Name
	}
	if req.Units != nil {
		subject.Units = *req.Units
	}
	if req.Schedule != nil {
		subject.Schedule = *req.Schedule
	}
	if req.Instructor != nil {
		subject.Instructor = *req.Instructor
	}
	if req.YearLevel != nil {
		subject.YearLevel = *req.YearLevel
	}

	if err := s.store.UpdateSubject(ctx, subject); err != nil {
		return nil, err
	}
	return subject, nil
}

// DeleteSubject removes a subject. Subjects with live enrollments cannot
// be deleted.
func (s *CatalogService) DeleteSubject(ctx context.Context, id int64) error {
	if _, err := s.store.GetSubjectByID(ctx, id); err != nil {
		return err
	}
	inUse, err := s.store.SubjectInUse(ctx, id)
	if err != nil {
		return err
	}
	if inUse {
		return apperrors.ErrSubjectHasEnrollments
	}
	if err := s.store.DeleteSubject(ctx, id); err != nil {
		return err
	}
	logger.Info().Int64("subjectId", id).Msg("Subject deleted")
	return nil
}
