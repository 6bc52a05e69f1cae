package memory

import (
	"context"
	"sort"
	"time"

	"github.com/campusflow/enroll/internal/app/models"
	"github.com/campusflow/enroll/internal/app/models/dto"
	"github.com/campusflow/enroll/internal/pkg/apperrors"
)

// CreateCourse creates a new course
func (s *Store) CreateCourse(_ context.Context, course *models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.courses {
		if existing.Code == course.Code {
			return apperrors.ErrCourseCodeExists
		}
	}

	s.nextCourseID++
	course.ID = s.nextCourseID
	now := time.Now()
	course.CreatedAt = now
	course.UpdatedAt = now
	s.courses[course.ID] = cloneCourse(course)
	return nil
}

// GetCourseByID retrieves a course by ID
func (s *Store) GetCourseByID(_ context.Context, id int64) (*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	course, ok := s.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return cloneCourse(course), nil
}

// CourseCodeExists checks if a course code is taken
func (s *Store) CourseCodeExists(_ context.Context, code string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, course := range s.courses {
		if course.Code == code {
			return true, nil
		}
	}
	return false, nil
}

// ListCourses returns all courses ordered by id
func (s *Store) ListCourses(_ context.Context) ([]*models.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	courses := make([]*models.Course, 0, len(s.courses))
	for _, course := range s.courses {
		courses = append(courses, cloneCourse(course))
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses, nil
}

// UpdateCourse replaces a course record
func (s *Store) UpdateCourse(_ context.Context, course *models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.courses[course.ID]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	for id, other := range s.courses {
		if id != course.ID && other.Code == course.Code {
			return apperrors.ErrCourseCodeExists
		}
	}

	existing.Code = course.Code
	existing.Name = course.Name
	existing.Description = course.Description
	existing.UpdatedAt = time.Now()
	return nil
}

// DeleteCourse removes a course record
func (s *Store) DeleteCourse(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(s.courses, id)
	return nil
}

// CreateSubject creates a new subject
func (s *Store) CreateSubject(_ context.Context, subject *models.Subject) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.subjects {
		if existing.Code == subject.Code {
			return apperrors.ErrSubjectCodeExists
		}
	}

	s.nextSubjectID++
	subject.ID = s.nextSubjectID
	now := time.Now()
	subject.CreatedAt = now
	subject.UpdatedAt = now
	s.subjects[subject.ID] = cloneSubject(subject)
	return nil
}

// GetSubjectByID retrieves a subject by ID
func (s *Store) GetSubjectByID(_ context.Context, id int64) (*models.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subject, ok := s.subjects[id]
	if !ok {
		return nil, apperrors.ErrSubjectNotFound
	}
	return cloneSubject(subject), nil
}

// GetSubjectsByIDs retrieves the subjects for the given ids; a missing id
// yields ErrSubjectNotFound
func (s *Store) GetSubjectsByIDs(_ context.Context, ids []int64) ([]*models.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subjects := make([]*models.Subject, 0, len(ids))
	for _, id := range ids {
		subject, ok := s.subjects[id]
		if !ok {
			return nil, apperrors.ErrSubjectNotFound
		}
		subjects = append(subjects, cloneSubject(subject))
	}
	return subjects, nil
}

// SubjectCodeExists checks if a subject code is taken
func (s *Store) SubjectCodeExists(_ context.Context, code string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, subject := range s.subjects {
		if subject.Code == code {
			return true, nil
		}
	}
	return false, nil
}

// ListSubjects returns subjects matching the filter, ordered by id
func (s *Store) ListSubjects(_ context.Context, filter dto.SubjectFilter) ([]*models.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var subjects []*models.Subject
	for _, subject := range s.subjects {
		if filter.CourseID != nil && subject.CourseID != *filter.CourseID {
			continue
		}
		if filter.YearLevel != nil && subject.YearLevel != *filter.YearLevel {
			continue
		}
		subjects = append(subjects, cloneSubject(subject))
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i].ID < subjects[j].ID })
	return subjects, nil
}

// UpdateSubject replaces a subject record
func (s *Store) UpdateSubject(_ context.Context, subject *models.Subject) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.subjects[subject.ID]
	if !ok {
		return apperrors.ErrSubjectNotFound
	}
	for id, other := range s.subjects {
		if id != subject.ID && other.Code == subject.Code {
			return apperrors.ErrSubjectCodeExists
		}
	}

	existing.Code = subject.Code
	existing.Name = subject.Name
	existing.Units = subject.Units
	existing.Schedule = subject.Schedule
	existing.Instructor = subject.Instructor
	existing.CourseID = subject.CourseID
	existing.YearLevel = subject.YearLevel
	existing.UpdatedAt = time.Now()
	return nil
}

// DeleteSubject removes a subject record
func (s *Store) DeleteSubject(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.subjects[id]; !ok {
		return apperrors.ErrSubjectNotFound
	}
	delete(s.subjects, id)
	return nil
}
