package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/campusflow/enroll/internal/app/models"
	"github.com/campusflow/enroll/internal/app/models/dto"
	"github.com/campusflow/enroll/internal/pkg/apperrors"
)

// CreateCourse creates a new course
func (s *Store) CreateCourse(ctx context.Context, course *models.Course) error {
	if exists, err := s.CourseCodeExists(ctx, course.Code); err != nil {
		return fmt.Errorf("error checking course code: %w", err)
	} else if exists {
		return apperrors.ErrCourseCodeExists
	}

	err := s.db.QueryRow(ctx, `
		INSERT INTO courses (code, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		course.Code, course.Name, course.Description).
		Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating course: %w", err)
	}
	return nil
}

// GetCourseByID retrieves a course by ID
func (s *Store) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	course := &models.Course{}
	err := s.db.QueryRow(ctx, `
		SELECT id, code, name, description, created_at, updated_at
		FROM courses
		WHERE id = $1`, id).
		Scan(&course.ID, &course.Code, &course.Name, &course.Description,
			&course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}

// CourseCodeExists checks if a course code is taken
func (s *Store) CourseCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM courses WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking course code: %w", err)
	}
	return exists, nil
}

// ListCourses returns all courses ordered by id
func (s *Store) ListCourses(ctx context.Context) ([]*models.Course, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, code, name, description, created_at, updated_at
		FROM courses
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error listing courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course := &models.Course{}
		if err := rows.Scan(&course.ID, &course.Code, &course.Name,
			&course.Description, &course.CreatedAt, &course.UpdatedAt); err != nil {
			return nil, err
		}
		courses = append(courses, course)
	}
	return courses, rows.Err()
}

// UpdateCourse replaces a course record
func (s *Store) UpdateCourse(ctx context.Context, course *models.Course) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE courses
		SET code = $1, name = $2, description = $3, updated_at = NOW()
		WHERE id = $4`,
		course.Code, course.Name, course.Description, course.ID)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// DeleteCourse removes a course record
func (s *Store) DeleteCourse(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}
	return nil
}

// CreateSubject creates a new subject
func (s *Store) CreateSubject(ctx context.Context, subject *models.Subject) error {
	if exists, err := s.SubjectCodeExists(ctx, subject.Code); err != nil {
		return fmt.Errorf("error checking subject code: %w", err)
	} else if exists {
		return apperrors.ErrSubjectCodeExists
	}

	err := s.db.QueryRow(ctx, `
		INSERT INTO subjects (code, name, units, schedule, instructor, course_id, year_level)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		subject.Code, subject.Name, subject.Units, subject.Schedule,
		subject.Instructor, subject.CourseID, subject.YearLevel).
		Scan(&subject.ID, &subject.CreatedAt, &subject.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating subject: %w", err)
	}
	return nil
}

// GetSubjectByID retrieves a subject by ID
func (s *Store) GetSubjectByID(ctx context.Context, id int64) (*models.Subject, error) {
	subject := &models.Subject{}
	err := s.db.QueryRow(ctx, `
		SELECT id, code, name, units, schedule, instructor, course_id, year_level,
			created_at, updated_at
		FROM subjects
		WHERE id = $1`, id).
		Scan(&subject.ID, &subject.Code, &subject.Name, &subject.Units,
			&subject.Schedule, &subject.Instructor, &subject.CourseID,
			&subject.YearLevel, &subject.CreatedAt, &subject.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}
	return subject, nil
}

// GetSubjectsByIDs retrieves the subjects for the given ids; a missing id
// yields ErrSubjectNotFound
func (s *Store) GetSubjectsByIDs(ctx context.Context, ids []int64) ([]*models.Subject, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, code, name, units, schedule, instructor, course_id, year_level,
			created_at, updated_at
		FROM subjects
		WHERE id = ANY($1)
		ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("error retrieving subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		subject := &models.Subject{}
		if err := rows.Scan(&subject.ID, &subject.Code, &subject.Name, &subject.Units,
			&subject.Schedule, &subject.Instructor, &subject.CourseID,
			&subject.YearLevel, &subject.CreatedAt, &subject.UpdatedAt); err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(subjects) != len(ids) {
		return nil, apperrors.ErrSubjectNotFound
	}
	return subjects, nil
}

// SubjectCodeExists checks if a subject code is taken
func (s *Store) SubjectCodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM subjects WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking subject code: %w", err)
	}
	return exists, nil
}

// ListSubjects returns subjects matching the filter, ordered by id
func (s *Store) ListSubjects(ctx context.Context, filter dto.SubjectFilter) ([]*models.Subject, error) {
	query := `
		SELECT id, code, name, units, schedule, instructor, course_id, year_level,
			created_at, updated_at
		FROM subjects
		WHERE 1=1`
	var args []any

	if filter.CourseID != nil {
		args = append(args, *filter.CourseID)
		query += fmt.Sprintf(" AND course_id = $%d", len(args))
	}
	if filter.YearLevel != nil {
		args = append(args, *filter.YearLevel)
		query += fmt.Sprintf(" AND year_level = $%d", len(args))
	}
	query += " ORDER BY id"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing subjects: %w", err)
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		subject := &models.Subject{}
		if err := rows.Scan(&subject.ID, &subject.Code, &subject.Name, &subject.Units,
			&subject.Schedule, &subject.Instructor, &subject.CourseID,
			&subject.YearLevel, &subject.CreatedAt, &subject.UpdatedAt); err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}
	return subjects, rows.Err()
}

// UpdateSubject replaces a subject record
func (s *Store) UpdateSubject(ctx context.Context, subject *models.Subject) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE subjects
		SET code = $1, name = $2, units = $3, schedule = $4, instructor = $5,
			course_id = $6, year_level = $7, updated_at = NOW()
		WHERE id = $8`,
		subject.Code, subject.Name, subject.Units, subject.Schedule,
		subject.Instructor, subject.CourseID, subject.YearLevel, subject.ID)
	if err != nil {
		return fmt.Errorf("error updating subject: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}
	return nil
}

// DeleteSubject removes a subject record
func (s *Store) DeleteSubject(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting subject: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}
	return nil
}
