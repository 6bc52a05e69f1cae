package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/campusflow/enroll/internal/app/models"
	"github.com/campusflow/enroll/internal/app/models/dto"
	"github.com/campusflow/enroll/internal/pkg/apperrors"
)

const studentColumns = `id, user_id, first_name, last_name, email, student_id,
	course_id, year_level, status, section, avatar, admission_record,
	created_at, updated_at`

// CreateStudent creates a new student record
func (s *Store) CreateStudent(ctx context.Context, student *models.Student) error {
	if exists, err := s.EmailExists(ctx, student.Email); err != nil {
		return fmt.Errorf("error checking email: %w", err)
	} else if exists {
		return apperrors.ErrEmailAlreadyExists
	}
	if exists, err := s.StudentNumberExists(ctx, student.StudentID); err != nil {
		return fmt.Errorf("error checking student number: %w", err)
	} else if exists {
		return apperrors.ErrStudentNumberExists
	}

	admission, err := json.Marshal(student.Admission)
	if err != nil {
		return fmt.Errorf("error encoding admission record: %w", err)
	}

	err = s.db.QueryRow(ctx, `
		INSERT INTO students (user_id, first_name, last_name, email, student_id,
			course_id, year_level, status, section, avatar, admission_record)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at`,
		student.UserID, student.FirstName, student.LastName, student.Email,
		student.StudentID, student.CourseID, student.YearLevel, student.Status,
		student.Section, student.Avatar, admission).
		Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating student: %w", err)
	}
	return nil
}

// GetStudentByID retrieves a student by ID
func (s *Store) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	return scanStudent(s.db.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE id = $1`, id))
}

// GetStudentByUserID retrieves the student owned by a user account
func (s *Store) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return scanStudent(s.db.QueryRow(ctx,
		`SELECT `+studentColumns+` FROM students WHERE user_id = $1`, userID))
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	student := &models.Student{}
	var admission []byte
	err := row.Scan(&student.ID, &student.UserID, &student.FirstName,
		&student.LastName, &student.Email, &student.StudentID, &student.CourseID,
		&student.YearLevel, &student.Status, &student.Section, &student.Avatar,
		&admission, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	if len(admission) > 0 {
		if err := json.Unmarshal(admission, &student.Admission); err != nil {
			return nil, fmt.Errorf("error decoding admission record: %w", err)
		}
	}
	return student, nil
}

// EmailExists checks if a student email is already registered
func (s *Store) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking email: %w", err)
	}
	return exists, nil
}

// StudentNumberExists checks if a student number is already registered
func (s *Store) StudentNumberExists(ctx context.Context, studentID string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM students WHERE student_id = $1)`, studentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student number: %w", err)
	}
	return exists, nil
}

// ListStudents returns students matching the filter, ordered by id
func (s *Store) ListStudents(ctx context.Context, filter dto.StudentFilter) ([]*models.Student, error) {
	query := `SELECT ` + studentColumns + ` FROM students WHERE 1=1`
	var args []any

	if filter.YearLevel != nil {
		args = append(args, *filter.YearLevel)
		query += fmt.Sprintf(" AND year_level = $%d", len(args))
	}
	if filter.Section != nil {
		args = append(args, *filter.Section)
		query += fmt.Sprintf(" AND section = $%d", len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.CourseID != nil {
		args = append(args, *filter.CourseID)
		query += fmt.Sprintf(" AND course_id = $%d", len(args))
	}
	query += " ORDER BY id"

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, student)
	}
	return students, rows.Err()
}

// UpdateStudent replaces a student record
func (s *Store) UpdateStudent(ctx context.Context, student *models.Student) error {
	admission, err := json.Marshal(student.Admission)
	if err != nil {
		return fmt.Errorf("error encoding admission record: %w", err)
	}

	tag, err := s.db.Exec(ctx, `
		UPDATE students
		SET first_name = $1, last_name = $2, email = $3, student_id = $4,
			course_id = $5, year_level = $6, status = $7, section = $8,
			avatar = $9, admission_record = $10, updated_at = NOW()
		WHERE id = $11`,
		student.FirstName, student.LastName, student.Email, student.StudentID,
		student.CourseID, student.YearLevel, student.Status, student.Section,
		student.Avatar, admission, student.ID)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// DeleteStudent removes a student record only; the cascade over enrollments
// and the owning user runs in the service's transaction.
func (s *Store) DeleteStudent(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}
