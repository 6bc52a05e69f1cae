package postgres

import (
	"context"
	"fmt"

	"github.com/campusflow/enroll/internal/app/models"
)

// CreateEnrollment inserts a student-subject link
func (s *Store) CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) error {
	err := s.db.QueryRow(ctx, `
		INSERT INTO enrollments (student_id, subject_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		enrollment.StudentID, enrollment.SubjectID, enrollment.Status).
		Scan(&enrollment.ID, &enrollment.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating enrollment: %w", err)
	}
	return nil
}

// ListEnrollmentsByStudent returns a student's enrollments with the linked
// subject populated, ordered by id
func (s *Store) ListEnrollmentsByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error) {
	rows, err := s.db.Query(ctx, `
		SELECT e.id, e.student_id, e.subject_id, e.status, e.created_at,
			s.id, s.code, s.name, s.units, s.schedule, s.instructor,
			s.course_id, s.year_level, s.created_at, s.updated_at
		FROM enrollments e
		JOIN subjects s ON s.id = e.subject_id
		WHERE e.student_id = $1
		ORDER BY e.id`, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		enrollment := &models.Enrollment{Subject: &models.Subject{}}
		subject := enrollment.Subject
		if err := rows.Scan(&enrollment.ID, &enrollment.StudentID,
			&enrollment.SubjectID, &enrollment.Status, &enrollment.CreatedAt,
			&subject.ID, &subject.Code, &subject.Name, &subject.Units,
			&subject.Schedule, &subject.Instructor, &subject.CourseID,
			&subject.YearLevel, &subject.CreatedAt, &subject.UpdatedAt); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, enrollment)
	}
	return enrollments, rows.Err()
}

// SubjectInUse reports whether any enrollment still references the subject
func (s *Store) SubjectInUse(ctx context.Context, subjectID int64) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM enrollments WHERE subject_id = $1)`, subjectID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking subject usage: %w", err)
	}
	return exists, nil
}

// DeleteEnrollmentsByStudent removes all of a student's enrollments
func (s *Store) DeleteEnrollmentsByStudent(ctx context.Context, studentID int64) error {
	_, err := s.db.Exec(ctx, `DELETE FROM enrollments WHERE student_id = $1`, studentID)
	if err != nil {
		return fmt.Errorf("error deleting enrollments: %w", err)
	}
	return nil
}

// CreateNotification appends a notification audit record
func (s *Store) CreateNotification(ctx context.Context, notification *models.Notification) error {
	err := s.db.QueryRow(ctx, `
		INSERT INTO notifications (type, subject, message, status, sent_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, sent_at`,
		notification.Type, notification.Subject, notification.Message,
		notification.Status, notification.SentBy).
		Scan(&notification.ID, &notification.SentAt)
	if err != nil {
		return fmt.Errorf("error creating notification: %w", err)
	}
	return nil
}

// ListNotifications returns the notification audit log, newest first
func (s *Store) ListNotifications(ctx context.Context) ([]*models.Notification, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, type, subject, message, status, sent_by, sent_at
		FROM notifications
		ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		notification := &models.Notification{}
		if err := rows.Scan(&notification.ID, &notification.Type,
			&notification.Subject, &notification.Message, &notification.Status,
			&notification.SentBy, &notification.SentAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, notification)
	}
	return notifications, rows.Err()
}

// CreateLoginAttempt appends a login audit record
func (s *Store) CreateLoginAttempt(ctx context.Context, attempt *models.LoginAttempt) error {
	err := s.db.QueryRow(ctx, `
		INSERT INTO login_attempts (user_id, username, success)
		VALUES ($1, $2, $3)
		RETURNING id, attempt_time`,
		attempt.UserID, attempt.Username, attempt.Success).
		Scan(&attempt.ID, &attempt.AttemptTime)
	if err != nil {
		return fmt.Errorf("error creating login attempt: %w", err)
	}
	return nil
}

// ListLoginAttempts returns the login audit log, newest first
func (s *Store) ListLoginAttempts(ctx context.Context) ([]*models.LoginAttempt, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, username, success, attempt_time
		FROM login_attempts
		ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("error listing login attempts: %w", err)
	}
	defer rows.Close()

	var attempts []*models.LoginAttempt
	for rows.Next() {
		attempt := &models.LoginAttempt{}
		if err := rows.Scan(&attempt.ID, &attempt.UserID, &attempt.Username,
			&attempt.Success, &attempt.AttemptTime); err != nil {
			return nil, err
		}
		attempts = append(attempts, attempt)
	}
	return attempts, rows.Err()
}
