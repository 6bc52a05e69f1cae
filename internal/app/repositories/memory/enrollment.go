package memory

import (
	"context"
	"sort"
	"time"

	"github.com/campusflow/enroll/internal/app/models"
)

// CreateEnrollment inserts a student-subject link
func (s *Store) CreateEnrollment(_ context.Context, enrollment *models.Enrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextEnrollmentID++
	enrollment.ID = s.nextEnrollmentID
	enrollment.CreatedAt = time.Now()
	s.enrollments[enrollment.ID] = cloneEnrollment(enrollment)
	return nil
}

// ListEnrollmentsByStudent returns a student's enrollments with the linked
// subject populated, ordered by id
func (s *Store) ListEnrollmentsByStudent(_ context.Context, studentID int64) ([]*models.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var enrollments []*models.Enrollment
	for _, enrollment := range s.enrollments {
		if enrollment.StudentID != studentID {
			continue
		}
		e := cloneEnrollment(enrollment)
		if subject, ok := s.subjects[enrollment.SubjectID]; ok {
			e.Subject = cloneSubject(subject)
		}
		enrollments = append(enrollments, e)
	}
	sort.Slice(enrollments, func(i, j int) bool { return enrollments[i].ID < enrollments[j].ID })
	return enrollments, nil
}

// SubjectInUse reports whether any enrollment still references the subject
func (s *Store) SubjectInUse(_ context.Context, subjectID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, enrollment := range s.enrollments {
		if enrollment.SubjectID == subjectID {
			return true, nil
		}
	}
	return false, nil
}

// DeleteEnrollmentsByStudent removes all of a student's enrollments
func (s *Store) DeleteEnrollmentsByStudent(_ context.Context, studentID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, enrollment := range s.enrollments {
		if enrollment.StudentID == studentID {
			delete(s.enrollments, id)
		}
	}
	return nil
}

// CreateNotification appends a notification audit record
func (s *Store) CreateNotification(_ context.Context, notification *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextNotificationID++
	notification.ID = s.nextNotificationID
	if notification.SentAt.IsZero() {
		notification.SentAt = time.Now()
	}
	stored := *notification
	s.notifications = append(s.notifications, &stored)
	return nil
}

// ListNotifications returns the notification audit log, newest first
func (s *Store) ListNotifications(_ context.Context) ([]*models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notifications := make([]*models.Notification, 0, len(s.notifications))
	for i := len(s.notifications) - 1; i >= 0; i-- {
		n := *s.notifications[i]
		notifications = append(notifications, &n)
	}
	return notifications, nil
}

// CreateLoginAttempt appends a login audit record
func (s *Store) CreateLoginAttempt(_ context.Context, attempt *models.LoginAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextAttemptID++
	attempt.ID = s.nextAttemptID
	if attempt.AttemptTime.IsZero() {
		attempt.AttemptTime = time.Now()
	}
	stored := *attempt
	s.loginAttempts = append(s.loginAttempts, &stored)
	return nil
}

// ListLoginAttempts returns the login audit log, newest first
func (s *Store) ListLoginAttempts(_ context.Context) ([]*models.LoginAttempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	attempts := make([]*models.LoginAttempt, 0, len(s.loginAttempts))
	for i := len(s.loginAttempts) - 1; i >= 0; i-- {
		a := *s.loginAttempts[i]
		attempts = append(attempts, &a)
	}
	return attempts, nil
}
