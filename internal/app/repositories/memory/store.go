// Package memory implements the local fallback store used when no
// DATABASE_URL is configured. It is also the test double for the service
// layer.
package memory

import (
	"context"
	"sync"

	"github.com/campusflow/enroll/internal/app/models"
	"github.com/campusflow/enroll/internal/app/repositories"
)

// Store keeps everything in process memory. Individual operations are
// atomic under the store mutex; WithTx additionally serializes multi-step
// scopes against each other.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	users         map[int64]*models.User
	students      map[int64]*models.Student
	courses       map[int64]*models.Course
	subjects      map[int64]*models.Subject
	enrollments   map[int64]*models.Enrollment
	notifications []*models.Notification
	loginAttempts []*models.LoginAttempt

	nextUserID         int64
	nextStudentID      int64
	nextCourseID       int64
	nextSubjectID      int64
	nextEnrollmentID   int64
	nextNotificationID int64
	nextAttemptID      int64
}

var _ repositories.Store = (*Store)(nil)

// New creates an empty in-memory store
func New() *Store {
	return &Store{
		users:       make(map[int64]*models.User),
		students:    make(map[int64]*models.Student),
		courses:     make(map[int64]*models.Course),
		subjects:    make(map[int64]*models.Subject),
		enrollments: make(map[int64]*models.Enrollment),
	}
}

// WithTx serializes a multi-step scope. The in-memory store has no rollback;
// an error from fn aborts the remaining steps but does not undo earlier ones.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, tx repositories.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(ctx, s)
}

// Close is a no-op for the in-memory store
func (s *Store) Close() error {
	return nil
}

func cloneUser(u *models.User) *models.User {
	c := *u
	return &c
}

func cloneStudent(st *models.Student) *models.Student {
	c := *st
	if st.CourseID != nil {
		v := *st.CourseID
		c.CourseID = &v
	}
	if st.Section != nil {
		v := *st.Section
		c.Section = &v
	}
	if st.Avatar != nil {
		v := *st.Avatar
		c.Avatar = &v
	}
	c.Course = nil
	c.User = nil
	return &c
}

func cloneCourse(co *models.Course) *models.Course {
	c := *co
	return &c
}

func cloneSubject(su *models.Subject) *models.Subject {
	c := *su
	return &c
}

func cloneEnrollment(e *models.Enrollment) *models.Enrollment {
	c := *e
	c.Subject = nil
	return &c
}
