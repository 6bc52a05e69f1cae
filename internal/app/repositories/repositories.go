package repositories

import (
	"context"

	"github.com/campusflow/enroll/internal/app/models"
	"github.com/campusflow/enroll/internal/app/models/dto"
)

// UserStore persists credential records
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	UpdateUser(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	DeleteUser(ctx context.Context, id int64) error
	ListUsers(ctx context.Context) ([]*models.User, error)
}

// StudentStore persists student enrollment records
type StudentStore interface {
	CreateStudent(ctx context.Context, student *models.Student) error
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	StudentNumberExists(ctx context.Context, studentID string) (bool, error)
	ListStudents(ctx context.Context, filter dto.StudentFilter) ([]*models.Student, error)
	UpdateStudent(ctx context.Context, student *models.Student) error
	DeleteStudent(ctx context.Context, id int64) error
}

// CourseStore persists the course catalog
type CourseStore interface {
	CreateCourse(ctx context.Context, course *models.Course) error
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	CourseCodeExists(ctx context.Context, code string) (bool, error)
	ListCourses(ctx context.Context) ([]*models.Course, error)
	UpdateCourse(ctx context.Context, course *models.Course) error
	DeleteCourse(ctx context.Context, id int64) error
}

// SubjectStore persists the subject catalog
type SubjectStore interface {
	CreateSubject(ctx context.Context, subject *models.Subject) error
	GetSubjectByID(ctx context.Context, id int64) (*models.Subject, error)
	GetSubjectsByIDs(ctx context.Context, ids []int64) ([]*models.Subject, error)
	SubjectCodeExists(ctx context.Context, code string) (bool, error)
	ListSubjects(ctx context.Context, filter dto.SubjectFilter) ([]*models.Subject, error)
	UpdateSubject(ctx context.Context, subject *models.Subject) error
	DeleteSubject(ctx context.Context, id int64) error
}

// EnrollmentStore persists student-subject links
type EnrollmentStore interface {
	CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) error
	ListEnrollmentsByStudent(ctx context.Context, studentID int64) ([]*models.Enrollment, error)
	DeleteEnrollmentsByStudent(ctx context.Context, studentID int64) error
	SubjectInUse(ctx context.Context, subjectID int64) (bool, error)
}

// NotificationStore appends and lists the notification audit log
type NotificationStore interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	ListNotifications(ctx context.Context) ([]*models.Notification, error)
}

// LoginAttemptStore appends and lists the login audit log
type LoginAttemptStore interface {
	CreateLoginAttempt(ctx context.Context, attempt *models.LoginAttempt) error
	ListLoginAttempts(ctx context.Context) ([]*models.LoginAttempt, error)
}

// Store aggregates every store behind one handle. WithTx runs fn against a
// store bound to a single all-or-nothing scope; multi-step operations such
// as the student cascade delete and the full-replace subject assignment go
// through it.
type Store interface {
	UserStore
	StudentStore
	CourseStore
	SubjectStore
	EnrollmentStore
	NotificationStore
	LoginAttemptStore

	WithTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
	Close() error
}
