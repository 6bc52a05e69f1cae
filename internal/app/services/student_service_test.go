package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusflow/enroll/internal/app/models"
	"github.com/campusflow/enroll/internal/app/models/dto"
	"github.com/campusflow/enroll/internal/app/repositories/memory"
	"github.com/campusflow/enroll/internal/pkg/apperrors"
	"github.com/campusflow/enroll/internal/pkg/auth"
)

type studentFixture struct {
	store    *memory.Store
	service  *StudentService
	course   *models.Course
	subjects []*models.Subject
}

func newStudentFixture(t *testing.T) *studentFixture {
	t.Helper()
	store := memory.New()
	ctx := context.Background()

	course := &models.Course{Code: "BSIT", Name: "Information Technology"}
	require.NoError(t, store.CreateCourse(ctx, course))

	subjects := []*models.Subject{
		{Code: "IT101", Name: "Intro to Computing", Units: 3, CourseID: course.ID, YearLevel: 1},
		{Code: "IT102", Name: "Programming 1", Units: 3, CourseID: course.ID, YearLevel: 1},
		{Code: "GE101", Name: "Mathematics", Units: 2, CourseID: course.ID, YearLevel: 1},
	}
	for _, subject := range subjects {
		require.NoError(t, store.CreateSubject(ctx, subject))
	}

	return &studentFixture{
		store:    store,
		service:  NewStudentService(store),
		course:   course,
		subjects: subjects,
	}
}

func registerRequest(email, studentID string, courseID *int64) dto.RegisterStudentRequest {
	return dto.RegisterStudentRequest{
		FirstName: "Juan",
		LastName:  "Dela Cruz",
		Email:     email,
		StudentID: studentID,
		Password:  "super-secret",
		CourseID:  courseID,
		YearLevel: 1,
	}
}

func TestRegisterForcesPendingStatus(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()

	student, err := f.service.Register(ctx, registerRequest("juan@example.com", "2026-0001", &f.course.ID))
	require.NoError(t, err)

	assert.Equal(t, models.StatusPending, student.Status)
	assert.NotZero(t, student.ID)
	assert.NotZero(t, student.UserID)

	// The login account exists, is student-role and stores a bcrypt hash.
	user, err := f.store.GetUserByID(ctx, student.UserID)
	require.NoError(t, err)
	assert.Equal(t, "juan@example.com", user.Username)
	assert.Equal(t, models.RoleStudent, user.RoleType)
	assert.True(t, auth.IsBcryptHash(user.Password))
	assert.True(t, auth.CheckPassword(user.Password, "super-secret"))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, registerRequest("dup@example.com", "2026-0001", nil))
	require.NoError(t, err)

	_, err = f.service.Register(ctx, registerRequest("dup@example.com", "2026-0002", nil))
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestRegisterDuplicateStudentNumber(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()

	_, err := f.service.Register(ctx, registerRequest("one@example.com", "2026-0001", nil))
	require.NoError(t, err)

	_, err = f.service.Register(ctx, registerRequest("two@example.com", "2026-0001", nil))
	assert.ErrorIs(t, err, apperrors.ErrStudentNumberExists)
}

func TestRegisterUnknownCourse(t *testing.T) {
	f := newStudentFixture(t)

	missing := int64(9999)
	_, err := f.service.Register(context.Background(), registerRequest("x@example.com", "2026-0001", &missing))
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestApproveAndReject(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()

	first, err := f.service.Register(ctx, registerRequest("a@example.com", "2026-0001", nil))
	require.NoError(t, err)
	second, err := f.service.Register(ctx, registerRequest("b@example.com", "2026-0002", nil))
	require.NoError(t, err)

	approved, err := f.service.Approve(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusEnrolled, approved.Status)

	rejected, err := f.service.Reject(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusRejected, rejected.Status)

	// An enrolled student cannot be rejected.
	_, err = f.service.Reject(ctx, first.ID)
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatusTransition)
}

func TestUpdateStudentRejectsIllegalTransition(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()

	student, err := f.service.Register(ctx, registerRequest("c@example.com", "2026-0003", nil))
	require.NoError(t, err)

	graduated := models.StatusGraduated
	_, err = f.service.UpdateStudent(ctx, student.ID, dto.UpdateStudentRequest{Status: &graduated})
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatusTransition)

	// The stored status is unchanged after the rejected update.
	reloaded, err := f.service.GetStudent(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, reloaded.Status)
}

func TestUpdateStudentPartialFields(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()

	student, err := f.service.Register(ctx, registerRequest("d@example.com", "2026-0004", nil))
	require.NoError(t, err)

	firstName := "Maria"
	section := "A"
	updated, err := f.service.UpdateStudent(ctx, student.ID, dto.UpdateStudentRequest{
		FirstName: &firstName,
		Section:   &section,
	})
	require.NoError(t, err)

	assert.Equal(t, "Maria", updated.FirstName)
	require.NotNil(t, updated.Section)
	assert.Equal(t, "A", *updated.Section)
	// Untouched fields survive.
	assert.Equal(t, "Dela Cruz", updated.LastName)
	assert.Equal(t, "d@example.com", updated.Email)
}

func TestUpdateStudentMovesUsernameWithEmail(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()

	student, err := f.service.Register(ctx, registerRequest("before@example.com", "2026-0100", &f.course.ID))
	require.NoError(t, err)

	newEmail := "after@example.com"
	updated, err := f.service.UpdateStudent(ctx, student.ID, dto.UpdateStudentRequest{Email: &newEmail})
	require.NoError(t, err)
	assert.Equal(t, newEmail, updated.Email)

	// The login account follows the email.
	user, err := f.store.GetUserByID(ctx, student.UserID)
	require.NoError(t, err)
	assert.Equal(t, newEmail, user.Username)

	_, err = f.store.GetUserByUsername(ctx, "before@example.com")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUpdateStudentEmailCollidingWithUsername(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()

	taken := &models.User{Username: "registrar@example.com", Password: "x", RoleType: models.RoleAdmin}
	_, err := f.store.CreateUser(ctx, taken)
	require.NoError(t, err)

	student, err := f.service.Register(ctx, registerRequest("h@example.com", "2026-0101", &f.course.ID))
	require.NoError(t, err)

	newEmail := "registrar@example.com"
	_, err = f.service.UpdateStudent(ctx, student.ID, dto.UpdateStudentRequest{Email: &newEmail})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	// Both rows are untouched after the rejected edit.
	current, err := f.service.GetStudent(ctx, student.ID)
	require.NoError(t, err)
	assert.Equal(t, "h@example.com", current.Email)
	user, err := f.store.GetUserByID(ctx, student.UserID)
	require.NoError(t, err)
	assert.Equal(t, "h@example.com", user.Username)
}

func TestAssignSubjectsFullReplace(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()

	student, err := f.service.Register(ctx, registerRequest("e@example.com", "2026-0005", &f.course.ID))
	require.NoError(t, err)

	first, err := f.service.AssignSubjects(ctx, student.ID, dto.AssignSubjectsRequest{
		SubjectIDs: []int64{f.subjects[0].ID, f.subjects[1].ID},
	})
	require.NoError(t, err)
	assert.Len(t, first.Enrollments, 2)
	assert.Equal(t, 6, first.TotalUnits)

	// Reassigning replaces the set instead of appending to it.
	second, err := f.service.AssignSubjects(ctx, student.ID, dto.AssignSubjectsRequest{
		SubjectIDs: []int64{f.subjects[2].ID},
	})
	require.NoError(t, err)
	require.Len(t, second.Enrollments, 1)
	assert.Equal(t, f.subjects[2].ID, second.Enrollments[0].SubjectID)
	assert.Equal(t, 2, second.TotalUnits)
}

func TestAssignSubjectsCollapsesDuplicates(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()

	student, err := f.service.Register(ctx, registerRequest("f@example.com", "2026-0006", nil))
	require.NoError(t, err)

	response, err := f.service.AssignSubjects(ctx, student.ID, dto.AssignSubjectsRequest{
		SubjectIDs: []int64{f.subjects[0].ID, f.subjects[0].ID, f.subjects[0].ID},
	})
	require.NoError(t, err)
	assert.Len(t, response.Enrollments, 1)
	assert.Equal(t, 3, response.TotalUnits)
}

func TestAssignSubjectsUnknownSubject(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()

	student, err := f.service.Register(ctx, registerRequest("g@example.com", "2026-0007", nil))
	require.NoError(t, err)

	// Existing enrollments survive a failed assignment.
	_, err = f.service.AssignSubjects(ctx, student.ID, dto.AssignSubjectsRequest{
		SubjectIDs: []int64{f.subjects[0].ID},
	})
	require.NoError(t, err)

	_, err = f.service.AssignSubjects(ctx, student.ID, dto.AssignSubjectsRequest{
		SubjectIDs: []int64{f.subjects[1].ID, 424242},
	})
	assert.ErrorIs(t, err, apperrors.ErrSubjectNotFound)

	current, err := f.service.Enrollments(ctx, student.ID)
	require.NoError(t, err)
	require.Len(t, current.Enrollments, 1)
	assert.Equal(t, f.subjects[0].ID, current.Enrollments[0].SubjectID)
}

func TestEnrollmentsEmptySetHasZeroUnits(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()

	student, err := f.service.Register(ctx, registerRequest("h@example.com", "2026-0008", nil))
	require.NoError(t, err)

	response, err := f.service.Enrollments(ctx, student.ID)
	require.NoError(t, err)
	assert.Empty(t, response.Enrollments)
	assert.Equal(t, 0, response.TotalUnits)
}

func TestDeleteStudentCascades(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()

	student, err := f.service.Register(ctx, registerRequest("i@example.com", "2026-0009", nil))
	require.NoError(t, err)

	_, err = f.service.AssignSubjects(ctx, student.ID, dto.AssignSubjectsRequest{
		SubjectIDs: []int64{f.subjects[0].ID, f.subjects[1].ID},
	})
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteStudent(ctx, student.ID))

	_, err = f.service.GetStudent(ctx, student.ID)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)

	_, err = f.store.GetUserByID(ctx, student.UserID)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	enrollments, err := f.store.ListEnrollmentsByStudent(ctx, student.ID)
	require.NoError(t, err)
	assert.Empty(t, enrollments)
}

func TestListStudentsFilters(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()

	first, err := f.service.Register(ctx, registerRequest("j@example.com", "2026-0010", &f.course.ID))
	require.NoError(t, err)
	_, err = f.service.Register(ctx, registerRequest("k@example.com", "2026-0011", nil))
	require.NoError(t, err)

	_, err = f.service.Approve(ctx, first.ID)
	require.NoError(t, err)

	enrolled := models.StatusEnrolled
	students, err := f.service.ListStudents(ctx, dto.StudentFilter{Status: &enrolled})
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, first.ID, students[0].ID)

	students, err = f.service.ListStudents(ctx, dto.StudentFilter{CourseID: &f.course.ID})
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, first.ID, students[0].ID)

	bogus := models.StudentStatus("expelled")
	_, err = f.service.ListStudents(ctx, dto.StudentFilter{Status: &bogus})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
