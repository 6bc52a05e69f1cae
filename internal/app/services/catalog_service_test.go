package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusflow/enroll/internal/app/models/dto"
	"github.com/campusflow/enroll/internal/app/repositories/memory"
	"github.com/campusflow/enroll/internal/pkg/apperrors"
)

func newCatalogFixture(t *testing.T) (*memory.Store, *CatalogService) {
	t.Helper()
	store := memory.New()
	return store, NewCatalogService(store)
}

func TestCreateCourseDuplicateCode(t *testing.T) {
	_, service := newCatalogFixture(t)
	ctx := context.Background()

	_, err := service.CreateCourse(ctx, dto.CreateCourseRequest{Code: "BSIT", Name: "Information Technology"})
	require.NoError(t, err)

	_, err = service.CreateCourse(ctx, dto.CreateCourseRequest{Code: "BSIT", Name: "Other"})
	assert.ErrorIs(t, err, apperrors.ErrCourseCodeExists)
}

func TestUpdateCourse(t *testing.T) {
	_, service := newCatalogFixture(t)
	ctx := context.Background()

	course, err := service.CreateCourse(ctx, dto.CreateCourseRequest{Code: "BSIT", Name: "Information Technology"})
	require.NoError(t, err)
	other, err := service.CreateCourse(ctx, dto.CreateCourseRequest{Code: "BSCS", Name: "Computer Science"})
	require.NoError(t, err)

	name := "Renamed"
	updated, err := service.UpdateCourse(ctx, course.ID, dto.UpdateCourseRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "BSIT", updated.Code)

	// Renaming onto another course's code is a conflict.
	taken := "BSCS"
	_, err = service.UpdateCourse(ctx, course.ID, dto.UpdateCourseRequest{Code: &taken})
	assert.ErrorIs(t, err, apperrors.ErrCourseCodeExists)

	_, err = service.UpdateCourse(ctx, other.ID+1000, dto.UpdateCourseRequest{Name: &name})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestDeleteCourseWithSubjects(t *testing.T) {
	_, service := newCatalogFixture(t)
	ctx := context.Background()

	course, err := service.CreateCourse(ctx, dto.CreateCourseRequest{Code: "BSIT", Name: "Information Technology"})
	require.NoError(t, err)

	_, err = service.CreateSubject(ctx, dto.CreateSubjectRequest{
		Code:      "IT101",
		Name:      "Intro to Computing",
		Units:     3,
		CourseID:  course.ID,
		YearLevel: 1,
	})
	require.NoError(t, err)

	err = service.DeleteCourse(ctx, course.ID)
	assert.ErrorIs(t, err, apperrors.ErrCourseHasSubjects)

	// Once the subject is gone the course can be deleted.
	subjects, err := service.ListSubjects(ctx, dto.SubjectFilter{CourseID: &course.ID})
	require.NoError(t, err)
	require.Len(t, subjects, 1)
	require.NoError(t, service.DeleteSubject(ctx, subjects[0].ID))
	require.NoError(t, service.DeleteCourse(ctx, course.ID))

	_, err = service.GetCourse(ctx, course.ID)
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
}

func TestDeleteCourseWithStudents(t *testing.T) {
	f := newStudentFixture(t)
	catalog := NewCatalogService(f.store)
	ctx := context.Background()

	student, err := f.service.Register(ctx, registerRequest("ana@example.com", "2026-0300", &f.course.ID))
	require.NoError(t, err)

	// Clear the subjects so the student reference is what blocks the delete.
	for _, subject := range f.subjects {
		require.NoError(t, f.store.DeleteSubject(ctx, subject.ID))
	}

	err = catalog.DeleteCourse(ctx, f.course.ID)
	assert.ErrorIs(t, err, apperrors.ErrCourseHasStudents)

	// Once the student is gone the course can be deleted.
	require.NoError(t, f.service.DeleteStudent(ctx, student.ID))
	require.NoError(t, catalog.DeleteCourse(ctx, f.course.ID))
}

func TestDeleteSubjectWithEnrollments(t *testing.T) {
	f := newStudentFixture(t)
	catalog := NewCatalogService(f.store)
	ctx := context.Background()

	student, err := f.service.Register(ctx, registerRequest("ben@example.com", "2026-0301", &f.course.ID))
	require.NoError(t, err)
	_, err = f.service.AssignSubjects(ctx, student.ID, dto.AssignSubjectsRequest{
		SubjectIDs: []int64{f.subjects[0].ID},
	})
	require.NoError(t, err)

	err = catalog.DeleteSubject(ctx, f.subjects[0].ID)
	assert.ErrorIs(t, err, apperrors.ErrSubjectHasEnrollments)

	// A subject nobody enrolled in deletes fine.
	require.NoError(t, catalog.DeleteSubject(ctx, f.subjects[1].ID))

	// Dropping the enrollment frees the subject.
	_, err = f.service.AssignSubjects(ctx, student.ID, dto.AssignSubjectsRequest{SubjectIDs: []int64{}})
	require.NoError(t, err)
	require.NoError(t, catalog.DeleteSubject(ctx, f.subjects[0].ID))
}

func TestCreateSubjectValidations(t *testing.T) {
	_, service := newCatalogFixture(t)
	ctx := context.Background()

	course, err := service.CreateCourse(ctx, dto.CreateCourseRequest{Code: "BSIT", Name: "Information Technology"})
	require.NoError(t, err)

	_, err = service.CreateSubject(ctx, dto.CreateSubjectRequest{
		Code: "IT101", Name: "Intro", Units: 3, CourseID: 9999, YearLevel: 1,
	})
	assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)

	_, err = service.CreateSubject(ctx, dto.CreateSubjectRequest{
		Code: "IT101", Name: "Intro", Units: 3, CourseID: course.ID, YearLevel: 1,
	})
	require.NoError(t, err)

	_, err = service.CreateSubject(ctx, dto.CreateSubjectRequest{
		Code: "IT101", Name: "Duplicate", Units: 3, CourseID: course.ID, YearLevel: 1,
	})
	assert.ErrorIs(t, err, apperrors.ErrSubjectCodeExists)
}

func TestListSubjectsFilters(t *testing.T) {
	_, service := newCatalogFixture(t)
	ctx := context.Background()

	bsit, err := service.CreateCourse(ctx, dto.CreateCourseRequest{Code: "BSIT", Name: "Information Technology"})
	require.NoError(t, err)
	bscs, err := service.CreateCourse(ctx, dto.CreateCourseRequest{Code: "BSCS", Name: "Computer Science"})
	require.NoError(t, err)

	seed := []dto.CreateSubjectRequest{
		{Code: "IT101", Name: "Intro", Units: 3, CourseID: bsit.ID, YearLevel: 1},
		{Code: "IT201", Name: "Data Structures", Units: 3, CourseID: bsit.ID, YearLevel: 2},
		{Code: "CS101", Name: "Discrete Math", Units: 3, CourseID: bscs.ID, YearLevel: 1},
	}
	for _, req := range seed {
		_, err := service.CreateSubject(ctx, req)
		require.NoError(t, err)
	}

	all, err := service.ListSubjects(ctx, dto.SubjectFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	yearOne := 1
	filtered, err := service.ListSubjects(ctx, dto.SubjectFilter{CourseID: &bsit.ID, YearLevel: &yearOne})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "IT101", filtered[0].Code)
}
