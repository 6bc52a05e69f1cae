package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusflow/enroll/internal/app/models"
	"github.com/campusflow/enroll/internal/app/models/dto"
)

func TestDashboardAggregates(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()
	service := NewReportService(f.store)

	first, err := f.service.Register(ctx, registerRequest("a@example.com", "2026-0001", &f.course.ID))
	require.NoError(t, err)
	_, err = f.service.Register(ctx, registerRequest("b@example.com", "2026-0002", &f.course.ID))
	require.NoError(t, err)
	_, err = f.service.Register(ctx, registerRequest("c@example.com", "2026-0003", nil))
	require.NoError(t, err)

	_, err = f.service.Approve(ctx, first.ID)
	require.NoError(t, err)

	dashboard, err := service.Dashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), dashboard.TotalStudents)
	assert.Equal(t, int64(1), dashboard.TotalCourses)
	assert.Equal(t, int64(3), dashboard.TotalSubjects)
	assert.Equal(t, int64(2), dashboard.ByStatus[models.StatusPending])
	assert.Equal(t, int64(1), dashboard.ByStatus[models.StatusEnrolled])
	assert.Equal(t, int64(3), dashboard.ByYearLevel[1])
	assert.Equal(t, int64(2), dashboard.ByCourse["BSIT"])
	assert.Equal(t, int64(2), dashboard.PendingReviews)
}

func TestDashboardEmptyStore(t *testing.T) {
	f := newStudentFixture(t)
	service := NewReportService(f.store)

	dashboard, err := service.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), dashboard.TotalStudents)
	assert.Equal(t, int64(0), dashboard.PendingReviews)
	assert.Empty(t, dashboard.ByStatus)
}

func TestExportStudentsCSV(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()
	service := NewReportService(f.store)

	_, err := f.service.Register(ctx, registerRequest("a@example.com", "2026-0001", &f.course.ID))
	require.NoError(t, err)
	_, err = f.service.Register(ctx, registerRequest("quoted@example.com", "2026-0002", nil))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, service.ExportStudentsCSV(ctx, dto.StudentFilter{}, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{
		"student_id", "first_name", "last_name", "email",
		"course", "year_level", "section", "status", "registered_at",
	}, records[0])

	assert.Equal(t, "2026-0001", records[1][0])
	assert.Equal(t, "BSIT", records[1][4])
	assert.Equal(t, "pending", records[1][7])
	// No course assigned leaves the column empty.
	assert.Equal(t, "", records[2][4])
}

func TestExportStudentsCSVHonorsFilters(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()
	service := NewReportService(f.store)

	first, err := f.service.Register(ctx, registerRequest("a@example.com", "2026-0001", &f.course.ID))
	require.NoError(t, err)
	_, err = f.service.Register(ctx, registerRequest("b@example.com", "2026-0002", nil))
	require.NoError(t, err)

	_, err = f.service.Approve(ctx, first.ID)
	require.NoError(t, err)

	enrolled := models.StatusEnrolled
	var buf bytes.Buffer
	require.NoError(t, service.ExportStudentsCSV(ctx, dto.StudentFilter{Status: &enrolled}, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2026-0001", records[1][0])
}

func TestExportStudentsCSVQuotesCommas(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()
	service := NewReportService(f.store)

	req := registerRequest("comma@example.com", "2026-0009", nil)
	req.LastName = "Dela Cruz, Jr."
	_, err := f.service.Register(ctx, req)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, service.ExportStudentsCSV(ctx, dto.StudentFilter{}, &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Dela Cruz, Jr.", records[1][2])
}
