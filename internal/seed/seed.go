package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/campusflow/enroll/internal/app/models"
	"github.com/campusflow/enroll/internal/app/repositories"
	"github.com/campusflow/enroll/internal/pkg/auth"
)

// defaultAdminPassword is for first boot only; operators are expected to
// change it through the password endpoint.
const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin1234"
)

// CreateDefaultData seeds the default admin account and a starter catalog
// when the store is empty.
func CreateDefaultData(ctx context.Context, store repositories.Store, lgr zerolog.Logger) error {
	if err := seedAdmin(ctx, store, lgr); err != nil {
		return err
	}
	return seedCatalog(ctx, store, lgr)
}

func seedAdmin(ctx context.Context, store repositories.Store, lgr zerolog.Logger) error {
	exists, err := store.UsernameExists(ctx, defaultAdminUsername)
	if err != nil {
		return fmt.Errorf("failed to check admin account: %w", err)
	}
	if exists {
		return nil
	}

	hashed, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Username: defaultAdminUsername,
		Password: hashed,
		RoleType: models.RoleAdmin,
	}
	if _, err := store.CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	lgr.Info().Str("username", defaultAdminUsername).Msg("Default admin account created")
	return nil
}

func seedCatalog(ctx context.Context, store repositories.Store, lgr zerolog.Logger) error {
	courses, err := store.ListCourses(ctx)
	if err != nil {
		return fmt.Errorf("failed to list courses: %w", err)
	}
	if len(courses) > 0 {
		return nil
	}

	starter := []*models.Course{
		{Code: "BSIT", Name: "Bachelor of Science in Information Technology", Description: "Four-year IT program"},
		{Code: "BSCS", Name: "Bachelor of Science in Computer Science", Description: "Four-year CS program"},
		{Code: "BSBA", Name: "Bachelor of Science in Business Administration", Description: "Four-year business program"},
	}
	for _, course := range starter {
		if err := store.CreateCourse(ctx, course); err != nil {
			return fmt.Errorf("failed to seed course %s: %w", course.Code, err)
		}
	}

	subjects := []*models.Subject{
		{Code: "IT101", Name: "Introduction to Computing", Units: 3, Schedule: "MWF 8:00-9:00", Instructor: "TBA", CourseID: starter[0].ID, YearLevel: 1},
		{Code: "IT102", Name: "Computer Programming 1", Units: 3, Schedule: "TTh 10:00-11:30", Instructor: "TBA", CourseID: starter[0].ID, YearLevel: 1},
		{Code: "CS101", Name: "Discrete Structures", Units: 3, Schedule: "MWF 9:00-10:00", Instructor: "TBA", CourseID: starter[1].ID, YearLevel: 1},
	}
	for _, subject := range subjects {
		if err := store.CreateSubject(ctx, subject); err != nil {
			return fmt.Errorf("failed to seed subject %s: %w", subject.Code, err)
		}
	}

	lgr.Info().Int("courses", len(starter)).Int("subjects", len(subjects)).Msg("Starter catalog seeded")
	return nil
}
