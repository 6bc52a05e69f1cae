package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/campusflow/enroll/internal/app/models"
	"github.com/campusflow/enroll/internal/app/models/dto"
	"github.com/campusflow/enroll/internal/app/repositories"
	"github.com/campusflow/enroll/internal/metrics"
	"github.com/campusflow/enroll/internal/pkg/apperrors"
	"github.com/campusflow/enroll/internal/pkg/auth"
	"github.com/campusflow/enroll/internal/pkg/logger"
)

// StudentService handles student registration, review and enrollment
type StudentService struct {
	store repositories.Store
}

// NewStudentService creates a new StudentService
func NewStudentService(store repositories.Store) *StudentService {
	return &StudentService{store: store}
}

// Register creates the login account and the student record in one scope.
// New registrations always start in pending review regardless of input.
func (s *StudentService) Register(ctx context.Context, req dto.RegisterStudentRequest) (*models.Student, error) {
	emailTaken, err := s.store.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if emailTaken {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	numberTaken, err := s.store.StudentNumberExists(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if numberTaken {
		return nil, apperrors.ErrStudentNumberExists
	}

	if req.CourseID != nil {
		if _, err := s.store.GetCourseByID(ctx, *req.CourseID); err != nil {
			return nil, err
		}
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	var student *models.Student
	err = s.store.WithTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		user := &models.User{
			Username: req.Email,
			Password: hashed,
			RoleType: models.RoleStudent,
		}
		userID, err := tx.CreateUser(ctx, user)
		if err != nil {
			return err
		}

		student = &models.Student{
			UserID:    userID,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			StudentID: req.StudentID,
			CourseID:  req.CourseID,
			YearLevel: req.YearLevel,
			Status:    models.StatusPending,
			Admission: req.Admission,
		}
		return tx.CreateStudent(ctx, student)
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("studentId", student.ID).Str("email", student.Email).Msg("Student registered")
	return student, nil
}

// GetStudent fetches one student with the course attached when set
func (s *StudentService) GetStudent(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.store.GetStudentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.attachCourse(ctx, student)
	return student, nil
}

// GetStudentByUserID fetches the student owned by a login account
func (s *StudentService) GetStudentByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	student, err := s.store.GetStudentByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.attachCourse(ctx, student)
	return student, nil
}

// ListStudents returns students matching the filter
func (s *StudentService) ListStudents(ctx context.Context, filter dto.StudentFilter) ([]*models.Student, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown status %q", *filter.Status))
	}
	students, err := s.store.ListStudents(ctx, filter)
	if err != nil {
		return nil, err
	}
	for _, student := range students {
		s.attachCourse(ctx, student)
	}
	return students, nil
}

// UpdateStudent applies a partial admin update. Status changes must follow
// the transition table.
func (s *StudentService) UpdateStudent(ctx context.Context, id int64, req dto.UpdateStudentRequest) (*models.Student, error) {
	student, err := s.store.GetStudentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown status %q", *req.Status))
		}
		if !student.Status.CanTransitionTo(*req.Status) {
			return nil, &apperrors.CustomError{
				Err:     apperrors.ErrInvalidStatusTransition,
				Message: fmt.Sprintf("cannot move student from %q to %q", student.Status, *req.Status),
			}
		}
		student.Status = *req.Status
	}

	emailChanged := false
	if req.Email != nil && *req.Email != student.Email {
		taken, err := s.store.EmailExists(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if !taken {
			// The new email becomes the login username as well, so it must
			// not collide with any existing account either.
			taken, err = s.store.UsernameExists(ctx, *req.Email)
			if err != nil {
				return nil, err
			}
		}
		if taken {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		student.Email = *req.Email
		emailChanged = true
	}
	if req.CourseID != nil {
		if _, err := s.store.GetCourseByID(ctx, *req.CourseID); err != nil {
			return nil, err
		}
		student.CourseID = req.CourseID
	}
	if req.FirstName != nil {
		student.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		student.LastName = *req.LastName
	}
	if req.YearLevel != nil {
		student.YearLevel = *req.YearLevel
	}
	if req.Section != nil {
		student.Section = req.Section
	}
	if req.Avatar != nil {
		student.Avatar = req.Avatar
	}
	if req.Admission != nil {
		student.Admission = *req.Admission
	}

	// The login username tracks the email, so both rows move together.
	err = s.store.WithTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		if err := tx.UpdateStudent(ctx, student); err != nil {
			return err
		}
		if !emailChanged {
			return nil
		}
		user, err := tx.GetUserByID(ctx, student.UserID)
		if err != nil {
			return err
		}
		user.Username = student.Email
		return tx.UpdateUser(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	if req.Status != nil {
		metrics.StudentStatusChanges.WithLabelValues(string(*req.Status)).Inc()
	}
	s.attachCourse(ctx, student)
	return student, nil
}

// Approve moves a student into the enrolled state
func (s *StudentService) Approve(ctx context.Context, id int64) (*models.Student, error) {
	return s.transition(ctx, id, models.StatusEnrolled)
}

// Reject moves a student into the rejected state
func (s *StudentService) Reject(ctx context.Context, id int64) (*models.Student, error) {
	return s.transition(ctx, id, models.StatusRejected)
}

func (s *StudentService) transition(ctx context.Context, id int64, target models.StudentStatus) (*models.Student, error) {
	student, err := s.store.GetStudentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !student.Status.CanTransitionTo(target) {
		return nil, &apperrors.CustomError{
			Err:     apperrors.ErrInvalidStatusTransition,
			Message: fmt.Sprintf("cannot move student from %q to %q", student.Status, target),
		}
	}
	student.Status = target
	if err := s.store.UpdateStudent(ctx, student); err != nil {
		return nil, err
	}
	metrics.StudentStatusChanges.WithLabelValues(string(target)).Inc()
	logger.Info().Int64("studentId", id).Str("status", string(target)).Msg("Student status changed")
	return student, nil
}

// AssignSubjects replaces the student's enrollments with the given subject
// set in one scope. Duplicate ids collapse to one enrollment each.
func (s *StudentService) AssignSubjects(ctx context.Context, studentID int64, req dto.AssignSubjectsRequest) (*dto.EnrollmentListResponse, error) {
	if _, err := s.store.GetStudentByID(ctx, studentID); err != nil {
		return nil, err
	}

	subjectIDs := dedupeIDs(req.SubjectIDs)
	if _, err := s.store.GetSubjectsByIDs(ctx, subjectIDs); err != nil {
		return nil, err
	}

	err := s.store.WithTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		if err := tx.DeleteEnrollmentsByStudent(ctx, studentID); err != nil {
			return err
		}
		for _, subjectID := range subjectIDs {
			enrollment := &models.Enrollment{
				StudentID: studentID,
				SubjectID: subjectID,
				Status:    "enrolled",
			}
			if err := tx.CreateEnrollment(ctx, enrollment); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("studentId", studentID).Int("subjects", len(subjectIDs)).Msg("Subjects assigned")
	return s.Enrollments(ctx, studentID)
}

// Enrollments lists the student's enrollments with the computed unit total
func (s *StudentService) Enrollments(ctx context.Context, studentID int64) (*dto.EnrollmentListResponse, error) {
	if _, err := s.store.GetStudentByID(ctx, studentID); err != nil {
		return nil, err
	}

	enrollments, err := s.store.ListEnrollmentsByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	totalUnits := 0
	for _, enrollment := range enrollments {
		if enrollment.Subject != nil {
			totalUnits += enrollment.Subject.Units
		}
	}

	return &dto.EnrollmentListResponse{
		Enrollments: enrollments,
		TotalUnits:  totalUnits,
	}, nil
}

// DeleteStudent removes the student, their enrollments and the owning
// login account in one scope.
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	student, err := s.store.GetStudentByID(ctx, id)
	if err != nil {
		return err
	}

	err = s.store.WithTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		if err := tx.DeleteEnrollmentsByStudent(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteStudent(ctx, id); err != nil {
			return err
		}
		return tx.DeleteUser(ctx, student.UserID)
	})
	if err != nil {
		return err
	}

	logger.Info().Int64("studentId", id).Msg("Student deleted")
	return nil
}

func (s *StudentService) attachCourse(ctx context.Context, student *models.Student) {
	if student.CourseID == nil || student.Course != nil {
		return
	}
	course, err := s.store.GetCourseByID(ctx, *student.CourseID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrCourseNotFound) {
			logger.Error().Err(err).Int64("studentId", student.ID).Msg("Failed to load student course")
		}
		return
	}
	student.Course = course
}

func dedupeIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
