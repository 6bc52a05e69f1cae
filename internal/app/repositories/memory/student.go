package memory

import (
	"context"
	"sort"
	"time"

	"github.com/campusflow/enroll/internal/app/models"
	"github.com/campusflow/enroll/internal/app/models/dto"
	"github.com/campusflow/enroll/internal/pkg/apperrors"
)

// CreateStudent creates a new student record
func (s *Store) CreateStudent(_ context.Context, student *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.students {
		if existing.Email == student.Email {
			return apperrors.ErrEmailAlreadyExists
		}
		if existing.StudentID == student.StudentID {
			return apperrors.ErrStudentNumberExists
		}
	}

	s.nextStudentID++
	student.ID = s.nextStudentID
	now := time.Now()
	student.CreatedAt = now
	student.UpdatedAt = now
	s.students[student.ID] = cloneStudent(student)
	return nil
}

// GetStudentByID retrieves a student by ID
func (s *Store) GetStudentByID(_ context.Context, id int64) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	student, ok := s.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return cloneStudent(student), nil
}

// GetStudentByUserID retrieves the student owned by a user account
func (s *Store) GetStudentByUserID(_ context.Context, userID int64) (*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, student := range s.students {
		if student.UserID == userID {
			return cloneStudent(student), nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

// EmailExists checks if a student email is already registered
func (s *Store) EmailExists(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, student := range s.students {
		if student.Email == email {
			return true, nil
		}
	}
	return false, nil
}

// StudentNumberExists checks if a student number is already registered
func (s *Store) StudentNumberExists(_ context.Context, studentID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, student := range s.students {
		if student.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

// ListStudents returns students matching the filter, ordered by id
func (s *Store) ListStudents(_ context.Context, filter dto.StudentFilter) ([]*models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var students []*models.Student
	for _, student := range s.students {
		if !matchesFilter(student, filter) {
			continue
		}
		students = append(students, cloneStudent(student))
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })
	return students, nil
}

func matchesFilter(student *models.Student, filter dto.StudentFilter) bool {
	if filter.YearLevel != nil && student.YearLevel != *filter.YearLevel {
		return false
	}
	if filter.Status != nil && student.Status != *filter.Status {
		return false
	}
	if filter.Section != nil {
		if student.Section == nil || *student.Section != *filter.Section {
			return false
		}
	}
	if filter.CourseID != nil {
		if student.CourseID == nil || *student.CourseID != *filter.CourseID {
			return false
		}
	}
	return true
}

// UpdateStudent replaces a student record
func (s *Store) UpdateStudent(_ context.Context, student *models.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.students[student.ID]; !ok {
		return apperrors.ErrStudentNotFound
	}
	for id, other := range s.students {
		if id == student.ID {
			continue
		}
		if other.Email == student.Email {
			return apperrors.ErrEmailAlreadyExists
		}
		if other.StudentID == student.StudentID {
			return apperrors.ErrStudentNumberExists
		}
	}

	updated := cloneStudent(student)
	updated.CreatedAt = s.students[student.ID].CreatedAt
	updated.UpdatedAt = time.Now()
	s.students[student.ID] = updated
	return nil
}

// DeleteStudent removes a student record only; enrollments and the owning
// user are handled by the service's transactional cascade.
func (s *Store) DeleteStudent(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(s.students, id)
	return nil
}
