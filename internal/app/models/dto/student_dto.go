package dto

import "github.com/campusflow/enroll/internal/app/models"

// RegisterStudentRequest is the public self-registration payload. Any
// client-supplied id, userId or status is ignored: registration always
// creates a pending student owned by a fresh student-role user.
type RegisterStudentRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	StudentID string `json:"studentId" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
	CourseID  *int64 `json:"courseId,omitempty"`
	YearLevel int    `json:"yearLevel" binding:"required,min=1,max=4"`

	Admission models.AdmissionRecord `json:"admission"`
}

// UpdateStudentRequest is the admin partial-update payload. Nil fields are
// left untouched; a status change is validated against the transition table.
type UpdateStudentRequest struct {
	FirstName *string                 `json:"firstName,omitempty"`
	LastName  *string                 `json:"lastName,omitempty"`
	Email     *string                 `json:"email,omitempty" binding:"omitempty,email"`
	CourseID  *int64                  `json:"courseId,omitempty"`
	YearLevel *int                    `json:"yearLevel,omitempty" binding:"omitempty,min=1,max=4"`
	Status    *models.StudentStatus   `json:"status,omitempty"`
	Section   *string                 `json:"section,omitempty"`
	Avatar    *string                 `json:"avatar,omitempty"`
	Admission *models.AdmissionRecord `json:"admission,omitempty"`
}

// AssignSubjectsRequest carries a full-replace subject assignment:
// the student's current enrollments are dropped and the listed subjects
// become the new enrollment set.
type AssignSubjectsRequest struct {
	SubjectIDs []int64 `json:"subjectIds" binding:"required"`
}

// StudentFilter narrows student listings and the CSV export
type StudentFilter struct {
	YearLevel *int                  `form:"yearLevel"`
	Section   *string               `form:"section"`
	Status    *models.StudentStatus `form:"status"`
	CourseID  *int64                `form:"courseId"`
}

// EnrollmentListResponse is a student's current subject links plus the
// unit total computed over them
type EnrollmentListResponse struct {
	Enrollments []*models.Enrollment `json:"enrollments"`
	TotalUnits  int                  `json:"totalUnits"`
}

// DashboardResponse aggregates read-only counts for the admin dashboard
type DashboardResponse struct {
	TotalStudents  int64                          `json:"totalStudents"`
	TotalCourses   int64                          `json:"totalCourses"`
	TotalSubjects  int64                          `json:"totalSubjects"`
	ByStatus       map[models.StudentStatus]int64 `json:"byStatus"`
	ByYearLevel    map[int]int64                  `json:"byYearLevel"`
	ByCourse       map[string]int64               `json:"byCourse"`
	PendingReviews int64                          `json:"pendingReviews"`
}
