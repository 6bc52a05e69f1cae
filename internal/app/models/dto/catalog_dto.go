package dto

// CreateCourseRequest carries a new course
type CreateCourseRequest struct {
	Code        string `json:"code" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateCourseRequest is a partial course update
type UpdateCourseRequest struct {
	Code        *string `json:"code,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// CreateSubjectRequest carries a new subject
type CreateSubjectRequest struct {
	Code       string `json:"code" binding:"required"`
	Name       string `json:"name" binding:"required"`
	Units      int    `json:"units" binding:"required,gt=0"`
	Schedule   string `json:"schedule"`
	Instructor string `json:"instructor"`
	CourseID   int64  `json:"courseId" binding:"required"`
	YearLevel  int    `json:"yearLevel" binding:"required,min=1,max=4"`
}

// UpdateSubjectRequest is a partial subject update
type UpdateSubjectRequest struct {
	Code       *string `json:"code,omitempty"`
	Name       *string `json:"name,omitempty"`
	Units      *int    `json:"units,omitempty" binding:"omitempty,gt=0"`
	Schedule   *string `json:"schedule,omitempty"`
	Instructor *string `json:"instructor,omitempty"`
	CourseID   *int64  `json:"courseId,omitempty"`
	YearLevel  *int    `json:"yearLevel,omitempty" binding:"omitempty,min=1,max=4"`
}

// SubjectFilter narrows subject listings
type SubjectFilter struct {
	CourseID  *int64 `form:"courseId"`
	YearLevel *int   `form:"yearLevel"`
}
