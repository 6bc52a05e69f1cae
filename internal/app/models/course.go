package models

import "time"

// Course defines a degree program offered by the school
type Course struct {
	ID          int64     `json:"id" db:"id"`
	Code        string    `json:"code" db:"code"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// Subject defines a class offering belonging to a course and year level
type Subject struct {
	ID         int64     `json:"id" db:"id"`
	Code       string    `json:"code" db:"code"`
	Name       string    `json:"name" db:"name"`
	Units      int       `json:"units" db:"units"`
	Schedule   string    `json:"schedule" db:"schedule"`
	Instructor string    `json:"instructor" db:"instructor"`
	CourseID   int64     `json:"courseId" db:"course_id"`
	YearLevel  int       `json:"yearLevel" db:"year_level"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}
