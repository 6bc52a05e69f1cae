package models

import "time"

// Enrollment links a student to a subject. The set of a student's enrollments
// at any point in time drives the schedule view and the unit total, which is
// recomputed on read and never stored.
type Enrollment struct {
	ID        int64     `json:"id" db:"id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	SubjectID int64     `json:"subjectId" db:"subject_id"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Relation (populated when needed)
	Subject *Subject `json:"subject,omitempty"`
}

// Notification is an append-only audit record of an admin fan-out send
type Notification struct {
	ID      int64              `json:"id" db:"id"`
	Type    NotificationType   `json:"type" db:"type"`
	Subject *string            `json:"subject,omitempty" db:"subject"`
	Message string             `json:"message" db:"message"`
	Status  NotificationStatus `json:"status" db:"status"`
	SentBy  int64              `json:"sentBy" db:"sent_by"`
	SentAt  time.Time          `json:"sentAt" db:"sent_at"`
}

// LoginAttempt is an append-only audit record of a credential check
type LoginAttempt struct {
	ID          int64     `json:"id" db:"id"`
	UserID      *int64    `json:"userId,omitempty" db:"user_id"`
	Username    string    `json:"username" db:"username"`
	Success     bool      `json:"success" db:"success"`
	AttemptTime time.Time `json:"attemptTime" db:"attempt_time"`
}
