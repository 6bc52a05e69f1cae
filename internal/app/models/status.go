package models

// StudentStatus is the enrollment lifecycle state of a student
type StudentStatus string

const (
	StatusPending     StudentStatus = "pending"
	StatusEnrolled    StudentStatus = "enrolled"
	StatusRejected    StudentStatus = "rejected"
	StatusNotEnrolled StudentStatus = "not-enrolled"
	StatusActive      StudentStatus = "active"
	StatusInactive    StudentStatus = "inactive"
	StatusGraduated   StudentStatus = "graduated"
)

// AllStatuses lists every valid enrollment status
var AllStatuses = []StudentStatus{
	StatusPending,
	StatusEnrolled,
	StatusRejected,
	StatusNotEnrolled,
	StatusActive,
	StatusInactive,
	StatusGraduated,
}

// Valid reports whether the status belongs to the closed set
func (s StudentStatus) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// statusTransitions is the allowed transition table. Graduated is terminal.
var statusTransitions = map[StudentStatus][]StudentStatus{
	StatusPending:     {StatusEnrolled, StatusRejected, StatusNotEnrolled},
	StatusRejected:    {StatusPending, StatusNotEnrolled},
	StatusNotEnrolled: {StatusPending, StatusEnrolled},
	StatusEnrolled:    {StatusActive, StatusInactive, StatusGraduated, StatusNotEnrolled},
	StatusActive:      {StatusEnrolled, StatusInactive, StatusGraduated, StatusNotEnrolled},
	StatusInactive:    {StatusEnrolled, StatusActive, StatusGraduated, StatusNotEnrolled},
	StatusGraduated:   {},
}

// CanTransitionTo reports whether moving from s to target is legal.
// Re-stating the current status is always allowed.
func (s StudentStatus) CanTransitionTo(target StudentStatus) bool {
	if s == target {
		return true
	}
	for _, allowed := range statusTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}
