package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "student"
	RoleAdmin   RoleType = "admin"
)

// Valid reports whether the role is one of the known roles
func (r RoleType) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// NotificationType identifies the delivery channel of a notification
type NotificationType string

const (
	NotificationEmail NotificationType = "email"
	NotificationSMS   NotificationType = "sms"
)

// NotificationStatus records the delivery outcome
type NotificationStatus string

const (
	NotificationSent   NotificationStatus = "sent"
	NotificationFailed NotificationStatus = "failed"
)
