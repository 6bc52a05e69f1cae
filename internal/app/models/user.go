package models

import "time"

// User defines the credential record backing either portal account.
// For student accounts the username always mirrors the student's email.
type User struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Password  string    `json:"-" db:"password"`
	RoleType  RoleType  `json:"role" db:"role_type"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
