package dto

import "github.com/campusflow/enroll/internal/app/models"

// LoginRequest carries the credential check payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the authenticated identity together with a bearer
// token for API clients. The session cookie is set alongside.
type LoginResponse struct {
	User      *UserProfile `json:"user"`
	Token     string       `json:"token"`
	TokenType string       `json:"tokenType"`
	ExpiresIn int64        `json:"expiresIn"`
}

// UserProfile is the sanitized identity returned by /api/user and login.
// Student accounts carry the linked Student record.
type UserProfile struct {
	ID       int64           `json:"id"`
	Username string          `json:"username"`
	Role     models.RoleType `json:"role"`
	Student  *models.Student `json:"student,omitempty"`
}

// ChangePasswordRequest carries a self-service password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// UpdateProfileRequest carries a self-service profile edit
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	Avatar    *string `json:"avatar,omitempty"`
}

// RehashResponse reports the outcome of the legacy credential migration pass
type RehashResponse struct {
	Scanned  int `json:"scanned"`
	Rehashed int `json:"rehashed"`
}
