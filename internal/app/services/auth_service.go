package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/campusflow/enroll/internal/app/models"
	"github.com/campusflow/enroll/internal/app/models/dto"
	"github.com/campusflow/enroll/internal/app/repositories"
	"github.com/campusflow/enroll/internal/metrics"
	"github.com/campusflow/enroll/internal/pkg/apperrors"
	"github.com/campusflow/enroll/internal/pkg/auth"
	"github.com/campusflow/enroll/internal/pkg/logger"
)

// AuthService handles authentication and account operations
type AuthService struct {
	store      repositories.Store
	jwtService *auth.JWTService
}

// NewAuthService creates a new AuthService
func NewAuthService(store repositories.Store, jwtService *auth.JWTService) *AuthService {
	return &AuthService{
		store:      store,
		jwtService: jwtService,
	}
}

// Login verifies the given credentials and returns the authenticated
// profile together with a bearer token. Every attempt is recorded in the
// login audit log, successful or not.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.store.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.recordAttempt(ctx, nil, req.Username, false)
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !verifyPassword(user.Password, req.Password) {
		s.recordAttempt(ctx, &user.ID, req.Username, false)
		return nil, apperrors.ErrInvalidCredentials
	}

	s.recordAttempt(ctx, &user.ID, req.Username, true)

	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	profile, err := s.buildProfile(ctx, user)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		User:      profile,
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: expiresIn,
	}, nil
}

// CurrentUser returns the profile for an authenticated user id
func (s *AuthService) CurrentUser(ctx context.Context, userID int64) (*dto.UserProfile, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildProfile(ctx, user)
}

// ChangePassword replaces the caller's password after verifying the
// current one.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, req dto.ChangePasswordRequest) error {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !verifyPassword(user.Password, req.CurrentPassword) {
		return apperrors.ErrWrongPassword
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	return s.store.UpdatePassword(ctx, userID, hashed)
}

// UpdateProfile updates the caller's student profile fields
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, req dto.UpdateProfileRequest) (*dto.UserProfile, error) {
	student, err := s.store.GetStudentByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	emailChanged := false
	if req.Email != nil && *req.Email != student.Email {
		exists, err := s.store.EmailExists(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		student.Email = *req.Email
		emailChanged = true
	}
	if req.FirstName != nil {
		student.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		student.LastName = *req.LastName
	}
	if req.Avatar != nil {
		student.Avatar = req.Avatar
	}

	// The login username tracks the email, so both rows move together.
	err = s.store.WithTx(ctx, func(ctx context.Context, tx repositories.Store) error {
		if err := tx.UpdateStudent(ctx, student); err != nil {
			return err
		}
		if !emailChanged {
			return nil
		}
		user, err := tx.GetUserByID(ctx, userID)
		if err != nil {
			return err
		}
		user.Username = student.Email
		return tx.UpdateUser(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return s.CurrentUser(ctx, userID)
}

// RehashLegacyPasswords upgrades every stored plaintext password to a
// bcrypt hash. Passwords that are already hashed are left untouched.
func (s *AuthService) RehashLegacyPasswords(ctx context.Context) (*dto.RehashResponse, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	result := &dto.RehashResponse{Scanned: len(users)}
	for _, user := range users {
		if auth.IsBcryptHash(user.Password) {
			continue
		}
		hashed, err := auth.HashPassword(user.Password)
		if err != nil {
			return nil, err
		}
		if err := s.store.UpdatePassword(ctx, user.ID, hashed); err != nil {
			return nil, err
		}
		result.Rehashed++
	}

	logger.Info().Int("scanned", result.Scanned).Int("rehashed", result.Rehashed).Msg("Legacy password rehash completed")
	return result, nil
}

// ListLoginAttempts returns the login audit log, newest first
func (s *AuthService) ListLoginAttempts(ctx context.Context) ([]*models.LoginAttempt, error) {
	return s.store.ListLoginAttempts(ctx)
}

func (s *AuthService) buildProfile(ctx context.Context, user *models.User) (*dto.UserProfile, error) {
	profile := &dto.UserProfile{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.RoleType,
	}

	if user.RoleType == models.RoleStudent {
		student, err := s.store.GetStudentByUserID(ctx, user.ID)
		if err != nil && !errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, err
		}
		profile.Student = student
	}
	return profile, nil
}

// recordAttempt appends to the login audit log. Audit failures are logged
// but never block the login path.
func (s *AuthService) recordAttempt(ctx context.Context, userID *int64, username string, success bool) {
	outcome := "failure"
	if success {
		outcome = "success"
	}
	metrics.LoginAttemptsTotal.WithLabelValues(outcome).Inc()

	attempt := &models.LoginAttempt{
		UserID:      userID,
		Username:    username,
		Success:     success,
		AttemptTime: time.Now(),
	}
	if err := s.store.CreateLoginAttempt(ctx, attempt); err != nil {
		logger.Error().Err(err).Str("username", username).Msg("Failed to record login attempt")
	}
}

// verifyPassword compares against a bcrypt hash, falling back to a
// constant-time comparison for legacy plaintext records that predate
// hashing.
func verifyPassword(stored, candidate string) bool {
	if auth.IsBcryptHash(stored) {
		return auth.CheckPassword(stored, candidate)
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}
