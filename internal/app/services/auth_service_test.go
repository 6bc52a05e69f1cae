package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusflow/enroll/internal/app/models"
	"github.com/campusflow/enroll/internal/app/models/dto"
	"github.com/campusflow/enroll/internal/app/repositories/memory"
	"github.com/campusflow/enroll/internal/pkg/apperrors"
	"github.com/campusflow/enroll/internal/pkg/auth"
)

func newAuthFixture(t *testing.T) (*memory.Store, *AuthService) {
	t.Helper()
	store := memory.New()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   "test-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "enroll.test",
	})
	return store, NewAuthService(store, jwtService)
}

func createUser(t *testing.T, store *memory.Store, username, password string, role models.RoleType) *models.User {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{Username: username, Password: hashed, RoleType: role}
	id, err := store.CreateUser(context.Background(), user)
	require.NoError(t, err)
	user.ID = id
	return user
}

func TestLoginSuccess(t *testing.T) {
	store, service := newAuthFixture(t)
	user := createUser(t, store, "admin", "admin-pass-123", models.RoleAdmin)

	response, err := service.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "admin-pass-123"})
	require.NoError(t, err)

	assert.Equal(t, user.ID, response.User.ID)
	assert.Equal(t, models.RoleAdmin, response.User.Role)
	assert.Equal(t, "Bearer", response.TokenType)
	assert.NotEmpty(t, response.Token)
	assert.Equal(t, int64(3600), response.ExpiresIn)

	attempts, err := store.ListLoginAttempts(context.Background())
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.True(t, attempts[0].Success)
	assert.Equal(t, "admin", attempts[0].Username)
	require.NotNil(t, attempts[0].UserID)
	assert.Equal(t, user.ID, *attempts[0].UserID)
}

func TestLoginWrongPassword(t *testing.T) {
	store, service := newAuthFixture(t)
	user := createUser(t, store, "admin", "admin-pass-123", models.RoleAdmin)

	_, err := service.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "nope"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	attempts, err := store.ListLoginAttempts(context.Background())
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.False(t, attempts[0].Success)
	require.NotNil(t, attempts[0].UserID)
	assert.Equal(t, user.ID, *attempts[0].UserID)
}

func TestLoginUnknownUser(t *testing.T) {
	store, service := newAuthFixture(t)

	_, err := service.Login(context.Background(), dto.LoginRequest{Username: "ghost", Password: "whatever"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	// The failed attempt is still recorded, with no resolvable user id.
	attempts, err := store.ListLoginAttempts(context.Background())
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.False(t, attempts[0].Success)
	assert.Nil(t, attempts[0].UserID)
	assert.Equal(t, "ghost", attempts[0].Username)
}

func TestLoginLegacyPlaintextPassword(t *testing.T) {
	store, service := newAuthFixture(t)

	// Simulates a record imported before hashing was introduced.
	legacy := &models.User{Username: "legacy", Password: "plain-old-password", RoleType: models.RoleAdmin}
	_, err := store.CreateUser(context.Background(), legacy)
	require.NoError(t, err)

	_, err = service.Login(context.Background(), dto.LoginRequest{Username: "legacy", Password: "plain-old-password"})
	require.NoError(t, err)

	// Login does not silently upgrade the stored value.
	reloaded, err := store.GetUserByUsername(context.Background(), "legacy")
	require.NoError(t, err)
	assert.Equal(t, "plain-old-password", reloaded.Password)
}

func TestCurrentUserMergesStudent(t *testing.T) {
	store, service := newAuthFixture(t)
	user := createUser(t, store, "jane@example.com", "password123", models.RoleStudent)

	student := &models.Student{
		UserID:    user.ID,
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		StudentID: "2026-0001",
		YearLevel: 1,
		Status:    models.StatusPending,
	}
	require.NoError(t, store.CreateStudent(context.Background(), student))

	profile, err := service.CurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, profile.Student)
	assert.Equal(t, student.ID, profile.Student.ID)
}

func TestCurrentUserAdminHasNoStudent(t *testing.T) {
	store, service := newAuthFixture(t)
	user := createUser(t, store, "admin", "password123", models.RoleAdmin)

	profile, err := service.CurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Nil(t, profile.Student)
}

func TestChangePassword(t *testing.T) {
	store, service := newAuthFixture(t)
	user := createUser(t, store, "admin", "old-password-1", models.RoleAdmin)

	err := service.ChangePassword(context.Background(), user.ID, dto.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "new-password-1",
	})
	assert.ErrorIs(t, err, apperrors.ErrWrongPassword)

	err = service.ChangePassword(context.Background(), user.ID, dto.ChangePasswordRequest{
		CurrentPassword: "old-password-1",
		NewPassword:     "new-password-1",
	})
	require.NoError(t, err)

	_, err = service.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "new-password-1"})
	assert.NoError(t, err)
}

func TestRehashLegacyPasswords(t *testing.T) {
	store, service := newAuthFixture(t)

	createUser(t, store, "hashed", "already-hashed-1", models.RoleAdmin)
	for _, name := range []string{"legacy1", "legacy2"} {
		_, err := store.CreateUser(context.Background(), &models.User{
			Username: name,
			Password: name + "-plaintext",
			RoleType: models.RoleStudent,
		})
		require.NoError(t, err)
	}

	result, err := service.RehashLegacyPasswords(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, result.Scanned)
	assert.Equal(t, 2, result.Rehashed)

	// Old plaintext still logs in, now against a bcrypt hash.
	reloaded, err := store.GetUserByUsername(context.Background(), "legacy1")
	require.NoError(t, err)
	assert.True(t, auth.IsBcryptHash(reloaded.Password))
	_, err = service.Login(context.Background(), dto.LoginRequest{Username: "legacy1", Password: "legacy1-plaintext"})
	assert.NoError(t, err)

	// A second pass finds nothing to do.
	again, err := service.RehashLegacyPasswords(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, again.Rehashed)
}

func TestUpdateProfileMovesUsernameWithEmail(t *testing.T) {
	store, service := newAuthFixture(t)
	user := createUser(t, store, "jane@example.com", "password123", models.RoleStudent)

	student := &models.Student{
		UserID:    user.ID,
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane@example.com",
		StudentID: "2026-0001",
		YearLevel: 1,
		Status:    models.StatusPending,
	}
	require.NoError(t, store.CreateStudent(context.Background(), student))

	newEmail := "jane.new@example.com"
	profile, err := service.UpdateProfile(context.Background(), user.ID, dto.UpdateProfileRequest{Email: &newEmail})
	require.NoError(t, err)

	assert.Equal(t, newEmail, profile.Username)
	require.NotNil(t, profile.Student)
	assert.Equal(t, newEmail, profile.Student.Email)
}
