package memory

import (
	"context"
	"sort"
	"time"

	"github.com/campusflow/enroll/internal/app/models"
	"github.com/campusflow/enroll/internal/pkg/apperrors"
)

// CreateUser creates a new user, rejecting duplicate usernames
func (s *Store) CreateUser(_ context.Context, user *models.User) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == user.Username {
			return 0, apperrors.ErrEmailAlreadyExists
		}
	}

	s.nextUserID++
	user.ID = s.nextUserID
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = cloneUser(user)
	return user.ID, nil
}

// GetUserByID retrieves a user by ID
func (s *Store) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return cloneUser(user), nil
}

// GetUserByUsername retrieves a user by username
func (s *Store) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			return cloneUser(user), nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

// UsernameExists checks if a username is taken
func (s *Store) UsernameExists(_ context.Context, username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

// UpdateUser updates username, password and role of an existing user
func (s *Store) UpdateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.users[user.ID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	for id, other := range s.users {
		if id != user.ID && other.Username == user.Username {
			return apperrors.ErrEmailAlreadyExists
		}
	}

	existing.Username = user.Username
	existing.Password = user.Password
	existing.RoleType = user.RoleType
	existing.UpdatedAt = time.Now()
	return nil
}

// UpdatePassword replaces the stored credential hash
func (s *Store) UpdatePassword(_ context.Context, userID int64, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.Password = passwordHash
	user.UpdatedAt = time.Now()
	return nil
}

// DeleteUser removes a user record
func (s *Store) DeleteUser(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

// ListUsers returns all users ordered by id
func (s *Store) ListUsers(_ context.Context) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]*models.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, cloneUser(user))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}
