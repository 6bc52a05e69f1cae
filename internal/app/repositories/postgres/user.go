package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/campusflow/enroll/internal/app/models"
	"github.com/campusflow/enroll/internal/pkg/apperrors"
)

// CreateUser creates a new user, rejecting duplicate usernames
func (s *Store) CreateUser(ctx context.Context, user *models.User) (int64, error) {
	exists, err := s.UsernameExists(ctx, user.Username)
	if err != nil {
		return 0, fmt.Errorf("error checking username: %w", err)
	}
	if exists {
		return 0, apperrors.ErrEmailAlreadyExists
	}

	var id int64
	err = s.db.QueryRow(ctx, `
		INSERT INTO users (username, password, role_type)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		user.Username, user.Password, user.RoleType).Scan(&id, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating user: %w", err)
	}

	user.ID = id
	return id, nil
}

// GetUserByID retrieves a user by ID
func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.scanUser(s.db.QueryRow(ctx, `
		SELECT id, username, password, role_type, created_at, updated_at
		FROM users
		WHERE id = $1`, id))
}

// GetUserByUsername retrieves a user by username
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.scanUser(s.db.QueryRow(ctx, `
		SELECT id, username, password, role_type, created_at, updated_at
		FROM users
		WHERE username = $1`, username))
}

func (s *Store) scanUser(row pgx.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Username, &user.Password, &user.RoleType,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}

// UsernameExists checks if a username is taken
func (s *Store) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking username: %w", err)
	}
	return exists, nil
}

// UpdateUser updates username, password and role of an existing user
func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE users
		SET username = $1, password = $2, role_type = $3, updated_at = NOW()
		WHERE id = $4`,
		user.Username, user.Password, user.RoleType, user.ID)
	if err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdatePassword replaces the stored credential hash
func (s *Store) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE users
		SET password = $1, updated_at = NOW()
		WHERE id = $2`,
		passwordHash, userID)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// DeleteUser removes a user record
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// ListUsers returns all users ordered by id
func (s *Store) ListUsers(ctx context.Context) ([]*models.User, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, username, password, role_type, created_at, updated_at
		FROM users
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Username, &user.Password, &user.RoleType,
			&user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
