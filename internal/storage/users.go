package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hoanghai1803/tribalwiki/internal/models"
)

// CreateUser inserts a new user with an already-hashed password and returns
// its ID. It returns ErrDuplicateUser if the username or email is taken.
func (s *Store) CreateUser(ctx context.Context, username, email, passwordHash string) (int64, error) {
	exists, err := s.UserExists(ctx, username, email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrDuplicateUser
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)`,
		username, email, passwordHash,
	)
	if err != nil {
		// Lost a race with a concurrent registration.
		if isUniqueViolation(err) {
			return 0, ErrDuplicateUser
		}
		return 0, fmt.Errorf("creating user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting user id: %w", err)
	}
	return id, nil
}

// UserExists reports whether any user already has the given username or email.
func (s *Store) UserExists(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = ? OR email = ?)`,
		username, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking user existence: %w", err)
	}
	return exists, nil
}

// GetUserByUsername returns the user with the given username.
// Returns nil, ErrNotFound if no matching row exists.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUser(ctx, `WHERE username = ?`, username)
}

// GetUserByID returns the user with the given ID.
// Returns nil, ErrNotFound if no matching row exists.
func (s *Store) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.getUser(ctx, `WHERE id = ?`, id)
}

func (s *Store) getUser(ctx context.Context, where string, arg any) (*models.User, error) {
	var (
		u         models.User
		createdAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, preferences, created_at
		 FROM users `+where, arg,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Preferences, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}
	u.CreatedAt = parseTime(createdAt)
	return &u, nil
}

// GetPreferences returns the opaque preferences blob of a user.
// Returns ErrNotFound if the user does not exist.
func (s *Store) GetPreferences(ctx context.Context, userID int64) (string, error) {
	var prefs string
	err := s.db.QueryRowContext(ctx,
		`SELECT preferences FROM users WHERE id = ?`, userID,
	).Scan(&prefs)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("getting preferences for user %d: %w", userID, err)
	}
	return prefs, nil
}

// SetPreferences overwrites the preferences blob of a user.
// Returns ErrNotFound if the user does not exist.
func (s *Store) SetPreferences(ctx context.Context, userID int64, prefs string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET preferences = ? WHERE id = ?`, prefs, userID,
	)
	if err != nil {
		return fmt.Errorf("setting preferences for user %d: %w", userID, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
