package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hoanghai1803/tribalwiki/internal/models"
	"github.com/hoanghai1803/tribalwiki/internal/storage"
)

// UserStore is the subset of storage.Store the auth service needs.
type UserStore interface {
	CreateUser(ctx context.Context, username, email, passwordHash string) (int64, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Session is the result of a successful login.
type Session struct {
	Token string
	User  *models.User
}

// Service implements registration and login on top of a UserStore.
type Service struct {
	users  UserStore
	issuer *Issuer
	// dummyHash is compared against when the user does not exist so both
	// login failure paths cost one bcrypt comparison.
	dummyHash string
}

// NewService creates a Service.
func NewService(users UserStore, issuer *Issuer) *Service {
	dummy, err := HashPassword("tribalwiki-dummy-password")
	if err != nil {
		// bcrypt only fails on over-long input, which the literal is not.
		panic(err)
	}
	return &Service{users: users, issuer: issuer, dummyHash: dummy}
}

// Issuer returns the token issuer used by this service.
func (s *Service) Issuer() *Issuer {
	return s.issuer
}

// Register creates a new account. It returns storage.ErrDuplicateUser if the
// username or email is already registered.
func (s *Service) Register(ctx context.Context, username, email, password string) (int64, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return 0, err
	}

	id, err := s.users.CreateUser(ctx, username, email, hash)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateUser) {
			return 0, err
		}
		return 0, fmt.Errorf("registering user: %w", err)
	}

	slog.Info("user registered", "user_id", id, "username", username)
	return id, nil
}

// Login verifies credentials and issues a session token. Unknown users and
// wrong passwords both return ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			_ = CheckPassword(s.dummyHash, password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return nil, err
	}

	token, claims, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, err
	}

	slog.Info("user logged in", "user_id", user.ID, "token_id", claims.ID)
	return &Session{Token: token, User: user}, nil
}
