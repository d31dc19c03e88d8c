package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"stockroom/internal/auth"
	apperrors "stockroom/internal/errors"
	"stockroom/internal/model"
	"stockroom/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration, login, and account maintenance.
type AuthService interface {
	Register(ctx context.Context, firstName, lastName, username, password string) (*model.User, string, error)
	Login(ctx context.Context, username, password string) (*model.User, string, error)
	Logout(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, userID uint, password string) error
	UpdateProfile(ctx context.Context, userID uint, firstName, lastName, username string) (*model.User, error)
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

type authService struct {
	users    repository.UserRepository
	sessions auth.Sessions
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, sessions auth.Sessions) AuthService {
	return &authService{users: users, sessions: sessions}
}

// Register creates a user with a bcrypt-hashed password and logs them in
// immediately, returning the new session token alongside the user.
func (s *authService) Register(ctx context.Context, firstName, lastName, username, password string) (*model.User, string, error) {
	if !allPresent(firstName, lastName, username, password) {
		return nil, "", apperrors.ErrMissingField
	}

	// Fast-path duplicate check; the unique index on username is the
	// authoritative guard against the check-then-insert race.
	existing, err := s.users.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, "", apperrors.ErrDuplicateUsername
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("check username: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		FirstName:    firstName,
		LastName:     lastName,
		Username:     username,
		PasswordHash: string(hashed),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apperrors.ErrDuplicateUsername
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}
	return user, token, nil
}

// Login verifies credentials and establishes a session. Unknown usernames and
// wrong passwords fail identically so usernames cannot be enumerated.
func (s *authService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	if !allPresent(username, password) {
		return nil, "", apperrors.ErrMissingField
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}
	return user, token, nil
}

// Logout destroys the session. Missing or invalid tokens are a no-op.
func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}

// ChangePassword re-hashes and persists a new password for the user.
func (s *authService) ChangePassword(ctx context.Context, userID uint, password string) error {
	if !allPresent(password) {
		return apperrors.ErrMissingField
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hashed)
	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// UpdateProfile changes name and username. Colliding with another user's
// username is rejected; keeping one's own username is not a collision.
func (s *authService) UpdateProfile(ctx context.Context, userID uint, firstName, lastName, username string) (*model.User, error) {
	if !allPresent(firstName, lastName, username) {
		return nil, apperrors.ErrMissingField
	}

	existing, err := s.users.FindByUsername(ctx, username)
	if err == nil && existing != nil && existing.ID != userID {
		return nil, apperrors.ErrDuplicateUsername
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	user.FirstName = firstName
	user.LastName = lastName
	user.Username = username
	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}

// GetUser loads a single user's record.
func (s *authService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// ListUsers returns all user rows for the legacy listing endpoint.
func (s *authService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}
