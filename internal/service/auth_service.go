package service

import (
	"context"
	goerrors "errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"cardvault/internal/auth"
	"cardvault/internal/errors"
	"cardvault/internal/model"
	"cardvault/internal/repository"
)

// AuthService handles registration and credential verification.
type AuthService interface {
	Register(ctx context.Context, username, email, password, role string) (*model.User, error)
	Login(ctx context.Context, username, password string) (*auth.Principal, error)
}

type authService struct {
	users repository.UserRepository
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository) AuthService {
	return &authService{users: users}
}

// Register creates a new user with a hashed password. Admin accounts cannot
// be self-registered; the seed command creates the first admin.
func (s *authService) Register(ctx context.Context, username, email, password, role string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return nil, errors.ErrMissingFields
	}

	parsed, ok := model.ParseRole(role)
	if !ok || parsed == model.RoleAdmin {
		return nil, errors.ErrInvalidRole
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, errors.ErrUsernameTaken
	} else if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, errors.ErrEmailTaken
	} else if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         parsed,
		Status:       model.StatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The availability checks above race concurrent registrations; the
		// unique indexes are the real arbiter.
		if goerrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrAccountExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and returns the session principal. Unknown
// username and wrong password are indistinguishable from outside; account
// status is checked only after the credentials match.
func (s *authService) Login(ctx context.Context, username, password string) (*auth.Principal, error) {
	if username == "" || password == "" {
		return nil, errors.ErrMissingFields
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, errors.ErrInvalidCredentials
	}

	if user.Status != model.StatusActive {
		return nil, errors.ErrAccountNotActive
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID, time.Now()); err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}

	return &auth.Principal{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}
