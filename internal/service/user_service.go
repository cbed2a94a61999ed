package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/PivnoyFei/webtronics-social-networking/internal/domain"
	"github.com/PivnoyFei/webtronics-social-networking/internal/repository"
	"github.com/PivnoyFei/webtronics-social-networking/internal/security"

	"gorm.io/gorm"
)

type SignupInput struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type UserService struct {
	users  UserDirectory
	logger *slog.Logger
}

func NewUserService(users UserDirectory, logger *slog.Logger) *UserService {
	return &UserService{users: users, logger: logger}
}

func (s *UserService) Signup(ctx context.Context, in SignupInput) (*domain.User, error) {
	if err := validateSignup(in); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, Conflict("Email already exists")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("signup: %w", err)
	}
	if _, err := s.users.FindByUsername(ctx, in.Username); err == nil {
		return nil, Conflict("Username already exists")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, fmt.Errorf("signup: %w", err)
	}

	digest, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &domain.User{
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: digest,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Losing the duplicate race after the existence checks still lands here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, Conflict("Email or username already exists")
		}
		return nil, fmt.Errorf("signup: %w", err)
	}
	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, NotFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// SetPassword rejects a new password equal to the current one before
// anything else, matching the signup-form contract.
func (s *UserService) SetPassword(ctx context.Context, user *domain.User, current, next string) error {
	if current == next {
		return BadRequest("Incorrect password")
	}
	if !security.CheckPassword(current, user.PasswordHash) {
		return BadRequest("Incorrect password")
	}
	digest, err := security.HashPassword(next)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, user.ID, digest); err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	s.logger.InfoContext(ctx, "password changed", "user_id", user.ID)
	return nil
}
