package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/PivnoyFei/webtronics-social-networking/internal/domain"
	"github.com/PivnoyFei/webtronics-social-networking/internal/repository"
	"github.com/PivnoyFei/webtronics-social-networking/internal/security"
)

// UserDirectory is the slice of the user repository the auth and user
// services depend on.
type UserDirectory interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePassword(ctx context.Context, userID uint, digest string) error
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

var errInvalidCredentials = Unauthorized("Invalid credentials")

// AuthService owns the session lifecycle: issuance on login, rotation on
// refresh, revocation on logout. Access tokens are stateless; refresh tokens
// additionally require a live session bound to the presenting IP.
type AuthService struct {
	users    UserDirectory
	sessions SessionStore
	codec    *security.TokenCodec
	cap      int
	logger   *slog.Logger
}

func NewAuthService(users UserDirectory, sessions SessionStore, codec *security.TokenCodec, cap int, logger *slog.Logger) *AuthService {
	return &AuthService{users: users, sessions: sessions, codec: codec, cap: cap, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, username, password, ip string) (*TokenPair, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, BadRequest("Incorrect username")
	}
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	if !security.CheckPassword(password, user.PasswordHash) {
		return nil, BadRequest("Incorrect password")
	}

	pair, err := s.issuePair(user.ID)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Create(ctx, ip, user.ID, pair.RefreshToken); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	s.logger.InfoContext(ctx, "user logged in", "user_id", user.ID, "ip", ip)
	return pair, nil
}

// Refresh rotates a refresh token presented from ip. A token that verifies
// but has no matching session is treated as reused or stolen: the (user, ip)
// binding is scrubbed before the caller is sent back to login. All failure
// causes collapse into one Unauthorized so the response does not leak which
// check failed.
func (s *AuthService) Refresh(ctx context.Context, refreshToken, ip string) (*TokenPair, error) {
	claims, err := s.codec.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, errInvalidCredentials
	}
	if claims.Expired(time.Now().UTC()) {
		return nil, errInvalidCredentials
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, errInvalidCredentials
	}

	ok, err := s.sessions.Check(ctx, ip, userID, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}
	if !ok {
		if err := s.sessions.DeleteByIP(ctx, ip, userID); err != nil {
			s.logger.WarnContext(ctx, "scrub stale session failed", "user_id", userID, "ip", ip, "error", err)
		}
		s.logger.WarnContext(ctx, "refresh token rejected", "user_id", userID, "ip", ip)
		return nil, errInvalidCredentials
	}

	pair, err := s.issuePair(userID)
	if err != nil {
		return nil, err
	}

	count, err := s.sessions.Count(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}
	if count >= int64(s.cap) {
		err = s.sessions.Create(ctx, ip, userID, pair.RefreshToken)
	} else {
		err = s.sessions.Update(ctx, ip, userID, pair.RefreshToken)
	}
	if err != nil {
		return nil, fmt.Errorf("refresh: %w", err)
	}
	return pair, nil
}

// Logout revokes every session the token's owner holds, across all IPs.
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	user, err := s.CurrentUser(ctx, accessToken)
	if err != nil {
		return err
	}
	if err := s.sessions.DeleteByUser(ctx, user.ID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.logger.InfoContext(ctx, "user logged out", "user_id", user.ID)
	return nil
}

// CurrentUser resolves the identity behind an access token. Signature,
// expiry, and lookup failures all normalize to the same Unauthorized.
func (s *AuthService) CurrentUser(ctx context.Context, accessToken string) (*domain.User, error) {
	claims, err := s.codec.VerifyAccess(accessToken)
	if err != nil {
		return nil, errInvalidCredentials
	}
	if claims.Expired(time.Now().UTC()) {
		return nil, errInvalidCredentials
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, errInvalidCredentials
	}
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, errInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}
	return user, nil
}

func (s *AuthService) issuePair(userID uint) (*TokenPair, error) {
	access, err := s.codec.IssueAccess(userID)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.codec.IssueRefresh(userID)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
