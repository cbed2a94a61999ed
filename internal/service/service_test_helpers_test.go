package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/PivnoyFei/webtronics-social-networking/internal/domain"
	"github.com/PivnoyFei/webtronics-social-networking/internal/repository"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubUserDirectory struct {
	CreateFn         func(ctx context.Context, user *domain.User) error
	FindByIDFn       func(ctx context.Context, id uint) (*domain.User, error)
	FindByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	FindByEmailFn    func(ctx context.Context, email string) (*domain.User, error)
	UpdatePasswordFn func(ctx context.Context, userID uint, digest string) error
}

func (s *stubUserDirectory) Create(ctx context.Context, user *domain.User) error {
	if s.CreateFn == nil {
		return nil
	}
	return s.CreateFn(ctx, user)
}

func (s *stubUserDirectory) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if s.FindByIDFn == nil {
		return nil, repository.ErrUserNotFound
	}
	return s.FindByIDFn(ctx, id)
}

func (s *stubUserDirectory) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	if s.FindByUsernameFn == nil {
		return nil, repository.ErrUserNotFound
	}
	return s.FindByUsernameFn(ctx, username)
}

func (s *stubUserDirectory) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if s.FindByEmailFn == nil {
		return nil, repository.ErrUserNotFound
	}
	return s.FindByEmailFn(ctx, email)
}

func (s *stubUserDirectory) UpdatePassword(ctx context.Context, userID uint, digest string) error {
	if s.UpdatePasswordFn == nil {
		return nil
	}
	return s.UpdatePasswordFn(ctx, userID, digest)
}

// stubSessionStore records calls and keeps tokens in a map keyed by
// "userID/ip" so auth tests can observe the rotation flow.
type stubSessionStore struct {
	tokens map[string]string

	createCalls       int
	updateCalls       int
	deleteByIPCalls   int
	deleteByUserCalls int
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{tokens: map[string]string{}}
}

func sessionKey(ip string, userID uint) string {
	return fmt.Sprintf("%d/%s", userID, ip)
}

func (s *stubSessionStore) Create(_ context.Context, ip string, userID uint, token string) error {
	s.createCalls++
	s.tokens[sessionKey(ip, userID)] = token
	return nil
}

func (s *stubSessionStore) Check(_ context.Context, ip string, userID uint, token string) (bool, error) {
	return s.tokens[sessionKey(ip, userID)] == token, nil
}

func (s *stubSessionStore) Update(_ context.Context, ip string, userID uint, token string) error {
	s.updateCalls++
	s.tokens[sessionKey(ip, userID)] = token
	return nil
}

func (s *stubSessionStore) Count(_ context.Context, _ uint) (int64, error) {
	return int64(len(s.tokens)), nil
}

func (s *stubSessionStore) DeleteByUser(_ context.Context, _ uint) error {
	s.deleteByUserCalls++
	s.tokens = map[string]string{}
	return nil
}

func (s *stubSessionStore) DeleteByIP(_ context.Context, ip string, userID uint) error {
	s.deleteByIPCalls++
	delete(s.tokens, sessionKey(ip, userID))
	return nil
}
