package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/PivnoyFei/webtronics-social-networking/internal/domain"
	"github.com/PivnoyFei/webtronics-social-networking/internal/repository"
	"github.com/PivnoyFei/webtronics-social-networking/internal/security"
)

func validSignupInput() SignupInput {
	return SignupInput{
		Email:     "alice@example.com",
		Username:  "aliceinwonder",
		Password:  "s3cret",
		FirstName: "Alice",
		LastName:  "Liddell",
	}
}

func TestUserServiceSignupHashesPasswordAndCreates(t *testing.T) {
	var created *domain.User
	users := &stubUserDirectory{
		CreateFn: func(_ context.Context, user *domain.User) error {
			created = user
			user.ID = 1
			return nil
		},
	}
	svc := NewUserService(users, discardLogger())

	user, err := svc.Signup(context.Background(), validSignupInput())
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.ID != 1 || created == nil {
		t.Fatalf("expected created user, got %+v", user)
	}
	if created.PasswordHash == "s3cret" {
		t.Fatal("password must be stored hashed")
	}
	if !security.CheckPassword("s3cret", created.PasswordHash) {
		t.Fatal("stored digest must verify against the plaintext")
	}
}

func TestUserServiceSignupValidationCollectsProblems(t *testing.T) {
	svc := NewUserService(&stubUserDirectory{}, discardLogger())
	ctx := context.Background()

	in := validSignupInput()
	in.Email = "not-an-email"
	in.Username = "ab1"
	in.Password = ""
	_, err := svc.Signup(ctx, in)
	var svcErr *Error
	if !errors.As(err, &svcErr) || svcErr.Kind != KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	for _, want := range []string{"email is not valid", "username must be between 5 and 25 characters", "Unacceptable symbols", "password is required"} {
		if !strings.Contains(svcErr.Message, want) {
			t.Fatalf("expected %q in %q", want, svcErr.Message)
		}
	}

	in = validSignupInput()
	in.FirstName = "Al1ce"
	_, err = svc.Signup(ctx, in)
	assertServiceError(t, err, KindValidation, "Unacceptable symbols")
}

func TestUserServiceSignupConflicts(t *testing.T) {
	existing := &domain.User{ID: 1, Email: "alice@example.com", Username: "aliceinwonder"}
	ctx := context.Background()

	byEmail := &stubUserDirectory{
		FindByEmailFn: func(context.Context, string) (*domain.User, error) { return existing, nil },
	}
	_, err := NewUserService(byEmail, discardLogger()).Signup(ctx, validSignupInput())
	assertServiceError(t, err, KindConflict, "Email already exists")

	byUsername := &stubUserDirectory{
		FindByUsernameFn: func(context.Context, string) (*domain.User, error) { return existing, nil },
	}
	_, err = NewUserService(byUsername, discardLogger()).Signup(ctx, validSignupInput())
	assertServiceError(t, err, KindConflict, "Username already exists")
}

func TestUserServiceGetByID(t *testing.T) {
	users := &stubUserDirectory{
		FindByIDFn: func(_ context.Context, id uint) (*domain.User, error) {
			if id == 1 {
				return &domain.User{ID: 1, Username: "aliceinwonder"}, nil
			}
			return nil, repository.ErrUserNotFound
		},
	}
	svc := NewUserService(users, discardLogger())

	user, err := svc.GetByID(context.Background(), 1)
	if err != nil || user.ID != 1 {
		t.Fatalf("expected user 1, got %+v err=%v", user, err)
	}
	_, err = svc.GetByID(context.Background(), 404)
	assertServiceError(t, err, KindNotFound, "User not found")
}

func TestUserServiceSetPassword(t *testing.T) {
	digest, err := security.HashPassword("current")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &domain.User{ID: 1, PasswordHash: digest}
	ctx := context.Background()

	var storedDigest string
	users := &stubUserDirectory{
		UpdatePasswordFn: func(_ context.Context, _ uint, d string) error {
			storedDigest = d
			return nil
		},
	}
	svc := NewUserService(users, discardLogger())

	// The new password equal to the current one is rejected before anything
	// else is checked.
	err = svc.SetPassword(ctx, user, "current", "current")
	assertServiceError(t, err, KindBadRequest, "Incorrect password")

	err = svc.SetPassword(ctx, user, "wrong", "next")
	assertServiceError(t, err, KindBadRequest, "Incorrect password")

	if err := svc.SetPassword(ctx, user, "current", "next"); err != nil {
		t.Fatalf("set password: %v", err)
	}
	if !security.CheckPassword("next", storedDigest) {
		t.Fatal("stored digest must verify against the new password")
	}
}
