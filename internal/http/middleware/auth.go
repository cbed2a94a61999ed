package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/PivnoyFei/webtronics-social-networking/internal/domain"
	"github.com/PivnoyFei/webtronics-social-networking/internal/http/response"
)

type contextKey int

const userContextKey contextKey = iota

// Authenticator resolves a bearer token to a user.
type Authenticator interface {
	CurrentUser(ctx context.Context, accessToken string) (*domain.User, error)
}

// RequireAuth rejects requests without a valid bearer access token and puts
// the resolved user on the request context.
func RequireAuth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				w.Header().Set("WWW-Authenticate", "Bearer")
				response.Detail(w, http.StatusUnauthorized, "Not authenticated")
				return
			}
			user, err := auth.CurrentUser(r.Context(), token)
			if err != nil {
				response.FromError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
		})
	}
}

func withUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func UserFromContext(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userContextKey).(*domain.User)
	return user, ok
}

// BearerToken extracts the token from the Authorization header, or "" when
// absent.
func BearerToken(r *http.Request) string {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "bearer "
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}
