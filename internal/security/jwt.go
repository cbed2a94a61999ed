package security

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the payload shared by access and refresh tokens: a numeric
// subject, an expiry, and a jti so tokens minted within the same second
// still differ.
type Claims struct {
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return uint(id), nil
}

// Expired reports whether the expiry claim is strictly in the past.
// The boundary instant itself still counts as valid.
func (c *Claims) Expired(now time.Time) bool {
	return c.ExpiresAt.Time.Before(now)
}

// TokenCodec signs and verifies bearer tokens. Access and refresh tokens use
// distinct secrets so one kind can never be replayed as the other.
type TokenCodec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewTokenCodec(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenCodec {
	return &TokenCodec{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (c *TokenCodec) AccessTTL() time.Duration  { return c.accessTTL }
func (c *TokenCodec) RefreshTTL() time.Duration { return c.refreshTTL }

func (c *TokenCodec) IssueAccess(subject uint) (string, error) {
	return issue(subject, c.accessSecret, c.accessTTL)
}

func (c *TokenCodec) IssueRefresh(subject uint) (string, error) {
	return issue(subject, c.refreshSecret, c.refreshTTL)
}

// VerifyAccess checks the signature and payload shape against the access
// secret. Expiry is deliberately not enforced here: callers apply their own
// expiry rule so the same primitive serves both token kinds.
func (c *TokenCodec) VerifyAccess(token string) (*Claims, error) {
	return verify(token, c.accessSecret)
}

func (c *TokenCodec) VerifyRefresh(token string) (*Claims, error) {
	return verify(token, c.refreshSecret)
}

func issue(subject uint, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(subject), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func verify(token string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, ErrInvalidToken
	}
	if _, err := claims.UserID(); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
