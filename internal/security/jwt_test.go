package security

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func newCodecForTest() *TokenCodec {
	return NewTokenCodec("access-secret", "refresh-secret", 30*time.Minute, 7*24*time.Hour)
}

func TestTokenCodecIssueAndVerifyRoundTrip(t *testing.T) {
	codec := newCodecForTest()

	access, err := codec.IssueAccess(42)
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}
	claims, err := codec.VerifyAccess(access)
	if err != nil {
		t.Fatalf("verify access: %v", err)
	}
	userID, err := claims.UserID()
	if err != nil {
		t.Fatalf("user id: %v", err)
	}
	if userID != 42 {
		t.Fatalf("expected subject 42, got %d", userID)
	}
	if claims.ID == "" {
		t.Fatal("expected a jti claim")
	}
	if claims.Expired(time.Now().UTC()) {
		t.Fatal("fresh token must not be expired")
	}
}

func TestTokenCodecAccessAndRefreshSecretsAreDisjoint(t *testing.T) {
	codec := newCodecForTest()

	access, err := codec.IssueAccess(1)
	if err != nil {
		t.Fatalf("issue access: %v", err)
	}
	refresh, err := codec.IssueRefresh(1)
	if err != nil {
		t.Fatalf("issue refresh: %v", err)
	}

	if _, err := codec.VerifyRefresh(access); err == nil {
		t.Fatal("access token must not verify against the refresh secret")
	}
	if _, err := codec.VerifyAccess(refresh); err == nil {
		t.Fatal("refresh token must not verify against the access secret")
	}
}

func TestTokenCodecVerifyRejectsGarbageAndTampering(t *testing.T) {
	codec := newCodecForTest()

	if _, err := codec.VerifyAccess("not-a-token"); err == nil {
		t.Fatal("expected error on garbage input")
	}

	other := NewTokenCodec("other-secret", "other-secret", time.Minute, time.Minute)
	forged, err := other.IssueAccess(7)
	if err != nil {
		t.Fatalf("issue forged: %v", err)
	}
	if _, err := codec.VerifyAccess(forged); err == nil {
		t.Fatal("expected signature mismatch to be rejected")
	}
}

func TestTokenCodecVerifyRequiresNumericSubjectAndExpiry(t *testing.T) {
	secret := []byte("access-secret")
	codec := newCodecForTest()

	sign := func(claims jwt.RegisteredClaims) string {
		t.Helper()
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{RegisteredClaims: claims}).SignedString(secret)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return token
	}

	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))
	if _, err := codec.VerifyAccess(sign(jwt.RegisteredClaims{ExpiresAt: exp})); err == nil {
		t.Fatal("expected rejection without subject")
	}
	if _, err := codec.VerifyAccess(sign(jwt.RegisteredClaims{Subject: "12"})); err == nil {
		t.Fatal("expected rejection without expiry")
	}
	if _, err := codec.VerifyAccess(sign(jwt.RegisteredClaims{Subject: "bob", ExpiresAt: exp})); err == nil {
		t.Fatal("expected rejection of non-numeric subject")
	}
}

func TestExpiredTokenStillVerifiesButReportsExpired(t *testing.T) {
	codec := NewTokenCodec("access-secret", "refresh-secret", -time.Minute, -time.Minute)

	token, err := codec.IssueAccess(5)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := codec.VerifyAccess(token)
	if err != nil {
		t.Fatalf("verify should not enforce expiry: %v", err)
	}
	if !claims.Expired(time.Now().UTC()) {
		t.Fatal("expected token to report expired")
	}
}

func TestClaimsExpiredBoundaryInstantIsStillValid(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	claims := &Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now)}}

	if claims.Expired(now) {
		t.Fatal("exp == now must count as valid")
	}
	if !claims.Expired(now.Add(time.Second)) {
		t.Fatal("exp < now must count as expired")
	}
}

func FuzzVerifyAccessNeverPanics(f *testing.F) {
	codec := newCodecForTest()
	seed, err := codec.IssueAccess(1)
	if err != nil {
		f.Fatalf("issue seed: %v", err)
	}
	f.Add(seed)
	f.Add("")
	f.Add("a.b.c")
	f.Add("eyJhbGciOiJub25lIn0..")
	f.Fuzz(func(t *testing.T, token string) {
		claims, err := codec.VerifyAccess(token)
		if err == nil && claims == nil {
			t.Fatal("nil claims without error")
		}
		if err == nil {
			if _, idErr := claims.UserID(); idErr != nil {
				t.Fatal("verified claims must carry a numeric subject")
			}
		}
	})
}
