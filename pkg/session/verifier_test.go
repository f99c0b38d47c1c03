package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echodesk/storefront-gateway/pkg/session"
)

const signingKey = "test-signing-key-0123456789abcdef"

type tokenClaims struct {
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	jwt.RegisteredClaims
}

func signToken(t *testing.T, key string, claims tokenClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return raw
}

func validClaims() tokenClaims {
	return tokenClaims{
		Email:        "jane@example.com",
		FirstName:    "Jane",
		LastName:     "Doe",
		AccessToken:  "access-abc",
		RefreshToken: "refresh-xyz",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-123",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestVerifyToken(t *testing.T) {
	t.Parallel()

	verifier, err := session.NewVerifier(signingKey)
	require.NoError(t, err)

	t.Run("valid token yields identity", func(t *testing.T) {
		t.Parallel()

		decision := verifier.VerifyToken(signToken(t, signingKey, validClaims()))
		require.True(t, decision.Authenticated)
		require.NotNil(t, decision.Identity)
		assert.Equal(t, "user-123", decision.Identity.UserID)
		assert.Equal(t, "jane@example.com", decision.Identity.Email)
		assert.Equal(t, "Jane", decision.Identity.FirstName)
		assert.Equal(t, "Doe", decision.Identity.LastName)
		assert.Equal(t, "access-abc", decision.Identity.AccessToken)
		assert.Equal(t, "refresh-xyz", decision.Identity.RefreshToken)
	})

	t.Run("expired token is anonymous", func(t *testing.T) {
		t.Parallel()

		claims := validClaims()
		claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

		decision := verifier.VerifyToken(signToken(t, signingKey, claims))
		assert.False(t, decision.Authenticated)
		assert.Nil(t, decision.Identity)
	})

	t.Run("wrong signing key is anonymous", func(t *testing.T) {
		t.Parallel()

		decision := verifier.VerifyToken(signToken(t, "another-key-entirely-0123456789ab", validClaims()))
		assert.False(t, decision.Authenticated)
	})

	t.Run("token without expiry is anonymous", func(t *testing.T) {
		t.Parallel()

		claims := validClaims()
		claims.ExpiresAt = nil

		decision := verifier.VerifyToken(signToken(t, signingKey, claims))
		assert.False(t, decision.Authenticated)
	})

	t.Run("token without subject is anonymous", func(t *testing.T) {
		t.Parallel()

		claims := validClaims()
		claims.Subject = ""

		decision := verifier.VerifyToken(signToken(t, signingKey, claims))
		assert.False(t, decision.Authenticated)
	})

	t.Run("malformed token is anonymous", func(t *testing.T) {
		t.Parallel()

		assert.False(t, verifier.VerifyToken("not.a.jwt").Authenticated)
		assert.False(t, verifier.VerifyToken("").Authenticated)
	})
}

func TestDecide(t *testing.T) {
	t.Parallel()

	verifier, err := session.NewVerifier(signingKey)
	require.NoError(t, err)

	t.Run("valid cookie authenticates", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest("GET", "/account", nil)
		r.AddCookie(&http.Cookie{
			Name:  session.DefaultCookieName,
			Value: signToken(t, signingKey, validClaims()),
		})

		decision := verifier.Decide(r)
		require.True(t, decision.Authenticated)
		assert.Equal(t, "user-123", decision.Identity.UserID)
	})

	t.Run("missing cookie is anonymous", func(t *testing.T) {
		t.Parallel()

		decision := verifier.Decide(httptest.NewRequest("GET", "/account", nil))
		assert.False(t, decision.Authenticated)
	})

	t.Run("tampered cookie is anonymous", func(t *testing.T) {
		t.Parallel()

		token := signToken(t, signingKey, validClaims())
		r := httptest.NewRequest("GET", "/account", nil)
		r.AddCookie(&http.Cookie{
			Name:  session.DefaultCookieName,
			Value: token + "tampered",
		})

		assert.False(t, verifier.Decide(r).Authenticated)
	})

	t.Run("custom cookie name", func(t *testing.T) {
		t.Parallel()

		custom, err := session.NewVerifier(signingKey, session.WithCookieName("shop_session"))
		require.NoError(t, err)

		r := httptest.NewRequest("GET", "/account", nil)
		r.AddCookie(&http.Cookie{
			Name:  "shop_session",
			Value: signToken(t, signingKey, validClaims()),
		})

		assert.True(t, custom.Decide(r).Authenticated)
	})
}

func TestNewVerifier(t *testing.T) {
	t.Parallel()

	_, err := session.NewVerifier("")
	assert.ErrorIs(t, err, session.ErrMissingSigningKey)
}
