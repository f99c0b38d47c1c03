package session

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultCookieName is the cookie carrying the signed session token.
const DefaultCookieName = "storefront_session"

// ErrMissingSigningKey is returned when a verifier is constructed without
// a signing key.
var ErrMissingSigningKey = errors.New("session: missing signing key")

// Identity is the payload of an authenticated session. The access token is
// short-lived and used against the tenant's backend API; the refresh token
// outlives it and is exchanged by the login flow, not by this layer.
type Identity struct {
	UserID       string `json:"sub"`
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Decision is the per-request authentication outcome. Identity is nil
// unless Authenticated is true.
type Decision struct {
	Authenticated bool
	Identity      *Identity
}

type claims struct {
	Email        string `json:"email"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	jwt.RegisteredClaims
}

// Verifier validates signed session tokens carried by requests. It owns no
// session storage; the identity provider that issued the token is the
// source of truth, this layer only checks the signature and expiry.
type Verifier struct {
	signingKey []byte
	cookieName string
	parser     *jwt.Parser
}

// Option configures the verifier.
type Option func(*Verifier)

// WithCookieName overrides the session cookie name.
func WithCookieName(name string) Option {
	return func(v *Verifier) {
		if name != "" {
			v.cookieName = name
		}
	}
}

// NewVerifier creates a session verifier. The key should be at least 32
// bytes for adequate security with HMAC-SHA256.
func NewVerifier(signingKey string, opts ...Option) (*Verifier, error) {
	if signingKey == "" {
		return nil, ErrMissingSigningKey
	}

	v := &Verifier{
		signingKey: []byte(signingKey),
		cookieName: DefaultCookieName,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

// Decide derives the authentication decision for a request. Every failure
// mode (missing cookie, malformed token, bad signature, expired claims)
// resolves to anonymous; nothing escapes this boundary as an error.
func (v *Verifier) Decide(r *http.Request) Decision {
	cookie, err := r.Cookie(v.cookieName)
	if err != nil || cookie.Value == "" {
		return Decision{}
	}
	return v.VerifyToken(cookie.Value)
}

// VerifyToken validates a raw session token string.
func (v *Verifier) VerifyToken(raw string) Decision {
	var c claims
	token, err := v.parser.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		return v.signingKey, nil
	})
	if err != nil || !token.Valid || c.Subject == "" {
		return Decision{}
	}

	return Decision{
		Authenticated: true,
		Identity: &Identity{
			UserID:       c.Subject,
			Email:        c.Email,
			FirstName:    c.FirstName,
			LastName:     c.LastName,
			AccessToken:  c.AccessToken,
			RefreshToken: c.RefreshToken,
		},
	}
}
