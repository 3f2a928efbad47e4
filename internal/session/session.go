// Package session carries the authenticated user identity through explicit
// injection: every controller receives a *Session at construction instead of
// reading ambient global state.
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"edunity/internal/models"
)

// Session is the authenticated user plus the bearer token used on API calls.
// The zero value is an anonymous session.
type Session struct {
	User  models.User
	Token string
}

// New creates a session for the given user and token.
func New(user models.User, token string) *Session {
	return &Session{User: user, Token: token}
}

// Anonymous returns an unauthenticated session.
func Anonymous() *Session {
	return &Session{}
}

// LoggedIn reports whether the session carries an authenticated user.
func (s *Session) LoggedIn() bool {
	return s != nil && s.User.ID != ""
}

// UserID returns the authenticated user's id, or "" when anonymous.
func (s *Session) UserID() string {
	if s == nil {
		return ""
	}
	return s.User.ID
}

// Claims is the subset of token claims the client inspects. The token is
// parsed without signature verification: the backend is the verifier, the
// client only reads expiry and subject for display and preflight checks.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

// TokenClaims parses the session's bearer token. Returns nil when the session
// has no token or the token is not a well-formed JWT.
func (s *Session) TokenClaims() *Claims {
	if s == nil || s.Token == "" {
		return nil
	}
	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(s.Token, jwt.MapClaims{})
	if err != nil {
		return nil
	}

	claims := &Claims{}
	if sub, err := token.Claims.GetSubject(); err == nil {
		claims.Subject = sub
	}
	if exp, err := token.Claims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}
	return claims
}

// TokenExpired reports whether the bearer token carries an expiry in the
// past. Tokens without claims are treated as non-expired; the backend has
// the final word either way.
func (s *Session) TokenExpired(now time.Time) bool {
	claims := s.TokenClaims()
	if claims == nil || claims.ExpiresAt.IsZero() {
		return false
	}
	return claims.ExpiresAt.Before(now)
}
