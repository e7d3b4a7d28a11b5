package auth

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session holds the access token issued at login for the active register
// session. The token is opaque to the client: claims are decoded without
// signature verification only to detect expiry before a backend call.
type Session struct {
	mu    sync.RWMutex
	token string
}

func NewSession() *Session {
	return &Session{}
}

// SetToken stores the access token from a login response.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Token returns the current access token, or empty when not logged in.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Clear drops the session token.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// Expired reports whether the stored token has passed its expiry claim.
// A missing token, an undecodable token, or a token without an exp claim
// counts as expired so the caller re-authenticates.
func (s *Session) Expired() bool {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" {
		return true
	}

	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return true
	}

	return claims.ExpiresAt.Before(time.Now())
}
