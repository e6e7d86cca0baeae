// Package services – SessionStore
//
// This file implements the session/identity tracker: which username is
// "current" for a given renderer session. The original design kept a single
// mutable slot in shared session state; here each login mints an opaque
// token keyed to its username so concurrent sessions cannot interfere with
// one another, while each individual session still sees exactly one
// current-user slot.
//
// Sessions are in-memory only and carry no expiry: they vanish when the
// process exits, which matches the "lost when the session ends" contract.
package services

import (
	"sync"

	"github.com/google/uuid"
)

// SessionStore maps opaque session tokens to logged-in usernames.
// Safe for concurrent use.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]string // token -> username
}

// NewSessionStore returns an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]string)}
}

// Login records username as the current identity of a fresh session and
// returns the session token. Credential checking is AuthService's job;
// callers must verify before logging in.
func (s *SessionStore) Login(username string) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.sessions[token] = username
	s.mu.Unlock()
	return token
}

// Logout clears the identity behind token. Idempotent: unknown or
// already-cleared tokens are a no-op.
func (s *SessionStore) Logout(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// Current returns the username logged in under token, or ("", false) when
// the token is unknown (absent identity).
func (s *SessionStore) Current(token string) (string, bool) {
	s.mu.Lock()
	username, ok := s.sessions[token]
	s.mu.Unlock()
	return username, ok
}
