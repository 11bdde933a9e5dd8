// Package session holds the in-memory session state that gates the API.
//
// A session is minted by a plaintext PIN comparison, exactly as the
// journal has always worked: no hashing, no rate limiting. The cached
// insights summary lives on the session and is cleared at logout; it is
// never persisted.
package session

import (
	"crypto/subtle"
	"sync"

	"github.com/google/uuid"

	"github.com/sharjeelz/famories/internal/apperr"
)

// Session is the per-token state created at unlock. Unlock and Get
// hand out snapshots; all writes go through the manager so concurrent
// requests never share a mutable session.
type Session struct {
	Token   string
	Summary string // cached insights summary, replaced on each Summarize
}

// Manager mints and resolves sessions. Safe for concurrent use.
type Manager struct {
	pin string

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a manager gated by the given PIN.
func NewManager(pin string) *Manager {
	return &Manager{pin: pin, sessions: make(map[string]*Session)}
}

// Unlock compares the supplied PIN and mints a session token on match.
func (m *Manager) Unlock(pin string) (*Session, error) {
	if subtle.ConstantTimeCompare([]byte(pin), []byte(m.pin)) != 1 {
		return nil, apperr.ErrUnauthorized
	}
	s := &Session{Token: uuid.NewString()}
	m.mu.Lock()
	m.sessions[s.Token] = s
	m.mu.Unlock()
	snap := *s
	return &snap, nil
}

// Get resolves a token to a snapshot of its session.
func (m *Manager) Get(token string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[token]
	if !ok {
		return nil, apperr.ErrUnauthorized
	}
	snap := *s
	return &snap, nil
}

// SetSummary caches the insights summary on the session.
func (m *Manager) SetSummary(token, summary string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[token]; ok {
		s.Summary = summary
	}
}

// Logout discards the session and everything cached on it.
func (m *Manager) Logout(token string) {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
}
