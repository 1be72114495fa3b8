/*
Package session implements the server-side session store.

A session maps an opaque token to a user id for the lifetime of the configured
TTL. The store is an in-process map with optional JSON file persistence, so a
restart does not log everyone out when a state file is configured. The Manager
is constructed once per process in main and handed to request handlers through
their dependency struct; there is no package-level session state.
*/
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"userhub/internal/pkg/logx"
	"userhub/internal/pkg/randx"
)

// Session is one server-side session record.
type Session struct {
	Token     string    `json:"token"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Config carries Manager construction parameters.
type Config struct {
	// TTL is the session lifetime; required, > 0.
	TTL time.Duration

	// StateFile is the optional JSON persistence path. Empty disables persistence
	// and sessions live only in memory.
	StateFile string
}

// Manager owns the session map. All methods are safe for concurrent use.
type Manager struct {
	ttl       time.Duration
	stateFile string
	nowFunc   func() time.Time

	mu       sync.RWMutex
	sessions map[string]Session
}

// NewManager constructs a Manager and, when a state file is configured, loads
// previously persisted sessions from it.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("session TTL must be > 0")
	}

	m := &Manager{
		ttl:       cfg.TTL,
		stateFile: cfg.StateFile,
		nowFunc:   time.Now,
		sessions:  make(map[string]Session),
	}

	if err := m.loadState(); err != nil {
		return nil, err
	}

	return m, nil
}

// Establish creates a new session bound to userID and returns its opaque token.
// Any session bound to priorToken is removed first, so a login always rotates
// the token and an attacker-supplied cookie can never survive authentication.
func (m *Manager) Establish(userID uuid.UUID, priorToken string) (string, error) {
	token, err := randx.SessionToken()
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}

	now := m.nowFunc()
	sess := Session{
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	m.mu.Lock()
	if priorToken != "" {
		delete(m.sessions, priorToken)
	}
	m.sessions[token] = sess
	if err := m.persistLocked(); err != nil {
		delete(m.sessions, token)
		m.mu.Unlock()
		return "", err
	}
	m.mu.Unlock()

	return token, nil
}

// Current returns the user id bound to the token. The second return value is
// false for unknown, empty, or expired tokens; expired entries are dropped on
// observation.
func (m *Manager) Current(token string) (uuid.UUID, bool) {
	if token == "" {
		return uuid.Nil, false
	}

	m.mu.RLock()
	sess, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok {
		return uuid.Nil, false
	}

	if m.nowFunc().After(sess.ExpiresAt) {
		m.mu.Lock()
		delete(m.sessions, token)
		if err := m.persistLocked(); err != nil {
			logx.Error(err, "failed to persist session state after expiry")
		}
		m.mu.Unlock()
		return uuid.Nil, false
	}

	return sess.UserID, true
}

// Terminate invalidates the session bound to the token. Terminating an unknown
// or already-invalid token is not an error.
func (m *Manager) Terminate(token string) {
	if token == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[token]; !ok {
		return
	}
	delete(m.sessions, token)
	if err := m.persistLocked(); err != nil {
		logx.Error(err, "failed to persist session state after logout")
	}
}

// Sweep removes every expired session. It is called periodically by the janitor
// goroutine started in main.
func (m *Manager) Sweep() int {
	now := m.nowFunc()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for token, sess := range m.sessions {
		if now.After(sess.ExpiresAt) {
			delete(m.sessions, token)
			removed++
		}
	}
	if removed > 0 {
		if err := m.persistLocked(); err != nil {
			logx.Error(err, "failed to persist session state after sweep")
		}
	}
	return removed
}

// Len reports the number of live sessions, counting not-yet-swept expired ones.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// loadState restores sessions from the state file, tolerating a missing or
// empty file.
func (m *Manager) loadState() error {
	if m.stateFile == "" {
		return nil
	}

	b, err := os.ReadFile(m.stateFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read session state: %w", err)
	}
	if len(b) == 0 {
		return nil
	}

	state := make(map[string]Session)
	if err := json.Unmarshal(b, &state); err != nil {
		return fmt.Errorf("decode session state: %w", err)
	}

	m.mu.Lock()
	m.sessions = state
	m.mu.Unlock()
	return nil
}

// persistLocked writes the session map to the state file. Callers must hold mu.
func (m *Manager) persistLocked() error {
	if m.stateFile == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(m.stateFile), 0o755); err != nil {
		return fmt.Errorf("mkdir session state dir: %w", err)
	}
	b, err := json.Marshal(m.sessions)
	if err != nil {
		return fmt.Errorf("encode session state: %w", err)
	}
	if err := os.WriteFile(m.stateFile, b, 0o600); err != nil {
		return fmt.Errorf("write session state: %w", err)
	}
	return nil
}
