package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, ttl time.Duration) *Manager {
	t.Helper()
	m, err := NewManager(Config{TTL: ttl})
	require.NoError(t, err)
	return m
}

func TestEstablishAndCurrent(t *testing.T) {
	m := newTestManager(t, time.Hour)
	userID := uuid.New()

	token, err := m.Establish(userID, "")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, ok := m.Current(token)
	assert.True(t, ok)
	assert.Equal(t, userID, got)

	_, ok = m.Current("")
	assert.False(t, ok)
	_, ok = m.Current("no-such-token")
	assert.False(t, ok)
}

func TestEstablishRotatesPriorToken(t *testing.T) {
	m := newTestManager(t, time.Hour)
	userID := uuid.New()

	first, err := m.Establish(userID, "")
	require.NoError(t, err)

	second, err := m.Establish(userID, first)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	// The pre-login token must not survive authentication.
	_, ok := m.Current(first)
	assert.False(t, ok)
	got, ok := m.Current(second)
	assert.True(t, ok)
	assert.Equal(t, userID, got)
}

func TestTerminateIsIdempotent(t *testing.T) {
	m := newTestManager(t, time.Hour)

	token, err := m.Establish(uuid.New(), "")
	require.NoError(t, err)

	m.Terminate(token)
	_, ok := m.Current(token)
	assert.False(t, ok)

	// Terminating again, or terminating garbage, must not panic or error.
	m.Terminate(token)
	m.Terminate("never-existed")
	m.Terminate("")
}

func TestExpiredSessionResolvesToAnonymous(t *testing.T) {
	m := newTestManager(t, time.Minute)

	token, err := m.Establish(uuid.New(), "")
	require.NoError(t, err)

	m.nowFunc = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, ok := m.Current(token)
	assert.False(t, ok)
	// The expired entry is dropped on observation.
	assert.Equal(t, 0, m.Len())
}

func TestSweepRemovesExpired(t *testing.T) {
	m := newTestManager(t, time.Minute)

	_, err := m.Establish(uuid.New(), "")
	require.NoError(t, err)
	_, err = m.Establish(uuid.New(), "")
	require.NoError(t, err)
	require.Equal(t, 2, m.Len())

	m.nowFunc = func() time.Time { return time.Now().Add(2 * time.Minute) }

	assert.Equal(t, 2, m.Sweep())
	assert.Equal(t, 0, m.Len())
}

func TestStateFilePersistsAcrossManagers(t *testing.T) {
	stateFile := filepath.Join(t.TempDir(), "state", "sessions.json")
	userID := uuid.New()

	first, err := NewManager(Config{TTL: time.Hour, StateFile: stateFile})
	require.NoError(t, err)
	token, err := first.Establish(userID, "")
	require.NoError(t, err)

	// A fresh manager pointed at the same file sees the session.
	second, err := NewManager(Config{TTL: time.Hour, StateFile: stateFile})
	require.NoError(t, err)
	got, ok := second.Current(token)
	assert.True(t, ok)
	assert.Equal(t, userID, got)

	// Termination is persisted too.
	second.Terminate(token)
	third, err := NewManager(Config{TTL: time.Hour, StateFile: stateFile})
	require.NoError(t, err)
	_, ok = third.Current(token)
	assert.False(t, ok)
}

func TestNewManagerRequiresPositiveTTL(t *testing.T) {
	_, err := NewManager(Config{TTL: 0})
	assert.Error(t, err)
}
