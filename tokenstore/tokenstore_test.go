// tokenstore/tokenstore_test.go
package tokenstore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_ValidAt(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		session  Session
		expected bool
	}{
		{"empty", Session{}, false},
		{"token without expiry", Session{AccessToken: "tok-A"}, false},
		{"future expiry", Session{AccessToken: "tok-A", ExpiresAt: now.Add(time.Second)}, true},
		{"expiry equal to now", Session{AccessToken: "tok-A", ExpiresAt: now}, false},
		{"past expiry", Session{AccessToken: "tok-A", ExpiresAt: now.Add(-time.Second)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.session.ValidAt(now))
		})
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()

	_, ok := store.Load()
	assert.False(t, ok)

	session := Session{AccessToken: "tok-A", ExpiresAt: time.Now().Add(time.Minute)}
	require.NoError(t, store.Save(session))
	assert.ErrorIs(t, store.Save(Session{AccessToken: "tok-B"}), ErrIncompleteSession)

	loaded, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, session, loaded, "rejected save must not replace the held session")
}

func TestMemoryStore_Seeded(t *testing.T) {
	session := Session{AccessToken: "tok-A", ExpiresAt: time.Now().Add(time.Minute)}
	store := NewMemoryStore(session)

	loaded, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, session, loaded)
}
