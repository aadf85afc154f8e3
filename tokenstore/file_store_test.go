// tokenstore/file_store_test.go
package tokenstore

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/deploymenttheory/go-api-offers-client/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "token_cache.json"), logger.NewNopLogger())
}

func writeCache(t *testing.T, store *FileStore, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(store.Path(), []byte(content), 0o600))
}

func TestFileStore_RoundTrip(t *testing.T) {
	store := newTestFileStore(t)
	expiresAt := time.Date(2026, 10, 18, 12, 4, 54, 123456000, time.FixedZone("CEST", 2*60*60))

	require.NoError(t, store.Save(Session{AccessToken: "tok-A", ExpiresAt: expiresAt}))

	loaded, ok := NewFileStore(store.Path(), nil).Load()
	require.True(t, ok)
	assert.Equal(t, "tok-A", loaded.AccessToken)
	assert.True(t, expiresAt.Equal(loaded.ExpiresAt), "expiry should survive the round trip")
	assert.Equal(t, time.UTC, loaded.ExpiresAt.Location(), "expiry should be normalised to UTC")
}

func TestFileStore_SaveWritesWireFormat(t *testing.T) {
	store := newTestFileStore(t)
	expiresAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	require.NoError(t, store.Save(Session{AccessToken: "tok-A", ExpiresAt: expiresAt}))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.JSONEq(t, `{"access_token":"tok-A","expires_at":"2026-01-02T03:04:05Z"}`, string(data))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	store := newTestFileStore(t)
	now := time.Now().UTC()

	require.NoError(t, store.Save(Session{AccessToken: "tok-A", ExpiresAt: now}))
	require.NoError(t, store.Save(Session{AccessToken: "tok-B", ExpiresAt: now.Add(time.Minute)}))

	loaded, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, "tok-B", loaded.AccessToken)
}

func TestFileStore_SaveRejectsIncompleteSession(t *testing.T) {
	store := newTestFileStore(t)

	assert.ErrorIs(t, store.Save(Session{AccessToken: "tok-A"}), ErrIncompleteSession)
	assert.ErrorIs(t, store.Save(Session{ExpiresAt: time.Now()}), ErrIncompleteSession)

	_, err := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err), "nothing should be written for an incomplete session")
}

func TestFileStore_SaveCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "cache.json")
	store := NewFileStore(path, nil)

	require.NoError(t, store.Save(Session{AccessToken: "tok-A", ExpiresAt: time.Now()}))

	_, ok := store.Load()
	assert.True(t, ok)
}

func TestFileStore_LoadNaiveTimestampIsUTC(t *testing.T) {
	store := newTestFileStore(t)
	writeCache(t, store, `{"access_token":"tok-A","expires_at":"2026-10-18T12:04:54.500000"}`)

	loaded, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 10, 18, 12, 4, 54, 500000000, time.UTC), loaded.ExpiresAt)
}

func TestFileStore_LoadOffsetTimestamp(t *testing.T) {
	store := newTestFileStore(t)
	writeCache(t, store, `{"access_token":"tok-A","expires_at":"2026-10-18T14:04:54+02:00"}`)

	loaded, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 10, 18, 12, 4, 54, 0, time.UTC), loaded.ExpiresAt)
}

func TestFileStore_LoadSpaceSeparatedOffsetTimestamp(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt string
		want      time.Time
	}{
		{name: "utc offset", expiresAt: "2026-10-18 12:04:54+00:00", want: time.Date(2026, 10, 18, 12, 4, 54, 0, time.UTC)},
		{name: "positive offset", expiresAt: "2026-10-18 14:04:54+02:00", want: time.Date(2026, 10, 18, 12, 4, 54, 0, time.UTC)},
		{name: "fractional seconds", expiresAt: "2026-10-18 12:04:54.250000+00:00", want: time.Date(2026, 10, 18, 12, 4, 54, 250000000, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestFileStore(t)
			writeCache(t, store, `{"access_token":"tok-A","expires_at":"`+tt.expiresAt+`"}`)

			loaded, ok := store.Load()
			require.True(t, ok)
			assert.Equal(t, tt.want, loaded.ExpiresAt)
		})
	}
}

func TestFileStore_LoadToleratesBadCache(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid json", `{"access_token": "tok-A", `},
		{"not an object", `["tok-A"]`},
		{"missing token", `{"expires_at":"2026-10-18T12:04:54Z"}`},
		{"missing expiry", `{"access_token":"tok-A"}`},
		{"empty token", `{"access_token":"","expires_at":"2026-10-18T12:04:54Z"}`},
		{"unparsable expiry", `{"access_token":"tok-A","expires_at":"tomorrow"}`},
		{"wrong types", `{"access_token":42,"expires_at":true}`},
		{"empty file", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestFileStore(t)
			writeCache(t, store, tt.content)

			var (
				session Session
				ok      bool
			)
			require.NotPanics(t, func() { session, ok = store.Load() })
			assert.False(t, ok)
			assert.True(t, session.IsEmpty())
		})
	}
}

func TestFileStore_LoadMissingFile(t *testing.T) {
	store := newTestFileStore(t)

	session, ok := store.Load()
	assert.False(t, ok)
	assert.True(t, session.IsEmpty())
}

func TestFileStore_LoadDirectoryInsteadOfFile(t *testing.T) {
	store := NewFileStore(t.TempDir(), nil)

	_, ok := store.Load()
	assert.False(t, ok)
}

func TestNewFileStore_DefaultPath(t *testing.T) {
	assert.Equal(t, DefaultCachePath, NewFileStore("", nil).Path())
}
