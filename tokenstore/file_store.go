// tokenstore/file_store.go
package tokenstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/deploymenttheory/go-api-offers-client/logger"
	"go.uber.org/zap"
)

// cacheFileMode restricts the cache to the owning user; it holds a live credential.
const cacheFileMode = 0o600

// offsetTimestampLayouts are accepted for expires_at values that carry a zone offset but use a space
// instead of the RFC 3339 "T" separator, e.g. "2026-10-18 12:04:54+00:00".
var offsetTimestampLayouts = []string{
	"2006-01-02 15:04:05.999999999Z07:00",
}

// naiveTimestampLayouts are accepted for expires_at values written without a zone. They are read as UTC.
var naiveTimestampLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// cacheRecord is the on-disk form of a Session.
type cacheRecord struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   string `json:"expires_at"`
}

// FileStore persists the session as a single JSON object at a fixed path.
// There is no file locking and writes are not atomic; Load treats a torn write as absent.
type FileStore struct {
	path   string
	logger logger.Logger
}

// NewFileStore returns a FileStore writing to path, or DefaultCachePath when path is empty.
func NewFileStore(path string, log logger.Logger) *FileStore {
	if path == "" {
		path = DefaultCachePath
	}
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &FileStore{path: path, logger: log}
}

// Path returns the cache file location.
func (f *FileStore) Path() string {
	return f.path
}

// Load reads the cache file. Any failure is logged at debug level and reported as "no session".
func (f *FileStore) Load() (Session, bool) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if !os.IsNotExist(err) {
			f.logger.Debug("Failed to read token cache", zap.String("path", f.path), zap.Error(err))
		}
		return Session{}, false
	}

	var record cacheRecord
	if err := json.Unmarshal(data, &record); err != nil {
		f.logger.Debug("Ignoring malformed token cache", zap.String("path", f.path), zap.Error(err))
		return Session{}, false
	}

	if record.AccessToken == "" || record.ExpiresAt == "" {
		f.logger.Debug("Ignoring incomplete token cache", zap.String("path", f.path))
		return Session{}, false
	}

	expiresAt, err := parseExpiry(record.ExpiresAt)
	if err != nil {
		f.logger.Debug("Ignoring token cache with unreadable expiry", zap.String("path", f.path), zap.Error(err))
		return Session{}, false
	}

	f.logger.Debug("Loaded cached access token", zap.String("path", f.path), zap.Time("expires_at", expiresAt))

	return Session{AccessToken: record.AccessToken, ExpiresAt: expiresAt}, true
}

// Save overwrites the cache file with session. The expiry is written in UTC as RFC 3339 with nanoseconds.
func (f *FileStore) Save(session Session) error {
	if !session.IsComplete() {
		return ErrIncompleteSession
	}

	data, err := json.Marshal(cacheRecord{
		AccessToken: session.AccessToken,
		ExpiresAt:   session.ExpiresAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal token cache: %w", err)
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create token cache directory: %w", err)
		}
	}

	if err := os.WriteFile(f.path, data, cacheFileMode); err != nil {
		return fmt.Errorf("failed to write token cache: %w", err)
	}

	f.logger.Debug("Saved access token to cache", zap.String("path", f.path), zap.Time("expires_at", session.ExpiresAt))
	return nil
}

// parseExpiry accepts zone-aware ISO-8601 timestamps with either separator, and zone-less ones read as UTC.
func parseExpiry(value string) (time.Time, error) {
	for _, layout := range append([]string{time.RFC3339Nano}, offsetTimestampLayouts...) {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}

	for _, layout := range naiveTimestampLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", value)
}
