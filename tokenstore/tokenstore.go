// tokenstore/tokenstore.go

/* Package tokenstore keeps the access token session obtained from the Offers authentication
endpoint. A Store is best-effort: Load never fails, it reports whether a usable session was found,
and a corrupt or half-written cache is indistinguishable from an absent one. */
package tokenstore

import (
	"errors"
	"time"
)

// DefaultCachePath is where FileStore persists the session when no path is configured.
const DefaultCachePath = ".offers_token_cache.json"

// ErrIncompleteSession is returned by Save when either the token or its expiry is missing.
var ErrIncompleteSession = errors.New("tokenstore: session requires both an access token and an expiry")

// Session is the current access token and the instant after which it must be treated as invalid.
// The zero value is an empty session.
type Session struct {
	AccessToken string
	ExpiresAt   time.Time
}

// IsEmpty reports whether the session carries no token.
func (s Session) IsEmpty() bool {
	return s.AccessToken == ""
}

// IsComplete reports whether both the token and its expiry are set.
func (s Session) IsComplete() bool {
	return s.AccessToken != "" && !s.ExpiresAt.IsZero()
}

// ValidAt reports whether the session holds a token that is still usable at now.
func (s Session) ValidAt(now time.Time) bool {
	return s.IsComplete() && now.Before(s.ExpiresAt)
}

// Store persists a Session between process runs.
type Store interface {
	// Load returns the persisted session and true, or an empty session and false
	// when nothing usable is stored. It never returns an error.
	Load() (Session, bool)
	// Save replaces the persisted session.
	Save(session Session) error
}
