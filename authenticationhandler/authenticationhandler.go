// authenticationhandler/authenticationhandler.go

/* Package authenticationhandler exchanges the long-lived refresh token for short-lived access
tokens and keeps the current one cached, both in memory and in a tokenstore.Store. */
package authenticationhandler

import (
	"net/http"
	"sync"
	"time"

	"github.com/deploymenttheory/go-api-offers-client/logger"
	"github.com/deploymenttheory/go-api-offers-client/tokenstore"
	"go.uber.org/zap"
)

const (
	// TokenHeader is the request header the Offers service reads credentials from.
	// The value is the raw token with no scheme prefix. Both the refresh exchange and
	// resource calls use it.
	TokenHeader = "Bearer"

	// DefaultTokenLifetime is how long an access token is trusted after it was issued.
	// Issued tokens live for at least five minutes; 4.9 minutes leaves a margin under that.
	DefaultTokenLifetime = 294 * time.Second
)

// AuthConfig holds what the handler needs to talk to the authentication endpoint.
type AuthConfig struct {
	AuthURL           string           // AuthURL is the absolute URL of the token exchange endpoint.
	RefreshToken      string           // RefreshToken is the credential presented on every exchange.
	TokenLifetime     time.Duration    // TokenLifetime overrides DefaultTokenLifetime when positive.
	HideSensitiveData bool             // HideSensitiveData redacts tokens in log output.
	Clock             func() time.Time // Clock overrides time.Now, mainly for tests.
}

// TokenResponse is the body returned by the authentication endpoint on success.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
}

// AuthTokenHandler manages the access token session for one refresh token.
type AuthTokenHandler struct {
	authURL           string
	refreshToken      string
	tokenLifetime     time.Duration
	hideSensitiveData bool
	now               func() time.Time

	store      tokenstore.Store
	httpClient *http.Client
	Logger     logger.Logger

	tokenLock sync.Mutex         // tokenLock serialises cache checks and refreshes so concurrent callers share one exchange.
	session   tokenstore.Session // session is replaced wholesale on each successful refresh.
}

// NewAuthTokenHandler creates a new instance of AuthTokenHandler and hydrates its session from store.
// A nil store keeps the session in memory only; a nil httpClient uses http.DefaultClient.
func NewAuthTokenHandler(config AuthConfig, store tokenstore.Store, httpClient *http.Client, log logger.Logger) *AuthTokenHandler {
	if log == nil {
		log = logger.NewNopLogger()
	}
	if store == nil {
		store = tokenstore.NewMemoryStore()
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	lifetime := config.TokenLifetime
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}

	clock := config.Clock
	if clock == nil {
		clock = time.Now
	}

	h := &AuthTokenHandler{
		authURL:           config.AuthURL,
		refreshToken:      config.RefreshToken,
		tokenLifetime:     lifetime,
		hideSensitiveData: config.HideSensitiveData,
		now:               clock,
		store:             store,
		httpClient:        httpClient,
		Logger:            log,
	}

	if session, ok := store.Load(); ok {
		h.session = session
		h.Logger.Debug("Hydrated access token from cache", zap.Time("expires_at", session.ExpiresAt))
	}

	return h
}

// Session returns a copy of the current session.
func (h *AuthTokenHandler) Session() tokenstore.Session {
	h.tokenLock.Lock()
	defer h.tokenLock.Unlock()
	return h.session
}
