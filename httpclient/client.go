// httpclient/client.go
/* Package httpclient provides the authenticated HTTP client for the Offers service. Every call
carries a short-lived access token in the Bearer header; when the service rejects it the token is
refreshed once and the call is repeated. The main Client structure bundles the configuration, the
token handler, the concurrency limiter and an embedded standard HTTP client. */
package httpclient

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/deploymenttheory/go-api-offers-client/authenticationhandler"
	"github.com/deploymenttheory/go-api-offers-client/concurrency"
	"github.com/deploymenttheory/go-api-offers-client/logger"
	"github.com/deploymenttheory/go-api-offers-client/proxy"
	"github.com/deploymenttheory/go-api-offers-client/redirecthandler"
	"github.com/deploymenttheory/go-api-offers-client/tokenstore"
	"go.uber.org/zap"
)

// Client is the authenticated requester.
type Client struct {
	config ClientConfig
	http   *http.Client

	Logger           logger.Logger
	AuthTokenHandler *authenticationhandler.AuthTokenHandler
	Concurrency      *concurrency.ConcurrencyHandler
}

// BuildClient creates a new Client from config. With populateDefaultValues set, unset fields are
// filled by SetDefaultValuesClientConfig before validation.
func BuildClient(config ClientConfig, populateDefaultValues bool) (*Client, error) {
	if populateDefaultValues {
		SetDefaultValuesClientConfig(&config)
	}

	if err := validateClientConfig(config); err != nil {
		return nil, err
	}

	log := buildLogger(config)

	log.Info("Initializing new Offers API client", zap.String("base_url", config.BaseURL))

	httpClient := &http.Client{
		Timeout: config.CustomTimeout,
	}

	if err := redirecthandler.SetupRedirectHandler(httpClient, config.FollowRedirects, config.MaxRedirects, log); err != nil {
		return nil, fmt.Errorf("failed to set up redirect handler: %w", err)
	}

	if err := proxy.InitializeProxy(httpClient, config.ProxyURL, log); err != nil {
		return nil, fmt.Errorf("failed to set up proxy: %w", err)
	}

	var store tokenstore.Store
	if config.DisableTokenCache {
		store = tokenstore.NewMemoryStore()
	} else {
		store = tokenstore.NewFileStore(config.TokenCachePath, log)
	}

	authHandler := authenticationhandler.NewAuthTokenHandler(authenticationhandler.AuthConfig{
		AuthURL:           config.AuthURL,
		RefreshToken:      config.RefreshToken,
		TokenLifetime:     config.TokenLifetime,
		HideSensitiveData: config.HideSensitiveData,
	}, store, httpClient, log)

	concurrencyHandler := concurrency.NewConcurrencyHandler(
		config.MaxConcurrentRequests,
		log,
		&concurrency.ConcurrencyMetrics{},
	)

	client := &Client{
		config:           config,
		http:             httpClient,
		Logger:           log,
		AuthTokenHandler: authHandler,
		Concurrency:      concurrencyHandler,
	}

	log.Debug("New API client initialized",
		zap.String("Auth URL", config.AuthURL),
		zap.Bool("Token Cache Disabled", config.DisableTokenCache),
		zap.String("Token Cache Path", config.TokenCachePath),
		zap.Duration("Token Lifetime", config.TokenLifetime),
		zap.String("Logging Level", config.LogLevel),
		zap.String("Log Encoding Format", config.LogOutputFormat),
		zap.Bool("Hide Sensitive Data In Logs", config.HideSensitiveData),
		zap.Int("Max Concurrent Requests", config.MaxConcurrentRequests),
		zap.Bool("Follow Redirects", config.FollowRedirects),
		zap.Int("Max Redirects", config.MaxRedirects),
		zap.Duration("Custom Timeout", config.CustomTimeout),
	)

	return client, nil
}

// buildLogger returns a silent logger for LogLevelNone and a zap logger otherwise.
func buildLogger(config ClientConfig) logger.Logger {
	level := logger.ParseLogLevelFromString(config.LogLevel)
	if level == logger.LogLevelNone {
		return logger.NewNopLogger()
	}
	return logger.BuildLogger(level, config.LogOutputFormat, config.LogConsoleSeparator)
}

// BaseURL returns the configured service root without a trailing slash.
func (c *Client) BaseURL() string {
	return strings.TrimRight(c.config.BaseURL, "/")
}

// Config returns a copy of the configuration the client was built with.
func (c *Client) Config() ClientConfig {
	return c.config
}
