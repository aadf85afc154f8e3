// redirecthandler/redirecthandler.go
/* Package redirecthandler installs the redirect policy on the client's http.Client. The standard
client strips Authorization and Cookie on cross-host hops, but not the Offers token header, so the
handler removes it explicitly before a request leaves the original host. */
package redirecthandler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/deploymenttheory/go-api-offers-client/logger"
	"go.uber.org/zap"
)

// DefaultSensitiveHeaders are removed whenever a redirect changes host.
var DefaultSensitiveHeaders = []string{"Bearer", "Authorization", "Cookie"}

// RedirectHandler contains configurations for handling HTTP redirects.
type RedirectHandler struct {
	Logger           logger.Logger // Logger instance for logging.
	MaxRedirects     int           // Maximum allowed redirects to prevent infinite loops.
	SensitiveHeaders []string      // Headers to be removed on cross-host redirects.
}

// NewRedirectHandler creates a new instance of RedirectHandler.
func NewRedirectHandler(log logger.Logger, maxRedirects int) *RedirectHandler {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &RedirectHandler{
		Logger:           log,
		MaxRedirects:     maxRedirects,
		SensitiveHeaders: append([]string(nil), DefaultSensitiveHeaders...),
	}
}

// AddSensitiveHeader allows adding configurable sensitive headers.
func (r *RedirectHandler) AddSensitiveHeader(header string) {
	r.SensitiveHeaders = append(r.SensitiveHeaders, header)
}

// WithRedirectHandling applies the redirect handling policy to an http.Client.
func (r *RedirectHandler) WithRedirectHandling(client *http.Client) {
	client.CheckRedirect = r.checkRedirect
}

// checkRedirect is called by net/http before following a redirect. req is the upcoming request,
// via the requests made so far, oldest first.
func (r *RedirectHandler) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) == 0 {
		return nil
	}

	// 307 and 308 keep the method and body; do not replay writes against another location
	if req.Method == http.MethodPost || req.Method == http.MethodPatch || req.Method == http.MethodPut {
		r.Logger.Warn("Redirect attempted on non-idempotent method, not following", zap.String("method", req.Method), zap.String("location", req.URL.String()))
		return http.ErrUseLastResponse
	}

	if len(via) >= r.MaxRedirects {
		r.Logger.Warn("Maximum redirects reached", zap.Int("maxRedirects", r.MaxRedirects))
		return &MaxRedirectsError{MaxRedirects: r.MaxRedirects}
	}

	if hasLoop(req, via) {
		r.Logger.Warn("Redirect loop detected", zap.String("url", req.URL.String()))
		return &RedirectLoopError{URL: req.URL.String()}
	}

	if !sameHost(req, via[0]) {
		r.secureRequest(req)
		r.Logger.Debug("Removed sensitive headers for cross-host redirect", zap.String("host", req.URL.Host))
	}

	r.Logger.Info("Redirecting request",
		zap.String("originalURL", via[len(via)-1].URL.String()),
		zap.String("newURL", req.URL.String()),
		zap.Int("redirectCount", len(via)),
	)
	return nil
}

// secureRequest removes sensitive headers from the request.
func (r *RedirectHandler) secureRequest(req *http.Request) {
	for _, header := range r.SensitiveHeaders {
		req.Header.Del(header)
	}
}

// sameHost compares host names case-insensitively, ignoring default ports.
func sameHost(req, original *http.Request) bool {
	return strings.EqualFold(req.URL.Hostname(), original.URL.Hostname()) && req.URL.Port() == original.URL.Port()
}

// hasLoop reports whether req targets a URL already visited in this chain.
func hasLoop(req *http.Request, via []*http.Request) bool {
	target := req.URL.String()
	for _, previous := range via {
		if previous.URL.String() == target {
			return true
		}
	}
	return false
}

// RedirectLoopError represents an error when a redirect loop is detected.
type RedirectLoopError struct {
	URL string
}

func (e *RedirectLoopError) Error() string {
	return fmt.Sprintf("redirect loop detected at %s", e.URL)
}

// MaxRedirectsError represents an error when the maximum number of redirects is reached.
type MaxRedirectsError struct {
	MaxRedirects int
}

func (e *MaxRedirectsError) Error() string {
	return fmt.Sprintf("maximum redirects reached: %d", e.MaxRedirects)
}

// SetupRedirectHandler configures the HTTP client for redirect handling based on the client configuration.
// With followRedirects off the first response is always returned as is.
func SetupRedirectHandler(client *http.Client, followRedirects bool, maxRedirects int, log logger.Logger) error {
	if log == nil {
		log = logger.NewNopLogger()
	}

	if !followRedirects {
		client.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
		return nil
	}

	if maxRedirects < 1 {
		return log.Error(fmt.Sprintf("invalid maxRedirects value: %d", maxRedirects), zap.Int("maxRedirects", maxRedirects))
	}

	NewRedirectHandler(log, maxRedirects).WithRedirectHandling(client)
	log.Info("Redirect handling enabled", zap.Int("MaxRedirects", maxRedirects))
	return nil
}
