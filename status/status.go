// status.go
// This package provides utility functions for categorizing HTTP status codes.
package status

import (
	"fmt"
	"net/http"
)

// IsUnauthorized reports whether the response rejected the presented credentials (401).
// This is the only status that triggers a forced token refresh and a single retry.
func IsUnauthorized(resp *http.Response) bool {
	return resp != nil && resp.StatusCode == http.StatusUnauthorized
}

// IsErrorStatusCode reports whether statusCode is a client or server error (>= 400).
func IsErrorStatusCode(statusCode int) bool {
	return statusCode >= http.StatusBadRequest
}

// IsTokenIssued reports whether the authentication endpoint issued a token.
// The Offers authentication endpoint answers 201 Created on success and nothing else counts.
func IsTokenIssued(statusCode int) bool {
	return statusCode == http.StatusCreated
}

// IsRedirectStatusCode checks if the provided HTTP status code is one of the redirect codes.
//
// - 301 Moved Permanently
// - 302 Found
// - 303 See Other
// - 307 Temporary Redirect
// - 308 Permanent Redirect
func IsRedirectStatusCode(statusCode int) bool {
	switch statusCode {
	case http.StatusMovedPermanently,
		http.StatusFound,
		http.StatusSeeOther,
		http.StatusTemporaryRedirect,
		http.StatusPermanentRedirect:
		return true
	default:
		return false
	}
}

// TranslateStatusCode returns a human readable "<code> <text>" message for resp.
func TranslateStatusCode(resp *http.Response) string {
	if resp == nil {
		return "no response"
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return fmt.Sprintf("%d %s", resp.StatusCode, text)
	}
	return fmt.Sprintf("%d Unknown Status", resp.StatusCode)
}
