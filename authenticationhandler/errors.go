// authenticationhandler/errors.go
package authenticationhandler

import (
	"errors"
	"fmt"
)

// ErrEmptyAccessToken is returned when the endpoint answered 201 without an access token.
var ErrEmptyAccessToken = errors.New("empty access token received")

// AuthenticationError is returned when the authentication endpoint does not issue a token.
// StatusCode and Body are kept for diagnostics only.
type AuthenticationError struct {
	StatusCode int
	Body       string
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("failed to refresh access token: status %d", e.StatusCode)
}

// IsAuthenticationError reports whether err is, or wraps, an *AuthenticationError.
func IsAuthenticationError(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}
