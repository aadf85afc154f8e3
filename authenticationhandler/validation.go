// authenticationhandler/validation.go

package authenticationhandler

import (
	"errors"
	"strings"
	"unicode"
)

// ValidateRefreshToken checks that the refresh token can be sent verbatim as a header value.
func ValidateRefreshToken(refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return errors.New("refresh token must not be empty")
	}

	for _, r := range refreshToken {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return errors.New("refresh token must not contain whitespace or control characters")
		}
	}

	return nil
}
