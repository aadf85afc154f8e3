// authenticationhandler/validation_test.go
package authenticationhandler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRefreshToken(t *testing.T) {
	cases := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{"uuid", "d4803215-2340-4dc1-aaf1-4183d58ec66c", false},
		{"opaque", "rt-1", false},
		{"empty", "", true},
		{"blank", "   ", true},
		{"embedded newline", "rt-1\r\nX-Injected: 1", true},
		{"embedded space", "rt 1", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateRefreshToken(tc.token)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
