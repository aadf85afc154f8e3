// response/parse_test.go
package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantType   string
		wantParams map[string]string
	}{
		{
			name:       "bare media type",
			header:     "application/json",
			wantType:   "application/json",
			wantParams: map[string]string{},
		},
		{
			name:       "charset parameter",
			header:     "text/html; charset=UTF-8",
			wantType:   "text/html",
			wantParams: map[string]string{"charset": "UTF-8"},
		},
		{
			name:       "quoted filename",
			header:     `attachment; filename="report.pdf"`,
			wantType:   "attachment",
			wantParams: map[string]string{"filename": "report.pdf"},
		},
		{
			name:       "mixed case",
			header:     "Application/JSON",
			wantType:   "application/json",
			wantParams: map[string]string{},
		},
		{
			name:       "empty",
			header:     "",
			wantType:   "",
			wantParams: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotType, gotParams := parseHeader(tt.header)
			assert.Equal(t, tt.wantType, gotType)
			assert.Equal(t, tt.wantParams, gotParams)
		})
	}
}
