// headers/redact/redact.go
package redact

import "net/http"

// Redacted replaces sensitive values in logs.
const Redacted = "REDACTED"

// sensitiveKeys are header names and log field keys whose values are credentials.
// "Bearer" is the header name the Offers service reads tokens from.
var sensitiveKeys = map[string]bool{
	"AccessToken":   true,
	"RefreshToken":  true,
	"Authorization": true,
	"Bearer":        true,
}

// RedactSensitiveHeaderData redacts sensitive data based on the hideSensitiveData flag.
func RedactSensitiveHeaderData(hideSensitiveData bool, key, value string) string {
	if hideSensitiveData && sensitiveKeys[key] {
		return Redacted
	}
	return value
}

// RedactHeaders returns a copy of headers suitable for logging.
func RedactHeaders(hideSensitiveData bool, headers http.Header) map[string][]string {
	redacted := make(map[string][]string, len(headers))
	for key, values := range headers {
		copied := make([]string, len(values))
		for i, v := range values {
			copied[i] = RedactSensitiveHeaderData(hideSensitiveData, http.CanonicalHeaderKey(key), v)
		}
		redacted[key] = copied
	}
	return redacted
}
