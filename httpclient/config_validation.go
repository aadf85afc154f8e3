// httpclient/config_validation.go
package httpclient

import (
	"errors"
	"fmt"
	"strings"

	"github.com/deploymenttheory/go-api-offers-client/authenticationhandler"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// validateClientConfig checks the struct tags on ClientConfig and the rules that span several fields.
func validateClientConfig(config ClientConfig) error {
	if err := validate.Struct(config); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			return formatValidationErrors(validationErrors)
		}
		return err
	}

	if err := authenticationhandler.ValidateRefreshToken(config.RefreshToken); err != nil {
		return err
	}

	if config.FollowRedirects && config.MaxRedirects < 1 {
		return errors.New("max redirects cannot be less than 1 when following redirects")
	}

	if !config.DisableTokenCache && strings.TrimSpace(config.TokenCachePath) == "" {
		return errors.New("token cache path cannot be empty while the token cache is enabled")
	}

	return nil
}

// formatValidationErrors renders one line per failed field.
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		if fieldErr.Param() != "" {
			messages = append(messages, fmt.Sprintf("%s failed %q (%s)", fieldErr.Field(), fieldErr.Tag(), fieldErr.Param()))
		} else {
			messages = append(messages, fmt.Sprintf("%s failed %q", fieldErr.Field(), fieldErr.Tag()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(messages, "; "))
}
