// httpclient/config.go
// Description: This file contains the client configuration, its defaults and the loaders that read it from a JSON file or environment variables.
package httpclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/deploymenttheory/go-api-offers-client/authenticationhandler"
	"github.com/deploymenttheory/go-api-offers-client/tokenstore"
	"github.com/joho/godotenv"
)

const (
	DefaultLogLevelString        = "LogLevelInfo"
	DefaultLogOutputFormatString = "console"
	DefaultLogConsoleSeparator   = "	"
	DefaultMaxConcurrentRequests = 1
	DefaultCustomTimeout         = 10 * time.Second
	DefaultFollowRedirects       = false
	DefaultMaxRedirects          = 5
	DefaultAuthPath              = "/auth"

	// ConfigFileExtension is the only extension LoadConfigFromFile accepts.
	ConfigFileExtension = ".json"

	// EnvPrefix prefixes every environment variable read by LoadConfigFromEnv.
	EnvPrefix = "OFFERS_"
)

// ClientConfig holds everything BuildClient needs.
type ClientConfig struct {
	// Service
	BaseURL      string `json:"BaseURL" validate:"required,url"`
	AuthURL      string `json:"AuthURL,omitempty" validate:"omitempty,url"`
	RefreshToken string `json:"RefreshToken" validate:"required"`

	// Token cache
	TokenCachePath    string        `json:"TokenCachePath,omitempty"`
	DisableTokenCache bool          `json:"DisableTokenCache,omitempty"`
	TokenLifetime     time.Duration `json:"TokenLifetime,omitempty" validate:"gte=0"`

	// Log
	LogLevel            string `json:"LogLevel,omitempty" validate:"oneof=LogLevelDebug LogLevelInfo LogLevelWarn LogLevelError LogLevelDPanic LogLevelPanic LogLevelFatal LogLevelNone"`
	LogOutputFormat     string `json:"LogOutputFormat,omitempty" validate:"oneof=json console"`
	LogConsoleSeparator string `json:"LogConsoleSeparator,omitempty"`
	HideSensitiveData   bool   `json:"HideSensitiveData,omitempty"`

	// Misc
	MaxConcurrentRequests int           `json:"MaxConcurrentRequests,omitempty" validate:"min=1,max=10"`
	CustomTimeout         time.Duration `json:"CustomTimeout,omitempty" validate:"gte=0"`
	FollowRedirects       bool          `json:"FollowRedirects,omitempty"`
	MaxRedirects          int           `json:"MaxRedirects,omitempty" validate:"gte=0"`
	ProxyURL              string        `json:"ProxyURL,omitempty" validate:"omitempty,url"`
}

// LoadConfigFromFile loads client configuration settings from a JSON file and fills in defaults.
func LoadConfigFromFile(path string) (*ClientConfig, error) {
	absPath, err := validateFilePath(path)
	if err != nil {
		return nil, fmt.Errorf("invalid file path: %w", err)
	}

	byteValue, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("could not read file: %w", err)
	}

	var config ClientConfig
	if err := json.Unmarshal(byteValue, &config); err != nil {
		return nil, fmt.Errorf("could not unmarshal JSON: %w", err)
	}

	SetDefaultValuesClientConfig(&config)

	return &config, nil
}

// LoadConfigFromEnv loads client configuration settings from OFFERS_* environment variables.
// Any envFiles are read first with godotenv; variables already set in the process win over file values.
// Unset variables fall back to the defaults; malformed ones are reported together.
func LoadConfigFromEnv(envFiles ...string) (*ClientConfig, error) {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("could not load env files: %w", err)
		}
	}

	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	config := &ClientConfig{
		BaseURL:             getEnvOrDefault("BASE_URL", ""),
		AuthURL:             getEnvOrDefault("AUTH_URL", ""),
		RefreshToken:        getEnvOrDefault("REFRESH_TOKEN", ""),
		TokenCachePath:      getEnvOrDefault("TOKEN_CACHE_PATH", tokenstore.DefaultCachePath),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", DefaultLogLevelString),
		LogOutputFormat:     getEnvOrDefault("LOG_OUTPUT_FORMAT", DefaultLogOutputFormatString),
		LogConsoleSeparator: getEnvOrDefault("LOG_CONSOLE_SEPARATOR", DefaultLogConsoleSeparator),
		ProxyURL:            getEnvOrDefault("PROXY_URL", ""),
	}

	var err error
	config.DisableTokenCache, err = getEnvAsBool("DISABLE_TOKEN_CACHE", false)
	collect(err)
	config.TokenLifetime, err = getEnvAsDuration("TOKEN_LIFETIME", authenticationhandler.DefaultTokenLifetime)
	collect(err)
	config.HideSensitiveData, err = getEnvAsBool("HIDE_SENSITIVE_DATA", false)
	collect(err)
	config.MaxConcurrentRequests, err = getEnvAsInt("MAX_CONCURRENT_REQUESTS", DefaultMaxConcurrentRequests)
	collect(err)
	config.CustomTimeout, err = getEnvAsDuration("CUSTOM_TIMEOUT", DefaultCustomTimeout)
	collect(err)
	config.FollowRedirects, err = getEnvAsBool("FOLLOW_REDIRECTS", DefaultFollowRedirects)
	collect(err)
	config.MaxRedirects, err = getEnvAsInt("MAX_REDIRECTS", DefaultMaxRedirects)
	collect(err)

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	SetDefaultValuesClientConfig(config)

	return config, nil
}

// SetDefaultValuesClientConfig fills every unset field with its default.
func SetDefaultValuesClientConfig(config *ClientConfig) {
	if config.AuthURL == "" && config.BaseURL != "" {
		config.AuthURL = strings.TrimRight(config.BaseURL, "/") + DefaultAuthPath
	}
	setDefaultString(&config.TokenCachePath, tokenstore.DefaultCachePath)
	setDefaultDuration(&config.TokenLifetime, authenticationhandler.DefaultTokenLifetime)
	setDefaultString(&config.LogLevel, DefaultLogLevelString)
	setDefaultString(&config.LogOutputFormat, DefaultLogOutputFormatString)
	setDefaultString(&config.LogConsoleSeparator, DefaultLogConsoleSeparator)
	setDefaultInt(&config.MaxConcurrentRequests, DefaultMaxConcurrentRequests)
	setDefaultDuration(&config.CustomTimeout, DefaultCustomTimeout)
	setDefaultInt(&config.MaxRedirects, DefaultMaxRedirects)
}

func setDefaultString(field *string, defaultValue string) {
	if *field == "" {
		*field = defaultValue
	}
}

func setDefaultInt(field *int, defaultValue int) {
	if *field == 0 {
		*field = defaultValue
	}
}

func setDefaultDuration(field *time.Duration, defaultValue time.Duration) {
	if *field == 0 {
		*field = defaultValue
	}
}

// getEnvOrDefault returns the value of EnvPrefix+key, or defaultValue when it is unset or empty.
func getEnvOrDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(EnvPrefix + key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	raw := getEnvOrDefault(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return defaultValue, fmt.Errorf("%s%s: invalid boolean %q", EnvPrefix, key, raw)
	}
	return value, nil
}

func getEnvAsInt(key string, defaultValue int) (int, error) {
	raw := getEnvOrDefault(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue, fmt.Errorf("%s%s: invalid integer %q", EnvPrefix, key, raw)
	}
	return value, nil
}

// getEnvAsDuration accepts Go duration strings ("10s", "4m54s") or a bare number of seconds.
func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnvOrDefault(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	if seconds, err := strconv.ParseFloat(raw, 64); err == nil {
		return time.Duration(seconds * float64(time.Second)), nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return defaultValue, fmt.Errorf("%s%s: invalid duration %q", EnvPrefix, key, raw)
	}
	return value, nil
}

// validateFilePath resolves path and checks that it names a .json file.
func validateFilePath(path string) (string, error) {
	cleanPath := filepath.Clean(path)

	absPath, err := filepath.EvalSymlinks(cleanPath)
	if err != nil {
		return "", fmt.Errorf("unable to resolve the absolute path of the configuration file: %s, error: %w", path, err)
	}

	if filepath.Ext(absPath) != ConfigFileExtension {
		return "", fmt.Errorf("invalid file extension for configuration file: %s, expected %s", path, ConfigFileExtension)
	}

	return absPath, nil
}
