// authenticationhandler/auth_token_management.go
package authenticationhandler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/deploymenttheory/go-api-offers-client/headers/redact"
	"github.com/deploymenttheory/go-api-offers-client/status"
	"github.com/deploymenttheory/go-api-offers-client/tokenstore"
	"github.com/deploymenttheory/go-api-offers-client/version"
	"go.uber.org/zap"
)

// GetValidToken returns an access token that is valid now.
//
// With useCache set, a cached token that has not reached its expiry is returned without any
// network call. Otherwise, or when the cache is empty or stale, one exchange is made against the
// authentication endpoint. Callers pass useCache=false after the API rejected the cached token.
//
// A non-201 answer yields *AuthenticationError. On any failure the previous session is kept.
func (h *AuthTokenHandler) GetValidToken(ctx context.Context, useCache bool) (string, error) {
	h.tokenLock.Lock()
	defer h.tokenLock.Unlock()

	now := h.now().UTC()

	if useCache && h.session.ValidAt(now) {
		h.Logger.Debug("Using cached access token", zap.Duration("time_until_expiry", h.session.ExpiresAt.Sub(now)))
		return h.session.AccessToken, nil
	}

	if !useCache {
		h.Logger.Debug("Forcing access token refresh")
	} else {
		h.Logger.Debug("No valid cached access token, refreshing")
	}

	accessToken, err := h.exchangeRefreshToken(ctx)
	if err != nil {
		return "", err
	}

	h.session = tokenstore.Session{
		AccessToken: accessToken,
		ExpiresAt:   now.Add(h.tokenLifetime),
	}

	if err := h.store.Save(h.session); err != nil {
		h.Logger.Warn("Failed to persist access token, continuing with in-memory token", zap.Error(err))
	}

	h.Logger.Info("Access token refreshed successfully",
		zap.Time("ExpirationTime", h.session.ExpiresAt),
		zap.Duration("ExpiresIn", h.tokenLifetime),
	)
	h.Logger.Debug("Issued access token",
		zap.String("AccessToken", redact.RedactSensitiveHeaderData(h.hideSensitiveData, "AccessToken", accessToken)),
	)

	return accessToken, nil
}

// exchangeRefreshToken performs a single POST against the authentication endpoint.
func (h *AuthTokenHandler) exchangeRefreshToken(ctx context.Context) (string, error) {
	h.Logger.Debug("Attempting to refresh access token", zap.String("URL", h.authURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.authURL, nil)
	if err != nil {
		h.Logger.Error("Failed to create request for token refresh", zap.Error(err))
		return "", fmt.Errorf("failed to create token refresh request: %w", err)
	}
	req.Header.Set(TokenHeader, h.refreshToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.GetUserAgentHeader())

	startTime := time.Now()
	resp, err := h.httpClient.Do(req)
	if err != nil {
		h.Logger.LogAuthTokenError("token_refresh_request_error", http.MethodPost, h.authURL, 0, err)
		return "", fmt.Errorf("token refresh request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		h.Logger.Error("Failed to read token response body", zap.Error(err))
		return "", fmt.Errorf("failed to read token response: %w", err)
	}

	h.Logger.LogRequestEnd("token_refresh", http.MethodPost, h.authURL, resp.StatusCode, time.Since(startTime))

	if !status.IsTokenIssued(resp.StatusCode) {
		authErr := &AuthenticationError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
		h.Logger.LogAuthTokenError("token_refresh_failed", http.MethodPost, h.authURL, resp.StatusCode, authErr)
		return "", authErr
	}

	tokenResp := &TokenResponse{}
	if err := json.NewDecoder(bytes.NewReader(bodyBytes)).Decode(tokenResp); err != nil {
		h.Logger.Error("Failed to decode token response", zap.Error(err))
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	if tokenResp.AccessToken == "" {
		h.Logger.Error("Empty access token received")
		return "", ErrEmptyAccessToken
	}

	return tokenResp.AccessToken, nil
}
