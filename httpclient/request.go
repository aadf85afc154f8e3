// httpclient/request.go
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/deploymenttheory/go-api-offers-client/authenticationhandler"
	"github.com/deploymenttheory/go-api-offers-client/concurrency"
	"github.com/deploymenttheory/go-api-offers-client/headers/redact"
	"github.com/deploymenttheory/go-api-offers-client/response"
	"github.com/deploymenttheory/go-api-offers-client/status"
	"github.com/deploymenttheory/go-api-offers-client/version"
	"go.uber.org/zap"
)

// DoRequest sends an authenticated request and returns the open response.
//
// The cached access token is used first. If the service answers 401 the token is refreshed
// unconditionally and the request is sent exactly once more. A final status of 400 or above is
// returned as *response.APIError; the response body is consumed and closed in that case.
// Otherwise the caller owns resp.Body and must close it.
//
// endpoint is either an absolute URL or a path relative to the configured BaseURL. body, when not
// nil, is sent as JSON; a []byte or json.RawMessage is sent as is.
func (c *Client) DoRequest(ctx context.Context, method, endpoint string, body any) (*http.Response, error) {
	log := c.Logger
	url := c.resolveURL(endpoint)

	payload, err := marshalRequestBody(body)
	if err != nil {
		return nil, log.Error("Failed to marshal request body", zap.String("method", method), zap.String("url", url), zap.Error(err))
	}

	ctx, requestID, err := c.Concurrency.AcquireConcurrencyPermit(ctx)
	if err != nil {
		return nil, err
	}
	defer c.Concurrency.ReleaseConcurrencyPermit(requestID)

	token, err := c.AuthTokenHandler.GetValidToken(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to obtain access token: %w", err)
	}

	resp, err := c.send(ctx, method, url, payload, token)
	if err != nil {
		return nil, err
	}

	if status.IsUnauthorized(resp) {
		drainAndClose(resp)
		c.Concurrency.RecordRetry()
		log.LogRetryAttempt("unauthorized_retry", method, url, 1, "access token rejected, forcing refresh", nil)

		token, err = c.AuthTokenHandler.GetValidToken(ctx, false)
		if err != nil {
			return nil, fmt.Errorf("failed to refresh access token after 401: %w", err)
		}

		resp, err = c.send(ctx, method, url, payload, token)
		if err != nil {
			return nil, err
		}
	}

	if status.IsRedirectStatusCode(resp.StatusCode) {
		log.Warn("Redirect response received", zap.Int("status_code", resp.StatusCode), zap.String("location", resp.Header.Get("Location")))
	}

	if status.IsErrorStatusCode(resp.StatusCode) {
		defer resp.Body.Close()
		return nil, response.HandleAPIErrorResponse(resp, method, url, log)
	}

	return resp, nil
}

// DoRequestInto calls DoRequest and decodes a successful response into out.
// out may be nil when the body is not needed.
func (c *Client) DoRequestInto(ctx context.Context, method, endpoint string, body, out any) error {
	resp, err := c.DoRequest(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return response.HandleAPISuccessResponse(resp, out, c.Logger)
}

// send issues one attempt with the given access token. ctx carries the request ID of the held permit.
func (c *Client) send(ctx context.Context, method, url string, payload []byte, token string) (*http.Response, error) {
	log := c.Logger
	requestID, _ := concurrency.RequestIDFromContext(ctx)

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, log.Error("Failed to create HTTP request", zap.String("method", method), zap.String("url", url), zap.Error(err))
	}

	req.Header.Set(authenticationhandler.TokenHeader, token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.GetUserAgentHeader())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.LogRequestStart("api_request", requestID.String(), method, url, redact.RedactHeaders(c.config.HideSensitiveData, req.Header))

	startTime := time.Now()
	resp, err := c.http.Do(req)
	duration := time.Since(startTime)
	if err != nil {
		log.LogError("api_request_failed", method, url, 0, "", err, "")
		return nil, fmt.Errorf("%s %s: request failed: %w", method, url, err)
	}

	c.Concurrency.RecordResponse(resp.StatusCode, duration)
	log.LogRequestEnd("api_request", method, url, resp.StatusCode, duration)

	return resp, nil
}

// resolveURL leaves absolute URLs alone and joins anything else onto BaseURL.
func (c *Client) resolveURL(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	return c.BaseURL() + "/" + strings.TrimLeft(endpoint, "/")
}

// marshalRequestBody encodes body once so that a retry sends identical bytes.
func marshalRequestBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return b, nil
	case json.RawMessage:
		return b, nil
	default:
		return json.Marshal(body)
	}
}

// drainAndClose discards the rest of the body so the connection can be reused.
func drainAndClose(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
}
