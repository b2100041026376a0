// Package client provides the rate-limited HTTP client for the metered
// property-data API, with a closed taxonomy of failure classifications.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"dealflow_backend/platform/config"
	"dealflow_backend/platform/logger"
)

// Client is the HTTP client for the property-data API. It may be constructed
// without an API key; calls then fail with CodeNotConfigured instead of the
// process failing at startup.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	throttle   *Throttle
	log        *logger.Logger
}

// New creates a property-data API client. All requests issued through it
// share one throttle, so dispatch is serialized process-wide.
func New(cfg config.PropertyDataConfig, log *logger.Logger) *Client {
	timeout := cfg.GetPropertyAPITimeout()
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    cfg.GetPropertyAPIBaseURL(),
		apiKey:     cfg.GetPropertyAPIKey(),
		throttle:   NewThrottle(cfg.GetPropertyAPIMinInterval()),
		log:        log,
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Get performs a GET request. A 404 returns (nil, 404, nil): a defined empty
// result, not a failure.
func (c *Client) Get(ctx context.Context, path string) ([]byte, int, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request with a JSON body. 404 semantics match Get.
func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, int, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, int, error) {
	// Configuration is checked before the throttle so a missing key never
	// pays the rate-limit delay.
	if c.apiKey == "" {
		return nil, 0, &Error{
			Code:    CodeNotConfigured,
			Status:  http.StatusServiceUnavailable,
			Message: "property data API key not configured",
		}
	}

	if err := c.throttle.Acquire(ctx); err != nil {
		return nil, 0, Unknown(err)
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, 0, Unknown(err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, 0, Unknown(err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.log != nil {
			c.log.UpstreamError(path, string(CodeUnknown), err)
		}
		return nil, 0, Unknown(err)
	}
	defer resp.Body.Close()

	if c.log != nil {
		c.log.UpstreamRequest(method, path, resp.StatusCode, float64(time.Since(start).Milliseconds()))
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		payload, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, resp.StatusCode, Unknown(err)
		}
		return payload, resp.StatusCode, nil
	}

	return nil, resp.StatusCode, c.classify(path, resp)
}

// classify turns a non-2xx response into the typed error taxonomy, in
// priority order: 429, 402, 404 (not an error), everything else.
func (c *Client) classify(path string, resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return &Error{
			Code:    CodeRateLimitExceeded,
			Status:  resp.StatusCode,
			Message: "upstream rate limit exceeded",
		}
	case http.StatusPaymentRequired:
		return &Error{
			Code:    CodeCreditsExhausted,
			Status:  resp.StatusCode,
			Message: "property data credits exhausted",
		}
	case http.StatusNotFound:
		// Defined empty result; callers must not treat not-found as a
		// failure requiring logging or alerting.
		return nil
	}

	message := fmt.Sprintf("API error: %d", resp.StatusCode)
	if upstreamMsg := upstreamErrorMessage(resp.Body); upstreamMsg != "" {
		message = upstreamMsg
	}

	err := &Error{
		Code:    CodeAPIError,
		Status:  resp.StatusCode,
		Message: message,
	}
	if c.log != nil {
		c.log.UpstreamError(path, string(CodeAPIError), err)
	}
	return err
}

// upstreamErrorMessage pulls the nested error message out of an upstream
// error body, tolerating both envelope shapes the API has been seen to use.
func upstreamErrorMessage(body io.Reader) string {
	var envelope struct {
		Message string `json:"message"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		return ""
	}
	if envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return envelope.Message
}
