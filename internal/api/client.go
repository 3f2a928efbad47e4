package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// Request ID header constants, mirrored back by the backend for tracing.
const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderAuthorization = "Authorization"
)

// Config holds HTTP client configuration.
type Config struct {
	BaseURL   string        `json:"base_url"`
	Timeout   time.Duration `json:"timeout"`
	UserAgent string        `json:"user_agent"`

	// MaxRetries enables exponential-backoff retries for idempotent GETs.
	// It defaults to 0: the client issues every request exactly once, and
	// failed mutations are the caller's to retry manually.
	MaxRetries int `json:"max_retries"`
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *Config {
	return &Config{
		Timeout:    15 * time.Second,
		UserAgent:  "edunity-client/1.0",
		MaxRetries: 0,
	}
}

// Client is the shared transport for all resource clients: JSON over HTTP
// with optional bearer-token auth and per-request correlation IDs.
type Client struct {
	http   *http.Client
	config *Config
	logger *zap.Logger
}

// New creates a Client for the backend at config.BaseURL.
func New(config *Config, logger *zap.Logger) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		return nil, NewValidationError("base URL is required", nil)
	}
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, NewValidationError("invalid base URL", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		http:   &http.Client{Timeout: config.Timeout},
		config: config,
		logger: logger,
	}, nil
}

// SkillPosts returns the skill-sharing resource client.
func (c *Client) SkillPosts() *SkillPostAPI { return &SkillPostAPI{client: c} }

// LearningPlans returns the learning-plan resource client.
func (c *Client) LearningPlans() *LearningPlanAPI { return &LearningPlanAPI{client: c} }

// LearningProgress returns the progress resource client.
func (c *Client) LearningProgress() *LearningProgressAPI { return &LearningProgressAPI{client: c} }

// Users returns the user/profile resource client.
func (c *Client) Users() *UserAPI { return &UserAPI{client: c} }

// Notifications returns the notification resource client.
func (c *Client) Notifications() *NotificationAPI { return &NotificationAPI{client: c} }

// do issues one JSON request and decodes the response into out (when out is
// non-nil). GETs participate in the retry policy when one is configured;
// mutations never retry.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, token string, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return NewValidationError("failed to encode request body", err)
		}
	}

	attempt := func() error {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := c.newRequest(ctx, method, path, query, reader, token)
		if err != nil {
			return backoff.Permanent(err)
		}
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		return c.send(req, out)
	}

	if method == http.MethodGet && c.config.MaxRetries > 0 {
		b := backoff.NewExponentialBackOff()
		b.MaxElapsedTime = c.config.Timeout
		return backoff.RetryNotify(
			attempt,
			backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.config.MaxRetries)), ctx),
			func(err error, d time.Duration) {
				c.logger.Warn("Request attempt failed",
					zap.String("method", method),
					zap.String("path", path),
					zap.Error(err),
					zap.Duration("backoff", d))
			},
		)
	}
	return attempt()
}

// doMultipart issues one multipart/form-data request (post creation uploads).
func (c *Client) doMultipart(ctx context.Context, path string, body io.Reader, contentType, token string, out any) error {
	req, err := c.newRequest(ctx, http.MethodPost, path, nil, body, token)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)
	return c.send(req, out)
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body io.Reader, token string) (*http.Request, error) {
	target := strings.TrimRight(c.config.BaseURL, "/") + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, NewValidationError("failed to build request", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	if id, err := uuid.NewV4(); err == nil {
		req.Header.Set(HeaderXRequestID, id.String())
	}
	if token != "" {
		req.Header.Set(HeaderAuthorization, "Bearer "+token)
	}
	return req, nil
}

func (c *Client) send(req *http.Request, out any) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("Request failed",
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Error(err))
		return NewNetworkError(fmt.Sprintf("%s %s failed", req.Method, req.URL.Path), err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Request completed",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return NewStatusError(resp.StatusCode, readErrorMessage(resp))
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewNetworkError("failed to decode response body", err)
	}
	return nil
}

// readErrorMessage pulls a human-readable message out of an error response,
// tolerating both {"error": "..."} and {"message": "..."} shapes.
func readErrorMessage(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(data) == 0 {
		return resp.Status
	}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Error != "" {
			return body.Error
		}
		if body.Message != "" {
			return body.Message
		}
	}
	return strings.TrimSpace(string(data))
}
