package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"cryptoclient/internal/auth"
)

// Client dispatches signed requests to the trading API. It performs no
// retries: retry policy is a caller-level concern, and replaying a signed
// request re-uses its original timestamp, which the server may reject as
// stale.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	rateLimiter *RateLimiter
	logger      zerolog.Logger
}

// Option configures the client
type Option func(*Client)

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithRateLimit sets local request throttling
func WithRateLimit(requestsPerSecond float64, burst int) Option {
	return func(c *Client) {
		c.rateLimiter = NewRateLimiter(requestsPerSecond, burst)
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new dispatcher for the given base URL. Trailing
// slashes are trimmed once here; request paths are appended verbatim.
func NewClient(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// BaseURL returns the base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Timeout returns the HTTP timeout
func (c *Client) Timeout() time.Duration {
	return c.httpClient.Timeout
}

// Send dispatches a signed request and returns the raw JSON response body.
// Validation and the signature check both happen before any network I/O.
// GET requests carry no body even if one was set on the request.
func (c *Client) Send(ctx context.Context, req auth.SignedRequest) (json.RawMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if req.Signature == "" {
		return nil, ErrUnsignedRequest
	}

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	// The path already contains any query string.
	requestURL := c.baseURL + req.Path

	var body io.Reader
	if req.Method != http.MethodGet && req.Body != "" {
		body = strings.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, requestURL, body)
	if err != nil {
		return nil, &RequestError{Method: req.Method, URL: requestURL, Cause: err}
	}

	for key, value := range req.Headers() {
		httpReq.Header.Set(key, value)
	}

	c.logger.Debug().
		Str("method", req.Method).
		Str("path", req.Path).
		Int64("timestamp", req.Timestamp).
		Msg("dispatching request")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &RequestError{Method: req.Method, URL: requestURL, Cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Method: req.Method, URL: requestURL, Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("method", req.Method).
			Str("path", req.Path).
			Msg("request rejected")
		return nil, &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	if len(respBody) == 0 {
		return nil, nil
	}
	return json.RawMessage(respBody), nil
}
