// Package remote provides the HTTP client for the remote auth/database
// service, plus typed stores for the per-user rows the application keeps there.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	requestTimeout = 10 * time.Second
	maxAttempts    = 3
	initialBackoff = 1 * time.Second
	maxBackoff     = 5 * time.Second
)

// ErrTimeout reports that a request exceeded the per-attempt deadline.
var ErrTimeout = errors.New("request timeout")

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Body)
}

// Client is the shared HTTP client for the remote backend. Each request gets a
// 10 second deadline and up to 3 attempts with exponential backoff capped at
// 5 seconds.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	apiKey         string
	initialBackoff time.Duration
	maxBackoff     time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBackoff overrides the retry backoff bounds.
func WithBackoff(initial, max time.Duration) Option {
	return func(c *Client) {
		c.initialBackoff = initial
		c.maxBackoff = max
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a client for the backend at baseURL authenticating with
// the given API key.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient:     &http.Client{Timeout: requestTimeout},
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		apiKey:         apiKey,
		initialBackoff: initialBackoff,
		maxBackoff:     maxBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do performs a request against the backend, retrying transient failures.
// body is JSON-encoded when non-nil. The bearer token defaults to the API key;
// pass a user access token to act as that user.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, bearer string) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	if bearer == "" {
		bearer = c.apiKey
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			delay := c.initialBackoff << (attempt - 1)
			if delay > c.maxBackoff {
				delay = c.maxBackoff
			}
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		respBody, err := c.attempt(ctx, method, endpoint, payload, bearer)
		if err == nil {
			return respBody, nil
		}
		lastErr = err

		// The caller's deadline is authoritative; a per-attempt timeout or a
		// rejected status is worth retrying, a cancelled context is not.
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
	}

	return nil, lastErr
}

func (c *Client) attempt(ctx context.Context, method, endpoint string, payload []byte, bearer string) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Prefer", "return=representation")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		var netErr interface{ Timeout() bool }
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, ErrTimeout
		}
		return nil, fmt.Errorf("backend request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	return respBody, nil
}
