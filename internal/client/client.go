// Package client is a typed HTTP client for the handi-menu API.
//
// Listing calls degrade to empty results when the API is unreachable; the
// failure is logged and the caller sees "no data".
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"handi-menu/internal/model"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode    int
	Code          string
	Message       string
	CorrelationID string
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("api returned status %d: %s: %s", e.StatusCode, e.Code, e.Message)
}

// Temporary reports whether the request may succeed on retry.
func (e *APIError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Options configures a Client.
type Options struct {
	// HTTPClient defaults to a client with a 10 second timeout.
	HTTPClient *http.Client

	// Retries is the number of retries for idempotent archival steps.
	Retries int

	// BackOff builds the retry schedule. Defaults to exponential.
	BackOff func() backoff.BackOff
}

// Client talks to the API rooted at baseURL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	retries    int
	backOff    func() backoff.BackOff
	logger     zerolog.Logger
}

// New creates a client for baseURL, e.g. "http://localhost:10000".
func New(baseURL string, opts Options, logger zerolog.Logger) *Client {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	if opts.BackOff == nil {
		opts.BackOff = func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxInterval = 2 * time.Second
			return b
		}
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: opts.HTTPClient,
		retries:    opts.Retries,
		backOff:    opts.BackOff,
		logger:     logger.With().Str("component", "api-client").Logger(),
	}
}

// do sends one request. body is encoded as JSON when non-nil and the response
// is decoded into out when non-nil. It returns the response status.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody model.ErrorResponse
		if json.Unmarshal(data, &errBody) == nil {
			apiErr.Code = errBody.Error
			apiErr.Message = errBody.Message
			apiErr.CorrelationID = errBody.CorrelationID
		}
		return resp.StatusCode, apiErr
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to parse response: %w", err)
		}
	}

	return resp.StatusCode, nil
}

// retry runs op until it succeeds, fails permanently or the retries run out.
// API errors other than 5xx and 429 are permanent.
func (c *Client) retry(ctx context.Context, name string, op func() error) error {
	operation := func() error {
		err := op()
		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.Temporary() {
			return backoff.Permanent(err)
		}
		return err
	}

	notify := func(err error, wait time.Duration) {
		c.logger.Warn().Err(err).Str("step", name).Dur("retry_in", wait).Msg("request failed, retrying")
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(c.backOff(), uint64(c.retries)), ctx)
	return backoff.RetryNotify(operation, policy, notify)
}
