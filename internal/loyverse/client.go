// Package loyverse is a thin client for the Loyverse point-of-sale REST API.
package loyverse

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const (
	DefaultLimit = 100
	MaxLimit     = 250
)

var (
	// ErrUpstream is returned for every failed upstream call: network errors,
	// non-2xx statuses and undecodable bodies.
	ErrUpstream = errors.New("upstream request failed")

	// ErrNotFound is additionally matched when upstream answered 404.
	ErrNotFound = errors.New("upstream resource not found")
)

// Config holds the immutable settings of a Client
type Config struct {
	BaseURL  string
	APIToken string
	Timeout  time.Duration
}

// Client issues authenticated calls to the Loyverse API.
// It is safe for concurrent use and holds no per-request state.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiToken   string
}

// New creates a client for the given configuration
func New(cfg Config) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	if cfg.APIToken == "" {
		return nil, fmt.Errorf("API token is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiToken:   cfg.APIToken,
	}, nil
}

// statusError keeps the upstream status for logging
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("%s: status=%d body=%s", ErrUpstream, e.status, e.body)
}

func (e *statusError) Is(target error) bool {
	if target == ErrUpstream {
		return true
	}
	return target == ErrNotFound && e.status == http.StatusNotFound
}

// do sends a request and decodes a JSON response into out (when out is non-nil)
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", ErrUpstream, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrUpstream, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID(ctx))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrUpstream, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &statusError{status: resp.StatusCode, body: string(snippet)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", ErrUpstream, path, err)
	}
	return nil
}

// requestID propagates the inbound chi request id, or mints a new one
func requestID(ctx context.Context) string {
	if id := chimiddleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

func pageValues(q url.Values, limit int, cursor string) url.Values {
	if q == nil {
		q = url.Values{}
	}
	switch {
	case limit <= 0:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	q.Set("limit", strconv.Itoa(limit))
	if cursor != "" {
		q.Set("cursor", cursor)
	}
	return q
}
