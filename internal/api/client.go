// Package api is the HTTP client for the resource usage API.
//
// The API exposes three read-only JSON endpoints:
//   - GET /resources         the resource type names
//   - GET /raw               every usage record
//   - GET /resources/{type}  the records of one resource type
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rshade/resviz/internal/engine"
	"github.com/rshade/resviz/internal/logging"
)

// DefaultBaseURL is the API the dashboard reads from unless configured otherwise.
const DefaultBaseURL = "https://engineering-task.elancoapps.com/api"

// DefaultTimeout bounds a single request.
const DefaultTimeout = 30 * time.Second

// maxErrorBodyLen caps how much of an error response body is kept in a StatusError.
const maxErrorBodyLen = 512

// Client reads resources and records from the API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout. A client supplied through WithHTTPClient
// is copied first and left unchanged.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a Client for baseURL. The URL must be absolute http or https.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must use http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q has no host", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		userAgent:  "resviz",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Resources returns the resource type names.
func (c *Client) Resources(ctx context.Context) ([]string, error) {
	var resources []string
	if err := c.getJSON(ctx, &resources, "resources"); err != nil {
		return nil, err
	}
	return resources, nil
}

// Raw returns every usage record.
func (c *Client) Raw(ctx context.Context) ([]engine.Record, error) {
	var records []engine.Record
	if err := c.getJSON(ctx, &records, "raw"); err != nil {
		return nil, err
	}
	return records, nil
}

// ByResource returns the records of one resource type.
func (c *Client) ByResource(ctx context.Context, resourceType string) ([]engine.Record, error) {
	if resourceType == "" {
		return nil, errors.New("resource type cannot be empty")
	}
	var records []engine.Record
	if err := c.getJSON(ctx, &records, "resources", resourceType); err != nil {
		return nil, err
	}
	return records, nil
}

// endpoint joins path segments onto the base URL, escaping each segment.
func (c *Client) endpoint(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return c.baseURL.JoinPath(escaped...).String()
}

func (c *Client) getJSON(ctx context.Context, dst any, segments ...string) error {
	log := logging.FromContext(ctx)
	target := c.endpoint(segments...)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("%w: building request for %s: %w", ErrRequest, target, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if traceID := logging.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Request-Id", traceID)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Ctx(ctx).Err(err).Str("url", target).Msg("api request failed")
		return fmt.Errorf("%w: GET %s: %w", ErrRequest, target, err)
	}
	defer resp.Body.Close()

	log.Debug().Ctx(ctx).
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("api response")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
		return &StatusError{
			StatusCode: resp.StatusCode,
			URL:        target,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.EOF) ||
			errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: GET %s: %w", ErrMalformed, target, err)
		}
		return fmt.Errorf("%w: reading %s: %w", ErrRequest, target, err)
	}

	return nil
}
