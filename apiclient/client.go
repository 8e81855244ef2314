package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultTimeout bounds a single request round trip when no custom
// http.Client is supplied.
const DefaultTimeout = 15 * time.Second

// Client issues JSON requests against the Projects Hub API. Requests carry a
// bearer token only when one is supplied; responses are parsed as JSON when
// the Content-Type says so and normalized into *APIError on non-2xx status.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option modifies a Client instance.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger used for request debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a Client bound to baseURL (e.g. "http://localhost:8080").
func New(baseURL string, options ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// PostJSON sends body as a JSON POST to path, attaching a bearer token when
// token is non-empty. The returned payload is nil for non-JSON responses.
func (c *Client) PostJSON(ctx context.Context, path string, body any, token string) (json.RawMessage, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("[PostJSON] encode body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, fmt.Errorf("[PostJSON] build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, token)
}

// GetJSON sends a GET to path, attaching a bearer token when token is
// non-empty. The returned payload is nil for non-JSON responses.
func (c *Client) GetJSON(ctx context.Context, path string, token string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("[GetJSON] build request: %w", err)
	}

	return c.do(req, token)
}

func (c *Client) do(req *http.Request, token string) (json.RawMessage, error) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Msg("api request")

	return parseResponse(resp)
}

// parseResponse decodes the response body as JSON when the Content-Type
// indicates it, then maps non-2xx statuses to *APIError. Error message and
// code come from a {message, code} JSON body when one is present. A body
// that cannot be parsed degrades to "no body"; the status alone decides
// success or failure.
func parseResponse(resp *http.Response) (json.RawMessage, error) {
	var payload json.RawMessage
	if isJSONContentType(resp.Header.Get("Content-Type")) {
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response body: %w", err)
		}
		if raw = bytes.TrimSpace(raw); len(raw) > 0 && json.Valid(raw) {
			payload = json.RawMessage(raw)
		}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &APIError{
			Message: fmt.Sprintf("request failed with status %d", resp.StatusCode),
			Status:  resp.StatusCode,
			Code:    CodeHTTPError,
		}
		if payload != nil {
			var body struct {
				Message string `json:"message"`
				Code    string `json:"code"`
			}
			if err := json.Unmarshal(payload, &body); err == nil {
				if body.Message != "" {
					apiErr.Message = body.Message
				}
				if body.Code != "" {
					apiErr.Code = body.Code
				}
			}
		}
		return nil, apiErr
	}

	return payload, nil
}

func isJSONContentType(contentType string) bool {
	return strings.Contains(contentType, "application/json")
}
