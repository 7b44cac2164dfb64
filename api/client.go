package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"

	defaultTimeout = 30 * time.Second
)

// ErrBaseURLRequired is returned by New when no base URL is configured.
var ErrBaseURLRequired = errors.New("base URL required")

// TokenSource supplies the bearer token for an outgoing request. It is
// consulted on every call; ok=false sends the request unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, bool)
}

// RequestMetrics carries the metric counter IDs the client increments.
type RequestMetrics struct {
	Success         int
	Failure         int
	Unauthenticated int
}

// Options configures a [Client]. BaseURL is required.
type Options struct {
	BaseURL    string
	HTTPClient *http.Client
	Tokens     TokenSource

	MetricInc func(id int)
	Metrics   RequestMetrics
	Observe   func(d time.Duration)
}

// Client is the HTTP client under the typed service modules. It is safe for
// concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource

	metricInc func(int)
	metrics   RequestMetrics
	observe   func(time.Duration)
}

// New validates opts and returns a ready client.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, ErrBaseURLRequired
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		http:      httpClient,
		tokens:    opts.Tokens,
		metricInc: opts.MetricInc,
		metrics:   opts.Metrics,
		observe:   opts.Observe,
	}, nil
}

// Do issues one request and decodes the JSON response into out (which may be
// nil for callers that only care about the status). Failures of any kind are
// returned as [*Error]; there are no retries.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	resp, data, err := c.roundTrip(ctx, method, path, body)
	if err != nil {
		return err
	}

	if out != nil {
		contentType := resp.Header.Get("Content-Type")
		if !isJSON(contentType) {
			c.inc(c.metrics.Failure)
			return newParseError(resp.StatusCode)
		}
		if err := json.Unmarshal(data, out); err != nil {
			c.inc(c.metrics.Failure)
			return newParseError(resp.StatusCode)
		}
	}

	c.inc(c.metrics.Success)
	return nil
}

// Get is shorthand for Do(ctx, GET, path, nil, out).
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// Post is shorthand for Do(ctx, POST, path, body, out).
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

// Put is shorthand for Do(ctx, PUT, path, body, out).
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

// Delete is shorthand for Do(ctx, DELETE, path, nil, out).
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodDelete, path, nil, out)
}

// Download issues one request and returns the raw response body plus its
// content type. Non-2xx responses are classified exactly like Do. Used for
// binary payloads such as generated PDFs.
func (c *Client) Download(ctx context.Context, method, path string, body any) ([]byte, string, error) {
	resp, data, err := c.roundTrip(ctx, method, path, body)
	if err != nil {
		return nil, "", err
	}
	c.inc(c.metrics.Success)
	return data, resp.Header.Get("Content-Type"), nil
}

// roundTrip performs the shared request path: build, authorize, send, read,
// and classify non-success statuses. The returned body is fully read and the
// response closed.
func (c *Client) roundTrip(ctx context.Context, method, path string, body any) (*http.Response, []byte, error) {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			c.inc(c.metrics.Failure)
			return nil, nil, newTransportError(0, "failed to encode request body")
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		c.inc(c.metrics.Failure)
		return nil, nil, newTransportError(0, err.Error())
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID := requestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	req.Header.Set(requestIDHeader, requestID)

	// The token is re-read from durable storage here, on every request.
	// Absence is not an error: the server rejects unauthenticated calls.
	if c.tokens != nil {
		if token, ok := c.tokens.Token(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		} else {
			c.inc(c.metrics.Unauthenticated)
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if c.observe != nil {
		c.observe(time.Since(start))
	}
	if err != nil {
		c.inc(c.metrics.Failure)
		return nil, nil, newTransportError(0, err.Error())
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.inc(c.metrics.Failure)
		return nil, nil, newParseError(resp.StatusCode)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.inc(c.metrics.Failure)
		return nil, nil, c.errorFromResponse(resp.StatusCode, resp.Header.Get("Content-Type"), data)
	}
	return resp, data, nil
}

// errorFromResponse classifies a non-success response by content type:
// structured bodies contribute their message and validation errors, textual
// bodies become the message verbatim, and everything else falls back to the
// status text.
func (c *Client) errorFromResponse(status int, contentType string, body []byte) error {
	apiErr := &Error{Status: status, Message: statusMessage(status)}

	switch {
	case isJSON(contentType) && len(body) > 0:
		var env struct {
			Message string   `json:"message"`
			Errors  []string `json:"errors"`
		}
		if err := json.Unmarshal(body, &env); err != nil {
			return newParseError(status)
		}
		if env.Message != "" {
			apiErr.Message = env.Message
		}
		apiErr.Errors = env.Errors
	case len(body) > 0:
		if text := strings.TrimSpace(string(body)); text != "" {
			apiErr.Message = text
		}
	}
	return apiErr
}

func (c *Client) inc(id int) {
	if c.metricInc != nil {
		c.metricInc(id)
	}
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
