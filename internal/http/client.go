// Package http is the transport layer: it builds authenticated requests
// against the Figma API and runs each exchange under a bounded exponential
// backoff retry policy.
package http

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

	"github.com/fivetwenty-io/figma/internal/constants"
	"github.com/fivetwenty-io/figma/pkg/figma"
	"github.com/hashicorp/go-retryablehttp"
)

// Static errors for err113 compliance.
var (
	ErrInvalidBaseURL = errors.New("invalid base URL")
)

// Request describes one exchange. Path is either relative to the base URL
// or an absolute URL.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Attempts   int
}

// Client performs authenticated HTTP exchanges with retries.
type Client struct {
	baseURL     *url.URL
	token       string
	userAgent   string
	logger      figma.Logger
	debug       bool
	timeout     time.Duration
	retry       RetryPolicy
	transport   http.RoundTripper
	retryClient *retryablehttp.Client
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger figma.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDebug enables per-attempt request and response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithRetryConfig sets the total attempts and the backoff unit.
func WithRetryConfig(maxAttempts int, unit time.Duration) Option {
	return func(c *Client) {
		if maxAttempts > 0 {
			c.retry.MaxAttempts = maxAttempts
		}

		if unit > 0 {
			c.retry.Unit = unit
		}
	}
}

// WithTimeout bounds each HTTP attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithRoundTripper replaces the underlying HTTP transport.
func WithRoundTripper(transport http.RoundTripper) Option {
	return func(c *Client) {
		if transport != nil {
			c.transport = transport
		}
	}
}

// NewClient creates a transport for baseURL. The token is attached to every
// request addressed to the base URL's host and to no other host.
func NewClient(baseURL, token string, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}

	if base.Host == "" {
		return nil, fmt.Errorf("%w: %w: %s", ErrInvalidBaseURL, figma.ErrNoHostInURL, baseURL)
	}

	client := &Client{
		baseURL:   base,
		token:     token,
		userAgent: constants.DefaultUserAgent,
		logger:    figma.NopLogger{},
		timeout:   constants.DefaultHTTPTimeout,
		retry:     DefaultRetryPolicy(),
	}

	for _, opt := range opts {
		opt(client)
	}

	retryClient := retryablehttp.NewClient()
	retryClient.Logger = nil
	retryClient.HTTPClient.Timeout = client.timeout

	if client.transport != nil {
		retryClient.HTTPClient.Transport = client.transport
	}

	retryClient.RetryMax = client.retry.MaxAttempts - 1
	retryClient.CheckRetry = client.checkRetry
	retryClient.Backoff = client.backoff
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.RequestLogHook = client.requestHook
	retryClient.ResponseLogHook = client.responseHook

	client.retryClient = retryClient

	return client, nil
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// MaxAttempts returns the total attempts allowed per exchange.
func (c *Client) MaxAttempts() int {
	return c.retry.MaxAttempts
}

// Do performs the exchange. Once retries are exhausted it returns the last
// response together with a *figma.TransportError. When ctx ends it returns
// the context error.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	target, err := c.resolve(req)
	if err != nil {
		return nil, err
	}

	body, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	ctx, state := withExchangeState(ctx)

	var bodyArg interface{}
	if body != nil {
		bodyArg = body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, target.String(), bodyArg)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	c.setHeaders(httpReq, target, body != nil, req.Headers)

	resp, err := c.retryClient.Do(httpReq)
	if err != nil {
		// The passthrough error handler hands back the last response.
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		return nil, &figma.TransportError{
			Method:   req.Method,
			URL:      redact(target),
			Attempts: state.attempts,
			Err:      err,
		}
	}

	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		return nil, &figma.TransportError{
			Method:     req.Method,
			URL:        redact(target),
			StatusCode: resp.StatusCode,
			Attempts:   state.attempts,
			Err:        fmt.Errorf("reading response body: %w", err),
		}
	}

	response := &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       data,
		Attempts:   state.attempts,
	}

	if !IsSuccess(resp.StatusCode, len(data)) {
		return response, &figma.TransportError{
			Method:     req.Method,
			URL:        redact(target),
			StatusCode: resp.StatusCode,
			Body:       data,
			Attempts:   state.attempts,
			API:        figma.ParseAPIError(data),
		}
	}

	return response, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

func (c *Client) resolve(req *Request) (*url.URL, error) {
	ref, err := url.Parse(req.Path)
	if err != nil {
		return nil, fmt.Errorf("parsing path %q: %w", req.Path, err)
	}

	var target *url.URL

	if ref.IsAbs() {
		target = ref
	} else {
		target = c.baseURL.JoinPath(ref.Path)
		target.RawQuery = ref.RawQuery
	}

	if len(req.Query) > 0 {
		query := target.Query()

		for key, values := range req.Query {
			for _, value := range values {
				query.Add(key, value)
			}
		}

		target.RawQuery = query.Encode()
	}

	return target, nil
}

func (c *Client) setHeaders(req *retryablehttp.Request, target *url.URL, hasBody bool, extra map[string]string) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	if hasBody {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.token != "" && strings.EqualFold(target.Host, c.baseURL.Host) {
		req.Header.Set(constants.APITokenHeader, c.token)
	}

	for key, value := range extra {
		req.Header.Set(key, value)
	}
}

func (c *Client) requestHook(_ retryablehttp.Logger, req *http.Request, attempt int) {
	exchangeStateFrom(req.Context()).attempts = attempt + 1

	if !c.debug {
		return
	}

	c.logger.Debug("HTTP Request", map[string]interface{}{
		"method":  req.Method,
		"url":     redact(req.URL),
		"attempt": attempt + 1,
	})
}

func (c *Client) responseHook(_ retryablehttp.Logger, resp *http.Response) {
	if !c.debug {
		return
	}

	c.logger.Debug("HTTP Response", map[string]interface{}{
		"status":         resp.StatusCode,
		"content_length": resp.ContentLength,
		"url":            redact(resp.Request.URL),
	})
}

func encodeBody(body interface{}) ([]byte, error) {
	switch typed := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return typed, nil
	default:
		var buf bytes.Buffer

		if err := json.NewEncoder(&buf).Encode(typed); err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		return bytes.TrimRight(buf.Bytes(), "\n"), nil
	}
}

// redact drops the query of signed asset URLs before they reach logs and
// errors.
func redact(target *url.URL) string {
	if target == nil {
		return ""
	}

	clean := *target
	if clean.RawQuery != "" && strings.Contains(clean.RawQuery, "Signature") {
		clean.RawQuery = "redacted"
	}

	return clean.String()
}

// RedactURL is redact for a raw URL or path. Unparseable input is returned
// without its query.
func RedactURL(raw string) string {
	target, err := url.Parse(raw)
	if err != nil {
		before, _, _ := strings.Cut(raw, "?")

		return before
	}

	return redact(target)
}
