// Package petstore wraps net/http for calls against the petstore API: base URL
// and api key injection, per-call header overrides, timeouts, and redacted
// request/response logging. Status codes are never turned into errors; only
// transport failures are.
package petstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Apurer/petstore-api-tests/internal/config"
	"github.com/Apurer/petstore-api-tests/internal/platform/observability"
)

const (
	tracerName = "github.com/Apurer/petstore-api-tests/internal/clients/http/petstore"

	// HeaderAPIKey carries the petstore api key.
	HeaderAPIKey = "api_key"

	redacted         = "******"
	maxLoggedBodyLen = 500
)

// Client issues requests against a single petstore base URL. A Client owns its
// http.Client and is not meant to be shared between goroutines.
type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	headers    http.Header
	logger     *slog.Logger
	tracer     trace.Tracer
	metrics    clientMetrics
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root, e.g. https://petstore.swagger.io/v2.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if v := strings.TrimSpace(baseURL); v != "" {
			c.baseURL = v
		}
	}
}

// WithAPIKey overrides the api_key header value.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		if v := strings.TrimSpace(key); v != "" {
			c.apiKey = v
		}
	}
}

// WithTimeout sets the default per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient swaps the underlying transport handle.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTracer injects a tracer implementation.
func WithTracer(tr trace.Tracer) Option {
	return func(c *Client) {
		c.tracer = tr
	}
}

// WithMeter injects the meter used to create client metrics instruments.
func WithMeter(m metric.Meter) Option {
	return func(c *Client) {
		c.metrics = newClientMetrics(m)
	}
}

// New builds a client with the library defaults, then applies opts.
func New(opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:    config.DefaultBaseURL,
		apiKey:     config.DefaultAPIKey,
		timeout:    config.DefaultRequestTimeout,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.logger == nil {
		c.logger = observability.DiscardLogger()
	}
	if c.tracer == nil {
		c.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}

	c.baseURL = strings.TrimRight(c.baseURL, "/")
	parsed, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("base URL %q must use http or https", c.baseURL)
	}
	c.headers = http.Header{}
	c.headers.Set("Accept", "application/json")
	setRaw(c.headers, HeaderAPIKey, c.apiKey)
	return c, nil
}

// NewFromConfig builds a client seeded with the configured base URL, api key
// and timeout. Later opts still win.
func NewFromConfig(cfg config.Config, opts ...Option) (*Client, error) {
	base := []Option{
		WithBaseURL(cfg.BaseURL),
		WithAPIKey(cfg.APIKey),
		WithTimeout(cfg.RequestTimeout),
	}
	return New(append(base, opts...)...)
}

// BaseURL returns the normalized API root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// DefaultHeaders returns a copy of the headers sent with every request.
func (c *Client) DefaultHeaders() http.Header {
	return c.headers.Clone()
}

// Get issues a GET request. Query parameters travel through WithQuery.
func (c *Client) Get(ctx context.Context, endpoint string, opts ...RequestOption) (*Response, error) {
	return c.do(ctx, http.MethodGet, endpoint, nil, opts)
}

// Post sends body as JSON, or form data when WithForm is given.
func (c *Client) Post(ctx context.Context, endpoint string, body any, opts ...RequestOption) (*Response, error) {
	return c.do(ctx, http.MethodPost, endpoint, body, opts)
}

// Put sends body as JSON, or form data when WithForm is given.
func (c *Client) Put(ctx context.Context, endpoint string, body any, opts ...RequestOption) (*Response, error) {
	return c.do(ctx, http.MethodPut, endpoint, body, opts)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, endpoint string, opts ...RequestOption) (*Response, error) {
	return c.do(ctx, http.MethodDelete, endpoint, nil, opts)
}

// URL joins endpoint onto the base URL, ensuring a single leading slash.
func (c *Client) URL(endpoint string) string {
	endpoint = strings.TrimSpace(endpoint)
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return c.baseURL + endpoint
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, optFns []RequestOption) (*Response, error) {
	var opts requestOptions
	for _, fn := range optFns {
		if fn != nil {
			fn(&opts)
		}
	}

	target := c.URL(endpoint)
	if len(opts.query) > 0 {
		sep := "?"
		if strings.Contains(target, "?") {
			sep = "&"
		}
		target += sep + opts.query.Encode()
	}

	headers := c.headers.Clone()
	for key, values := range opts.headers {
		deleteRaw(headers, key)
		headers[key] = append([]string{}, values...)
	}
	if opts.noAuth {
		deleteRaw(headers, HeaderAPIKey)
	}

	payload, contentType, err := encodeBody(body, opts.form)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, target, err)
	}
	if contentType != "" && headers.Get("Content-Type") == "" {
		headers.Set("Content-Type", contentType)
	}

	timeout := c.timeout
	if opts.timeout > 0 {
		timeout = opts.timeout
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ctx, span := c.tracer.Start(ctx, "petstore."+method, trace.WithAttributes(
		attribute.String("http.request.method", method),
		attribute.String("url.full", target),
	))
	defer span.End()

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, c.handleError(ctx, span, fmt.Errorf("build request: %w", err))
	}
	req.Header = headers

	started := time.Now()
	res, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.record(ctx, method, 0, time.Since(started))
		return nil, c.handleError(ctx, span, fmt.Errorf("%s %s: %w", method, target, err))
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		c.metrics.record(ctx, method, res.StatusCode, time.Since(started))
		return nil, c.handleError(ctx, span, fmt.Errorf("%s %s: read body: %w", method, target, err))
	}
	elapsed := time.Since(started)
	c.metrics.record(ctx, method, res.StatusCode, elapsed)
	span.SetAttributes(attribute.Int("http.response.status_code", res.StatusCode))

	resp := &Response{
		StatusCode: res.StatusCode,
		Status:     res.Status,
		Header:     res.Header.Clone(),
		Body:       raw,
		Method:     method,
		URL:        target,
		Elapsed:    elapsed,
	}
	c.logExchange(ctx, headers, body, opts.form, resp)
	return resp, nil
}

func (c *Client) logExchange(ctx context.Context, headers http.Header, body any, form url.Values, resp *Response) {
	c.logger.InfoContext(ctx, fmt.Sprintf("%s %s -> %d", resp.Method, resp.URL, resp.StatusCode))
	if !c.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}
	c.logger.DebugContext(ctx, fmt.Sprintf("headers: %v", RedactHeaders(headers)))
	switch {
	case form != nil:
		c.logger.DebugContext(ctx, fmt.Sprintf("payload(form): %s", form.Encode()))
	case body != nil:
		if encoded, err := json.Marshal(body); err == nil {
			c.logger.DebugContext(ctx, fmt.Sprintf("payload(json): %s", encoded))
		}
	}
	c.logger.DebugContext(ctx, fmt.Sprintf("response: %s", Truncate(resp.Text(), maxLoggedBodyLen)))
}

func (c *Client) handleError(ctx context.Context, span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	c.logger.ErrorContext(ctx, "petstore request failed", slog.String("error", err.Error()))
	return err
}

func encodeBody(body any, form url.Values) ([]byte, string, error) {
	if form != nil {
		return []byte(form.Encode()), "application/x-www-form-urlencoded", nil
	}
	if body == nil {
		return nil, "", nil
	}
	switch v := body.(type) {
	case []byte:
		return v, "application/json", nil
	case json.RawMessage:
		return v, "application/json", nil
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, "", fmt.Errorf("encode json body: %w", err)
	}
	return encoded, "application/json", nil
}

// RedactHeaders flattens headers for logging with the api key masked.
func RedactHeaders(headers http.Header) map[string]string {
	out := make(map[string]string, len(headers))
	for key, values := range headers {
		if strings.EqualFold(key, HeaderAPIKey) {
			out[key] = redacted
			continue
		}
		out[key] = strings.Join(values, ", ")
	}
	return out
}

// Truncate cuts s to at most n characters without splitting a rune.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// setRaw stores a header without canonicalizing its name; the petstore
// expects the literal lower-case api_key header.
func setRaw(h http.Header, key, value string) {
	deleteRaw(h, key)
	h[key] = []string{value}
}

func deleteRaw(h http.Header, key string) {
	for k := range h {
		if strings.EqualFold(k, key) {
			delete(h, k)
		}
	}
}
