// Package worker is the HTTP client for a remote rendering worker.
//
// A worker is any process serving the render contract: POST /render with
// {dsl, templatePackId, format} answered by {svg, manifest}, and GET /health.
// `cabledraw worker` serves it; [Client] consumes it and satisfies
// render.Renderer so the render cache can delegate to it.
package worker

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cabledraw/pkg/cache"
	"github.com/matzehuels/cabledraw/pkg/errors"
	"github.com/matzehuels/cabledraw/pkg/observability"
	"github.com/matzehuels/cabledraw/pkg/render"
)

// DefaultTimeout bounds a single request to the worker.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of a failed response is read for the message.
const maxErrorBody = 4 << 10

// Response is the body of a successful POST /render.
type Response struct {
	SVG      string          `json:"svg"`
	Manifest render.Manifest `json:"manifest"`
}

// Health is the body of GET /health.
type Health struct {
	OK      bool    `json:"ok"`
	Version string  `json:"version"`
	Uptime  float64 `json:"uptime"`
}

// ErrorBody is the error envelope returned by cabledraw servers.
type ErrorBody struct {
	Error struct {
		Code    string `json:"code"`
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"error"`
}

var _ render.Renderer = (*Client)(nil)

// Client renders through a remote worker.
type Client struct {
	baseURL string
	http    *http.Client
	backoff cache.Backoff
	logger  *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithBackoff sets the retry policy for transport failures and 5xx responses.
func WithBackoff(b cache.Backoff) Option {
	return func(c *Client) { c.backoff = b }
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// NewClient creates a client for the worker at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	if err := errors.ValidateURL(baseURL); err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		backoff: cache.DefaultBackoff,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the worker address.
func (c *Client) BaseURL() string { return c.baseURL }

// Render posts req to the worker. Transport failures and 5xx responses are
// retried; anything else that keeps the worker from returning a drawing is an
// UPSTREAM_FAILURE, or TIMEOUT when the deadline passed.
func (c *Client) Render(ctx context.Context, req render.Request) (*render.Result, error) {
	if req.DSL == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "render request has no dsl")
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode render request")
	}

	var resp Response
	err = cache.RetryWithBackoffN(ctx, c.backoff, func() error {
		return c.do(ctx, http.MethodPost, "/render", body, &resp)
	})
	if err != nil {
		return nil, c.classify(err)
	}
	if resp.SVG == "" {
		return nil, errors.New(errors.ErrCodeUpstream, "renderer at %s returned no svg", c.baseURL)
	}

	c.logger.Debug("remote render",
		"assembly", req.DSL.Meta.AssemblyID,
		"template", req.TemplatePackID,
		"bytes", len(resp.SVG),
		"renderer", resp.Manifest.RendererVersion)

	return &render.Result{SVG: []byte(resp.SVG), Manifest: resp.Manifest}, nil
}

// Health queries the worker's health endpoint.
func (c *Client) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := c.do(ctx, http.MethodGet, "/health", nil, &h); err != nil {
		return nil, c.classify(err)
	}
	return &h, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, v any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	host := hostOf(c.baseURL)
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, method, host, path, err)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return cache.Retryable(fmt.Errorf("%w: %w", cache.ErrNetwork, err))
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	msg := readErrorMessage(resp.Body)
	err := fmt.Errorf("%w: status %d: %s", cache.ErrNetwork, resp.StatusCode, msg)
	if resp.StatusCode >= 500 {
		return cache.Retryable(err)
	}
	return err
}

func readErrorMessage(r io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	var eb ErrorBody
	if json.Unmarshal(data, &eb) == nil && eb.Error.Message != "" {
		return eb.Error.Message
	}
	return strings.TrimSpace(string(data))
}

func (c *Client) classify(err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return errors.Wrap(errors.ErrCodeTimeout, err, "renderer at %s timed out", c.baseURL)
	}
	var urlErr *url.Error
	if stderrors.As(err, &urlErr) && urlErr.Timeout() {
		return errors.Wrap(errors.ErrCodeTimeout, err, "renderer at %s timed out", c.baseURL)
	}
	return errors.Wrap(errors.ErrCodeUpstream, err, "renderer at %s", c.baseURL)
}

func hostOf(raw string) string {
	if u, err := url.Parse(raw); err == nil {
		return u.Host
	}
	return raw
}
