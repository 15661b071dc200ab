package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/quillpad/quill/internal/config"
)

const requestTimeout = 15 * time.Second

// User-facing messages for failures that must never leak wire details.
const (
	MsgNetworkError    = "Network error. Please check your connection and try again."
	MsgTooManyRequests = "Too many requests. Please wait a moment."
)

// ErrRateLimited marks errors synthesized from a 429. The raw backend
// body is never part of the error.
var ErrRateLimited = errors.New(MsgTooManyRequests)

// RateLimitHandler receives the Retry-After duration from a 429
// response. Zero means the header was absent.
type RateLimitHandler func(retryAfter time.Duration)

// TokenSource supplies the current bearer token; empty means
// unauthenticated.
type TokenSource func() string

// Client talks to the blogging backend. All responses go through the
// uniform envelope; callers only ever see adapted internal types.
type Client struct {
	http      *http.Client
	base      string
	assetBase string
	log       *zap.Logger
	token     TokenSource

	mu          sync.Mutex
	onRateLimit RateLimitHandler
}

// Option configures a Client at construction.
type Option func(*Client)

// WithTokenSource injects the bearer token supplier.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.token = ts }
}

// WithRateLimitHandler injects the 429 handler.
func WithRateLimitHandler(h RateLimitHandler) Option {
	return func(c *Client) { c.onRateLimit = h }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a backend client.
func New(cfg config.Config, log *zap.Logger, opts ...Option) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Client{
		http:      &http.Client{Timeout: requestTimeout},
		base:      cfg.APIBase,
		assetBase: cfg.AssetBase,
		log:       log,
		token:     func() string { return "" },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetRateLimitHandler replaces the 429 handler. Last write wins.
func (c *Client) SetRateLimitHandler(h RateLimitHandler) {
	c.mu.Lock()
	c.onRateLimit = h
	c.mu.Unlock()
}

func (c *Client) rateLimited(resp *http.Response) error {
	var retryAfter time.Duration
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			retryAfter = time.Duration(secs) * time.Second
		}
	}
	c.log.Warn("rate limited", zap.Duration("retry_after", retryAfter))

	c.mu.Lock()
	h := c.onRateLimit
	c.mu.Unlock()
	if h != nil {
		h(retryAfter)
	}
	return ErrRateLimited
}

// do performs a JSON request and decodes the envelope. On success the
// envelope's data is unmarshaled into dst (when non-nil) and the
// pagination block, if any, is returned. Backend failures surface the
// envelope message verbatim; transport and decode failures surface a
// generic network error.
func (c *Client) do(ctx context.Context, method, path string, body, dst any) (*Pagination, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, dst)
}

// send executes a prepared request (used by do and the multipart
// upload path) and funnels the response through the envelope.
func (c *Client) send(req *http.Request, dst any) (*Pagination, error) {
	req.Header.Set("Accept", "application/json")
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("transport failure", zap.String("path", req.URL.Path), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", MsgNetworkError, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		io.Copy(io.Discard, resp.Body)
		return nil, c.rateLimited(resp)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.log.Warn("decode failure", zap.String("path", req.URL.Path), zap.Error(err))
		return nil, fmt.Errorf("%s: %w", MsgNetworkError, err)
	}

	if !env.Success {
		return nil, errors.New(envelopeError(env))
	}

	if dst != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, dst); err != nil {
			c.log.Warn("data decode failure", zap.String("path", req.URL.Path), zap.Error(err))
			return nil, fmt.Errorf("%s: %w", MsgNetworkError, err)
		}
	}
	return env.Pagination, nil
}

// envelopeError extracts the backend's failure message verbatim,
// preferring message, then error, then the first field error.
func envelopeError(env envelope) string {
	if env.Message != "" {
		return env.Message
	}
	if env.Error != "" {
		return env.Error
	}
	for _, msg := range env.Errors {
		if msg != "" {
			return msg
		}
	}
	return MsgNetworkError
}
