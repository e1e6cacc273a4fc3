// Package upstream is the JSON-over-HTTP client the storefront uses to reach
// the inventory and order services. Requests are sent exactly once: there is
// no retry, and no timeout unless one is configured.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/wichananm65/chaosshop-storefront/internal/logger"
	"go.uber.org/zap"
)

// Observer receives the outcome of every round trip. status is 0 when no
// response was received.
type Observer interface {
	ObserveUpstream(service string, status int, d time.Duration)
}

// Config configures a Client.
type Config struct {
	// Service names the upstream in logs and metrics ("inventory", "order").
	Service string
	BaseURL string
	// Timeout of zero keeps the transport default (no client-side deadline).
	Timeout  time.Duration
	Observer Observer
}

// Client talks to one upstream service.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	service    string
	headers    map[string]string
	observer   Observer
}

// NewClient creates a client for one upstream base URL.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    base,
		service:    cfg.Service,
		headers: map[string]string{
			"Accept":     "application/json",
			"User-Agent": "ChaosShop-Storefront/1.0",
		},
		observer: cfg.Observer,
	}, nil
}

// Request is one call to the upstream.
type Request struct {
	Method  string
	Path    string
	Headers map[string]string
	Body    interface{}
}

// Response is what came back, whatever the status.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Duration   time.Duration
}

// OK reports a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// StatusError is returned alongside the Response when the status is not 2xx.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Request failed with status code %d", e.StatusCode)
}

// Do executes req once. A transport failure returns a nil Response. A non-2xx
// status returns both the Response and a *StatusError.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	u := c.buildURL(req.Path)

	var bodyReader io.Reader
	if req.Body != nil {
		bodyBytes, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), bodyReader)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	log := logger.FromContext(ctx).With(
		zap.String("upstream", c.service),
		zap.String("method", req.Method),
		zap.String("url", u.String()),
	)

	start := time.Now()
	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.observe(0, time.Since(start))
		log.Warn("upstream request failed", zap.Error(err))
		return nil, err
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	duration := time.Since(start)
	c.observe(httpResp.StatusCode, duration)
	if err != nil {
		log.Warn("reading upstream response failed", zap.Error(err))
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
		Duration:   duration,
	}
	log.Debug("upstream responded", zap.Int("status", resp.StatusCode), zap.Duration("latency", duration))

	if !resp.OK() {
		return resp, &StatusError{StatusCode: resp.StatusCode}
	}
	return resp, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, Request{Method: http.MethodGet, Path: path})
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

func (c *Client) buildURL(path string) *url.URL {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	return &u
}

func (c *Client) observe(status int, d time.Duration) {
	if c.observer != nil {
		c.observer.ObserveUpstream(c.service, status, d)
	}
}
