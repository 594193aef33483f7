// Package client issues the single form-encoded POST a run submission
// consists of.
package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/basedlol/ty/internal/invoke"
)

//go:generate mockgen -destination=mocks/mock_runner.go -package=mocks github.com/basedlol/ty/internal/client Runner

// Runner submits one code/input pair and returns the trimmed output.
type Runner interface {
	Run(ctx context.Context, req invoke.Request) (string, error)
}

// Client talks to the remote run endpoint.
type Client struct {
	endpoint string
	http     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets an overall request timeout. Zero keeps the transport
// defaults.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// New creates a client for the given endpoint URL.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run POSTs the code and input payloads as an x-www-form-urlencoded body and
// returns the response body with trailing whitespace stripped. The response
// is opaque text: a non-2xx status or a remote-side error message is returned
// like any other body, only transport failures produce an error.
func (c *Client) Run(ctx context.Context, req invoke.Request) (string, error) {
	form := url.Values{
		"code":  {req.Code},
		"input": {req.Input},
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build run request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("run request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read run response: %w", err)
	}

	return strings.TrimRightFunc(string(body), unicode.IsSpace), nil
}
