// Package ssllabs is a client for the Qualys SSL Labs assessment API.
//
// Reference: https://github.com/ssllabs/ssllabs-scan/blob/stable/ssllabs-api-docs.md
package ssllabs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultEntrypoint is the versioned base URL of the public API.
	DefaultEntrypoint = "https://api.ssllabs.com/api/v2"

	defaultUserAgent = "sensu-check-ssllabs"

	// maxBodySize caps how much of a response is read.
	maxBodySize = 10 * 1024 * 1024
)

// Client performs the API calls. It keeps no per-assessment state, all of
// it lives in the Assessment values it returns.
type Client struct {
	httpClient *http.Client
	entrypoint string
	userAgent  string
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithEntrypoint sets the base URL, e.g. "https://api.ssllabs.com/api/v2".
func WithEntrypoint(entrypoint string) Option {
	return func(c *Client) {
		c.entrypoint = strings.TrimRight(entrypoint, "/")
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient returns a Client for DefaultEntrypoint unless configured
// otherwise.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				MaxIdleConns:    10,
				IdleConnTimeout: 30 * time.Second,
			},
		},
		entrypoint: DefaultEntrypoint,
		userAgent:  defaultUserAgent,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Entrypoint returns the base URL the client talks to.
func (c *Client) Entrypoint() string {
	return c.entrypoint
}

// Info returns the service metadata: engine version, assessment limits,
// cool-off and broadcast messages.
func (c *Client) Info(ctx context.Context) (*Info, error) {
	var info Info
	if err := c.get(ctx, "info", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// StatusCodes returns the translation table of endpoint status details
// codes.
func (c *Client) StatusCodes(ctx context.Context) (*StatusCodes, error) {
	var codes StatusCodes
	if err := c.get(ctx, "getStatusCodes", nil, &codes); err != nil {
		return nil, err
	}
	return &codes, nil
}

// get performs one GET request and decodes the JSON body into v. Non-2xx
// responses are mapped to *ResponseError or *HTTPError here, and nowhere
// else.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, v any) error {
	reqURL := c.entrypoint + "/" + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("ssllabs: creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("api request", zap.String("url", reqURL))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("ssllabs: GET %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return fmt.Errorf("ssllabs: reading %s response: %w", endpoint, err)
	}
	if len(body) > maxBodySize {
		return fmt.Errorf("ssllabs: %s response too large (>%d bytes)", endpoint, maxBodySize)
	}
	c.logger.Debug("api response",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp.StatusCode, body)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("ssllabs: %s response: %w", endpoint, err)
	}
	return nil
}
