// Package remote implements the wire codec and the HTTP transport for the
// asset generation service.
package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"assetpipe/internal/infra"
	"assetpipe/internal/pipeline"
)

const (
	generatePath = "/generate-asset"
	healthPath   = "/health"
)

// Options configures the generation service client.
type Options struct {
	// BaseURL is the service root, e.g. "http://localhost:8080".
	BaseURL string
	// APIKey, when set, is sent as a bearer token on submissions.
	APIKey string
	// HTTPClient may be nil; a client with a 60s timeout is used then.
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// Client performs single-attempt HTTP round trips against the generation
// service. Retry and scheduling policy belong to the caller; the client
// imposes no deadline beyond its HTTP client's own timeout.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *infra.Logger
}

// NewClient constructs a client with sane defaults.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	logger := opts.Logger
	if logger == nil {
		logger = infra.Discard()
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     strings.TrimSpace(opts.APIKey),
		httpClient: httpClient,
		logger:     logger,
	}
}

var _ pipeline.Transport = (*Client)(nil)

// Submit POSTs the encoded request body once and returns the raw response
// body. Every transport-level failure, including a non-2xx status, comes
// back as a *pipeline.NetworkError; nothing is retried.
func (c *Client) Submit(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+generatePath, bytes.NewReader(body))
	if err != nil {
		return nil, &pipeline.NetworkError{Op: "submit", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &pipeline.NetworkError{Op: "submit", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &pipeline.NetworkError{Op: "submit", Err: fmt.Errorf("read response: %w", err)}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &pipeline.NetworkError{
			Op:  "submit",
			Err: fmt.Errorf("status %d: %s", resp.StatusCode, snippet(raw)),
		}
	}

	c.logger.Debug().
		Int("status", resp.StatusCode).
		Int("bytes", len(raw)).
		Msg("remote: submission round trip complete")
	return raw, nil
}

// HealthCheck probes the service once with a GET against the health path
// and reports true iff it answered 2xx. Any error, transport or status,
// reports false; callers decide whether to re-probe.
func (c *Client) HealthCheck(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+healthPath, nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).Msg("remote: health probe failed")
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode >= 200 && resp.StatusCode <= 299
}

// snippet trims a response body down to something loggable.
func snippet(raw []byte) string {
	s := strings.TrimSpace(string(raw))
	const limit = 200
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
