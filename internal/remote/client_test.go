package remote

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"assetpipe/internal/pipeline"
)

type captureTransport struct {
	status   int
	body     string
	err      error
	lastReq  *http.Request
	lastBody []byte
}

func (c *captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.lastReq = req
	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		req.Body.Close()
		c.lastBody = body
	}
	if c.err != nil {
		return nil, c.err
	}
	status := c.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(c.body)),
	}, nil
}

func newTestClient(transport *captureTransport, apiKey string) *Client {
	return NewClient(Options{
		BaseURL:    "http://service.local/",
		APIKey:     apiKey,
		HTTPClient: &http.Client{Transport: transport},
	})
}

func TestSubmitRequestShape(t *testing.T) {
	transport := &captureTransport{body: `{"success":true}`}
	client := newTestClient(transport, "secret-key")

	payload := []byte(`{"prompt":"stone wall"}`)
	raw, err := client.Submit(context.Background(), payload)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if string(raw) != `{"success":true}` {
		t.Fatalf("response body = %q", raw)
	}

	req := transport.lastReq
	if req.Method != http.MethodPost {
		t.Fatalf("method = %q, want POST", req.Method)
	}
	if req.URL.Path != "/generate-asset" {
		t.Fatalf("path = %q, want /generate-asset", req.URL.Path)
	}
	if got := req.Header.Get("Content-Type"); got != "application/json" {
		t.Fatalf("content-type = %q, want application/json", got)
	}
	if got := req.Header.Get("Authorization"); got != "Bearer secret-key" {
		t.Fatalf("authorization = %q, want bearer token", got)
	}
	if !bytes.Equal(transport.lastBody, payload) {
		t.Fatalf("submitted body = %q, want %q", transport.lastBody, payload)
	}
}

func TestSubmitOmitsAuthorizationWithoutKey(t *testing.T) {
	transport := &captureTransport{body: `{}`}
	client := newTestClient(transport, "")

	if _, err := client.Submit(context.Background(), []byte(`{}`)); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if got := transport.lastReq.Header.Get("Authorization"); got != "" {
		t.Fatalf("authorization = %q, want empty", got)
	}
}

func TestSubmitTransportError(t *testing.T) {
	transport := &captureTransport{err: errors.New("connection refused")}
	client := newTestClient(transport, "")

	_, err := client.Submit(context.Background(), []byte(`{}`))
	var netErr *pipeline.NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("err = %v (%T), want *NetworkError", err, err)
	}
	if netErr.Op != "submit" {
		t.Fatalf("op = %q, want submit", netErr.Op)
	}
}

func TestSubmitNon2xxStatus(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusInternalServerError, http.StatusBadGateway} {
		transport := &captureTransport{status: status, body: "upstream exploded"}
		client := newTestClient(transport, "")

		_, err := client.Submit(context.Background(), []byte(`{}`))
		var netErr *pipeline.NetworkError
		if !errors.As(err, &netErr) {
			t.Fatalf("status %d: err = %v (%T), want *NetworkError", status, err, err)
		}
		if !strings.Contains(err.Error(), "upstream exploded") {
			t.Fatalf("status %d: error %q should carry the response snippet", status, err)
		}
	}
}

func TestHealthCheck(t *testing.T) {
	healthy := newTestClient(&captureTransport{status: http.StatusOK, body: `{"status":"ok"}`}, "")
	if !healthy.HealthCheck(context.Background()) {
		t.Fatalf("health = false, want true for 200")
	}

	degraded := newTestClient(&captureTransport{status: http.StatusServiceUnavailable}, "")
	if degraded.HealthCheck(context.Background()) {
		t.Fatalf("health = true, want false for 503")
	}

	unreachable := newTestClient(&captureTransport{err: errors.New("no route to host")}, "")
	if unreachable.HealthCheck(context.Background()) {
		t.Fatalf("health = true, want false on transport error")
	}
}

func TestHealthCheckPath(t *testing.T) {
	transport := &captureTransport{status: http.StatusOK}
	client := newTestClient(transport, "")

	client.HealthCheck(context.Background())
	if transport.lastReq.Method != http.MethodGet {
		t.Fatalf("method = %q, want GET", transport.lastReq.Method)
	}
	if transport.lastReq.URL.Path != "/health" {
		t.Fatalf("path = %q, want /health", transport.lastReq.URL.Path)
	}
}
