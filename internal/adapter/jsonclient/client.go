// Package jsonclient is the HTTP transport for search and geocoding requests.
package jsonclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/mmcdole/movement/internal/domain"
	"github.com/mmcdole/movement/internal/future"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultMaxBytes = 16 << 20
	maxErrorBody    = 512
)

// Options configures a Client
type Options struct {
	Timeout           time.Duration
	RequestsPerSecond float64 // 0 disables limiting
	Burst             int
	UserAgent         string
	MaxResponseBytes  int64        // 0 uses 16 MiB
	HTTPClient        *http.Client // overrides Timeout when set
}

// Client implements domain.JSONClient over net/http. Each request runs on
// its own goroutine and resolves its future there.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	maxBytes   int64
	logger     *slog.Logger
}

// NewClient creates a JSON client
func NewClient(opts Options, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = newHTTPClient(timeout)
	}

	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}

	maxBytes := opts.MaxResponseBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}

	return &Client{
		httpClient: httpClient,
		limiter:    limiter,
		userAgent:  opts.UserAgent,
		maxBytes:   maxBytes,
		logger:     logger,
	}
}

func newHTTPClient(timeout time.Duration) *http.Client {
	tr := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: tr}
}

// JSONPromise implements domain.JSONClient. A nil body sends no payload.
// Failures resolve with *domain.TransportError.
func (c *Client) JSONPromise(url, method string, body any) *future.Future[any] {
	promise := future.NewPromise[any]()

	go func() {
		value, err := c.do(context.Background(), url, method, body)
		promise.Complete(value, err)
	}()

	return promise.Future()
}

func (c *Client) do(ctx context.Context, url, method string, body any) (any, error) {
	fail := func(status int, err error) error {
		return &domain.TransportError{Method: method, URL: url, StatusCode: status, Err: err}
	}

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fail(0, fmt.Errorf("failed to encode body: %w", err))
		}
		payload = bytes.NewReader(data)
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fail(0, fmt.Errorf("rate limiter: %w", err))
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return nil, fail(0, fmt.Errorf("failed to create request: %w", err))
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	logger := c.logger.With("request_id", requestID, "method", method, "url", url)
	logger.Debug("json request")
	started := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Error("json request failed", "error", err)
		return nil, fail(0, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, fail(resp.StatusCode, fmt.Errorf("failed to read response: %w", err))
	}
	if int64(len(data)) > c.maxBytes {
		logger.Warn("json response too large", "status", resp.StatusCode, "limit", c.maxBytes)
		return nil, fail(resp.StatusCode, fmt.Errorf("response exceeds %d bytes", c.maxBytes))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("json request error", "status", resp.StatusCode, "body", truncate(data))
		return nil, fail(resp.StatusCode, fmt.Errorf("unexpected status: %s", http.StatusText(resp.StatusCode)))
	}

	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		logger.Warn("json response undecodable", "error", err)
		return nil, fail(resp.StatusCode, fmt.Errorf("failed to parse response: %w", err))
	}

	logger.Debug("json response", "status", resp.StatusCode, "bytes", len(data), "elapsed", time.Since(started))
	return value, nil
}

func truncate(b []byte) string {
	if len(b) > maxErrorBody {
		return string(b[:maxErrorBody]) + "..."
	}
	return string(b)
}
