// internal/common/http/client.go
package http

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"internmatch-client/internal/common/errors"
	"internmatch-client/internal/common/logger"
	"internmatch-client/internal/common/metrics"

	"github.com/google/uuid"
)

const (
	HeaderRequestID = "X-Request-ID"

	maxErrorBody = 64 << 10
)

// Recorder receives one observation per completed request.
type Recorder interface {
	RecordRequest(ctx context.Context, endpoint, outcome string, duration time.Duration)
}

// Client is a JSON client bound to one service base URL. Every call is
// bounded by the configured timeout even when the caller's context is not.
type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	recorder   Recorder
	logger     logger.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithRecorder(r Recorder) Option {
	return func(c *Client) { c.recorder = r }
}

func WithLogger(l logger.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		timeout: timeout,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service root this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request describes one JSON call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Token is sent as a bearer credential when non-empty.
	Token string
	Body  interface{}
	// Endpoint is the low-cardinality label for logs and metrics,
	// e.g. "GET /api/internships/{id}".
	Endpoint string
}

// errorBody covers both the service's {"error": ...} and the JWT layer's {"msg": ...}.
type errorBody struct {
	Error string `json:"error"`
	Msg   string `json:"msg"`
}

// DoJSON sends req and decodes a 2xx body into out (when out is non-nil).
// Transport failures, timeouts and non-2xx answers come back as
// *errors.StandardError with the matching code.
func (c *Client) DoJSON(ctx context.Context, req Request, out interface{}) error {
	endpoint := req.Endpoint
	if endpoint == "" {
		endpoint = req.Method + " " + req.Path
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return errors.NewRequestBuildError(endpoint, err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return c.transportError(ctx, endpoint, start, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var eb errorBody
		_ = json.Unmarshal(body, &eb)
		msg := eb.Error
		if msg == "" {
			msg = eb.Msg
		}
		c.observe(ctx, endpoint, "rejected", start)
		c.logger.Warn("request rejected", map[string]interface{}{
			"endpoint":  endpoint,
			"status":    resp.StatusCode,
			"requestId": httpReq.Header.Get(HeaderRequestID),
			"message":   msg,
		})
		return errors.NewRejectedError(endpoint, resp.StatusCode, msg)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !stderrors.Is(err, io.EOF) {
			c.observe(ctx, endpoint, "decode", start)
			return errors.NewDecodeError(endpoint, err)
		}
	}

	c.observe(ctx, endpoint, "ok", start)
	c.logger.Debug("request completed", map[string]interface{}{
		"endpoint":   endpoint,
		"status":     resp.StatusCode,
		"requestId":  httpReq.Header.Get(HeaderRequestID),
		"durationMs": time.Since(start).Milliseconds(),
	})
	return nil
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}
	httpReq.Header.Set(HeaderRequestID, uuid.NewString())
	return httpReq, nil
}

func (c *Client) transportError(ctx context.Context, endpoint string, start time.Time, err error) error {
	if stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		c.observe(ctx, endpoint, "timeout", start)
		return errors.NewTimeoutError(endpoint, err)
	}
	c.observe(ctx, endpoint, "network", start)
	if !stderrors.Is(err, context.Canceled) {
		c.logger.Warn("request failed", map[string]interface{}{
			"endpoint": endpoint,
			"error":    err.Error(),
		})
	}
	return errors.NewNetworkError(endpoint, err)
}

func (c *Client) observe(ctx context.Context, endpoint, outcome string, start time.Time) {
	elapsed := time.Since(start)
	metrics.APIRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	metrics.APIRequestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
	if c.recorder != nil {
		// The request context may already be cancelled; the reading still counts.
		c.recorder.RecordRequest(context.WithoutCancel(ctx), endpoint, outcome, elapsed)
	}
}
