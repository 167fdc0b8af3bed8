// Package analysis submits a validated startup profile to the remote analysis
// service and classifies every way that can fail.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/investorlens/investorlens/internal/logger"
	"github.com/investorlens/investorlens/internal/profile"
)

const (
	// DefaultBaseURL is used when no base URL is configured.
	DefaultBaseURL = "http://127.0.0.1:8000"
	// DefaultTimeout bounds a single HTTP attempt.
	DefaultTimeout = 60 * time.Second

	analyzePath  = "/analyze"
	maxBodyBytes = 8 << 20
)

// Result is a successful analysis. The payload is passed through untouched.
type Result struct {
	Payload   json.RawMessage
	RequestID string
	Status    int
	Attempts  int
}

// Options configure a Client. Zero values fall back to defaults.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	Retries    int
	RetryDelay time.Duration
	HTTPClient *http.Client
	Metrics    *Metrics
}

// Client talks to the analysis service.
type Client struct {
	endpoint   string
	timeout    time.Duration
	retries    int
	retryDelay time.Duration
	http       *http.Client
	metrics    *Metrics
}

// New validates opts and returns a ready client.
func New(opts Options) (*Client, error) {
	base := strings.TrimSpace(opts.BaseURL)
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must use http or https", base)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base url %q has no host", base)
	}
	if opts.Retries < 0 {
		return nil, fmt.Errorf("retries must not be negative, got %d", opts.Retries)
	}

	c := &Client{
		endpoint:   strings.TrimRight(base, "/") + analyzePath,
		timeout:    opts.Timeout,
		retries:    opts.Retries,
		retryDelay: opts.RetryDelay,
		http:       opts.HTTPClient,
		metrics:    opts.Metrics,
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.retryDelay < 0 {
		c.retryDelay = 0
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	return c, nil
}

// Endpoint returns the full URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Analyze sends v to the service. Errors are always *Failure.
func (c *Client) Analyze(ctx context.Context, v profile.Values) (*Result, error) {
	start := time.Now()
	requestID := uuid.NewString()

	res, attempts, err := c.analyze(ctx, v, requestID)
	c.metrics.observe(outcomeOf(err), attempts, time.Since(start))

	if err != nil {
		f := AsFailure(err)
		f.RequestID = requestID
		logger.Warnw("analysis failed",
			"request_id", requestID,
			"kind", f.Kind.String(),
			"attempts", attempts,
			"error", f.Error())
		return nil, f
	}
	logger.Infow("analysis finished",
		"request_id", requestID,
		"status", res.Status,
		"attempts", attempts,
		"elapsed", time.Since(start).String())
	return res, nil
}

func (c *Client) analyze(ctx context.Context, v profile.Values, requestID string) (*Result, int, error) {
	if v.Competitors == nil {
		v.Competitors = []string{}
	}
	body, err := json.Marshal(v)
	if err != nil {
		return nil, 0, &Failure{Kind: KindUnknown, Err: fmt.Errorf("encoding request: %w", err)}
	}
	if err := CheckPayload(body); err != nil {
		return nil, 0, &Failure{Kind: KindUnknown, Err: err}
	}

	attempts := 0
	for {
		attempts++
		logger.Debug("analysis attempt %d for %s", attempts, requestID)

		res, err := c.attempt(ctx, body, requestID)
		if err == nil {
			res.Attempts = attempts
			return res, attempts, nil
		}

		f := AsFailure(err)
		if !f.Retryable() || attempts > c.retries {
			return nil, attempts, f
		}
		logger.Warn("analysis attempt %d failed, retrying: %v", attempts, f.Err)

		if err := c.wait(ctx, attempts); err != nil {
			return nil, attempts, err
		}
	}
}

// wait sleeps before the next attempt. The delay grows linearly.
func (c *Client) wait(ctx context.Context, attempt int) error {
	if c.retryDelay == 0 {
		return nil
	}
	timer := time.NewTimer(c.retryDelay * time.Duration(attempt))
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return &Failure{Kind: KindCanceled, Err: ctx.Err()}
	case <-timer.C:
		return nil
	}
}

func (c *Client) attempt(ctx context.Context, body []byte, requestID string) (*Result, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &Failure{Kind: KindUnknown, Err: fmt.Errorf("building request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.transportFailure(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return nil, &Failure{Kind: KindServer, Status: resp.StatusCode}
		}
		return nil, c.transportFailure(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Failure{
			Kind:   KindServer,
			Status: resp.StatusCode,
			Body:   strings.TrimSpace(string(data)),
		}
	}

	if !isJSONObject(data) {
		return nil, &Failure{Kind: KindUnknown, Err: errors.New("response body is not a JSON object")}
	}
	return &Result{
		Payload:   json.RawMessage(data),
		RequestID: requestID,
		Status:    resp.StatusCode,
	}, nil
}

// transportFailure distinguishes caller cancellation from a network error or
// a per-attempt timeout.
func (c *Client) transportFailure(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return &Failure{Kind: KindCanceled, Err: ctx.Err()}
	}
	return &Failure{Kind: KindNetwork, Err: err}
}

func isJSONObject(data []byte) bool {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return false
	}
	return obj != nil
}
