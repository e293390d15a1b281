// Package client provides the HTTP client for the Scribe meeting-notes API.
// It handles retry with exponential backoff, per-attempt timeouts, bearer
// authentication, and the desktop-app identity headers the API expects.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	scerrors "github.com/scribelabs/scribe-cli/pkg/errors"
	"github.com/scribelabs/scribe-cli/pkg/logging"
)

// Default client settings.
const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://api.scribe.ai"

	// DefaultTimeout bounds each individual request attempt.
	DefaultTimeout = 5 * time.Second

	// DefaultRetries is the number of additional attempts after the first.
	DefaultRetries = 3

	// backoffBase is the first retry delay; it doubles per attempt.
	backoffBase = 250 * time.Millisecond

	// tracerName identifies transport spans.
	tracerName = "scribe-client"
)

// TokenSource supplies a bearer token on demand. It is called at most once
// per missing token; implementations coalesce concurrent callers.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Options configures the Client behavior. The zero value of each field
// selects the documented default.
type Options struct {
	// Timeout is the per-attempt request timeout.
	Timeout time.Duration

	// Retries is the maximum number of retry attempts after the first.
	Retries int

	// Identity holds the desktop-app identity header values.
	Identity Identity

	// ExtraHeaders are sent verbatim on every request.
	ExtraHeaders map[string]string

	// TokenSource lazily supplies a bearer token when none is set.
	TokenSource TokenSource

	// Logger receives transport-level logs. Defaults to a nop logger.
	Logger logging.Logger

	// Metrics optionally registers transport metrics. Nil disables them.
	Metrics *Metrics

	// HTTPClient overrides the underlying HTTP client (for tests).
	HTTPClient *http.Client

	// Sleep overrides the backoff sleep (for tests). Defaults to a
	// context-aware time.After wait.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultOptions returns Options with default values.
func DefaultOptions() *Options {
	return &Options{
		Timeout:  DefaultTimeout,
		Retries:  DefaultRetries,
		Identity: DefaultIdentity(),
	}
}

// Client issues requests against the Scribe API. Safe for concurrent use,
// with one documented hazard: SetToken during an in-flight request is not
// guarded, so the old token may still be used by that request.
type Client struct {
	baseURL    string
	opts       Options
	httpClient *http.Client
	log        logging.Logger
	tracer     trace.Tracer
	metrics    *Metrics
	sleep      func(ctx context.Context, d time.Duration) error

	// mu protects the held bearer token.
	mu    sync.RWMutex
	token string
}

// New creates a Client for the given base URL. The token may be empty when a
// TokenSource is configured or SetToken is called before the first
// authenticated request.
func New(baseURL, token string, opts *Options) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}
	resolved := *opts
	if resolved.Timeout <= 0 {
		resolved.Timeout = DefaultTimeout
	}
	if resolved.Retries < 0 {
		resolved.Retries = DefaultRetries
	}
	if resolved.Identity == (Identity{}) {
		resolved.Identity = DefaultIdentity()
	}
	if resolved.Logger == nil {
		resolved.Logger = logging.NewNopLogger()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := resolved.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	sleep := resolved.Sleep
	if sleep == nil {
		sleep = func(ctx context.Context, d time.Duration) error {
			timer := time.NewTimer(d)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
				return nil
			}
		}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		opts:       resolved,
		httpClient: httpClient,
		log:        resolved.Logger,
		tracer:     otel.Tracer(tracerName),
		metrics:    resolved.Metrics,
		sleep:      sleep,
		token:      token,
	}
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetToken replaces the held bearer token for subsequent requests. This
// supports deferred authentication: construct the client first, authenticate
// later.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the currently held bearer token, which may be empty.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Post executes an authenticated POST with a JSON body against path and
// decodes a JSON response into out (which may be nil). A nil body is sent as
// an empty JSON object, matching the API convention. A missing token is an
// explicit ErrAuthRequired, never an empty result.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out, nil, true)
}

// Get executes an unauthenticated GET against path and decodes a JSON
// response into out (which may be nil).
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out, nil, false)
}

// GetText executes an unauthenticated GET against path and returns the raw
// response body as text, regardless of content type. Used for the YAML
// update feed.
func (c *Client) GetText(ctx context.Context, path string) (string, error) {
	var text string
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &text, false); err != nil {
		return "", err
	}
	return text, nil
}

// bearerToken returns the token for an authenticated request, consulting the
// TokenSource when none is held.
func (c *Client) bearerToken(ctx context.Context) (string, error) {
	if token := c.Token(); token != "" {
		return token, nil
	}
	if c.opts.TokenSource != nil {
		token, err := c.opts.TokenSource.Token(ctx)
		if err != nil {
			return "", fmt.Errorf("fetching token: %w", err)
		}
		if token != "" {
			c.SetToken(token)
			return token, nil
		}
	}
	return "", scerrors.ErrAuthRequired
}

// do executes one logical request with bounded retries. rawOut, when
// non-nil, receives the body text instead of JSON decoding into out.
func (c *Client) do(ctx context.Context, method, path string, body, out any, rawOut *string, authenticated bool) error {
	var token string
	if authenticated {
		var err error
		if token, err = c.bearerToken(ctx); err != nil {
			return err
		}
	}

	var payload []byte
	if method == http.MethodPost {
		if body == nil {
			payload = []byte("{}")
		} else {
			var err error
			if payload, err = json.Marshal(body); err != nil {
				return fmt.Errorf("encoding request body: %w", err)
			}
		}
	}

	requestID := uuid.NewString()
	log := c.log.With(
		logging.F("request_id", requestID),
		logging.F("method", method),
		logging.F("path", path),
	)

	ctx, span := c.tracer.Start(ctx, "scribe.request",
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.path", path),
		),
	)
	defer span.End()

	var (
		lastErr  error
		timedOut bool
	)
	for attempt := 0; attempt <= c.opts.Retries; attempt++ {
		if attempt > 0 {
			c.metrics.observeRetry(method)
			span.SetAttributes(attribute.Int("http.retry_attempt", attempt))
		}

		start := time.Now()
		status, retryAfter, err := c.attempt(ctx, method, path, token, payload, out, rawOut)
		c.metrics.observeRequest(method, status, time.Since(start))

		if err == nil {
			span.SetAttributes(attribute.Int("http.status_code", status))
			span.SetStatus(codes.Ok, "")
			return nil
		}

		lastErr = err
		timedOut = isTimeout(err)

		var httpErr *HTTPError
		if errors.As(err, &httpErr) && !httpErr.Retriable() {
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		if ctx.Err() != nil && !timedOut {
			// The caller's context is gone; no point retrying.
			span.SetStatus(codes.Error, ctx.Err().Error())
			return fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		if attempt == c.opts.Retries {
			break
		}

		delay := backoffBase << attempt
		if retryAfter > 0 {
			delay = retryAfter
		}
		log.Warn("request failed, retrying",
			logging.F("attempt", attempt+1),
			logging.F("delay", delay),
			logging.Err(err),
		)
		if sleepErr := c.sleep(ctx, delay); sleepErr != nil {
			span.SetStatus(codes.Error, sleepErr.Error())
			return fmt.Errorf("request cancelled during backoff: %w", sleepErr)
		}
	}

	span.SetStatus(codes.Error, lastErr.Error())
	if timedOut {
		return fmt.Errorf("%s %s after %d attempts: %w", method, path, c.opts.Retries+1, scerrors.ErrRequestTimeout)
	}
	return fmt.Errorf("%s %s after %d attempts: %w", method, path, c.opts.Retries+1, lastErr)
}

// attempt executes a single request attempt. It returns the HTTP status (0 on
// network failure), an optional server-requested retry delay, and an error
// classified by the caller.
func (c *Client) attempt(ctx context.Context, method, path, token string, payload []byte, out any, rawOut *string) (int, time.Duration, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.opts.Timeout)
	defer cancel()

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(attemptCtx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return 0, 0, fmt.Errorf("building request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	c.opts.Identity.apply(req.Header)
	for k, v := range c.opts.ExtraHeaders {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, 0, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := &HTTPError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(respBody),
		}
		return resp.StatusCode, parseRetryAfter(resp.Header.Get("Retry-After")), httpErr
	}

	if rawOut != nil {
		*rawOut = string(respBody)
		return resp.StatusCode, 0, nil
	}
	if out == nil {
		return resp.StatusCode, 0, nil
	}

	// Only parse JSON bodies; a non-JSON success leaves out untouched.
	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") || len(respBody) == 0 {
		return resp.StatusCode, 0, nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return resp.StatusCode, 0, fmt.Errorf("decoding response: %w", err)
	}
	return resp.StatusCode, 0, nil
}

// parseRetryAfter converts a Retry-After header value (delay seconds) to a
// duration. Unparseable values are ignored.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	seconds, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || seconds < 0 {
		return 0
	}
	return time.Duration(seconds) * time.Second
}

// isTimeout reports whether err stems from an attempt deadline expiring.
func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr interface{ Timeout() bool }
	return errors.As(err, &netErr) && netErr.Timeout()
}
