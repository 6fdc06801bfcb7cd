package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/quizctl/internal/logger"
)

// Default configuration values.
const (
	DefaultTimeout = 30 * time.Second

	// CodeOK is the envelope code of a successful response.
	CodeOK = 1000

	requestIDHeader = "X-Request-ID"
	maxBodySize     = 4 << 20
	maxRetries      = 1
)

// Config holds configuration shared by the API clients.
type Config struct {
	// BaseURL is the API root, e.g. https://host/identity.
	BaseURL string

	// Timeout bounds each request (default: 30s).
	Timeout time.Duration

	// Limiter is shared by every client built from this config.
	// Nil creates a private limiter with default settings.
	Limiter *RateLimiter

	// Transport is the underlying round tripper (default: http.DefaultTransport).
	Transport http.RoundTripper
}

// envelope is the wrapper used by the identity endpoints.
type envelope struct {
	Code    *int            `json:"code,omitempty"`
	Message string          `json:"message,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
}

// client holds the request plumbing shared by IdentityClient and QuizClient.
type client struct {
	http    *http.Client
	baseURL string
	limiter *RateLimiter
}

func newClient(cfg Config, transport http.RoundTripper) *client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Limiter == nil {
		cfg.Limiter = NewRateLimiter(0, 0)
	}
	return &client{
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		limiter: cfg.Limiter,
	}
}

// response is a fully read HTTP response.
type response struct {
	status int
	body   []byte
}

func (r *response) ok() bool {
	return r.status >= 200 && r.status < 300
}

// apiError builds an APIError from a failed response, using the envelope
// message when the body has one.
func (r *response) apiError() *APIError {
	e := &APIError{Status: r.status}

	var env envelope
	if json.Unmarshal(r.body, &env) == nil {
		if env.Code != nil {
			e.Code = *env.Code
		}
		e.Message = env.Message
	}
	if e.Message == "" {
		e.Message = strings.TrimSpace(string(r.body))
		if len(e.Message) > 200 {
			e.Message = e.Message[:200]
		}
	}
	if e.Message == "" {
		e.Message = http.StatusText(r.status)
	}
	return e
}

// decodeEnvelope parses a {code, message, result} body into out.
// A present code other than CodeOK is a failure even with a 2xx status.
func (r *response) decodeEnvelope(out any) error {
	if !r.ok() {
		return r.apiError()
	}

	var env envelope
	if err := json.Unmarshal(r.body, &env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if env.Code != nil && *env.Code != CodeOK {
		return &APIError{Status: r.status, Code: *env.Code, Message: env.Message}
	}
	if out == nil {
		return nil
	}
	if len(env.Result) == 0 || string(env.Result) == "null" {
		return errMissingResult
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	return nil
}

// decodePlain parses an unwrapped JSON body into out.
func (r *response) decodePlain(out any) error {
	if !r.ok() {
		return r.apiError()
	}
	if out == nil || len(bytes.TrimSpace(r.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// send performs a JSON request, waiting on the rate limiter first.
// A 429 response records a backoff and is retried once.
func (c *client) send(ctx context.Context, method, path string, in any) (*response, error) {
	var payload []byte
	if in != nil {
		var err error
		payload, err = json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
	}

	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}

		resp, err := c.do(ctx, method, path, payload)
		if err != nil {
			return nil, err
		}

		if resp.status == http.StatusTooManyRequests {
			c.limiter.Backoff(retryAfter(resp.retryAfter, time.Now()))
			if attempt < maxRetries {
				logger.Warn("%s %s: rate limited, retrying", method, path)
				continue
			}
		}
		return &response{status: resp.status, body: resp.body}, nil
	}
}

type rawResponse struct {
	status     int
	retryAfter string
	body       []byte
}

func (c *client) do(ctx context.Context, method, path string, payload []byte) (*rawResponse, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger.Debug("%s %s (request %s)", method, path, requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	logger.Debug("%s %s -> %d", method, path, resp.StatusCode)

	return &rawResponse{
		status:     resp.StatusCode,
		retryAfter: resp.Header.Get("Retry-After"),
		body:       data,
	}, nil
}
