package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const requestIDHeader = "X-Request-ID"

// Init carries the optional parts of a request.
type Init struct {
	Body   any
	Params map[string]string
	Query  map[string]any
}

// Client issues requests against the api and unwraps response envelopes.
// It holds no per-call state and is safe for concurrent use.
type Client struct {
	logs    *zap.SugaredLogger
	doer    HTTPDoer
	baseURL *url.URL
	token   string
	limiter *rate.Limiter
}

type ClientOption func(*Client)

// WithToken sends token as a bearer Authorization header.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithRateLimit throttles calls to perSecond requests with the given burst.
// A non-positive rate disables throttling.
func WithRateLimit(perSecond float64, burst int) ClientOption {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

func NewClient(logger *zap.SugaredLogger, doer HTTPDoer, baseURL string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url must be absolute: %q", baseURL)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}

	c := &Client{
		logs:    logger,
		doer:    doer,
		baseURL: u,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Do resolves route, sends the request and returns the raw success value.
func (c *Client) Do(ctx context.Context, route, method string, init Init) (json.RawMessage, error) {
	env, err := c.envelope(ctx, route, method, init)
	if err != nil {
		return nil, err
	}
	return env.Value, nil
}

// Call sends the request and decodes the success value into dst.
func (c *Client) Call(ctx context.Context, route, method string, init Init, dst any) error {
	env, err := c.envelope(ctx, route, method, init)
	if err != nil {
		return err
	}
	return env.Decode(dst)
}

func (c *Client) envelope(ctx context.Context, route, method string, init Init) (Envelope, error) {
	path, err := ResolveRoute(route, init.Params)
	if err != nil {
		return Envelope{}, err
	}

	req, err := c.newRequest(ctx, path, method, init)
	if err != nil {
		return Envelope{}, err
	}
	requestID := req.Header.Get(requestIDHeader)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return Envelope{}, fmt.Errorf("wait for rate limiter: %w", err)
		}
	}

	c.logs.Debugw("sending api request",
		"route", route,
		"method", req.Method,
		"url", req.URL.String(),
		"request_id", requestID)

	resp, err := c.doer.Do(req)
	if err != nil {
		c.logs.Errorw("api request failed",
			"error", err,
			"route", route,
			"method", req.Method,
			"request_id", requestID)
		return Envelope{}, fmt.Errorf("%s %s: %w", req.Method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Envelope{}, fmt.Errorf("read response body: %w", err)
	}

	env, err := ParseEnvelope(body)
	if err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			err = &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status, Err: err}
		}
		c.logs.Errorw("invalid api response",
			"error", err,
			"route", route,
			"status", resp.StatusCode,
			"request_id", requestID)
		return Envelope{}, err
	}

	if err := env.Err(); err != nil {
		c.logs.Errorw("api returned error",
			"error", err,
			"route", route,
			"status_code", env.StatusCode,
			"request_id", requestID)
		return Envelope{}, err
	}

	return env, nil
}

func (c *Client) newRequest(ctx context.Context, path, method string, init Init) (*http.Request, error) {
	ref, err := url.Parse("./" + path)
	if err != nil {
		return nil, fmt.Errorf("parse route path: %w", err)
	}
	u := c.baseURL.ResolveReference(ref)
	if len(init.Query) > 0 {
		u.RawQuery = StringifyQuery(init.Query).Encode()
	}
	if method == "" {
		method = http.MethodGet
	}
	method = strings.ToUpper(method)

	var body io.Reader
	if init.Body != nil {
		payload, err := json.Marshal(init.Body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(withMethod(ctx, method), method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set(requestIDHeader, uuid.NewString())

	return req, nil
}
