package api

import (
	"context"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

type methodCtxKey struct{}

// idempotent methods are the only ones retried, so a POST is never sent twice.
var retryableMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodPut:     {},
	http.MethodHead:    {},
	http.MethodDelete:  {},
	http.MethodOptions: {},
	http.MethodTrace:   {},
}

var retryableStatuses = map[int]struct{}{
	http.StatusRequestTimeout:        {},
	http.StatusRequestEntityTooLarge: {},
	http.StatusTooManyRequests:       {},
	http.StatusInternalServerError:   {},
	http.StatusBadGateway:            {},
	http.StatusServiceUnavailable:    {},
	http.StatusGatewayTimeout:        {},
}

type TransportOptions struct {
	Retries      int
	Timeout      time.Duration
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

// NewRetryingDoer returns an http.Client that retries transient failures
// (connection errors and retryableStatuses) of idempotent requests up to opts.Retries times.
// The last response is handed back once retries are exhausted.
func NewRetryingDoer(logger *zap.SugaredLogger, opts TransportOptions) *http.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = opts.Retries
	if opts.RetryWaitMin > 0 {
		client.RetryWaitMin = opts.RetryWaitMin
	}
	if opts.RetryWaitMax > 0 {
		client.RetryWaitMax = opts.RetryWaitMax
	}
	client.HTTPClient.Timeout = opts.Timeout
	client.Logger = zapLeveled{logs: logger}
	client.CheckRetry = checkRetry
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler

	return client.StandardClient()
}

func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	method, _ := ctx.Value(methodCtxKey{}).(string)
	if resp != nil && resp.Request != nil {
		method = resp.Request.Method
	}
	if _, ok := retryableMethods[method]; !ok {
		return false, err
	}

	if err != nil {
		return retryablehttp.DefaultRetryPolicy(ctx, nil, err)
	}
	_, retry := retryableStatuses[resp.StatusCode]
	return retry, nil
}

func withMethod(ctx context.Context, method string) context.Context {
	return context.WithValue(ctx, methodCtxKey{}, method)
}

type zapLeveled struct {
	logs *zap.SugaredLogger
}

func (l zapLeveled) Error(msg string, keysAndValues ...interface{}) {
	l.logs.Errorw(msg, keysAndValues...)
}

func (l zapLeveled) Info(msg string, keysAndValues ...interface{}) {
	l.logs.Debugw(msg, keysAndValues...)
}

func (l zapLeveled) Debug(msg string, keysAndValues ...interface{}) {
	l.logs.Debugw(msg, keysAndValues...)
}

func (l zapLeveled) Warn(msg string, keysAndValues ...interface{}) {
	l.logs.Warnw(msg, keysAndValues...)
}
