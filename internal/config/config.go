package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

var errEnvVarNotFound error = errors.New("environment variable not found")
var errEnvVarInvalid error = errors.New("environment variable invalid")

const (
	apiURLEnvKey    = "ZYAPI_URL"
	apiTokenEnvKey  = "ZYAPI_TOKEN"
	logLevelEnvKey  = "ZYAPI_LOG_LEVEL"
	timeoutEnvKey   = "ZYAPI_TIMEOUT"
	rateLimitEnvKey = "ZYAPI_RATE_LIMIT"
)

// RetryCount is the number of automatic retries the transport performs on transient failures.
const RetryCount = 5

const defaultTimeout = 30 * time.Second

type App struct {
	BaseURL   string
	Token     string
	Timeout   time.Duration
	RateLimit float64
	Retries   int
}

func NewApp() (App, error) {
	baseURL, ok := os.LookupEnv(apiURLEnvKey)
	if !ok || baseURL == "" {
		return App{}, fmt.Errorf("%w: %s", errEnvVarNotFound, apiURLEnvKey)
	}
	if u, err := url.Parse(baseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return App{}, fmt.Errorf("%w: %s must be an absolute url", errEnvVarInvalid, apiURLEnvKey)
	}

	timeout := defaultTimeout
	if raw, ok := os.LookupEnv(timeoutEnvKey); ok && raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return App{}, fmt.Errorf("%w: %s must be a positive duration", errEnvVarInvalid, timeoutEnvKey)
		}
		timeout = d
	}

	var rateLimit float64
	if raw, ok := os.LookupEnv(rateLimitEnvKey); ok && raw != "" {
		r, err := strconv.ParseFloat(raw, 64)
		if err != nil || r < 0 {
			return App{}, fmt.Errorf("%w: %s must be a non-negative number", errEnvVarInvalid, rateLimitEnvKey)
		}
		rateLimit = r
	}

	return App{
		BaseURL:   baseURL,
		Token:     os.Getenv(apiTokenEnvKey),
		Timeout:   timeout,
		RateLimit: rateLimit,
		Retries:   RetryCount,
	}, nil
}

// LogLevel returns the requested log level. It is read on its own so a logger
// can exist before the rest of the configuration is validated.
func LogLevel() string {
	return os.Getenv(logLevelEnvKey)
}
