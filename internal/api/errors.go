package api

import (
	"errors"
	"fmt"
)

var (
	ErrMissingParam      = errors.New("missing route param")
	ErrMalformedResponse = errors.New("malformed api response")
	ErrAPIResponse       = errors.New("api returned error")
)

// MissingParamError is returned before any request is made when a route
// placeholder has no matching entry in Init.Params.
type MissingParamError struct {
	Param string
	Route string
}

func (e *MissingParamError) Error() string {
	return fmt.Sprintf("param %q must be specified on this route", e.Param)
}

func (e *MissingParamError) Is(target error) bool {
	return target == ErrMissingParam
}

// ResponseError carries a failure envelope sent by the api.
type ResponseError struct {
	StatusCode    int
	StatusMessage string
	Reason        string
}

func (e *ResponseError) Error() string {
	return "API Returned Error: " + e.Reason
}

func (e *ResponseError) Is(target error) bool {
	return target == ErrAPIResponse
}

// HTTPError is returned when a non-2xx response does not carry a valid envelope.
type HTTPError struct {
	StatusCode int
	Status     string
	Err        error
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("request failed with status %s: %v", e.Status, e.Err)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}
