package api

import (
	"encoding/json"
	"fmt"

	"zyapi/pkg/option"

	"github.com/jellydator/validation"
)

// Envelope is the wrapper every api response is sent in. Success selects
// the variant: Message and Value belong to a success, Error to a failure.
type Envelope struct {
	Success       bool
	StatusCode    int
	StatusMessage string
	Message       option.Option[string]
	Value         json.RawMessage
	Error         string
}

// rawEnvelope holds the fields shared by both variants. The variant fields
// stay raw until success says which of them apply.
type rawEnvelope struct {
	Success       *bool           `json:"success"`
	StatusCode    *float64        `json:"statusCode"`
	StatusMessage *string         `json:"statusMessage"`
	Message       json.RawMessage `json:"message"`
	Value         json.RawMessage `json:"value"`
	Error         json.RawMessage `json:"error"`
}

func (e rawEnvelope) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Success, validation.NotNil),
		validation.Field(&e.StatusCode, validation.NotNil),
		validation.Field(&e.StatusMessage, validation.NotNil),
	)
}

type failureFields struct {
	Error *string `json:"error"`
}

func (f failureFields) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Error, validation.NotNil),
	)
}

// ParseEnvelope decodes and validates a response body against both envelope variants.
// Keys belonging to the other variant are ignored.
func ParseEnvelope(body []byte) (Envelope, error) {
	var raw rawEnvelope
	if err := json.Unmarshal(body, &raw); err != nil {
		return Envelope{}, fmt.Errorf("%w: decode envelope: %w", ErrMalformedResponse, err)
	}

	if err := raw.Validate(); err != nil {
		return Envelope{}, fmt.Errorf("%w: validate envelope: %w", ErrMalformedResponse, err)
	}

	env := Envelope{
		Success:       *raw.Success,
		StatusCode:    int(*raw.StatusCode),
		StatusMessage: *raw.StatusMessage,
	}
	if env.Success {
		if len(raw.Message) > 0 {
			if err := json.Unmarshal(raw.Message, &env.Message); err != nil {
				return Envelope{}, fmt.Errorf("%w: decode message: %w", ErrMalformedResponse, err)
			}
		}
		env.Value = raw.Value
		return env, nil
	}

	var failure failureFields
	if len(raw.Error) > 0 {
		if err := json.Unmarshal(raw.Error, &failure.Error); err != nil {
			return Envelope{}, fmt.Errorf("%w: decode error: %w", ErrMalformedResponse, err)
		}
	}
	if err := failure.Validate(); err != nil {
		return Envelope{}, fmt.Errorf("%w: validate envelope: %w", ErrMalformedResponse, err)
	}

	env.Error = *failure.Error
	return env, nil
}

// Err returns a *ResponseError for a failure envelope and nil for a success.
func (e Envelope) Err() error {
	if e.Success {
		return nil
	}
	return &ResponseError{
		StatusCode:    e.StatusCode,
		StatusMessage: e.StatusMessage,
		Reason:        e.Error,
	}
}

// Decode unmarshals the success value into dst and validates it when dst
// implements validation.Validatable. An absent or null value leaves dst untouched.
func (e Envelope) Decode(dst any) error {
	if len(e.Value) == 0 || string(e.Value) == "null" {
		return nil
	}
	if err := json.Unmarshal(e.Value, dst); err != nil {
		return fmt.Errorf("%w: decode value: %w", ErrMalformedResponse, err)
	}

	v, ok := dst.(validation.Validatable)
	if !ok {
		// nothing to validate
		return nil
	}
	if err := v.Validate(); err != nil {
		return fmt.Errorf("%w: validate value: %w", ErrMalformedResponse, err)
	}
	return nil
}
