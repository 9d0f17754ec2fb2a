// Package option provides a container that may or may not hold a value.
package option

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// Option holds zero or one value of T. The zero value is an empty option.
type Option[T any] struct {
	value T
	some  bool
}

// Some returns a filled option. Like Set, a nil pointer or interface yields an empty one.
func Some[T any](value T) *Option[T] {
	return new(Option[T]).Set(value)
}

// None returns an empty option.
func None[T any]() *Option[T] {
	return &Option[T]{}
}

// Nones returns size distinct empty options.
func Nones[T any](size int) []*Option[T] {
	if size < 0 {
		size = 0
	}
	options := make([]*Option[T], 0, size)
	for i := 0; i < size; i++ {
		options = append(options, None[T]())
	}
	return options
}

// Set stores value in the option and returns the option for chaining.
// A nil pointer or interface value empties the option instead.
func (o *Option[T]) Set(value T) *Option[T] {
	if isNil(value) {
		return o.Clear()
	}
	o.value = value
	o.some = true
	return o
}

// Clear empties the option and returns it for chaining.
func (o *Option[T]) Clear() *Option[T] {
	var zero T
	o.value = zero
	o.some = false
	return o
}

// Get returns the stored value and whether one is present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.some
}

// GetOr returns the stored value, or def when the option is empty.
func (o Option[T]) GetOr(def T) T {
	if !o.some {
		return def
	}
	return o.value
}

// IsSome reports whether a value is stored. When true, Get's value is valid.
func (o Option[T]) IsSome() bool {
	return o.some
}

// IsNone is the inverse of IsSome.
func (o Option[T]) IsNone() bool {
	return !o.IsSome()
}

// Expect returns the stored value, or err when the option is empty.
func (o Option[T]) Expect(err error) (T, error) {
	if o.some {
		return o.value, nil
	}
	var zero T
	return zero, err
}

// Contains reports whether o holds a value equal to value.
func Contains[T comparable](o *Option[T], value T) bool {
	if o == nil || !o.some {
		return false
	}
	return o.value == value
}

// String renders the stored value with fmt, or "<none>".
func (o Option[T]) String() string {
	if !o.some {
		return "<none>"
	}
	return fmt.Sprint(o.value)
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

var jsonNull = []byte("null")

// MarshalJSON encodes an empty option as null.
func (o Option[T]) MarshalJSON() ([]byte, error) {
	if !o.some {
		return jsonNull, nil
	}
	return json.Marshal(o.value)
}

// UnmarshalJSON treats null as empty and anything else as a value of T.
func (o *Option[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), jsonNull) {
		o.Clear()
		return nil
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("decode option value: %w", err)
	}
	o.Set(value)
	return nil
}
