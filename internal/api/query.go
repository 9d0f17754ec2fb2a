package api

import (
	"fmt"
	"net/url"
	"reflect"

	"github.com/google/go-querystring/query"
)

type noner interface {
	IsNone() bool
}

// StringifyQuery converts every defined entry of q to its string form.
// Nil values, nil pointers and empty options are omitted.
func StringifyQuery(q map[string]any) url.Values {
	values := make(url.Values, len(q))
	for key, value := range q {
		if isUndefined(value) {
			continue
		}
		values.Set(key, stringify(value))
	}
	return values
}

// QueryOf builds a query map from a struct tagged with `url:"..."`.
func QueryOf(v any) (map[string]any, error) {
	values, err := query.Values(v)
	if err != nil {
		return nil, fmt.Errorf("encode query struct: %w", err)
	}

	q := make(map[string]any, len(values))
	for key := range values {
		q[key] = values.Get(key)
	}
	return q, nil
}

func isUndefined(value any) bool {
	if value == nil {
		return true
	}
	if n, ok := value.(noner); ok {
		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return true
		}
		return n.IsNone()
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func stringify(value any) string {
	if s, ok := value.(fmt.Stringer); ok {
		return s.String()
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer {
		return fmt.Sprint(rv.Elem().Interface())
	}
	return fmt.Sprint(value)
}
