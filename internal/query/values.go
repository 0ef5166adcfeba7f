// Package query reads optional typed values from flat query strings.
// A key that is missing or has an empty value is absent and yields nil.
package query

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/ganot/po-manager/internal/caldate"
)

func lookup(q url.Values, key string) (string, bool) {
	v := q.Get(key)
	if v == "" {
		return "", false
	}
	return v, true
}

func parse[T any](q url.Values, key string, fn func(string) (T, error)) (*T, error) {
	raw, ok := lookup(q, key)
	if !ok {
		return nil, nil
	}
	v, err := fn(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}
	return &v, nil
}

// String returns the value of key.
func String(q url.Values, key string) *string {
	raw, ok := lookup(q, key)
	if !ok {
		return nil
	}
	return &raw
}

// Int returns key parsed as a base-10 integer.
func Int(q url.Values, key string) (*int, error) {
	return parse(q, key, strconv.Atoi)
}

// Float returns key parsed as a float64.
func Float(q url.Values, key string) (*float64, error) {
	return parse(q, key, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// Bool returns key parsed with strconv.ParseBool.
func Bool(q url.Values, key string) (*bool, error) {
	return parse(q, key, strconv.ParseBool)
}

// Date returns key parsed as YYYY-MM-DD.
func Date(q url.Values, key string) (*caldate.Date, error) {
	return parse(q, key, caldate.Parse)
}

// Enum returns key converted to T after valid accepts it.
func Enum[T ~string](q url.Values, key string, valid func(T) bool) (*T, error) {
	return parse(q, key, func(s string) (T, error) {
		v := T(s)
		if !valid(v) {
			return v, fmt.Errorf("unknown value %q", s)
		}
		return v, nil
	})
}
