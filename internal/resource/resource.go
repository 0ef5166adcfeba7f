// Package resource adapts the per-kind record services to untyped request
// payloads so that every transport drives them the same way.
package resource

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
)

// ErrMalformed marks a request body that could not be decoded.
var ErrMalformed = errors.New("malformed request body")

// Class groups failures by who caused them.
type Class int

const (
	// ClassInternal is a server-side failure such as a failed persist.
	ClassInternal Class = iota
	// ClassInput is a request the caller has to fix.
	ClassInput
	// ClassNotFound is a request naming an id that doesn't exist.
	ClassNotFound
)

// Error carries the Class of a failed operation.
type Error struct {
	Class Class
	Err   error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

// ClassOf returns the Class of err, ClassInternal when err is unclassified.
func ClassOf(err error) Class {
	var e *Error
	if errors.As(err, &e) {
		return e.Class
	}
	return ClassInternal
}

// Resource is the CRUD surface of one record kind.
type Resource interface {
	Kind() string
	Create(ctx context.Context, body []byte) (any, error)
	List(ctx context.Context, q url.Values) (any, error)
	// Get returns a nil payload and no error for an unknown id.
	Get(ctx context.Context, id string) (any, error)
	Update(ctx context.Context, id string, body []byte) (any, error)
	Delete(ctx context.Context, id string) (any, error)
}

// Service is the typed record service a Resource wraps. C is the create
// request, P the patch, F the filter, R the record and V the listed view.
type Service[C, P, F, R, V any] interface {
	Create(ctx context.Context, req C) (*R, error)
	List(ctx context.Context, filter F) ([]V, error)
	Get(ctx context.Context, id string) (*R, error)
	Update(ctx context.Context, id string, patch P) (*R, error)
	Delete(ctx context.Context, id string) (*R, error)
}

// Options describes how to drive one Service.
type Options[F any] struct {
	Kind        string
	ParseFilter func(url.Values) (F, error)
	// NotFound and Invalid are the service's sentinel errors.
	NotFound error
	Invalid  error
}

type adapter[C, P, F, R, V any] struct {
	svc  Service[C, P, F, R, V]
	opts Options[F]
}

// New returns the Resource for svc.
func New[C, P, F, R, V any](svc Service[C, P, F, R, V], opts Options[F]) Resource {
	return &adapter[C, P, F, R, V]{svc: svc, opts: opts}
}

func (a *adapter[C, P, F, R, V]) Kind() string { return a.opts.Kind }

func (a *adapter[C, P, F, R, V]) Create(ctx context.Context, body []byte) (any, error) {
	var req C
	if err := decode(body, &req); err != nil {
		return nil, err
	}
	rec, err := a.svc.Create(ctx, req)
	if err != nil {
		return nil, a.classify(err)
	}
	return rec, nil
}

func (a *adapter[C, P, F, R, V]) List(ctx context.Context, q url.Values) (any, error) {
	filter, err := a.opts.ParseFilter(q)
	if err != nil {
		return nil, a.classify(err)
	}
	list, err := a.svc.List(ctx, filter)
	if err != nil {
		return nil, a.classify(err)
	}
	if list == nil {
		list = []V{}
	}
	return list, nil
}

func (a *adapter[C, P, F, R, V]) Get(ctx context.Context, id string) (any, error) {
	rec, err := a.svc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, a.opts.NotFound) {
			return nil, nil
		}
		return nil, a.classify(err)
	}
	return rec, nil
}

func (a *adapter[C, P, F, R, V]) Update(ctx context.Context, id string, body []byte) (any, error) {
	var patch P
	if err := decode(body, &patch); err != nil {
		return nil, err
	}
	rec, err := a.svc.Update(ctx, id, patch)
	if err != nil {
		return nil, a.classify(err)
	}
	return rec, nil
}

func (a *adapter[C, P, F, R, V]) Delete(ctx context.Context, id string) (any, error) {
	rec, err := a.svc.Delete(ctx, id)
	if err != nil {
		return nil, a.classify(err)
	}
	return rec, nil
}

func (a *adapter[C, P, F, R, V]) classify(err error) error {
	switch {
	case errors.Is(err, a.opts.NotFound):
		return &Error{Class: ClassNotFound, Err: err}
	case errors.Is(err, a.opts.Invalid):
		return &Error{Class: ClassInput, Err: err}
	}
	return &Error{Class: ClassInternal, Err: err}
}

func decode(body []byte, v any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return &Error{Class: ClassInput, Err: fmt.Errorf("%w: empty body", ErrMalformed)}
	}
	if err := json.Unmarshal(body, v); err != nil {
		return &Error{Class: ClassInput, Err: fmt.Errorf("%w: %w", ErrMalformed, err)}
	}
	return nil
}
