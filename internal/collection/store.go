package collection

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/ganot/po-manager/internal/repository"
)

// Record is a stored value with a stable unique identifier.
type Record interface {
	RecordID() string
}

// Validator is implemented by records that can check their own shape.
// Bootstrap rejects a snapshot holding any record that fails it.
type Validator interface {
	Validate() error
}

// Backend holds the serialized snapshot of one collection.
type Backend interface {
	// Name identifies the collection, e.g. "project".
	Name() string
	// Load returns the stored snapshot. ok is false when nothing has been stored yet.
	Load(ctx context.Context) (data []byte, ok bool, err error)
	// Save replaces the stored snapshot with data.
	Save(ctx context.Context, data []byte) error
}

// Observer receives the outcome of store operations.
type Observer interface {
	Observe(ctx context.Context, operation string, success bool, duration time.Duration)
}

// Option configures a Store.
type Option func(*options)

type options struct {
	observer Observer
	logger   *slog.Logger
}

// WithObserver reports persist and load timings to o.
func WithObserver(o Observer) Option {
	return func(opts *options) { opts.observer = o }
}

// WithLogger sets the store logger.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *options) { opts.logger = logger }
}

// Store is the authoritative in-memory sequence of one record kind,
// mirrored to a Backend after every mutation. All access goes through
// WithExclusiveAccess or the helpers built on it.
type Store[R Record] struct {
	mu       sync.Mutex
	backend  Backend
	records  []R
	observer Observer
	logger   *slog.Logger
}

// Bootstrap loads the collection from backend, writing an empty snapshot
// first if the backend holds none.
func Bootstrap[R Record](ctx context.Context, backend Backend, opts ...Option) (*Store[R], error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	s := &Store[R]{
		backend:  backend,
		records:  make([]R, 0),
		observer: o.observer,
		logger:   o.logger.With("collection", backend.Name()),
	}

	start := time.Now()
	data, ok, err := backend.Load(ctx)
	if err != nil {
		s.observe(ctx, "load", false, start)
		return nil, fmt.Errorf("load %s: %w", backend.Name(), err)
	}
	if !ok {
		if err := s.persist(ctx); err != nil {
			return nil, fmt.Errorf("initialize %s: %w", backend.Name(), err)
		}
		s.logger.Info("created empty collection")
		return s, nil
	}

	records, err := decode[R](data)
	if err != nil {
		s.observe(ctx, "load", false, start)
		return nil, fmt.Errorf("decode %s: %w", backend.Name(), err)
	}
	s.records = records
	s.observe(ctx, "load", true, start)
	s.logger.Info("loaded collection", "records", len(records))
	return s, nil
}

func decode[R Record](data []byte) ([]R, error) {
	var records []R
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = make([]R, 0)
	}
	seen := make(map[string]struct{}, len(records))
	for i, rec := range records {
		id := rec.RecordID()
		if id == "" {
			return nil, fmt.Errorf("%w: record %d has no id", repository.ErrInvalidRecord, i)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %q", repository.ErrDuplicateID, id)
		}
		seen[id] = struct{}{}
		if v, ok := any(rec).(Validator); ok {
			if err := v.Validate(); err != nil {
				return nil, fmt.Errorf("%w: %q: %w", repository.ErrInvalidRecord, id, err)
			}
		}
	}
	return records, nil
}

// Name returns the collection name.
func (s *Store[R]) Name() string {
	return s.backend.Name()
}

// WithExclusiveAccess runs fn while holding sole access to the collection.
// The Txn passed to fn must not be retained after fn returns.
func (s *Store[R]) WithExclusiveAccess(fn func(tx *Txn[R]) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&Txn[R]{store: s})
}

// Access is WithExclusiveAccess for functions that produce a value.
func Access[R Record, T any](s *Store[R], fn func(tx *Txn[R]) (T, error)) (T, error) {
	var out T
	err := s.WithExclusiveAccess(func(tx *Txn[R]) error {
		var err error
		out, err = fn(tx)
		return err
	})
	return out, err
}

// persist writes the entire collection. Callers must hold s.mu.
func (s *Store[R]) persist(ctx context.Context) error {
	start := time.Now()
	data, err := json.MarshalIndent(s.records, "", "  ")
	if err != nil {
		s.observe(ctx, "persist", false, start)
		return fmt.Errorf("encode %s: %w", s.backend.Name(), err)
	}
	if err := s.backend.Save(ctx, data); err != nil {
		s.observe(ctx, "persist", false, start)
		s.logger.Error("persist failed", "error", err)
		return fmt.Errorf("save %s: %w", s.backend.Name(), err)
	}
	s.observe(ctx, "persist", true, start)
	return nil
}

func (s *Store[R]) observe(ctx context.Context, operation string, success bool, start time.Time) {
	if s.observer == nil {
		return
	}
	s.observer.Observe(ctx, operation, success, time.Since(start))
}

// Txn is the view of the collection available inside WithExclusiveAccess.
type Txn[R Record] struct {
	store *Store[R]
}

// Len returns the number of records.
func (tx *Txn[R]) Len() int {
	return len(tx.store.records)
}

// All returns a copy of every record in collection order.
func (tx *Txn[R]) All() []R {
	return slices.Clone(tx.store.records)
}

// Filter returns copies of the records for which match is true, in order.
// A nil match selects every record.
func (tx *Txn[R]) Filter(match func(R) bool) []R {
	out := make([]R, 0)
	for _, rec := range tx.store.records {
		if match == nil || match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Find returns the first record with the given id.
func (tx *Txn[R]) Find(id string) (R, bool) {
	if i := tx.index(id); i >= 0 {
		return tx.store.records[i], true
	}
	var zero R
	return zero, false
}

// Prepend inserts rec at the front of the collection.
func (tx *Txn[R]) Prepend(rec R) {
	tx.store.records = slices.Insert(tx.store.records, 0, rec)
}

// Mutate applies fn to the stored record with the given id and returns its new value.
func (tx *Txn[R]) Mutate(id string, fn func(*R)) (R, bool) {
	i := tx.index(id)
	if i < 0 {
		var zero R
		return zero, false
	}
	fn(&tx.store.records[i])
	return tx.store.records[i], true
}

// Remove deletes the record with the given id and returns its last value.
func (tx *Txn[R]) Remove(id string) (R, bool) {
	i := tx.index(id)
	if i < 0 {
		var zero R
		return zero, false
	}
	rec := tx.store.records[i]
	tx.store.records = slices.Delete(tx.store.records, i, i+1)
	return rec, true
}

// Persist writes the entire collection to the backend. A failure leaves
// the in-memory collection as it is.
func (tx *Txn[R]) Persist(ctx context.Context) error {
	return tx.store.persist(ctx)
}

func (tx *Txn[R]) index(id string) int {
	return slices.IndexFunc(tx.store.records, func(rec R) bool {
		return rec.RecordID() == id
	})
}
