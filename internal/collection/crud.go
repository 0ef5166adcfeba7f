package collection

import (
	"context"

	"github.com/ganot/po-manager/internal/repository"
)

// Create prepends rec and persists the collection.
func (s *Store[R]) Create(ctx context.Context, rec *R) error {
	return s.WithExclusiveAccess(func(tx *Txn[R]) error {
		tx.Prepend(*rec)
		return tx.Persist(ctx)
	})
}

// List returns the records for which match is true, in collection order.
func (s *Store[R]) List(_ context.Context, match func(R) bool) ([]R, error) {
	return Access(s, func(tx *Txn[R]) ([]R, error) {
		return tx.Filter(match), nil
	})
}

// Get returns the record with the given id or repository.ErrNotFound.
func (s *Store[R]) Get(_ context.Context, id string) (*R, error) {
	return Access(s, func(tx *Txn[R]) (*R, error) {
		rec, ok := tx.Find(id)
		if !ok {
			return nil, repository.ErrNotFound
		}
		return &rec, nil
	})
}

// Update applies apply to the record with the given id and persists the
// collection. The returned record reflects the change even when persisting fails.
func (s *Store[R]) Update(ctx context.Context, id string, apply func(*R) error) (*R, error) {
	return Access(s, func(tx *Txn[R]) (*R, error) {
		current, ok := tx.Find(id)
		if !ok {
			return nil, repository.ErrNotFound
		}
		if err := apply(&current); err != nil {
			return nil, err
		}
		updated, _ := tx.Mutate(id, func(rec *R) { *rec = current })
		if err := tx.Persist(ctx); err != nil {
			return &updated, err
		}
		return &updated, nil
	})
}

// Delete removes the record with the given id and persists the collection.
func (s *Store[R]) Delete(ctx context.Context, id string) (*R, error) {
	return Access(s, func(tx *Txn[R]) (*R, error) {
		rec, ok := tx.Remove(id)
		if !ok {
			return nil, repository.ErrNotFound
		}
		if err := tx.Persist(ctx); err != nil {
			return &rec, err
		}
		return &rec, nil
	})
}
