package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Repository is a mock for the per-kind record repositories.
type Repository[R any] struct {
	mock.Mock
}

func (m *Repository[R]) Create(ctx context.Context, rec *R) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *Repository[R]) List(ctx context.Context, match func(R) bool) ([]R, error) {
	args := m.Called(ctx, match)
	if list, ok := args.Get(0).([]R); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository[R]) Get(ctx context.Context, id string) (*R, error) {
	args := m.Called(ctx, id)
	if rec, ok := args.Get(0).(*R); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository[R]) Update(ctx context.Context, id string, apply func(*R) error) (*R, error) {
	args := m.Called(ctx, id, apply)
	if rec, ok := args.Get(0).(*R); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository[R]) Delete(ctx context.Context, id string) (*R, error) {
	args := m.Called(ctx, id)
	if rec, ok := args.Get(0).(*R); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

// NameResolver is a mock for services that map record IDs to display names.
type NameResolver struct {
	mock.Mock
}

func (m *NameResolver) Names(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	if names, ok := args.Get(0).(map[string]string); ok {
		return names, args.Error(1)
	}
	return nil, args.Error(1)
}
