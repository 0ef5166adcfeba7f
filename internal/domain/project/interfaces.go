package project

import "context"

// Repository provides persistence for projects.
type Repository interface {
	Create(ctx context.Context, proj *Project) error
	List(ctx context.Context, match func(Project) bool) ([]Project, error)
	Get(ctx context.Context, id string) (*Project, error)
	Update(ctx context.Context, id string, apply func(*Project) error) (*Project, error)
	Delete(ctx context.Context, id string) (*Project, error)
}
