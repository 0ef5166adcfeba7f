package employee

import "context"

// Repository provides persistence for employees.
type Repository interface {
	Create(ctx context.Context, emp *Employee) error
	List(ctx context.Context, match func(Employee) bool) ([]Employee, error)
	Get(ctx context.Context, id string) (*Employee, error)
	Update(ctx context.Context, id string, apply func(*Employee) error) (*Employee, error)
	Delete(ctx context.Context, id string) (*Employee, error)
}
