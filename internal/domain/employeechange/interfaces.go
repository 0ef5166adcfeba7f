package employeechange

import "context"

// Repository provides persistence for employee changes.
type Repository interface {
	Create(ctx context.Context, change *EmployeeChange) error
	List(ctx context.Context, match func(EmployeeChange) bool) ([]EmployeeChange, error)
	Get(ctx context.Context, id string) (*EmployeeChange, error)
	Update(ctx context.Context, id string, apply func(*EmployeeChange) error) (*EmployeeChange, error)
	Delete(ctx context.Context, id string) (*EmployeeChange, error)
}

// NameResolver maps the IDs of a referenced record kind to display names.
type NameResolver interface {
	Names(ctx context.Context) (map[string]string, error)
}
