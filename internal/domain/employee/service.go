package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ganot/po-manager/internal/repository"
	"github.com/google/uuid"
)

// Service handles employee operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new employee service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// Create creates a new employee.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Employee, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	status := StatusWorking
	if req.Status != nil {
		status = *req.Status
	}
	emp := &Employee{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Status:   status,
		Position: req.Position,
	}

	if err := s.repo.Create(ctx, emp); err != nil {
		return nil, fmt.Errorf("creating employee: %w", err)
	}

	s.logger.Info("employee created", "id", emp.ID, "status", emp.Status)
	return emp, nil
}

// List returns the employees matching filter in collection order.
func (s *Service) List(ctx context.Context, filter Filter) ([]View, error) {
	employees, err := s.repo.List(ctx, filter.Matches)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	views := make([]View, 0, len(employees))
	for _, e := range employees {
		views = append(views, NewView(e))
	}
	return views, nil
}

// Get fetches an employee by ID.
func (s *Service) Get(ctx context.Context, id string) (*Employee, error) {
	emp, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("getting employee: %w", err)
	}
	return emp, nil
}

// Update overwrites the fields set in patch.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (*Employee, error) {
	if err := ValidatePatch(patch); err != nil {
		return nil, err
	}

	emp, err := s.repo.Update(ctx, id, func(e *Employee) error {
		patch.Apply(e)
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("updating employee: %w", err)
	}
	if patch.Status != nil {
		s.logger.Info("employee status changed", "id", id, "status", emp.Status)
	}
	return emp, nil
}

// Delete removes an employee and returns its last value.
func (s *Service) Delete(ctx context.Context, id string) (*Employee, error) {
	emp, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("deleting employee: %w", err)
	}

	s.logger.Info("employee deleted", "id", id)
	return emp, nil
}

// Names maps every employee ID to its current name.
func (s *Service) Names(ctx context.Context) (map[string]string, error) {
	employees, err := s.repo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("listing employee names: %w", err)
	}
	names := make(map[string]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.Name
	}
	return names, nil
}
