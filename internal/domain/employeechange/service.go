package employeechange

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ganot/po-manager/internal/caldate"
	"github.com/ganot/po-manager/internal/repository"
	"github.com/google/uuid"
)

// Service handles employee change operations.
type Service struct {
	repo      Repository
	employees NameResolver
	projects  NameResolver
	logger    *slog.Logger
}

// NewService creates a new employee change service. employees and projects
// resolve display names when listing.
func NewService(repo Repository, employees, projects NameResolver, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, employees: employees, projects: projects, logger: logger}
}

// Create records a new assignment.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*EmployeeChange, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	change := &EmployeeChange{
		ID:         uuid.NewString(),
		EmployeeID: req.EmployeeID,
		ProjectID:  req.ProjectID,
		InTime:     req.InTime,
	}
	if req.OutTime != nil {
		change.OutTime = caldate.Ptr(*req.OutTime)
	}

	if err := s.repo.Create(ctx, change); err != nil {
		return nil, fmt.Errorf("creating employee change: %w", err)
	}

	s.logger.Info("employee change created", "id", change.ID, "employee_id", change.EmployeeID, "project_id", change.ProjectID)
	return change, nil
}

// List returns the changes matching filter in collection order, each
// decorated with the current employee and project names. The three
// collections are read one after another, not as one snapshot.
func (s *Service) List(ctx context.Context, filter Filter) ([]View, error) {
	changes, err := s.repo.List(ctx, filter.Matches)
	if err != nil {
		return nil, fmt.Errorf("listing employee changes: %w", err)
	}
	employeeNames, err := s.employees.Names(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving employee names: %w", err)
	}
	projectNames, err := s.projects.Names(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving project names: %w", err)
	}

	views := make([]View, 0, len(changes))
	for _, c := range changes {
		views = append(views, View{
			EmployeeChange: c,
			EmployeeName:   employeeNames[c.EmployeeID],
			ProjectName:    projectNames[c.ProjectID],
		})
	}
	return views, nil
}

// Get fetches an employee change by ID.
func (s *Service) Get(ctx context.Context, id string) (*EmployeeChange, error) {
	change, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEmployeeChangeNotFound
		}
		return nil, fmt.Errorf("getting employee change: %w", err)
	}
	return change, nil
}

// Update overwrites the fields set in patch.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (*EmployeeChange, error) {
	if err := ValidatePatch(patch); err != nil {
		return nil, err
	}

	change, err := s.repo.Update(ctx, id, func(c *EmployeeChange) error {
		patch.Apply(c)
		return validateSpan(*c)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEmployeeChangeNotFound
		}
		if errors.Is(err, ErrInvalidInput) {
			return nil, err
		}
		return nil, fmt.Errorf("updating employee change: %w", err)
	}
	return change, nil
}

// Delete removes an employee change and returns its last value.
func (s *Service) Delete(ctx context.Context, id string) (*EmployeeChange, error) {
	change, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEmployeeChangeNotFound
		}
		return nil, fmt.Errorf("deleting employee change: %w", err)
	}

	s.logger.Info("employee change deleted", "id", id)
	return change, nil
}
