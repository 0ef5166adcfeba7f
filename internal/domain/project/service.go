package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ganot/po-manager/internal/repository"
	"github.com/google/uuid"
)

// Service handles project operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// Create creates a new project.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Project, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	proj := &Project{
		ID:               uuid.NewString(),
		Name:             req.Name,
		Code:             req.Code,
		ReleaseDate:      req.ReleaseDate,
		PlanDeliveryDate: req.PlanDeliveryDate,
		TechDays:         req.TechDays,
		TestDays:         req.TestDays,
		Price:            req.Price,
		PM:               req.PM,
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	s.logger.Info("project created", "id", proj.ID, "code", proj.Code)
	return proj, nil
}

// List returns the projects matching filter in collection order.
func (s *Service) List(ctx context.Context, filter Filter) ([]Project, error) {
	return s.repo.List(ctx, filter.Matches)
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// Update overwrites the fields set in patch.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (*Project, error) {
	if err := ValidatePatch(patch); err != nil {
		return nil, err
	}

	proj, err := s.repo.Update(ctx, id, func(p *Project) error {
		patch.Apply(p)
		return validateEffort(p.TechDays, p.TestDays, p.Price)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		if errors.Is(err, ErrInvalidInput) {
			return nil, err
		}
		return nil, fmt.Errorf("updating project: %w", err)
	}
	return proj, nil
}

// Delete removes a project and returns its last value.
func (s *Service) Delete(ctx context.Context, id string) (*Project, error) {
	proj, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("deleting project: %w", err)
	}

	s.logger.Info("project deleted", "id", id)
	return proj, nil
}

// Names maps every project ID to its current name.
func (s *Service) Names(ctx context.Context) (map[string]string, error) {
	projects, err := s.repo.List(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("listing project names: %w", err)
	}
	names := make(map[string]string, len(projects))
	for _, p := range projects {
		names[p.ID] = p.Name
	}
	return names, nil
}
