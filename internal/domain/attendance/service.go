package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ganot/po-manager/internal/caldate"
	"github.com/ganot/po-manager/internal/repository"
	"github.com/google/uuid"
)

// Service handles attendance operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new attendance service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// Create records a new attendance span.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Attendance, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	att := &Attendance{
		ID:         uuid.NewString(),
		StartTime:  req.StartTime,
		EmployeeID: req.EmployeeID,
		DateType:   req.DateType,
		StartHalf:  req.StartHalf,
		EndHalf:    req.EndHalf,
	}
	if req.EndTime != nil {
		att.EndTime = caldate.Ptr(*req.EndTime)
	}

	if err := s.repo.Create(ctx, att); err != nil {
		return nil, fmt.Errorf("creating attendance: %w", err)
	}

	s.logger.Info("attendance created", "id", att.ID, "employee_id", att.EmployeeID, "date_type", att.DateType)
	return att, nil
}

// List returns the attendance records matching filter in collection order.
func (s *Service) List(ctx context.Context, filter Filter) ([]Attendance, error) {
	return s.repo.List(ctx, filter.Matches)
}

// Get fetches an attendance record by ID.
func (s *Service) Get(ctx context.Context, id string) (*Attendance, error) {
	att, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("getting attendance: %w", err)
	}
	return att, nil
}

// Update overwrites the fields set in patch. The merged span must still end
// on or after its start.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (*Attendance, error) {
	if err := ValidatePatch(patch); err != nil {
		return nil, err
	}

	att, err := s.repo.Update(ctx, id, func(a *Attendance) error {
		patch.Apply(a)
		return validateSpan(*a)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAttendanceNotFound
		}
		if errors.Is(err, ErrInvalidInput) {
			return nil, err
		}
		return nil, fmt.Errorf("updating attendance: %w", err)
	}
	return att, nil
}

// Delete removes an attendance record and returns its last value.
func (s *Service) Delete(ctx context.Context, id string) (*Attendance, error) {
	att, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("deleting attendance: %w", err)
	}

	s.logger.Info("attendance deleted", "id", id)
	return att, nil
}
