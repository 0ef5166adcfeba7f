package specialdate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ganot/po-manager/internal/caldate"
	"github.com/ganot/po-manager/internal/repository"
	"github.com/google/uuid"
)

// Service handles special date operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*SpecialDate, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	sd := &SpecialDate{
		ID:        uuid.NewString(),
		StartTime: req.StartTime,
		DateType:  req.DateType,
	}
	if req.EndTime != nil {
		sd.EndTime = caldate.Ptr(*req.EndTime)
	}

	if err := s.repo.Create(ctx, sd); err != nil {
		return nil, fmt.Errorf("creating special date: %w", err)
	}

	s.logger.Info("special date created", "id", sd.ID, "start_time", sd.StartTime, "date_type", sd.DateType)
	return sd, nil
}

func (s *Service) List(ctx context.Context, filter Filter) ([]SpecialDate, error) {
	return s.repo.List(ctx, filter.Matches)
}

func (s *Service) Get(ctx context.Context, id string) (*SpecialDate, error) {
	sd, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSpecialDateNotFound
		}
		return nil, fmt.Errorf("getting special date: %w", err)
	}
	return sd, nil
}

func (s *Service) Update(ctx context.Context, id string, patch Patch) (*SpecialDate, error) {
	if err := ValidatePatch(patch); err != nil {
		return nil, err
	}

	sd, err := s.repo.Update(ctx, id, func(d *SpecialDate) error {
		patch.Apply(d)
		return validateSpan(*d)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSpecialDateNotFound
		}
		if errors.Is(err, ErrInvalidInput) {
			return nil, err
		}
		return nil, fmt.Errorf("updating special date: %w", err)
	}
	return sd, nil
}

func (s *Service) Delete(ctx context.Context, id string) (*SpecialDate, error) {
	sd, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSpecialDateNotFound
		}
		return nil, fmt.Errorf("deleting special date: %w", err)
	}

	s.logger.Info("special date deleted", "id", id)
	return sd, nil
}
