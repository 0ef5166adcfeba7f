package project

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/ganot/po-manager/internal/query"
)

// ValidateCreateInput validates fields required to create a project.
func ValidateCreateInput(req CreateRequest) error {
	switch {
	case blank(req.Name):
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	case blank(req.Code):
		return fmt.Errorf("%w: code is required", ErrInvalidInput)
	case blank(req.PM):
		return fmt.Errorf("%w: pm is required", ErrInvalidInput)
	case req.ReleaseDate.IsZero():
		return fmt.Errorf("%w: release_date is required", ErrInvalidInput)
	case req.PlanDeliveryDate.IsZero():
		return fmt.Errorf("%w: plan_delivery_date is required", ErrInvalidInput)
	}
	return validateEffort(req.TechDays, req.TestDays, req.Price)
}

// ValidatePatch rejects patches that would blank required fields.
func ValidatePatch(patch Patch) error {
	switch {
	case patch.Name != nil && blank(*patch.Name):
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
	case patch.Code != nil && blank(*patch.Code):
		return fmt.Errorf("%w: code cannot be empty", ErrInvalidInput)
	case patch.PM != nil && blank(*patch.PM):
		return fmt.Errorf("%w: pm cannot be empty", ErrInvalidInput)
	case patch.ReleaseDate != nil && patch.ReleaseDate.IsZero():
		return fmt.Errorf("%w: release_date cannot be empty", ErrInvalidInput)
	case patch.PlanDeliveryDate != nil && patch.PlanDeliveryDate.IsZero():
		return fmt.Errorf("%w: plan_delivery_date cannot be empty", ErrInvalidInput)
	}
	return nil
}

func validateEffort(techDays, testDays int, price float64) error {
	if techDays < 0 || testDays < 0 {
		return fmt.Errorf("%w: effort days cannot be negative", ErrInvalidInput)
	}
	if price < 0 {
		return fmt.Errorf("%w: price cannot be negative", ErrInvalidInput)
	}
	return nil
}

// Validate checks the shape of a stored project.
func (p Project) Validate() error {
	switch {
	case p.ReleaseDate.IsZero():
		return errors.New("release_date is missing")
	case p.PlanDeliveryDate.IsZero():
		return errors.New("plan_delivery_date is missing")
	}
	return nil
}

// ParseFilter reads a Filter from list query parameters.
func ParseFilter(q url.Values) (Filter, error) {
	f := Filter{
		ID:                    query.String(q, "id"),
		NameOrCode:            query.String(q, "name_or_code"),
		PM:                    query.String(q, "pm"),
		ReleaseDateFuzzy:      query.String(q, "release_date_fuzzy"),
		PlanDeliveryDateFuzzy: query.String(q, "plan_delivery_date_fuzzy"),
	}
	var err error
	if f.Price, err = query.Float(q, "price"); err != nil {
		return Filter{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if f.Days, err = query.Int(q, "days"); err != nil {
		return Filter{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return f, nil
}
