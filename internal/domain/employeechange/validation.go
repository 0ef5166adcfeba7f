package employeechange

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ganot/po-manager/internal/query"
)

// ValidateCreateInput validates fields required to create an employee change.
// References are not checked for existence.
func ValidateCreateInput(req CreateRequest) error {
	switch {
	case strings.TrimSpace(req.EmployeeID) == "":
		return fmt.Errorf("%w: employee_id is required", ErrInvalidInput)
	case strings.TrimSpace(req.ProjectID) == "":
		return fmt.Errorf("%w: project_id is required", ErrInvalidInput)
	case req.InTime.IsZero():
		return fmt.Errorf("%w: in_time is required", ErrInvalidInput)
	}
	return validateSpan(EmployeeChange{InTime: req.InTime, OutTime: req.OutTime})
}

// ValidatePatch rejects patches that would blank required fields.
func ValidatePatch(patch Patch) error {
	switch {
	case patch.EmployeeID != nil && strings.TrimSpace(*patch.EmployeeID) == "":
		return fmt.Errorf("%w: employee_id cannot be empty", ErrInvalidInput)
	case patch.ProjectID != nil && strings.TrimSpace(*patch.ProjectID) == "":
		return fmt.Errorf("%w: project_id cannot be empty", ErrInvalidInput)
	case patch.InTime != nil && patch.InTime.IsZero():
		return fmt.Errorf("%w: in_time cannot be empty", ErrInvalidInput)
	}
	return nil
}

func validateSpan(c EmployeeChange) error {
	if c.OutTime != nil && c.OutTime.Before(c.InTime) {
		return fmt.Errorf("%w: out_time %s is before in_time %s", ErrInvalidInput, *c.OutTime, c.InTime)
	}
	return nil
}

// Validate checks the shape of a stored employee change.
func (c EmployeeChange) Validate() error {
	if c.InTime.IsZero() {
		return errors.New("in_time is missing")
	}
	return nil
}

// ParseFilter reads a Filter from list query parameters.
func ParseFilter(q url.Values) (Filter, error) {
	f := Filter{
		ID:         query.String(q, "id"),
		EmployeeID: query.String(q, "employee_id"),
		ProjectID:  query.String(q, "project_id"),
	}
	var err error
	if f.InTime, err = query.Date(q, "in_time"); err != nil {
		return Filter{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if f.OutTime, err = query.Date(q, "out_time"); err != nil {
		return Filter{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return f, nil
}
