package attendance

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ganot/po-manager/internal/query"
)

// ValidateCreateInput validates fields required to create an attendance record.
func ValidateCreateInput(req CreateRequest) error {
	switch {
	case req.StartTime.IsZero():
		return fmt.Errorf("%w: start_time is required", ErrInvalidInput)
	case strings.TrimSpace(req.EmployeeID) == "":
		return fmt.Errorf("%w: employee_id is required", ErrInvalidInput)
	case req.DateType == "":
		return fmt.Errorf("%w: date_type is required", ErrInvalidInput)
	case !req.DateType.Valid():
		return fmt.Errorf("%w: unknown date_type %q", ErrInvalidInput, req.DateType)
	}
	return validateSpan(Attendance{StartTime: req.StartTime, EndTime: req.EndTime})
}

// ValidatePatch rejects patches that would blank required fields.
func ValidatePatch(patch Patch) error {
	switch {
	case patch.StartTime != nil && patch.StartTime.IsZero():
		return fmt.Errorf("%w: start_time cannot be empty", ErrInvalidInput)
	case patch.EmployeeID != nil && strings.TrimSpace(*patch.EmployeeID) == "":
		return fmt.Errorf("%w: employee_id cannot be empty", ErrInvalidInput)
	case patch.DateType != nil && !patch.DateType.Valid():
		return fmt.Errorf("%w: unknown date_type %q", ErrInvalidInput, *patch.DateType)
	}
	return nil
}

func validateSpan(a Attendance) error {
	if a.EndTime != nil && a.EndTime.Before(a.StartTime) {
		return fmt.Errorf("%w: end_time %s is before start_time %s", ErrInvalidInput, *a.EndTime, a.StartTime)
	}
	return nil
}

// Validate checks the shape of a stored attendance record.
func (a Attendance) Validate() error {
	switch {
	case a.StartTime.IsZero():
		return errors.New("start_time is missing")
	case !a.DateType.Valid():
		return fmt.Errorf("unknown date_type %q", a.DateType)
	}
	return nil
}

// ParseFilter reads a Filter from list query parameters.
func ParseFilter(q url.Values) (Filter, error) {
	f := Filter{
		ID:         query.String(q, "id"),
		EmployeeID: query.String(q, "employee_id"),
	}
	var err error
	if f.DateType, err = query.Enum(q, "date_type", DateType.Valid); err != nil {
		return Filter{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if f.StartTime, err = query.Date(q, "start_time"); err != nil {
		return Filter{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if f.EndTime, err = query.Date(q, "end_time"); err != nil {
		return Filter{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if f.StartHalf, err = query.Bool(q, "start_half"); err != nil {
		return Filter{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if f.EndHalf, err = query.Bool(q, "end_half"); err != nil {
		return Filter{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return f, nil
}
