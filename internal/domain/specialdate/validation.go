package specialdate

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/ganot/po-manager/internal/query"
)

// ValidateCreateInput validates fields required to create a special date.
func ValidateCreateInput(req CreateRequest) error {
	switch {
	case req.StartTime.IsZero():
		return fmt.Errorf("%w: start_time is required", ErrInvalidInput)
	case req.DateType == "":
		return fmt.Errorf("%w: date_type is required", ErrInvalidInput)
	case !req.DateType.Valid():
		return fmt.Errorf("%w: unknown date_type %q", ErrInvalidInput, req.DateType)
	}
	return validateSpan(SpecialDate{StartTime: req.StartTime, EndTime: req.EndTime})
}

func ValidatePatch(patch Patch) error {
	switch {
	case patch.StartTime != nil && patch.StartTime.IsZero():
		return fmt.Errorf("%w: start_time cannot be empty", ErrInvalidInput)
	case patch.DateType != nil && !patch.DateType.Valid():
		return fmt.Errorf("%w: unknown date_type %q", ErrInvalidInput, *patch.DateType)
	}
	return nil
}

func validateSpan(d SpecialDate) error {
	if d.EndTime != nil && d.EndTime.Before(d.StartTime) {
		return fmt.Errorf("%w: end_time %s is before start_time %s", ErrInvalidInput, *d.EndTime, d.StartTime)
	}
	return nil
}

func (d SpecialDate) Validate() error {
	switch {
	case d.StartTime.IsZero():
		return errors.New("start_time is missing")
	case !d.DateType.Valid():
		return fmt.Errorf("unknown date_type %q", d.DateType)
	}
	return nil
}

// ParseFilter reads a Filter from list query parameters.
func ParseFilter(q url.Values) (Filter, error) {
	f := Filter{ID: query.String(q, "id")}
	var err error
	if f.StartTime, err = query.Date(q, "start_time"); err != nil {
		return Filter{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if f.EndTime, err = query.Date(q, "end_time"); err != nil {
		return Filter{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if f.DateType, err = query.Enum(q, "date_type", DateType.Valid); err != nil {
		return Filter{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return f, nil
}
