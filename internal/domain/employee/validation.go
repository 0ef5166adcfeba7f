package employee

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/ganot/po-manager/internal/query"
)

// ValidateCreateInput validates fields required to create an employee.
func ValidateCreateInput(req CreateRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Status != nil && !req.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
	}
	return nil
}

// ValidatePatch rejects patches that would blank the name or set an unknown status.
func ValidatePatch(patch Patch) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *patch.Status)
	}
	return nil
}

// Validate checks the shape of a stored employee.
func (e Employee) Validate() error {
	if !e.Status.Valid() {
		return fmt.Errorf("unknown status %q", e.Status)
	}
	return nil
}

// ParseFilter reads a Filter from list query parameters.
func ParseFilter(q url.Values) (Filter, error) {
	status, err := query.Enum(q, "status", Status.Valid)
	if err != nil {
		return Filter{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return Filter{
		ID:       query.String(q, "id"),
		Name:     query.String(q, "name"),
		Status:   status,
		Position: query.String(q, "position"),
	}, nil
}
