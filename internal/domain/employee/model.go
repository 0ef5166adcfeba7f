package employee

import (
	"github.com/ganot/po-manager/internal/domain/match"
)

// Status is an employee's engagement state.
type Status string

const (
	StatusWorking Status = "Working"
	StatusLeave   Status = "Leave"
	StatusQuit    Status = "Quit"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusWorking, StatusLeave, StatusQuit:
		return true
	}
	return false
}

// Meaning returns the label shown next to the status.
func (s Status) Meaning() string {
	switch s {
	case StatusWorking:
		return "on project"
	case StatusLeave:
		return "withdrawn from project"
	case StatusQuit:
		return "resigned"
	}
	return ""
}

// Employee is a person staffed on outsourced projects.
type Employee struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Status   Status `json:"status"`
	Position string `json:"position"`
}

func (e Employee) RecordID() string { return e.ID }

// View is the response shape of an employee.
type View struct {
	Employee
	StatusMeaning string `json:"status_meaning"`
}

// NewView decorates e with its status label.
func NewView(e Employee) View {
	return View{Employee: e, StatusMeaning: e.Status.Meaning()}
}

// CreateRequest defines employee creation inputs. Status defaults to Working.
type CreateRequest struct {
	Name     string  `json:"name"`
	Status   *Status `json:"status"`
	Position string  `json:"position"`
}

// Patch holds the fields to overwrite on update. Nil fields are left untouched.
type Patch struct {
	Name     *string `json:"name"`
	Status   *Status `json:"status"`
	Position *string `json:"position"`
}

// Apply overwrites the fields of e that are set in the patch.
func (patch Patch) Apply(e *Employee) {
	if patch.Name != nil {
		e.Name = *patch.Name
	}
	if patch.Status != nil {
		e.Status = *patch.Status
	}
	if patch.Position != nil {
		e.Position = *patch.Position
	}
}

// Filter selects employees on list. Nil fields don't constrain.
type Filter struct {
	ID *string
	// Name matches a substring of the name.
	Name     *string
	Status   *Status
	Position *string
}

// Matches reports whether e passes every set field of the filter.
func (f Filter) Matches(e Employee) bool {
	return match.Equal(f.ID, e.ID) &&
		match.Contains(f.Name, e.Name) &&
		match.Equal(f.Status, e.Status) &&
		match.Contains(f.Position, e.Position)
}
