package employeechange

import (
	"github.com/ganot/po-manager/internal/caldate"
	"github.com/ganot/po-manager/internal/domain/match"
)

// EmployeeChange is one employee's assignment to one project. An absent
// OutTime means the assignment is still open.
type EmployeeChange struct {
	ID         string        `json:"id"`
	EmployeeID string        `json:"employee_id"`
	ProjectID  string        `json:"project_id"`
	InTime     caldate.Date  `json:"in_time"`
	OutTime    *caldate.Date `json:"out_time,omitempty"`
}

func (c EmployeeChange) RecordID() string { return c.ID }

// View is a change decorated with the current names of what it references.
// A name is empty when the reference no longer resolves.
type View struct {
	EmployeeChange
	EmployeeName string `json:"employee_name"`
	ProjectName  string `json:"project_name"`
}

// CreateRequest defines employee change creation inputs.
type CreateRequest struct {
	EmployeeID string        `json:"employee_id"`
	ProjectID  string        `json:"project_id"`
	InTime     caldate.Date  `json:"in_time"`
	OutTime    *caldate.Date `json:"out_time"`
}

// Patch holds the fields to overwrite on update. Nil fields are left untouched.
type Patch struct {
	EmployeeID *string       `json:"employee_id"`
	ProjectID  *string       `json:"project_id"`
	InTime     *caldate.Date `json:"in_time"`
	OutTime    *caldate.Date `json:"out_time"`
}

// Apply overwrites the fields of c that are set in the patch.
func (patch Patch) Apply(c *EmployeeChange) {
	if patch.EmployeeID != nil {
		c.EmployeeID = *patch.EmployeeID
	}
	if patch.ProjectID != nil {
		c.ProjectID = *patch.ProjectID
	}
	if patch.InTime != nil {
		c.InTime = *patch.InTime
	}
	if patch.OutTime != nil {
		c.OutTime = caldate.Ptr(*patch.OutTime)
	}
}

// Filter selects employee changes on list. Nil fields don't constrain.
type Filter struct {
	ID         *string
	EmployeeID *string
	ProjectID  *string
	InTime     *caldate.Date
	// OutTime only matches closed assignments.
	OutTime *caldate.Date
}

// Matches reports whether c passes every set field of the filter.
func (f Filter) Matches(c EmployeeChange) bool {
	return match.Equal(f.ID, c.ID) &&
		match.Equal(f.EmployeeID, c.EmployeeID) &&
		match.Equal(f.ProjectID, c.ProjectID) &&
		match.Equal(f.InTime, c.InTime) &&
		match.EqualOptional(f.OutTime, c.OutTime)
}
