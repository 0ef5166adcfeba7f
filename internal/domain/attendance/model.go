package attendance

import (
	"github.com/ganot/po-manager/internal/caldate"
	"github.com/ganot/po-manager/internal/domain/match"
)

// DateType classifies an attendance record.
type DateType string

const (
	DateTypeLeave             DateType = "Leave"
	DateTypeCompensatoryLeave DateType = "CompensatoryLeave"
	DateTypeOvertime          DateType = "Overtime"
)

// Valid reports whether t is a known attendance type.
func (t DateType) Valid() bool {
	switch t {
	case DateTypeLeave, DateTypeCompensatoryLeave, DateTypeOvertime:
		return true
	}
	return false
}

// Attendance is a leave, compensatory leave or overtime span for one employee.
// StartHalf and EndHalf mark that only half of the boundary day counts.
type Attendance struct {
	ID         string        `json:"id"`
	StartTime  caldate.Date  `json:"start_time"`
	EndTime    *caldate.Date `json:"end_time,omitempty"`
	EmployeeID string        `json:"employee_id"`
	DateType   DateType      `json:"date_type"`
	StartHalf  bool          `json:"start_half"`
	EndHalf    bool          `json:"end_half"`
}

func (a Attendance) RecordID() string { return a.ID }

// CreateRequest defines attendance creation inputs.
type CreateRequest struct {
	StartTime  caldate.Date  `json:"start_time"`
	EndTime    *caldate.Date `json:"end_time"`
	EmployeeID string        `json:"employee_id"`
	DateType   DateType      `json:"date_type"`
	StartHalf  bool          `json:"start_half"`
	EndHalf    bool          `json:"end_half"`
}

// Patch holds the fields to overwrite on update. Nil fields are left untouched.
type Patch struct {
	StartTime  *caldate.Date `json:"start_time"`
	EndTime    *caldate.Date `json:"end_time"`
	EmployeeID *string       `json:"employee_id"`
	DateType   *DateType     `json:"date_type"`
	StartHalf  *bool         `json:"start_half"`
	EndHalf    *bool         `json:"end_half"`
}

// Apply overwrites the fields of a that are set in the patch.
func (patch Patch) Apply(a *Attendance) {
	if patch.StartTime != nil {
		a.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		a.EndTime = caldate.Ptr(*patch.EndTime)
	}
	if patch.EmployeeID != nil {
		a.EmployeeID = *patch.EmployeeID
	}
	if patch.DateType != nil {
		a.DateType = *patch.DateType
	}
	if patch.StartHalf != nil {
		a.StartHalf = *patch.StartHalf
	}
	if patch.EndHalf != nil {
		a.EndHalf = *patch.EndHalf
	}
}

// Filter selects attendance records on list. Nil fields don't constrain.
type Filter struct {
	ID         *string
	EmployeeID *string
	DateType   *DateType
	StartTime  *caldate.Date
	// EndTime only matches records that have an end date.
	EndTime   *caldate.Date
	StartHalf *bool
	EndHalf   *bool
}

// Matches reports whether a passes every set field of the filter.
func (f Filter) Matches(a Attendance) bool {
	return match.Equal(f.ID, a.ID) &&
		match.Equal(f.EmployeeID, a.EmployeeID) &&
		match.Equal(f.DateType, a.DateType) &&
		match.Equal(f.StartTime, a.StartTime) &&
		match.EqualOptional(f.EndTime, a.EndTime) &&
		match.Equal(f.StartHalf, a.StartHalf) &&
		match.Equal(f.EndHalf, a.EndHalf)
}
