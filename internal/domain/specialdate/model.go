package specialdate

import (
	"github.com/ganot/po-manager/internal/caldate"
	"github.com/ganot/po-manager/internal/domain/match"
)

// DateType says how a special date overrides the default calendar.
type DateType string

const (
	// DateTypeInclude counts the span as a holiday.
	DateTypeInclude DateType = "Include"
	// DateTypeExclude counts the span as a workday even on a weekend.
	DateTypeExclude DateType = "Exclude"
)

func (t DateType) Valid() bool {
	return t == DateTypeInclude || t == DateTypeExclude
}

// SpecialDate is a calendar exception covering one day or a span.
type SpecialDate struct {
	ID        string        `json:"id"`
	StartTime caldate.Date  `json:"start_time"`
	EndTime   *caldate.Date `json:"end_time,omitempty"`
	DateType  DateType      `json:"date_type"`
}

func (d SpecialDate) RecordID() string { return d.ID }

type CreateRequest struct {
	StartTime caldate.Date  `json:"start_time"`
	EndTime   *caldate.Date `json:"end_time"`
	DateType  DateType      `json:"date_type"`
}

// Patch holds the fields to overwrite on update. Nil fields are left untouched.
type Patch struct {
	StartTime *caldate.Date `json:"start_time"`
	EndTime   *caldate.Date `json:"end_time"`
	DateType  *DateType     `json:"date_type"`
}

func (patch Patch) Apply(d *SpecialDate) {
	if patch.StartTime != nil {
		d.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		d.EndTime = caldate.Ptr(*patch.EndTime)
	}
	if patch.DateType != nil {
		d.DateType = *patch.DateType
	}
}

// Filter selects special dates on list. Nil fields don't constrain.
type Filter struct {
	ID        *string
	StartTime *caldate.Date
	EndTime   *caldate.Date
	DateType  *DateType
}

func (f Filter) Matches(d SpecialDate) bool {
	return match.Equal(f.ID, d.ID) &&
		match.Equal(f.StartTime, d.StartTime) &&
		match.EqualOptional(f.EndTime, d.EndTime) &&
		match.Equal(f.DateType, d.DateType)
}
