package project

import (
	"strings"

	"github.com/ganot/po-manager/internal/caldate"
	"github.com/ganot/po-manager/internal/domain/match"
)

// Project is an outsourced project with its effort estimate and price.
type Project struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Code             string       `json:"code"`
	ReleaseDate      caldate.Date `json:"release_date"`
	PlanDeliveryDate caldate.Date `json:"plan_delivery_date"`
	TechDays         int          `json:"tech_days"`
	TestDays         int          `json:"test_days"`
	Price            float64      `json:"price"`
	PM               string       `json:"pm"`
}

func (p Project) RecordID() string { return p.ID }

// TotalDays is the technical plus testing effort in person-days.
func (p Project) TotalDays() int {
	return p.TechDays + p.TestDays
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	Name             string       `json:"name"`
	Code             string       `json:"code"`
	ReleaseDate      caldate.Date `json:"release_date"`
	PlanDeliveryDate caldate.Date `json:"plan_delivery_date"`
	TechDays         int          `json:"tech_days"`
	TestDays         int          `json:"test_days"`
	Price            float64      `json:"price"`
	PM               string       `json:"pm"`
}

// Patch holds the fields to overwrite on update. Nil fields are left untouched.
type Patch struct {
	Name             *string       `json:"name"`
	Code             *string       `json:"code"`
	ReleaseDate      *caldate.Date `json:"release_date"`
	PlanDeliveryDate *caldate.Date `json:"plan_delivery_date"`
	TechDays         *int          `json:"tech_days"`
	TestDays         *int          `json:"test_days"`
	Price            *float64      `json:"price"`
	PM               *string       `json:"pm"`
}

// Apply overwrites the fields of p that are set in the patch.
func (patch Patch) Apply(p *Project) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Code != nil {
		p.Code = *patch.Code
	}
	if patch.ReleaseDate != nil {
		p.ReleaseDate = *patch.ReleaseDate
	}
	if patch.PlanDeliveryDate != nil {
		p.PlanDeliveryDate = *patch.PlanDeliveryDate
	}
	if patch.TechDays != nil {
		p.TechDays = *patch.TechDays
	}
	if patch.TestDays != nil {
		p.TestDays = *patch.TestDays
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.PM != nil {
		p.PM = *patch.PM
	}
}

// Filter selects projects on list. Nil fields don't constrain.
type Filter struct {
	ID *string
	// NameOrCode matches a substring of the name or the code.
	NameOrCode *string
	PM         *string
	// ReleaseDateFuzzy matches a substring of the YYYY-MM-DD release date, e.g. "2025-03".
	ReleaseDateFuzzy      *string
	PlanDeliveryDateFuzzy *string
	Price                 *float64
	// Days matches TotalDays.
	Days *int
}

// Matches reports whether p passes every set field of the filter.
func (f Filter) Matches(p Project) bool {
	return match.Equal(f.ID, p.ID) &&
		match.ContainsAny(f.NameOrCode, p.Name, p.Code) &&
		match.Contains(f.PM, p.PM) &&
		match.Contains(f.ReleaseDateFuzzy, p.ReleaseDate.String()) &&
		match.Contains(f.PlanDeliveryDateFuzzy, p.PlanDeliveryDate.String()) &&
		match.Equal(f.Price, p.Price) &&
		match.Equal(f.Days, p.TotalDays())
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
