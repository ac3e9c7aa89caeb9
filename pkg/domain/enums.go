package domain

import dErrors "complytrack/pkg/domain-errors"

// Category is the domain area a compliance requirement belongs to.
// Invariant: the value must be one of the supported categories.
//
// Usage: construct via ParseCategory at trust boundaries to enforce the
// allowlist; direct casting bypasses validation.
type Category string

const (
	CategoryEquipment     Category = "equipment"
	CategorySafety        Category = "safety"
	CategoryDocumentation Category = "documentation"
	CategoryTraining      Category = "training"
)

// validCategories is the single source of truth for valid categories.
var validCategories = map[Category]bool{
	CategoryEquipment:     true,
	CategorySafety:        true,
	CategoryDocumentation: true,
	CategoryTraining:      true,
}

// ParseCategory constructs a Category from external input.
func ParseCategory(s string) (Category, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "category cannot be empty")
	}
	c := Category(s)
	if !c.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid category")
	}
	return c, nil
}

func (c Category) IsValid() bool  { return validCategories[c] }
func (c Category) String() string { return string(c) }

// Frequency is the recurrence cadence used to compute inspection due dates.
type Frequency string

const (
	FrequencyDaily     Frequency = "daily"
	FrequencyWeekly    Frequency = "weekly"
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyAnnually  Frequency = "annually"
)

var validFrequencies = map[Frequency]bool{
	FrequencyDaily:     true,
	FrequencyWeekly:    true,
	FrequencyMonthly:   true,
	FrequencyQuarterly: true,
	FrequencyAnnually:  true,
}

// ParseFrequency constructs a Frequency from external input.
func ParseFrequency(s string) (Frequency, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "frequency cannot be empty")
	}
	f := Frequency(s)
	if !f.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid frequency")
	}
	return f, nil
}

func (f Frequency) IsValid() bool  { return validFrequencies[f] }
func (f Frequency) String() string { return string(f) }

// Label returns the human-readable cadence description used in dashboard
// text. The switch is exhaustive over the declared frequencies; an unknown
// value falls back to the raw string so bad data stays visible.
func (f Frequency) Label() string {
	switch f {
	case FrequencyDaily:
		return "every day"
	case FrequencyWeekly:
		return "every week"
	case FrequencyMonthly:
		return "every month"
	case FrequencyQuarterly:
		return "every quarter"
	case FrequencyAnnually:
		return "every year"
	default:
		return string(f)
	}
}

// Priority ranks how severe a lapsed requirement is for dashboards.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var validPriorities = map[Priority]bool{
	PriorityLow:    true,
	PriorityMedium: true,
	PriorityHigh:   true,
}

// ParsePriority constructs a Priority from external input.
func ParsePriority(s string) (Priority, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "priority cannot be empty")
	}
	p := Priority(s)
	if !p.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid priority")
	}
	return p, nil
}

func (p Priority) IsValid() bool  { return validPriorities[p] }
func (p Priority) String() string { return string(p) }

// RequirementStatus is the compliance lifecycle state of a requirement.
// pending is the initial state before any inspection completes; compliant and
// non_compliant are the only two states the audit run engine will assign.
type RequirementStatus string

const (
	StatusPending      RequirementStatus = "pending"
	StatusCompliant    RequirementStatus = "compliant"
	StatusNonCompliant RequirementStatus = "non_compliant"
)

var validStatuses = map[RequirementStatus]bool{
	StatusPending:      true,
	StatusCompliant:    true,
	StatusNonCompliant: true,
}

// ParseRequirementStatus constructs a RequirementStatus from external input.
func ParseRequirementStatus(s string) (RequirementStatus, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "status cannot be empty")
	}
	st := RequirementStatus(s)
	if !st.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid status")
	}
	return st, nil
}

func (s RequirementStatus) IsValid() bool  { return validStatuses[s] }
func (s RequirementStatus) String() string { return string(s) }

// ActionText returns the operator-facing next step for a requirement in this
// status. Exhaustive over the declared statuses.
func (s RequirementStatus) ActionText() string {
	switch s {
	case StatusPending:
		return "schedule initial inspection"
	case StatusCompliant:
		return "no action required"
	case StatusNonCompliant:
		return "inspection overdue, corrective action required"
	default:
		return "review requirement"
	}
}
