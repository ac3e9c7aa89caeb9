package models

import (
	"strings"
	"time"

	"complytrack/internal/compliance/schedule"
	id "complytrack/pkg/domain"
	dErrors "complytrack/pkg/domain-errors"
)

// Requirement is the aggregate root for a recurring compliance obligation.
//
// Invariants:
//   - TenantID is non-nil; every requirement belongs to exactly one tenant
//   - Category, Frequency, and Priority are valid enum members
//   - Title is non-empty
//   - NextInspectionDate is derived via schedule.NextDueDate unless
//     explicitly overridden; it is never zero for a compliant requirement
//   - Status transitions assigned by the audit engine are limited to
//     compliant and non_compliant; pending is the initial state only
//   - Soft-deleted requirements are excluded from every query and from
//     audit re-evaluation
//
// A requirement whose NextInspectionDate is strictly before "now" (date
// granularity) and whose status is not already non_compliant is stale and is
// corrected by the next audit run.
type Requirement struct {
	ID       id.RequirementID `json:"id"`
	TenantID id.TenantID      `json:"tenant_id"`
	SiteID   *id.SiteID       `json:"site_id,omitempty"`

	Title          string      `json:"title"`
	Description    string      `json:"description,omitempty"`
	Category       id.Category `json:"category"`
	ComplianceType string      `json:"compliance_type,omitempty"`
	Priority       id.Priority `json:"priority"`

	Frequency          id.Frequency `json:"frequency"`
	LastInspectionDate *time.Time   `json:"last_inspection_date,omitempty"`
	NextInspectionDate time.Time    `json:"next_inspection_date"`
	LastAuditDate      *time.Time   `json:"last_audit_date,omitempty"`

	Status     id.RequirementStatus `json:"status"`
	AssignedTo id.UserID            `json:"assigned_to,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	IsDeleted bool       `json:"-"`
	DeletedAt *time.Time `json:"-"`
}

// NewRequirementInput carries validated-at-the-boundary fields for creation.
// NextInspectionDate may be zero, in which case it is computed from Frequency
// anchored at "now".
type NewRequirementInput struct {
	TenantID           id.TenantID
	SiteID             *id.SiteID
	Title              string
	Description        string
	Category           id.Category
	ComplianceType     string
	Priority           id.Priority
	Frequency          id.Frequency
	NextInspectionDate time.Time
	AssignedTo         id.UserID
}

// NewRequirement validates the input and constructs a pending requirement.
// Missing priority defaults to medium; a zero due date is derived from the
// frequency anchored at now.
func NewRequirement(reqID id.RequirementID, input NewRequirementInput, now time.Time) (*Requirement, error) {
	if input.TenantID.IsNil() {
		return nil, dErrors.New(dErrors.CodeValidation, "tenant id is required")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "title is required")
	}
	if !input.Category.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "category is required")
	}
	if !input.Frequency.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "frequency is required")
	}

	priority := input.Priority
	if priority == "" {
		priority = id.PriorityMedium
	}
	if !priority.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "invalid priority")
	}

	nextDue := input.NextInspectionDate
	if nextDue.IsZero() {
		nextDue = schedule.NextDueDate(input.Frequency, now)
	}

	return &Requirement{
		ID:                 reqID,
		TenantID:           input.TenantID,
		SiteID:             input.SiteID,
		Title:              strings.TrimSpace(input.Title),
		Description:        input.Description,
		Category:           input.Category,
		ComplianceType:     input.ComplianceType,
		Priority:           priority,
		Frequency:          input.Frequency,
		NextInspectionDate: nextDue,
		Status:             id.StatusPending,
		AssignedTo:         input.AssignedTo,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// IsOverdue reports whether the requirement's due date is strictly before
// now at date granularity.
func (r *Requirement) IsOverdue(now time.Time) bool {
	return schedule.DateOnly(r.NextInspectionDate).Before(schedule.DateOnly(now))
}

// DaysOverdue returns how many whole days past due the requirement is.
// Zero or negative when not overdue.
func (r *Requirement) DaysOverdue(now time.Time) int {
	return schedule.DaysBetween(r.NextInspectionDate, now)
}

// DaysUntilDue returns how many whole days remain before the due date.
// Negative when overdue.
func (r *Requirement) DaysUntilDue(now time.Time) int {
	return schedule.DaysBetween(now, r.NextInspectionDate)
}

// Reevaluate applies one audit-run pass to the requirement: an overdue
// record that is not already non_compliant flips to non_compliant, and the
// audit stamp is always refreshed. Returns true when the status changed.
func (r *Requirement) Reevaluate(now time.Time) bool {
	flipped := false
	if r.IsOverdue(now) && r.Status != id.StatusNonCompliant {
		r.Status = id.StatusNonCompliant
		flipped = true
	}
	stamp := now
	r.LastAuditDate = &stamp
	r.UpdatedAt = now
	return flipped
}

// ApplyDeletion marks the requirement soft-deleted. Deletion cascades to
// equipment children at the service layer.
func (r *Requirement) ApplyDeletion(now time.Time) {
	r.IsDeleted = true
	stamp := now
	r.DeletedAt = &stamp
	r.UpdatedAt = now
}
