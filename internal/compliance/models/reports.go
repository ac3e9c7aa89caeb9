package models

import (
	"time"

	id "complytrack/pkg/domain"
)

// ListFilter narrows catalog queries. TenantID is mandatory; everything else
// is optional (zero value = no filter).
type ListFilter struct {
	TenantID       id.TenantID
	SiteID         *id.SiteID
	Category       id.Category
	ComplianceType string
	Priority       id.Priority
	AssignedTo     id.UserID
}

// Page carries pagination inputs. Limit is clamped by the service.
type Page struct {
	Number int
	Limit  int
}

// RequirementPage is one page of catalog results plus the total count for
// pagination.
type RequirementPage struct {
	Items      []*Requirement `json:"items"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

// CreateResult is the outcome of a requirement creation. LinkageErr carries
// the best-effort equipment linkage failure, if any: the requirement itself
// was still created, and callers must not assume the child exists.
type CreateResult struct {
	Requirement *Requirement
	Equipment   *Equipment
	LinkageErr  error
}

// AuditRunResult is the run-level summary returned by the audit engine.
// Statistics reflect only this run's snapshot; a concurrent run may disagree
// slightly (last-write-wins per record).
type AuditRunResult struct {
	TotalRequirements        int       `json:"total_requirements"`
	CompliantRequirements    int       `json:"compliant_requirements"`
	NonCompliantRequirements int       `json:"non_compliant_requirements"`
	OverdueInspections       int       `json:"overdue_inspections"`
	CriticalViolations       int       `json:"critical_violations"`
	NewComplianceRate        int       `json:"new_compliance_rate"`
	RequirementsUpdated      int       `json:"requirements_updated"`
	FailedUpdates            int       `json:"failed_updates"`
	ConcurrentRunDetected    bool      `json:"concurrent_run_detected"`
	AuditDate                time.Time `json:"audit_date"`
}

// OverdueItem is one overdue requirement with its dashboard classification.
type OverdueItem struct {
	Requirement *Requirement `json:"requirement"`
	DaysOverdue int          `json:"days_overdue"`
	IsCritical  bool         `json:"is_critical"`
}

// OverdueReport lists overdue requirements oldest-due-date-first.
type OverdueReport struct {
	Items              []OverdueItem `json:"items"`
	TotalOverdue       int           `json:"total_overdue"`
	CriticalOverdue    int           `json:"critical_overdue"`
	AverageDaysOverdue int           `json:"average_days_overdue"`
}

// UpcomingItem is one requirement due within the report horizon.
type UpcomingItem struct {
	Requirement  *Requirement `json:"requirement"`
	DaysUntilDue int          `json:"days_until_due"`
	IsUrgent     bool         `json:"is_urgent"`
	IsCritical   bool         `json:"is_critical"`
}

// UpcomingReport lists requirements coming due, soonest first.
type UpcomingReport struct {
	Items         []UpcomingItem `json:"items"`
	TotalTasks    int            `json:"total_tasks"`
	UrgentTasks   int            `json:"urgent_tasks"`
	CriticalTasks int            `json:"critical_tasks"`
	HorizonDays   int            `json:"horizon_days"`
}

// StatisticsFilter narrows the statistics report.
type StatisticsFilter struct {
	TenantID id.TenantID
	SiteID   *id.SiteID
	// Optional created-at range; zero values mean unbounded.
	From time.Time
	To   time.Time
}

// StatisticsReport breaks down current non-deleted requirements. The overdue
// count is recomputed live from stored due dates; only the status breakdown
// depends on a prior audit run being current.
type StatisticsReport struct {
	TotalRequirements  int            `json:"total_requirements"`
	OverdueInspections int            `json:"overdue_inspections"`
	ByCategory         map[string]int `json:"by_category"`
	ByStatus           map[string]int `json:"by_status"`
	ByPriority         map[string]int `json:"by_priority"`
}
