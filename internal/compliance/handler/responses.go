package handler

import (
	"time"

	"complytrack/internal/compliance/models"
)

// RequirementResponse is the HTTP shape of a requirement. Schedule dates are
// rendered date-only; record timestamps stay RFC 3339.
type RequirementResponse struct {
	ID             string `json:"id"`
	TenantID       string `json:"tenant_id"`
	SiteID         string `json:"site_id,omitempty"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	Category       string `json:"category"`
	ComplianceType string `json:"compliance_type,omitempty"`
	Priority       string `json:"priority"`

	Frequency          string `json:"frequency"`
	FrequencyLabel     string `json:"frequency_label"`
	LastInspectionDate string `json:"last_inspection_date,omitempty"`
	NextInspectionDate string `json:"next_inspection_date"`
	LastAuditDate      string `json:"last_audit_date,omitempty"`

	Status     string `json:"status"`
	ActionText string `json:"action_text"`
	AssignedTo string `json:"assigned_to,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func formatDate(t time.Time) string {
	return t.Format(dateLayout)
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatDate(*t)
}

// FromRequirement converts a domain requirement to its HTTP shape.
func FromRequirement(req *models.Requirement) *RequirementResponse {
	resp := &RequirementResponse{
		ID:                 req.ID.String(),
		TenantID:           req.TenantID.String(),
		Title:              req.Title,
		Description:        req.Description,
		Category:           req.Category.String(),
		ComplianceType:     req.ComplianceType,
		Priority:           req.Priority.String(),
		Frequency:          req.Frequency.String(),
		FrequencyLabel:     req.Frequency.Label(),
		LastInspectionDate: formatDatePtr(req.LastInspectionDate),
		NextInspectionDate: formatDate(req.NextInspectionDate),
		LastAuditDate:      formatDatePtr(req.LastAuditDate),
		Status:             req.Status.String(),
		ActionText:         req.Status.ActionText(),
		CreatedAt:          req.CreatedAt,
		UpdatedAt:          req.UpdatedAt,
	}
	if req.SiteID != nil {
		resp.SiteID = req.SiteID.String()
	}
	if !req.AssignedTo.IsNil() {
		resp.AssignedTo = req.AssignedTo.String()
	}
	return resp
}

// EquipmentResponse is the HTTP shape of an equipment child record.
type EquipmentResponse struct {
	ID                  string    `json:"id"`
	RequirementID       string    `json:"requirement_id"`
	EquipmentType       string    `json:"equipment_type,omitempty"`
	Status              string    `json:"status"`
	NextInspectionDate  string    `json:"next_inspection_date"`
	NextMaintenanceDate string    `json:"next_maintenance_date"`
	CreatedAt           time.Time `json:"created_at"`
}

// FromEquipment converts a domain equipment record to its HTTP shape.
func FromEquipment(eq *models.Equipment) *EquipmentResponse {
	return &EquipmentResponse{
		ID:                  eq.ID.String(),
		RequirementID:       eq.RequirementID.String(),
		EquipmentType:       eq.EquipmentType,
		Status:              eq.Status.String(),
		NextInspectionDate:  formatDate(eq.NextInspectionDate),
		NextMaintenanceDate: formatDate(eq.NextMaintenanceDate),
		CreatedAt:           eq.CreatedAt,
	}
}

// CreateRequirementResponse is the HTTP response for
// POST /compliance/requirements. LinkageError is set when the best-effort
// equipment child creation failed; the requirement itself was still created.
type CreateRequirementResponse struct {
	Requirement  *RequirementResponse `json:"requirement"`
	Equipment    *EquipmentResponse   `json:"equipment,omitempty"`
	LinkageError string               `json:"linkage_error,omitempty"`
}

// FromCreateResult converts a creation outcome to its HTTP shape.
func FromCreateResult(result *models.CreateResult) *CreateRequirementResponse {
	resp := &CreateRequirementResponse{
		Requirement: FromRequirement(result.Requirement),
	}
	if result.Equipment != nil {
		resp.Equipment = FromEquipment(result.Equipment)
	}
	if result.LinkageErr != nil {
		resp.LinkageError = "equipment record could not be created"
	}
	return resp
}

// ListRequirementsResponse is one page of catalog results.
type ListRequirementsResponse struct {
	Items      []*RequirementResponse `json:"items"`
	Total      int                    `json:"total"`
	Page       int                    `json:"page"`
	Limit      int                    `json:"limit"`
	TotalPages int                    `json:"total_pages"`
}

// FromPage converts a catalog page to its HTTP shape.
func FromPage(page *models.RequirementPage) *ListRequirementsResponse {
	items := make([]*RequirementResponse, 0, len(page.Items))
	for _, req := range page.Items {
		items = append(items, FromRequirement(req))
	}
	return &ListRequirementsResponse{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	}
}

// AuditRunResponse is the HTTP response for POST /compliance/audit/run.
type AuditRunResponse struct {
	TotalRequirements        int    `json:"total_requirements"`
	CompliantRequirements    int    `json:"compliant_requirements"`
	NonCompliantRequirements int    `json:"non_compliant_requirements"`
	OverdueInspections       int    `json:"overdue_inspections"`
	CriticalViolations       int    `json:"critical_violations"`
	NewComplianceRate        int    `json:"new_compliance_rate"`
	RequirementsUpdated      int    `json:"requirements_updated"`
	FailedUpdates            int    `json:"failed_updates"`
	ConcurrentRunDetected    bool   `json:"concurrent_run_detected"`
	AuditDate                string `json:"audit_date"`
}

// FromAuditRun converts an audit run summary to its HTTP shape.
func FromAuditRun(result *models.AuditRunResult) *AuditRunResponse {
	return &AuditRunResponse{
		TotalRequirements:        result.TotalRequirements,
		CompliantRequirements:    result.CompliantRequirements,
		NonCompliantRequirements: result.NonCompliantRequirements,
		OverdueInspections:       result.OverdueInspections,
		CriticalViolations:       result.CriticalViolations,
		NewComplianceRate:        result.NewComplianceRate,
		RequirementsUpdated:      result.RequirementsUpdated,
		FailedUpdates:            result.FailedUpdates,
		ConcurrentRunDetected:    result.ConcurrentRunDetected,
		AuditDate:                formatDate(result.AuditDate),
	}
}

// OverdueItemResponse is one overdue requirement with its classification.
type OverdueItemResponse struct {
	Requirement *RequirementResponse `json:"requirement"`
	DaysOverdue int                  `json:"days_overdue"`
	IsCritical  bool                 `json:"is_critical"`
}

// OverdueReportResponse is the HTTP response for
// GET /compliance/reports/overdue.
type OverdueReportResponse struct {
	Items              []OverdueItemResponse `json:"items"`
	TotalOverdue       int                   `json:"total_overdue"`
	CriticalOverdue    int                   `json:"critical_overdue"`
	AverageDaysOverdue int                   `json:"average_days_overdue"`
}

// FromOverdueReport converts an overdue report to its HTTP shape.
func FromOverdueReport(report *models.OverdueReport) *OverdueReportResponse {
	items := make([]OverdueItemResponse, 0, len(report.Items))
	for _, item := range report.Items {
		items = append(items, OverdueItemResponse{
			Requirement: FromRequirement(item.Requirement),
			DaysOverdue: item.DaysOverdue,
			IsCritical:  item.IsCritical,
		})
	}
	return &OverdueReportResponse{
		Items:              items,
		TotalOverdue:       report.TotalOverdue,
		CriticalOverdue:    report.CriticalOverdue,
		AverageDaysOverdue: report.AverageDaysOverdue,
	}
}

// UpcomingItemResponse is one requirement inside the report horizon.
type UpcomingItemResponse struct {
	Requirement  *RequirementResponse `json:"requirement"`
	DaysUntilDue int                  `json:"days_until_due"`
	IsUrgent     bool                 `json:"is_urgent"`
	IsCritical   bool                 `json:"is_critical"`
}

// UpcomingReportResponse is the HTTP response for
// GET /compliance/reports/upcoming.
type UpcomingReportResponse struct {
	Items         []UpcomingItemResponse `json:"items"`
	TotalTasks    int                    `json:"total_tasks"`
	UrgentTasks   int                    `json:"urgent_tasks"`
	CriticalTasks int                    `json:"critical_tasks"`
	HorizonDays   int                    `json:"horizon_days"`
}

// FromUpcomingReport converts an upcoming report to its HTTP shape.
func FromUpcomingReport(report *models.UpcomingReport) *UpcomingReportResponse {
	items := make([]UpcomingItemResponse, 0, len(report.Items))
	for _, item := range report.Items {
		items = append(items, UpcomingItemResponse{
			Requirement:  FromRequirement(item.Requirement),
			DaysUntilDue: item.DaysUntilDue,
			IsUrgent:     item.IsUrgent,
			IsCritical:   item.IsCritical,
		})
	}
	return &UpcomingReportResponse{
		Items:         items,
		TotalTasks:    report.TotalTasks,
		UrgentTasks:   report.UrgentTasks,
		CriticalTasks: report.CriticalTasks,
		HorizonDays:   report.HorizonDays,
	}
}

// StatisticsResponse is the HTTP response for
// GET /compliance/reports/statistics.
type StatisticsResponse struct {
	TotalRequirements  int            `json:"total_requirements"`
	OverdueInspections int            `json:"overdue_inspections"`
	ByCategory         map[string]int `json:"by_category"`
	ByStatus           map[string]int `json:"by_status"`
	ByPriority         map[string]int `json:"by_priority"`
}

// FromStatistics converts a statistics report to its HTTP shape.
func FromStatistics(report *models.StatisticsReport) *StatisticsResponse {
	return &StatisticsResponse{
		TotalRequirements:  report.TotalRequirements,
		OverdueInspections: report.OverdueInspections,
		ByCategory:         report.ByCategory,
		ByStatus:           report.ByStatus,
		ByPriority:         report.ByPriority,
	}
}
