package service

import (
	"context"
	"math"

	"complytrack/internal/compliance/models"
	id "complytrack/pkg/domain"
	dErrors "complytrack/pkg/domain-errors"
	"complytrack/pkg/requestcontext"
)

// Classification thresholds for dashboard severity.
const (
	criticalOverdueDays  = 30
	urgentDaysUntilDue   = 7
	criticalDaysUntilDue = 3
	defaultHorizonDays   = 30
)

// OverdueInspections lists requirements past their due date, oldest due date
// first, with per-item severity classification. Classification is computed
// live from stored due dates and does not require a prior audit run.
func (s *Service) OverdueInspections(ctx context.Context, tenantID id.TenantID, siteID *id.SiteID) (*models.OverdueReport, error) {
	if err := requireTenantID(tenantID); err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)

	requirements, err := s.requirements.ListActive(ctx, tenantID, siteID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load requirements")
	}

	report := &models.OverdueReport{Items: []models.OverdueItem{}}
	totalDays := 0
	// ListActive is ordered by due date ascending, which is exactly
	// oldest-due-first for the overdue subset.
	for _, req := range requirements {
		if !req.IsOverdue(now) {
			continue
		}
		days := req.DaysOverdue(now)
		item := models.OverdueItem{
			Requirement: req,
			DaysOverdue: days,
			IsCritical:  days > criticalOverdueDays || req.Priority == id.PriorityHigh,
		}
		report.Items = append(report.Items, item)
		totalDays += days
		if item.IsCritical {
			report.CriticalOverdue++
		}
	}
	report.TotalOverdue = len(report.Items)
	if report.TotalOverdue > 0 {
		report.AverageDaysOverdue = int(math.Round(float64(totalDays) / float64(report.TotalOverdue)))
	}
	return report, nil
}

// UpcomingTasks lists requirements coming due within the horizon, soonest
// first. A non-positive horizon falls back to the configured default.
func (s *Service) UpcomingTasks(ctx context.Context, tenantID id.TenantID, siteID *id.SiteID, horizonDays int) (*models.UpcomingReport, error) {
	if err := requireTenantID(tenantID); err != nil {
		return nil, err
	}
	if horizonDays <= 0 {
		horizonDays = s.upcomingHorizon
	}
	now := requestcontext.Now(ctx)

	requirements, err := s.requirements.ListActive(ctx, tenantID, siteID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load requirements")
	}

	report := &models.UpcomingReport{Items: []models.UpcomingItem{}, HorizonDays: horizonDays}
	for _, req := range requirements {
		days := req.DaysUntilDue(now)
		if days < 0 || days > horizonDays {
			continue
		}
		item := models.UpcomingItem{
			Requirement:  req,
			DaysUntilDue: days,
			IsUrgent:     days <= urgentDaysUntilDue,
			IsCritical:   days <= criticalDaysUntilDue,
		}
		report.Items = append(report.Items, item)
		if item.IsUrgent {
			report.UrgentTasks++
		}
		if item.IsCritical {
			report.CriticalTasks++
		}
	}
	report.TotalTasks = len(report.Items)
	return report, nil
}

// Statistics breaks down the tenant's current requirements by category,
// status, and priority. The overdue count is recomputed live from stored due
// dates; only the status breakdown depends on a prior audit run being
// current.
func (s *Service) Statistics(ctx context.Context, filter models.StatisticsFilter) (*models.StatisticsReport, error) {
	if err := requireTenantID(filter.TenantID); err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)

	requirements, err := s.requirements.ListActive(ctx, filter.TenantID, filter.SiteID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load requirements")
	}

	report := &models.StatisticsReport{
		ByCategory: map[string]int{},
		ByStatus:   map[string]int{},
		ByPriority: map[string]int{},
	}
	for _, req := range requirements {
		if !filter.From.IsZero() && req.CreatedAt.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && req.CreatedAt.After(filter.To) {
			continue
		}
		report.TotalRequirements++
		report.ByCategory[req.Category.String()]++
		report.ByStatus[req.Status.String()]++
		report.ByPriority[req.Priority.String()]++
		if req.IsOverdue(now) {
			report.OverdueInspections++
		}
	}
	return report, nil
}
