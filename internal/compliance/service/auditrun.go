package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"complytrack/internal/audit"
	"complytrack/internal/compliance/models"
	"complytrack/internal/lease"
	id "complytrack/pkg/domain"
	dErrors "complytrack/pkg/domain-errors"
	"complytrack/pkg/requestcontext"
)

// RunAudit re-evaluates every non-deleted requirement for the tenant
// (optionally scoped to one site) against "now" at date granularity.
//
// Each record is persisted individually: a failed write is logged and
// counted but never aborts the rest of the batch, and already-persisted
// updates are not rolled back. Statistics aggregate over this run's
// in-memory snapshot, so a concurrent run or operator edit may yield
// slightly different numbers; this is acceptable for dashboards and must not
// be relied on for correctness-critical decisions.
//
// An advisory per-tenant lease is taken for the duration of the run. When it
// cannot be obtained the run proceeds anyway and flags
// ConcurrentRunDetected in its result.
func (s *Service) RunAudit(ctx context.Context, tenantID id.TenantID, siteID *id.SiteID) (*models.AuditRunResult, error) {
	if err := requireTenantID(tenantID); err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)
	started := time.Now()

	concurrentDetected := false
	held, err := s.leaser.Obtain(ctx, "audit-run:"+tenantID.String(), s.leaseTTL)
	switch {
	case errors.Is(err, lease.ErrNotObtained):
		concurrentDetected = true
		if s.metrics != nil {
			s.metrics.LeaseContention.Inc()
		}
		s.logger.WarnContext(ctx, "audit run proceeding without lease",
			"tenant_id", tenantID,
		)
	case err != nil:
		// Lease infrastructure trouble must not block compliance audits.
		s.logger.WarnContext(ctx, "audit lease unavailable",
			"tenant_id", tenantID,
			"error", err,
		)
	default:
		defer func() {
			if releaseErr := held.Release(context.WithoutCancel(ctx)); releaseErr != nil {
				s.logger.WarnContext(ctx, "audit lease release failed",
					"tenant_id", tenantID,
					"error", releaseErr,
				)
			}
		}()
	}

	requirements, err := s.requirements.ListActive(ctx, tenantID, siteID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load requirements for audit")
	}

	updated := 0
	failed := 0
	flipped := 0
	for _, req := range requirements {
		statusChanged := req.Reevaluate(now)

		if err := s.requirements.Update(ctx, req); err != nil {
			failed++
			s.logger.ErrorContext(ctx, "audit update failed",
				"requirement_id", req.ID,
				"tenant_id", tenantID,
				"error", err,
			)
			continue
		}
		updated++
		if statusChanged {
			flipped++
		}
	}

	result := aggregate(requirements, now)
	result.RequirementsUpdated = updated
	result.FailedUpdates = failed
	result.ConcurrentRunDetected = concurrentDetected
	result.AuditDate = now

	if s.metrics != nil {
		s.metrics.AuditRuns.Inc()
		s.metrics.AuditRunDuration.Observe(time.Since(started).Seconds())
		s.metrics.FlippedNonCompliant.Add(float64(flipped))
	}

	s.emit(ctx, audit.ActionAuditRunCompleted, tenantID, tenantID.String(),
		fmt.Sprintf("total=%d non_compliant=%d updated=%d failed=%d",
			result.TotalRequirements, result.NonCompliantRequirements, updated, failed))

	s.logger.InfoContext(ctx, "audit run completed",
		"tenant_id", tenantID,
		"total", result.TotalRequirements,
		"non_compliant", result.NonCompliantRequirements,
		"overdue", result.OverdueInspections,
		"updated", updated,
		"failed", failed,
		"compliance_rate", result.NewComplianceRate,
		"concurrent_run_detected", concurrentDetected,
	)
	return result, nil
}

// aggregate computes the run statistics over the in-memory snapshot,
// including records whose persistence failed.
func aggregate(requirements []*models.Requirement, now time.Time) *models.AuditRunResult {
	result := &models.AuditRunResult{
		TotalRequirements: len(requirements),
	}
	for _, req := range requirements {
		switch req.Status {
		case id.StatusCompliant:
			result.CompliantRequirements++
		case id.StatusNonCompliant:
			result.NonCompliantRequirements++
		}
		if req.IsOverdue(now) {
			result.OverdueInspections++
		}
		if req.Status == id.StatusNonCompliant && req.Priority == id.PriorityHigh {
			result.CriticalViolations++
		}
	}
	if result.TotalRequirements > 0 {
		rate := float64(result.CompliantRequirements) / float64(result.TotalRequirements) * 100
		result.NewComplianceRate = int(math.Round(rate))
	}
	return result
}
