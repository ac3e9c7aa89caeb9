package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"complytrack/internal/audit"
	"complytrack/internal/compliance/models"
	"complytrack/internal/compliance/schedule"
	id "complytrack/pkg/domain"
	dErrors "complytrack/pkg/domain-errors"
	"complytrack/pkg/platform/sentinel"
	"complytrack/pkg/requestcontext"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// CreateRequirement validates and persists a new requirement. When no
// explicit due date is supplied the frequency is anchored at "now". For
// equipment-category requirements a child record is created best-effort: a
// linkage failure is logged and reported in the result but never fails the
// create, so a requirement can exist without its equipment child.
func (s *Service) CreateRequirement(ctx context.Context, input models.NewRequirementInput) (*models.CreateResult, error) {
	now := requestcontext.Now(ctx)

	req, err := models.NewRequirement(id.NewRequirementID(), input, now)
	if err != nil {
		return nil, err
	}

	if err := s.requirements.Create(ctx, req); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create requirement")
	}

	result := &models.CreateResult{Requirement: req}
	if req.Category == id.CategoryEquipment {
		eq := models.NewEquipmentForRequirement(id.NewEquipmentID(), req, now)
		if err := s.equipment.Create(ctx, eq); err != nil {
			s.logger.WarnContext(ctx, "equipment linkage failed",
				"requirement_id", req.ID,
				"tenant_id", req.TenantID,
				"error", err,
			)
			if s.metrics != nil {
				s.metrics.LinkageFailures.Inc()
			}
			result.LinkageErr = err
		} else {
			result.Equipment = eq
		}
	}

	s.emit(ctx, audit.ActionRequirementCreated, req.TenantID, req.ID.String(), req.Title)
	if s.metrics != nil {
		s.metrics.RequirementsCreated.Inc()
	}
	return result, nil
}

// ListRequirements returns one page of the tenant's catalog.
func (s *Service) ListRequirements(ctx context.Context, filter models.ListFilter, page models.Page) (*models.RequirementPage, error) {
	if err := requireTenantID(filter.TenantID); err != nil {
		return nil, err
	}

	if page.Number < 1 {
		page.Number = 1
	}
	if page.Limit < 1 {
		page.Limit = defaultPageLimit
	}
	if page.Limit > maxPageLimit {
		page.Limit = maxPageLimit
	}
	offset := (page.Number - 1) * page.Limit

	items, total, err := s.requirements.List(ctx, filter, page.Limit, offset)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list requirements")
	}

	totalPages := total / page.Limit
	if total%page.Limit != 0 {
		totalPages++
	}
	return &models.RequirementPage{
		Items:      items,
		Total:      total,
		Page:       page.Number,
		Limit:      page.Limit,
		TotalPages: totalPages,
	}, nil
}

// GetRequirement fetches one requirement scoped to the tenant.
func (s *Service) GetRequirement(ctx context.Context, tenantID id.TenantID, reqID id.RequirementID) (*models.Requirement, error) {
	if err := requireTenantID(tenantID); err != nil {
		return nil, err
	}
	req, err := s.requirements.FindByID(ctx, tenantID, reqID)
	if err != nil {
		return nil, wrapRequirementErr(err)
	}
	return req, nil
}

// UpdatePatch carries the optional fields of a requirement update. Nil means
// "leave unchanged".
type UpdatePatch struct {
	Title              *string
	Description        *string
	Category           *id.Category
	ComplianceType     *string
	Priority           *id.Priority
	Frequency          *id.Frequency
	Status             *id.RequirementStatus
	NextInspectionDate *time.Time
	LastInspectionDate *time.Time
	AssignedTo         *id.UserID
	SiteID             *id.SiteID
}

// UpdateRequirement applies a patch. When the frequency changes and the
// caller does not also supply an explicit due date, the next inspection date
// is recomputed from the new frequency anchored at "now".
func (s *Service) UpdateRequirement(ctx context.Context, tenantID id.TenantID, reqID id.RequirementID, patch UpdatePatch) (*models.Requirement, error) {
	if err := requireTenantID(tenantID); err != nil {
		return nil, err
	}
	now := requestcontext.Now(ctx)

	req, err := s.requirements.FindByID(ctx, tenantID, reqID)
	if err != nil {
		return nil, wrapRequirementErr(err)
	}

	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return nil, dErrors.New(dErrors.CodeValidation, "title cannot be empty")
		}
		req.Title = title
	}
	if patch.Description != nil {
		req.Description = *patch.Description
	}
	if patch.Category != nil {
		if !patch.Category.IsValid() {
			return nil, dErrors.New(dErrors.CodeValidation, "invalid category")
		}
		req.Category = *patch.Category
	}
	if patch.ComplianceType != nil {
		req.ComplianceType = *patch.ComplianceType
	}
	if patch.Priority != nil {
		if !patch.Priority.IsValid() {
			return nil, dErrors.New(dErrors.CodeValidation, "invalid priority")
		}
		req.Priority = *patch.Priority
	}
	if patch.Status != nil {
		if !patch.Status.IsValid() {
			return nil, dErrors.New(dErrors.CodeValidation, "invalid status")
		}
		req.Status = *patch.Status
	}
	if patch.LastInspectionDate != nil {
		req.LastInspectionDate = patch.LastInspectionDate
	}
	if patch.AssignedTo != nil {
		req.AssignedTo = *patch.AssignedTo
	}
	if patch.SiteID != nil {
		req.SiteID = patch.SiteID
	}

	frequencyChanged := false
	if patch.Frequency != nil && *patch.Frequency != req.Frequency {
		if !patch.Frequency.IsValid() {
			return nil, dErrors.New(dErrors.CodeValidation, "invalid frequency")
		}
		req.Frequency = *patch.Frequency
		frequencyChanged = true
	}
	switch {
	case patch.NextInspectionDate != nil:
		req.NextInspectionDate = *patch.NextInspectionDate
	case frequencyChanged:
		req.NextInspectionDate = schedule.NextDueDate(req.Frequency, now)
	}

	req.UpdatedAt = now

	if err := s.requirements.Update(ctx, req); err != nil {
		return nil, wrapRequirementErr(err)
	}

	s.emit(ctx, audit.ActionRequirementUpdated, req.TenantID, req.ID.String(), req.Title)
	return req, nil
}

// DeleteRequirement soft-deletes the requirement and cascades the deletion
// to its equipment children.
func (s *Service) DeleteRequirement(ctx context.Context, tenantID id.TenantID, reqID id.RequirementID) error {
	if err := requireTenantID(tenantID); err != nil {
		return err
	}
	now := requestcontext.Now(ctx)

	req, err := s.requirements.FindByID(ctx, tenantID, reqID)
	if err != nil {
		return wrapRequirementErr(err)
	}

	req.ApplyDeletion(now)
	if err := s.requirements.Update(ctx, req); err != nil {
		return wrapRequirementErr(err)
	}

	if _, err := s.equipment.SoftDeleteByRequirement(ctx, reqID, now); err != nil {
		// The parent is already gone; a failed cascade leaves orphaned
		// children that the next cascade attempt will catch.
		s.logger.WarnContext(ctx, "equipment cascade delete failed",
			"requirement_id", reqID,
			"tenant_id", tenantID,
			"error", err,
		)
	}

	s.emit(ctx, audit.ActionRequirementDeleted, tenantID, reqID.String(), req.Title)
	return nil
}

func wrapRequirementErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "requirement not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "requirement store failure")
}
