package handler

import (
	"strings"
	"time"

	"complytrack/internal/compliance/models"
	"complytrack/internal/compliance/service"
	id "complytrack/pkg/domain"
	dErrors "complytrack/pkg/domain-errors"
)

// dateLayout is the wire format for schedule dates. Timestamps
// (created_at, updated_at) stay RFC 3339.
const dateLayout = "2006-01-02"

const maxTitleLength = 500

func parseDate(s, field string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, dErrors.New(dErrors.CodeValidation, field+" must be a YYYY-MM-DD date")
	}
	return t, nil
}

// CreateRequirementRequest is the HTTP request body for
// POST /compliance/requirements.
type CreateRequirementRequest struct {
	Title              string `json:"title"`
	Description        string `json:"description"`
	Category           string `json:"category"`
	ComplianceType     string `json:"compliance_type"`
	Priority           string `json:"priority"`
	Frequency          string `json:"frequency"`
	NextInspectionDate string `json:"next_inspection_date"`
	SiteID             string `json:"site_id"`
	AssignedTo         string `json:"assigned_to"`

	// Parsed values (populated by Validate)
	parsedCategory  id.Category
	parsedPriority  id.Priority
	parsedFrequency id.Frequency
	parsedDueDate   time.Time
	parsedSiteID    *id.SiteID
	parsedAssignee  id.UserID
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *CreateRequirementRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return dErrors.New(dErrors.CodeValidation, "title is required")
	}
	if len(r.Title) > maxTitleLength {
		return dErrors.New(dErrors.CodeValidation, "title is too long")
	}

	category, err := id.ParseCategory(r.Category)
	if err != nil {
		return err
	}
	r.parsedCategory = category

	frequency, err := id.ParseFrequency(r.Frequency)
	if err != nil {
		return err
	}
	r.parsedFrequency = frequency

	if r.Priority != "" {
		priority, err := id.ParsePriority(r.Priority)
		if err != nil {
			return err
		}
		r.parsedPriority = priority
	}

	if r.NextInspectionDate != "" {
		due, err := parseDate(r.NextInspectionDate, "next_inspection_date")
		if err != nil {
			return err
		}
		r.parsedDueDate = due
	}

	if r.SiteID != "" {
		siteID, err := id.ParseSiteID(r.SiteID)
		if err != nil {
			return err
		}
		r.parsedSiteID = &siteID
	}

	if r.AssignedTo != "" {
		assignee, err := id.ParseUserID(r.AssignedTo)
		if err != nil {
			return err
		}
		r.parsedAssignee = assignee
	}

	return nil
}

// ToInput builds the domain creation input for the tenant in scope.
func (r *CreateRequirementRequest) ToInput(tenantID id.TenantID) models.NewRequirementInput {
	return models.NewRequirementInput{
		TenantID:           tenantID,
		SiteID:             r.parsedSiteID,
		Title:              r.Title,
		Description:        strings.TrimSpace(r.Description),
		Category:           r.parsedCategory,
		ComplianceType:     strings.TrimSpace(r.ComplianceType),
		Priority:           r.parsedPriority,
		Frequency:          r.parsedFrequency,
		NextInspectionDate: r.parsedDueDate,
		AssignedTo:         r.parsedAssignee,
	}
}

// UpdateRequirementRequest is the HTTP request body for
// PATCH /compliance/requirements/{requirementID}. Absent fields are left
// untouched.
type UpdateRequirementRequest struct {
	Title              *string `json:"title"`
	Description        *string `json:"description"`
	Category           *string `json:"category"`
	ComplianceType     *string `json:"compliance_type"`
	Priority           *string `json:"priority"`
	Frequency          *string `json:"frequency"`
	Status             *string `json:"status"`
	NextInspectionDate *string `json:"next_inspection_date"`
	LastInspectionDate *string `json:"last_inspection_date"`
	SiteID             *string `json:"site_id"`
	AssignedTo         *string `json:"assigned_to"`

	patch service.UpdatePatch
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *UpdateRequirementRequest) Validate() error {
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		if title == "" {
			return dErrors.New(dErrors.CodeValidation, "title cannot be empty")
		}
		if len(title) > maxTitleLength {
			return dErrors.New(dErrors.CodeValidation, "title is too long")
		}
		r.patch.Title = &title
	}
	if r.Description != nil {
		description := strings.TrimSpace(*r.Description)
		r.patch.Description = &description
	}
	if r.Category != nil {
		category, err := id.ParseCategory(*r.Category)
		if err != nil {
			return err
		}
		r.patch.Category = &category
	}
	if r.ComplianceType != nil {
		complianceType := strings.TrimSpace(*r.ComplianceType)
		r.patch.ComplianceType = &complianceType
	}
	if r.Priority != nil {
		priority, err := id.ParsePriority(*r.Priority)
		if err != nil {
			return err
		}
		r.patch.Priority = &priority
	}
	if r.Frequency != nil {
		frequency, err := id.ParseFrequency(*r.Frequency)
		if err != nil {
			return err
		}
		r.patch.Frequency = &frequency
	}
	if r.Status != nil {
		status, err := id.ParseRequirementStatus(*r.Status)
		if err != nil {
			return err
		}
		r.patch.Status = &status
	}
	if r.NextInspectionDate != nil {
		due, err := parseDate(*r.NextInspectionDate, "next_inspection_date")
		if err != nil {
			return err
		}
		r.patch.NextInspectionDate = &due
	}
	if r.LastInspectionDate != nil {
		last, err := parseDate(*r.LastInspectionDate, "last_inspection_date")
		if err != nil {
			return err
		}
		r.patch.LastInspectionDate = &last
	}
	if r.SiteID != nil {
		siteID, err := id.ParseSiteID(*r.SiteID)
		if err != nil {
			return err
		}
		r.patch.SiteID = &siteID
	}
	if r.AssignedTo != nil {
		assignee, err := id.ParseUserID(*r.AssignedTo)
		if err != nil {
			return err
		}
		r.patch.AssignedTo = &assignee
	}
	return nil
}

// Patch returns the validated update patch.
func (r *UpdateRequirementRequest) Patch() service.UpdatePatch {
	return r.patch
}
