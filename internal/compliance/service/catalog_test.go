package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"complytrack/internal/audit"
	"complytrack/internal/compliance/models"
	equipmentStore "complytrack/internal/compliance/store/equipment"
	requirementStore "complytrack/internal/compliance/store/requirement"
	id "complytrack/pkg/domain"
	dErrors "complytrack/pkg/domain-errors"
	"complytrack/pkg/requestcontext"
)

type CatalogSuite struct {
	suite.Suite
	requirements *requirementStore.InMemory
	equipment    *equipmentStore.InMemory
	auditStore   *audit.InMemoryStore
	service      *Service
	tenant       id.TenantID
}

func TestCatalogSuite(t *testing.T) {
	suite.Run(t, new(CatalogSuite))
}

func (s *CatalogSuite) SetupTest() {
	s.requirements = requirementStore.NewInMemory()
	s.equipment = equipmentStore.NewInMemory()
	s.auditStore = audit.NewInMemoryStore()
	s.service = New(s.requirements, s.equipment,
		WithAuditPublisher(audit.NewPublisher(s.auditStore)),
	)
	s.tenant = id.NewTenantID()
}

// ctxAt fixes the service clock at the given date.
func ctxAt(y int, m time.Month, d int) context.Context {
	return requestcontext.WithTime(context.Background(), time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func (s *CatalogSuite) newInput(mutate ...func(*models.NewRequirementInput)) models.NewRequirementInput {
	input := models.NewRequirementInput{
		TenantID:  s.tenant,
		Title:     "Monthly fire extinguisher check",
		Category:  id.CategorySafety,
		Frequency: id.FrequencyMonthly,
	}
	for _, m := range mutate {
		m(&input)
	}
	return input
}

func (s *CatalogSuite) TestCreateRequirement() {
	s.Run("computes due date from frequency when absent", func() {
		result, err := s.service.CreateRequirement(ctxAt(2024, time.January, 15), s.newInput())
		s.Require().NoError(err)

		req := result.Requirement
		s.Equal(time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC), req.NextInspectionDate)
		s.Equal(id.StatusPending, req.Status)
		s.Equal(id.PriorityMedium, req.Priority)
	})

	s.Run("honors explicit due date", func() {
		due := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
		result, err := s.service.CreateRequirement(ctxAt(2024, time.January, 15), s.newInput(func(in *models.NewRequirementInput) {
			in.NextInspectionDate = due
		}))
		s.Require().NoError(err)
		s.Equal(due, result.Requirement.NextInspectionDate)
	})

	s.Run("rejects missing required fields", func() {
		cases := []struct {
			name   string
			mutate func(*models.NewRequirementInput)
		}{
			{"tenant", func(in *models.NewRequirementInput) { in.TenantID = id.TenantID{} }},
			{"title", func(in *models.NewRequirementInput) { in.Title = "  " }},
			{"category", func(in *models.NewRequirementInput) { in.Category = "" }},
			{"frequency", func(in *models.NewRequirementInput) { in.Frequency = "" }},
		}
		for _, tc := range cases {
			_, err := s.service.CreateRequirement(ctxAt(2024, time.January, 15), s.newInput(tc.mutate))
			s.Require().Error(err, tc.name)
			s.True(dErrors.HasCode(err, dErrors.CodeValidation), tc.name)
		}
	})

	s.Run("equipment category creates linked child", func() {
		result, err := s.service.CreateRequirement(ctxAt(2024, time.January, 15), s.newInput(func(in *models.NewRequirementInput) {
			in.Category = id.CategoryEquipment
			in.ComplianceType = "Forklift"
		}))
		s.Require().NoError(err)
		s.Require().NoError(result.LinkageErr)
		s.Require().NotNil(result.Equipment)

		child := result.Equipment
		s.Equal(result.Requirement.ID, child.RequirementID)
		s.Equal(id.StatusPending, child.Status)
		s.Equal(result.Requirement.NextInspectionDate, child.NextInspectionDate)
		s.Equal(result.Requirement.NextInspectionDate, child.NextMaintenanceDate)
		s.Equal("Forklift", child.EquipmentType)

		stored, err := s.equipment.ListByRequirement(context.Background(), result.Requirement.ID)
		s.Require().NoError(err)
		s.Len(stored, 1)
	})

	s.Run("non-equipment category creates no child", func() {
		result, err := s.service.CreateRequirement(ctxAt(2024, time.January, 15), s.newInput())
		s.Require().NoError(err)
		s.Nil(result.Equipment)

		stored, err := s.equipment.ListByRequirement(context.Background(), result.Requirement.ID)
		s.Require().NoError(err)
		s.Empty(stored)
	})

	s.Run("emits attribution event with actor", func() {
		actor := id.NewUserID()
		ctx := requestcontext.WithActorID(ctxAt(2024, time.January, 15), actor)

		result, err := s.service.CreateRequirement(ctx, s.newInput())
		s.Require().NoError(err)

		events, err := s.auditStore.ListByTenant(context.Background(), s.tenant.String())
		s.Require().NoError(err)
		s.Require().NotEmpty(events)
		last := events[len(events)-1]
		s.Equal(audit.ActionRequirementCreated, last.Action)
		s.Equal(actor.String(), last.ActorID)
		s.Equal(result.Requirement.ID.String(), last.Subject)
	})
}

func (s *CatalogSuite) TestListRequirements() {
	ctx := ctxAt(2024, time.January, 15)
	for i := 0; i < 25; i++ {
		_, err := s.service.CreateRequirement(ctx, s.newInput())
		s.Require().NoError(err)
	}

	s.Run("defaults page and limit", func() {
		page, err := s.service.ListRequirements(ctx, models.ListFilter{TenantID: s.tenant}, models.Page{})
		s.Require().NoError(err)
		s.Equal(1, page.Page)
		s.Equal(20, page.Limit)
		s.Equal(25, page.Total)
		s.Equal(2, page.TotalPages)
		s.Len(page.Items, 20)
	})

	s.Run("second page holds the remainder", func() {
		page, err := s.service.ListRequirements(ctx, models.ListFilter{TenantID: s.tenant}, models.Page{Number: 2, Limit: 20})
		s.Require().NoError(err)
		s.Len(page.Items, 5)
	})

	s.Run("requires tenant", func() {
		_, err := s.service.ListRequirements(ctx, models.ListFilter{}, models.Page{})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	})
}

func (s *CatalogSuite) TestGetRequirement() {
	ctx := ctxAt(2024, time.January, 15)
	result, err := s.service.CreateRequirement(ctx, s.newInput())
	s.Require().NoError(err)

	s.Run("returns the record for the owning tenant", func() {
		found, err := s.service.GetRequirement(ctx, s.tenant, result.Requirement.ID)
		s.Require().NoError(err)
		s.Equal(result.Requirement.Title, found.Title)
	})

	s.Run("not found for other tenant", func() {
		_, err := s.service.GetRequirement(ctx, id.NewTenantID(), result.Requirement.ID)
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})

	s.Run("not found for unknown id", func() {
		_, err := s.service.GetRequirement(ctx, s.tenant, id.NewRequirementID())
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *CatalogSuite) TestUpdateRequirement() {
	created, err := s.service.CreateRequirement(ctxAt(2024, time.January, 15), s.newInput())
	s.Require().NoError(err)
	reqID := created.Requirement.ID

	s.Run("frequency change recomputes due date anchored at now", func() {
		weekly := id.FrequencyWeekly
		updated, err := s.service.UpdateRequirement(ctxAt(2024, time.February, 1), s.tenant, reqID, UpdatePatch{
			Frequency: &weekly,
		})
		s.Require().NoError(err)
		s.Equal(id.FrequencyWeekly, updated.Frequency)
		s.Equal(time.Date(2024, time.February, 8, 0, 0, 0, 0, time.UTC), updated.NextInspectionDate)
	})

	s.Run("explicit due date wins over recomputation", func() {
		daily := id.FrequencyDaily
		due := time.Date(2024, time.December, 25, 0, 0, 0, 0, time.UTC)
		updated, err := s.service.UpdateRequirement(ctxAt(2024, time.February, 1), s.tenant, reqID, UpdatePatch{
			Frequency:          &daily,
			NextInspectionDate: &due,
		})
		s.Require().NoError(err)
		s.Equal(due, updated.NextInspectionDate)
	})

	s.Run("patches scalar fields", func() {
		title := "Quarterly ladder inspection"
		high := id.PriorityHigh
		updated, err := s.service.UpdateRequirement(ctxAt(2024, time.February, 2), s.tenant, reqID, UpdatePatch{
			Title:    &title,
			Priority: &high,
		})
		s.Require().NoError(err)
		s.Equal(title, updated.Title)
		s.Equal(id.PriorityHigh, updated.Priority)
	})

	s.Run("rejects empty title", func() {
		empty := "   "
		_, err := s.service.UpdateRequirement(ctxAt(2024, time.February, 2), s.tenant, reqID, UpdatePatch{Title: &empty})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("not found for unknown id", func() {
		_, err := s.service.UpdateRequirement(ctxAt(2024, time.February, 2), s.tenant, id.NewRequirementID(), UpdatePatch{})
		s.Require().Error(err)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *CatalogSuite) TestDeleteRequirement() {
	ctx := ctxAt(2024, time.January, 15)

	s.Run("cascades to equipment children", func() {
		created, err := s.service.CreateRequirement(ctx, s.newInput(func(in *models.NewRequirementInput) {
			in.Category = id.CategoryEquipment
		}))
		s.Require().NoError(err)
		reqID := created.Requirement.ID

		s.Require().NoError(s.service.DeleteRequirement(ctx, s.tenant, reqID))

		_, err = s.service.GetRequirement(ctx, s.tenant, reqID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))

		children, err := s.equipment.ListByRequirement(context.Background(), reqID)
		s.Require().NoError(err)
		s.Empty(children)
	})

	s.Run("leaves other tenants untouched", func() {
		otherTenant := id.NewTenantID()
		other, err := s.service.CreateRequirement(ctx, s.newInput(func(in *models.NewRequirementInput) {
			in.TenantID = otherTenant
		}))
		s.Require().NoError(err)

		mine, err := s.service.CreateRequirement(ctx, s.newInput())
		s.Require().NoError(err)
		s.Require().NoError(s.service.DeleteRequirement(ctx, s.tenant, mine.Requirement.ID))

		still, err := s.service.GetRequirement(ctx, otherTenant, other.Requirement.ID)
		s.Require().NoError(err)
		s.Equal(other.Requirement.ID, still.ID)
	})

	s.Run("not found for deleted record", func() {
		created, err := s.service.CreateRequirement(ctx, s.newInput())
		s.Require().NoError(err)
		s.Require().NoError(s.service.DeleteRequirement(ctx, s.tenant, created.Requirement.ID))

		err = s.service.DeleteRequirement(ctx, s.tenant, created.Requirement.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}
