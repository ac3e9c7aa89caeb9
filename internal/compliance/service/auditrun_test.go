package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"complytrack/internal/audit"
	"complytrack/internal/compliance/models"
	"complytrack/internal/compliance/service/mocks"
	equipmentStore "complytrack/internal/compliance/store/equipment"
	requirementStore "complytrack/internal/compliance/store/requirement"
	"complytrack/internal/lease"
	id "complytrack/pkg/domain"
	"complytrack/pkg/requestcontext"
)

type AuditRunSuite struct {
	suite.Suite
	requirements *requirementStore.InMemory
	service      *Service
	tenant       id.TenantID
}

func TestAuditRunSuite(t *testing.T) {
	suite.Run(t, new(AuditRunSuite))
}

func (s *AuditRunSuite) SetupTest() {
	s.requirements = requirementStore.NewInMemory()
	s.service = New(s.requirements, equipmentStore.NewInMemory(),
		WithAuditPublisher(audit.NewPublisher(audit.NewInMemoryStore())),
	)
	s.tenant = id.NewTenantID()
}

func (s *AuditRunSuite) create(ctx context.Context, mutate ...func(*models.NewRequirementInput)) *models.Requirement {
	input := models.NewRequirementInput{
		TenantID:  s.tenant,
		Title:     "Monthly fire extinguisher check",
		Category:  id.CategorySafety,
		Frequency: id.FrequencyMonthly,
	}
	for _, m := range mutate {
		m(&input)
	}
	result, err := s.service.CreateRequirement(ctx, input)
	s.Require().NoError(err)
	return result.Requirement
}

// TestOverdueFlip covers the core flip: a requirement created on Jan 15 with
// monthly cadence comes due Feb 15; an audit on Mar 1 flips it.
func (s *AuditRunSuite) TestOverdueFlip() {
	req := s.create(ctxAt(2024, time.January, 15))

	runCtx := ctxAt(2024, time.March, 1)
	result, err := s.service.RunAudit(runCtx, s.tenant, nil)
	s.Require().NoError(err)

	s.Equal(1, result.TotalRequirements)
	s.Equal(1, result.NonCompliantRequirements)
	s.Equal(1, result.OverdueInspections)
	s.Equal(1, result.RequirementsUpdated)
	s.Equal(0, result.FailedUpdates)
	s.Equal(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), result.AuditDate)

	stored, err := s.service.GetRequirement(runCtx, s.tenant, req.ID)
	s.Require().NoError(err)
	s.Equal(id.StatusNonCompliant, stored.Status)
	s.Require().NotNil(stored.LastAuditDate)
	s.Equal(result.AuditDate, *stored.LastAuditDate)
}

func (s *AuditRunSuite) TestEmptyTenant() {
	result, err := s.service.RunAudit(ctxAt(2024, time.March, 1), s.tenant, nil)
	s.Require().NoError(err)
	s.Zero(result.TotalRequirements)
	s.Zero(result.NewComplianceRate)
	s.Zero(result.RequirementsUpdated)
}

func (s *AuditRunSuite) TestComplianceRateAndCriticalViolations() {
	createCtx := ctxAt(2024, time.January, 15)

	// One compliant and not yet due, one high-priority overdue.
	current := s.create(createCtx, func(in *models.NewRequirementInput) {
		in.NextInspectionDate = time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)
	})
	compliant := id.StatusCompliant
	_, err := s.service.UpdateRequirement(createCtx, s.tenant, current.ID, UpdatePatch{Status: &compliant})
	s.Require().NoError(err)

	s.create(createCtx, func(in *models.NewRequirementInput) {
		in.Priority = id.PriorityHigh
		in.Frequency = id.FrequencyWeekly
	})

	result, err := s.service.RunAudit(ctxAt(2024, time.March, 1), s.tenant, nil)
	s.Require().NoError(err)

	s.Equal(2, result.TotalRequirements)
	s.Equal(1, result.CompliantRequirements)
	s.Equal(1, result.NonCompliantRequirements)
	s.Equal(1, result.CriticalViolations)
	s.Equal(50, result.NewComplianceRate)
}

// TestIdempotence verifies re-running without new overdue items changes
// nothing but the audit stamp.
func (s *AuditRunSuite) TestIdempotence() {
	s.create(ctxAt(2024, time.January, 15))

	first, err := s.service.RunAudit(ctxAt(2024, time.March, 1), s.tenant, nil)
	s.Require().NoError(err)
	second, err := s.service.RunAudit(ctxAt(2024, time.March, 2), s.tenant, nil)
	s.Require().NoError(err)

	s.Equal(first.NewComplianceRate, second.NewComplianceRate)
	s.Equal(first.NonCompliantRequirements, second.NonCompliantRequirements)
	s.Equal(1, second.RequirementsUpdated) // lastAuditDate is always re-stamped
}

func (s *AuditRunSuite) TestSiteScope() {
	site := id.NewSiteID()
	s.create(ctxAt(2024, time.January, 1), func(in *models.NewRequirementInput) {
		in.SiteID = &site
	})
	s.create(ctxAt(2024, time.January, 1))

	result, err := s.service.RunAudit(ctxAt(2024, time.March, 1), s.tenant, &site)
	s.Require().NoError(err)
	s.Equal(1, result.TotalRequirements)
}

func (s *AuditRunSuite) TestDueTodayIsNotOverdue() {
	s.create(ctxAt(2024, time.January, 15)) // due Feb 15

	result, err := s.service.RunAudit(ctxAt(2024, time.February, 15), s.tenant, nil)
	s.Require().NoError(err)
	s.Zero(result.OverdueInspections)
	s.Zero(result.NonCompliantRequirements)
}

func (s *AuditRunSuite) TestLeaseContentionFlagsConcurrentRun() {
	leaser := lease.NewInMemory()
	s.service = New(s.requirements, equipmentStore.NewInMemory(),
		WithLeaser(leaser, time.Minute),
	)
	s.create(ctxAt(2024, time.January, 15))

	held, err := leaser.Obtain(context.Background(), "audit-run:"+s.tenant.String(), time.Minute)
	s.Require().NoError(err)
	defer held.Release(context.Background())

	result, err := s.service.RunAudit(ctxAt(2024, time.March, 1), s.tenant, nil)
	s.Require().NoError(err)
	s.True(result.ConcurrentRunDetected)
	// The run still did its work.
	s.Equal(1, result.RequirementsUpdated)
}

// TestRunAudit_PartialBatchFailure injects a store failure for one record and
// verifies the batch continues, the failure is counted, and the statistics
// still aggregate over the full snapshot.
func TestRunAudit_PartialBatchFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tenant := id.NewTenantID()
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	ctx := requestcontext.WithTime(context.Background(), now)

	overdue := func(title string) *models.Requirement {
		return &models.Requirement{
			ID:                 id.NewRequirementID(),
			TenantID:           tenant,
			Title:              title,
			Category:           id.CategorySafety,
			Priority:           id.PriorityMedium,
			Frequency:          id.FrequencyMonthly,
			NextInspectionDate: time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC),
			Status:             id.StatusPending,
		}
	}
	first := overdue("first")
	second := overdue("second")

	store := mocks.NewMockRequirementStore(ctrl)
	store.EXPECT().ListActive(gomock.Any(), tenant, nil).
		Return([]*models.Requirement{first, second}, nil)
	store.EXPECT().Update(gomock.Any(), first).Return(errors.New("connection reset"))
	store.EXPECT().Update(gomock.Any(), second).Return(nil)

	svc := New(store, mocks.NewMockEquipmentStore(ctrl))

	result, err := svc.RunAudit(ctx, tenant, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalRequirements)
	assert.Equal(t, 1, result.RequirementsUpdated)
	assert.Equal(t, 1, result.FailedUpdates)
	// Aggregation covers the in-memory snapshot, failed persist included.
	assert.Equal(t, 2, result.NonCompliantRequirements)
	assert.Equal(t, 2, result.OverdueInspections)
}

// TestRunAudit_LoadFailure verifies a failed snapshot load aborts the run.
func TestRunAudit_LoadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tenant := id.NewTenantID()
	store := mocks.NewMockRequirementStore(ctrl)
	store.EXPECT().ListActive(gomock.Any(), tenant, nil).
		Return(nil, errors.New("db down"))

	svc := New(store, mocks.NewMockEquipmentStore(ctrl))

	_, err := svc.RunAudit(context.Background(), tenant, nil)
	require.Error(t, err)
}

// TestCreateRequirement_LinkageFailure verifies the best-effort policy: a
// failed equipment child creation is surfaced in the result but the parent
// requirement creation still succeeds.
func TestCreateRequirement_LinkageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	equipment := mocks.NewMockEquipmentStore(ctrl)
	equipment.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	requirements := requirementStore.NewInMemory()
	svc := New(requirements, equipment)

	tenant := id.NewTenantID()
	ctx := requestcontext.WithTime(context.Background(), time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC))
	result, err := svc.CreateRequirement(ctx, models.NewRequirementInput{
		TenantID:  tenant,
		Title:     "Forklift certification",
		Category:  id.CategoryEquipment,
		Frequency: id.FrequencyMonthly,
	})
	require.NoError(t, err)
	require.Error(t, result.LinkageErr)
	assert.Nil(t, result.Equipment)

	// Parent exists despite the failed child.
	stored, err := svc.GetRequirement(ctx, tenant, result.Requirement.ID)
	require.NoError(t, err)
	assert.Equal(t, "Forklift certification", stored.Title)
}
