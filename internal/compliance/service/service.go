// Package service orchestrates the compliance requirement lifecycle: catalog
// CRUD, the batch audit run engine, and the derived reporting views.
package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"complytrack/internal/audit"
	"complytrack/internal/compliance/metrics"
	"complytrack/internal/compliance/models"
	"complytrack/internal/lease"
	id "complytrack/pkg/domain"
	dErrors "complytrack/pkg/domain-errors"
	"complytrack/pkg/requestcontext"
)

// RequirementStore is the persistence port for compliance requirements.
//
//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks
type RequirementStore interface {
	Create(ctx context.Context, req *models.Requirement) error
	FindByID(ctx context.Context, tenantID id.TenantID, reqID id.RequirementID) (*models.Requirement, error)
	Update(ctx context.Context, req *models.Requirement) error
	List(ctx context.Context, filter models.ListFilter, limit, offset int) ([]*models.Requirement, int, error)
	ListActive(ctx context.Context, tenantID id.TenantID, siteID *id.SiteID) ([]*models.Requirement, error)
}

// EquipmentStore is the persistence port for equipment child records.
type EquipmentStore interface {
	Create(ctx context.Context, eq *models.Equipment) error
	ListByRequirement(ctx context.Context, reqID id.RequirementID) ([]*models.Equipment, error)
	SoftDeleteByRequirement(ctx context.Context, reqID id.RequirementID, now time.Time) (int, error)
}

// AuditPublisher records attribution events for operator and engine actions.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates compliance requirement management.
type Service struct {
	requirements    RequirementStore
	equipment       EquipmentStore
	leaser          lease.Leaser
	leaseTTL        time.Duration
	upcomingHorizon int
	logger          *slog.Logger
	auditPublisher  AuditPublisher
	metrics         *metrics.Metrics
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) { s.auditPublisher = publisher }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithUpcomingHorizon overrides the default look-ahead window of the
// upcoming tasks report. Non-positive values keep the default.
func WithUpcomingHorizon(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.upcomingHorizon = days
		}
	}
}

// WithLeaser installs the advisory lease used around audit runs.
func WithLeaser(l lease.Leaser, ttl time.Duration) Option {
	return func(s *Service) {
		s.leaser = l
		s.leaseTTL = ttl
	}
}

// New constructs the compliance service. The leaser defaults to a no-op
// grant-everything implementation and the logger to a discard handler.
func New(requirements RequirementStore, equipment EquipmentStore, opts ...Option) *Service {
	s := &Service{
		requirements:    requirements,
		equipment:       equipment,
		leaser:          lease.Noop{},
		leaseTTL:        2 * time.Minute,
		upcomingHorizon: defaultHorizonDays,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func requireTenantID(tenantID id.TenantID) error {
	if tenantID.IsNil() {
		return dErrors.New(dErrors.CodeBadRequest, "tenant id is required")
	}
	return nil
}

// emit records an attribution event. Audit trail failures are logged, not
// propagated: losing one attribution record must not fail the operation.
func (s *Service) emit(ctx context.Context, action audit.Action, tenantID id.TenantID, subject, detail string) {
	if s.auditPublisher == nil {
		return
	}
	actor := audit.SystemActor
	if actorID := requestcontext.ActorID(ctx); !actorID.IsNil() {
		actor = actorID.String()
	}
	event := audit.Event{
		Timestamp: requestcontext.Now(ctx),
		TenantID:  tenantID.String(),
		ActorID:   actor,
		Action:    action,
		Subject:   subject,
		Detail:    detail,
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit event dropped",
			"action", action,
			"tenant_id", tenantID,
			"error", err,
		)
	}
}
