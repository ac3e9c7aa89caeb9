package requirement

import (
	"context"
	"sort"
	"strings"
	"sync"

	"complytrack/internal/compliance/models"
	id "complytrack/pkg/domain"
	"complytrack/pkg/platform/sentinel"
)

// InMemory is the map-backed requirement store used in tests and single-node
// dev mode. Records are cloned on the way in and out so callers never alias
// store-internal state.
type InMemory struct {
	mu      sync.RWMutex
	records map[id.RequirementID]*models.Requirement
}

// NewInMemory creates an empty in-memory requirement store.
func NewInMemory() *InMemory {
	return &InMemory{records: make(map[id.RequirementID]*models.Requirement)}
}

func clone(r *models.Requirement) *models.Requirement {
	c := *r
	return &c
}

// Create persists a new requirement. Returns ErrConflict when the ID is
// already taken.
func (s *InMemory) Create(ctx context.Context, req *models.Requirement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[req.ID]; exists {
		return sentinel.ErrConflict
	}
	s.records[req.ID] = clone(req)
	return nil
}

// FindByID returns the requirement for the tenant, or ErrNotFound when it is
// absent, soft-deleted, or belongs to a different tenant.
func (s *InMemory) FindByID(ctx context.Context, tenantID id.TenantID, reqID id.RequirementID) (*models.Requirement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[reqID]
	if !ok || rec.IsDeleted || rec.TenantID != tenantID {
		return nil, sentinel.ErrNotFound
	}
	return clone(rec), nil
}

// Update replaces the stored record. Returns ErrNotFound when the record is
// absent, already soft-deleted, or tenant-mismatched. A record transitioning
// to deleted in this call is accepted; only records deleted before the call
// are rejected.
func (s *InMemory) Update(ctx context.Context, req *models.Requirement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[req.ID]
	if !ok || rec.IsDeleted || rec.TenantID != req.TenantID {
		return sentinel.ErrNotFound
	}
	s.records[req.ID] = clone(req)
	return nil
}

// List returns one page of non-deleted requirements matching the filter plus
// the total match count. Results are ordered by creation time, newest first.
func (s *InMemory) List(ctx context.Context, filter models.ListFilter, limit, offset int) ([]*models.Requirement, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []*models.Requirement
	for _, rec := range s.records {
		if matches(rec, filter) {
			matched = append(matched, clone(rec))
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if offset >= total {
		return []*models.Requirement{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

// ListActive returns every non-deleted requirement for the tenant, optionally
// narrowed to one site. The audit engine and the reporting layer both read
// through this.
func (s *InMemory) ListActive(ctx context.Context, tenantID id.TenantID, siteID *id.SiteID) ([]*models.Requirement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Requirement
	for _, rec := range s.records {
		if rec.IsDeleted || rec.TenantID != tenantID {
			continue
		}
		if siteID != nil && (rec.SiteID == nil || *rec.SiteID != *siteID) {
			continue
		}
		out = append(out, clone(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].NextInspectionDate.Before(out[j].NextInspectionDate)
	})
	return out, nil
}

func matches(rec *models.Requirement, f models.ListFilter) bool {
	if rec.IsDeleted || rec.TenantID != f.TenantID {
		return false
	}
	if f.SiteID != nil && (rec.SiteID == nil || *rec.SiteID != *f.SiteID) {
		return false
	}
	if f.Category != "" && rec.Category != f.Category {
		return false
	}
	if f.ComplianceType != "" && !strings.EqualFold(rec.ComplianceType, f.ComplianceType) {
		return false
	}
	if f.Priority != "" && rec.Priority != f.Priority {
		return false
	}
	if !f.AssignedTo.IsNil() && rec.AssignedTo != f.AssignedTo {
		return false
	}
	return true
}
