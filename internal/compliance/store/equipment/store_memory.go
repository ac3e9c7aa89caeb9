package equipment

import (
	"context"
	"sort"
	"sync"
	"time"

	"complytrack/internal/compliance/models"
	id "complytrack/pkg/domain"
	"complytrack/pkg/platform/sentinel"
)

// InMemory is the map-backed equipment store used in tests and single-node
// dev mode.
type InMemory struct {
	mu      sync.RWMutex
	records map[id.EquipmentID]*models.Equipment
}

// NewInMemory creates an empty in-memory equipment store.
func NewInMemory() *InMemory {
	return &InMemory{records: make(map[id.EquipmentID]*models.Equipment)}
}

func clone(e *models.Equipment) *models.Equipment {
	c := *e
	return &c
}

// Create persists a new equipment record.
func (s *InMemory) Create(ctx context.Context, eq *models.Equipment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[eq.ID]; exists {
		return sentinel.ErrConflict
	}
	s.records[eq.ID] = clone(eq)
	return nil
}

// ListByRequirement returns the non-deleted children of a requirement,
// oldest first.
func (s *InMemory) ListByRequirement(ctx context.Context, reqID id.RequirementID) ([]*models.Equipment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*models.Equipment
	for _, rec := range s.records {
		if rec.IsDeleted || rec.RequirementID != reqID {
			continue
		}
		out = append(out, clone(rec))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// SoftDeleteByRequirement cascades a parent deletion to every child,
// returning how many records were marked deleted.
func (s *InMemory) SoftDeleteByRequirement(ctx context.Context, reqID id.RequirementID, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for _, rec := range s.records {
		if rec.IsDeleted || rec.RequirementID != reqID {
			continue
		}
		rec.ApplyDeletion(now)
		deleted++
	}
	return deleted, nil
}
