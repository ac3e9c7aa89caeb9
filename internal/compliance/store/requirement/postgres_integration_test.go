//go:build integration

package requirement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complytrack/internal/compliance/models"
	id "complytrack/pkg/domain"
	"complytrack/pkg/platform/sentinel"
	"complytrack/pkg/testutil/containers"
)

func newPostgresStore(t *testing.T) *PostgresStore {
	t.Helper()
	pg := containers.NewPostgresContainer(t)
	pg.ApplySchema(t, Schema)
	return NewPostgres(pg.DB)
}

func requirementFixture(tenant id.TenantID, mutate ...func(*models.Requirement)) *models.Requirement {
	now := time.Now().UTC().Truncate(time.Microsecond)
	req := &models.Requirement{
		ID:                 id.NewRequirementID(),
		TenantID:           tenant,
		Title:              "Pressure vessel inspection",
		Category:           id.CategoryEquipment,
		ComplianceType:     "ASME",
		Priority:           id.PriorityMedium,
		Frequency:          id.FrequencyQuarterly,
		NextInspectionDate: time.Date(2024, time.February, 15, 0, 0, 0, 0, time.UTC),
		Status:             id.StatusPending,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	for _, m := range mutate {
		m(req)
	}
	return req
}

func TestPostgresRoundTrip(t *testing.T) {
	store := newPostgresStore(t)
	ctx := context.Background()
	tenant := id.NewTenantID()

	req := requirementFixture(tenant)
	require.NoError(t, store.Create(ctx, req))

	found, err := store.FindByID(ctx, tenant, req.ID)
	require.NoError(t, err)
	assert.Equal(t, req.Title, found.Title)
	assert.Equal(t, req.Category, found.Category)
	assert.Equal(t, req.ComplianceType, found.ComplianceType)
	assert.True(t, req.NextInspectionDate.Equal(found.NextInspectionDate))
	assert.Nil(t, found.SiteID)
	assert.True(t, found.AssignedTo.IsNil())

	// Duplicate primary key maps to the conflict sentinel.
	assert.ErrorIs(t, store.Create(ctx, req), sentinel.ErrConflict)

	// Unknown and cross-tenant lookups map to not-found.
	_, err = store.FindByID(ctx, tenant, id.NewRequirementID())
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	_, err = store.FindByID(ctx, id.NewTenantID(), req.ID)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestPostgresNullableColumns(t *testing.T) {
	store := newPostgresStore(t)
	ctx := context.Background()
	tenant := id.NewTenantID()
	site := id.NewSiteID()
	assignee := id.NewUserID()
	lastAudit := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

	req := requirementFixture(tenant, func(r *models.Requirement) {
		r.SiteID = &site
		r.AssignedTo = assignee
		r.LastAuditDate = &lastAudit
	})
	require.NoError(t, store.Create(ctx, req))

	found, err := store.FindByID(ctx, tenant, req.ID)
	require.NoError(t, err)
	require.NotNil(t, found.SiteID)
	assert.Equal(t, site, *found.SiteID)
	assert.Equal(t, assignee, found.AssignedTo)
	require.NotNil(t, found.LastAuditDate)
	assert.True(t, lastAudit.Equal(*found.LastAuditDate))
}

func TestPostgresUpdateAndSoftDelete(t *testing.T) {
	store := newPostgresStore(t)
	ctx := context.Background()
	tenant := id.NewTenantID()

	req := requirementFixture(tenant)
	require.NoError(t, store.Create(ctx, req))

	req.Status = id.StatusNonCompliant
	req.UpdatedAt = time.Now().UTC()
	require.NoError(t, store.Update(ctx, req))

	found, err := store.FindByID(ctx, tenant, req.ID)
	require.NoError(t, err)
	assert.Equal(t, id.StatusNonCompliant, found.Status)

	req.ApplyDeletion(time.Now().UTC())
	require.NoError(t, store.Update(ctx, req))

	_, err = store.FindByID(ctx, tenant, req.ID)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)

	// A second update against the tombstone is not-found.
	assert.ErrorIs(t, store.Update(ctx, req), sentinel.ErrNotFound)
}

func TestPostgresListFilterAndPagination(t *testing.T) {
	store := newPostgresStore(t)
	ctx := context.Background()
	tenant := id.NewTenantID()

	base := time.Now().UTC().Truncate(time.Microsecond)
	for i := 0; i < 5; i++ {
		offset := time.Duration(i) * time.Second
		req := requirementFixture(tenant, func(r *models.Requirement) {
			r.CreatedAt = base.Add(offset)
			r.UpdatedAt = base.Add(offset)
			if i%2 == 0 {
				r.Category = id.CategorySafety
				r.ComplianceType = "OSHA"
			}
		})
		require.NoError(t, store.Create(ctx, req))
	}

	items, total, err := store.List(ctx, models.ListFilter{TenantID: tenant}, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, items, 2)
	// Newest first.
	assert.True(t, items[0].CreatedAt.After(items[1].CreatedAt))

	items, total, err = store.List(ctx, models.ListFilter{
		TenantID: tenant,
		Category: id.CategorySafety,
	}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, items, 3)

	// ComplianceType matches case-insensitively.
	items, _, err = store.List(ctx, models.ListFilter{
		TenantID:       tenant,
		ComplianceType: "osha",
	}, 10, 0)
	require.NoError(t, err)
	assert.Len(t, items, 3)

	// Other tenants see nothing.
	_, total, err = store.List(ctx, models.ListFilter{TenantID: id.NewTenantID()}, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestPostgresListActiveOrdering(t *testing.T) {
	store := newPostgresStore(t)
	ctx := context.Background()
	tenant := id.NewTenantID()
	site := id.NewSiteID()

	dates := []time.Time{
		time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC),
	}
	for i, due := range dates {
		req := requirementFixture(tenant, func(r *models.Requirement) {
			r.NextInspectionDate = due
			if i == 1 {
				r.SiteID = &site
			}
		})
		require.NoError(t, store.Create(ctx, req))
	}

	active, err := store.ListActive(ctx, tenant, nil)
	require.NoError(t, err)
	require.Len(t, active, 3)
	for i := 1; i < len(active); i++ {
		assert.False(t, active[i].NextInspectionDate.Before(active[i-1].NextInspectionDate))
	}

	scoped, err := store.ListActive(ctx, tenant, &site)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.True(t, dates[1].Equal(scoped[0].NextInspectionDate))
}
