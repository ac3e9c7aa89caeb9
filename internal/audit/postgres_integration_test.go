//go:build integration

package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complytrack/pkg/testutil/containers"
)

func TestPostgresAppendAndList(t *testing.T) {
	pg := containers.NewPostgresContainer(t)
	pg.ApplySchema(t, Schema)
	store := NewPostgres(pg.DB)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Microsecond)
	events := []Event{
		{Timestamp: base, TenantID: "tenant-1", ActorID: "op-1", Action: ActionRequirementCreated, Subject: "req-1"},
		{Timestamp: base.Add(time.Second), TenantID: "tenant-1", ActorID: SystemActor, Action: ActionAuditRunCompleted, Subject: "tenant-1", Detail: "rate=50"},
		{Timestamp: base, TenantID: "tenant-2", ActorID: "op-2", Action: ActionRequirementDeleted, Subject: "req-9"},
	}
	for _, e := range events {
		require.NoError(t, store.Append(ctx, e))
	}

	listed, err := store.ListByTenant(ctx, "tenant-1")
	require.NoError(t, err)
	require.Len(t, listed, 2)
	// Chronological order.
	assert.Equal(t, ActionRequirementCreated, listed[0].Action)
	assert.Equal(t, ActionAuditRunCompleted, listed[1].Action)
	assert.Equal(t, SystemActor, listed[1].ActorID)
	assert.Equal(t, "rate=50", listed[1].Detail)

	other, err := store.ListByTenant(ctx, "tenant-3")
	require.NoError(t, err)
	assert.Empty(t, other)
}
