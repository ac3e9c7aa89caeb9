package audit

import (
	"context"
	"time"
)

// Store is the append-only persistence behind the publisher.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByTenant(ctx context.Context, tenantID string) ([]Event, error)
}

// Publisher captures structured audit events. It is append-only and uses the
// storage layer for persistence so tests can swap sinks easily.
type Publisher struct {
	store Store
}

func NewPublisher(store Store) *Publisher {
	return &Publisher{store: store}
}

func (p *Publisher) Emit(ctx context.Context, base Event) error {
	if base.Timestamp.IsZero() {
		base.Timestamp = time.Now()
	}
	if base.ActorID == "" {
		base.ActorID = SystemActor
	}
	return p.store.Append(ctx, base)
}

func (p *Publisher) List(ctx context.Context, tenantID string) ([]Event, error) {
	return p.store.ListByTenant(ctx, tenantID)
}
