package audit

import "context"

// QueueStore decouples event producers from persistence: appends go onto a
// buffered channel drained by a Worker, reads delegate to the underlying
// store. When the buffer is full the append falls through to a direct write
// so events are never dropped.
type QueueStore struct {
	inner Store
	inbox chan Event
}

func NewQueueStore(inner Store, buffer int) *QueueStore {
	return &QueueStore{
		inner: inner,
		inbox: make(chan Event, buffer),
	}
}

// Inbox is the channel a Worker drains.
func (q *QueueStore) Inbox() <-chan Event {
	return q.inbox
}

func (q *QueueStore) Append(ctx context.Context, event Event) error {
	select {
	case q.inbox <- event:
		return nil
	default:
		return q.inner.Append(ctx, event)
	}
}

func (q *QueueStore) ListByTenant(ctx context.Context, tenantID string) ([]Event, error) {
	return q.inner.ListByTenant(ctx, tenantID)
}
