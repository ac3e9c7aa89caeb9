package lease

import (
	"context"
	"sync"
	"time"
)

// InMemory grants process-local leases. Suitable for tests and single-node
// deployments; it provides no cross-instance exclusivity.
type InMemory struct {
	mu   sync.Mutex
	held map[string]time.Time
}

// NewInMemory creates an empty in-memory leaser.
func NewInMemory() *InMemory {
	return &InMemory{held: make(map[string]time.Time)}
}

func (l *InMemory) Obtain(ctx context.Context, key string, ttl time.Duration) (Lease, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if expiry, ok := l.held[key]; ok && expiry.After(now) {
		return nil, ErrNotObtained
	}
	l.held[key] = now.Add(ttl)
	return &memoryLease{leaser: l, key: key}, nil
}

type memoryLease struct {
	leaser *InMemory
	key    string
	once   sync.Once
}

func (l *memoryLease) Release(ctx context.Context) error {
	l.once.Do(func() {
		l.leaser.mu.Lock()
		defer l.leaser.mu.Unlock()
		delete(l.leaser.held, l.key)
	})
	return nil
}
