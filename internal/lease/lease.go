// Package lease provides the per-tenant advisory lock held around audit
// runs. The lease is best-effort by design: when it cannot be obtained the
// run still proceeds, but the engine flags the contention in its result so
// dashboards can surface possible double-counting. Callers needing strict
// consistency must serialize runs externally.
package lease

import (
	"context"
	"errors"
	"time"
)

// ErrNotObtained is returned when another holder currently owns the lease.
var ErrNotObtained = errors.New("lease not obtained")

// Lease is a held advisory lock. Release is safe to call once; releasing an
// expired lease is a no-op.
type Lease interface {
	Release(ctx context.Context) error
}

// Leaser grants per-key advisory leases with a TTL.
type Leaser interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (Lease, error)
}

// Noop grants every lease unconditionally. Used when Redis is not configured
// (single-node dev mode, unit tests that don't care about contention).
type Noop struct{}

type noopLease struct{}

func (Noop) Obtain(ctx context.Context, key string, ttl time.Duration) (Lease, error) {
	return noopLease{}, nil
}

func (noopLease) Release(ctx context.Context) error { return nil }
