// Package locker provides distributed locking for coordinating work
// across multiple instances of the service.
package locker

import (
	"context"
	"time"
)

// DistributedLocker coordinates exclusive work across instances.
// Implementations must be safe for concurrent use.
//
// Typical usage:
//
//	acquired, err := locker.Acquire(ctx, "my-lock", 5*time.Minute)
//	if err != nil {
//	    return err
//	}
//	if !acquired {
//	    // Another instance holds the lock
//	    return nil
//	}
//	defer locker.Release(ctx, "my-lock")
type DistributedLocker interface {
	// Acquire attempts to take the lock named key. Returns true when the
	// lock was taken, false when another instance holds it. The lock
	// expires on its own after ttl, so a crashed holder cannot wedge the
	// system. Pick the ttl for the job: the operation timeout for mutual
	// exclusion, or the cooldown period for rate limiting.
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Release gives up the lock named key. Calling Release on a lock this
	// instance does not own is a no-op.
	Release(ctx context.Context, key string) error
}
