package lock

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotAcquired = errors.New("lock not acquired")
	ErrLockLost    = errors.New("lock lost before release")
)

const releaseTimeout = 5 * time.Second

// Lease is a held named lock.
type Lease interface {
	Name() string
	Release(ctx context.Context) error
}

// Locker hands out exclusive named leases. Acquire blocks until the lock is
// free or ctx is done.
type Locker interface {
	Acquire(ctx context.Context, name string) (Lease, error)
}

// WithLock runs fn while holding name. The lease is released on every exit
// path, panics included; a release failure is returned only when fn succeeded.
func WithLock(ctx context.Context, l Locker, name string, fn func(ctx context.Context) error) error {
	return withLease(ctx, ctx, l, name, fn)
}

// WithLockTimeout is WithLock with acquisition bounded by timeout. fn itself
// runs under ctx.
func WithLockTimeout(ctx context.Context, l Locker, name string, timeout time.Duration, fn func(ctx context.Context) error) error {
	acquireCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return withLease(acquireCtx, ctx, l, name, fn)
}

func withLease(acquireCtx, ctx context.Context, l Locker, name string, fn func(ctx context.Context) error) (err error) {
	lease, err := l.Acquire(acquireCtx, name)
	if err != nil {
		return err
	}

	defer func() {
		rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
		defer cancel()

		if relErr := lease.Release(rctx); relErr != nil && err == nil {
			err = relErr
		}
	}()

	return fn(ctx)
}
