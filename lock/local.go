package lock

import (
	"context"
	"fmt"
	"sync"
)

// LocalLocker is an in-process Locker for single replica deployments.
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]chan struct{}
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: map[string]chan struct{}{}}
}

func (l *LocalLocker) Acquire(ctx context.Context, name string) (Lease, error) {
	for {
		l.mu.Lock()
		wait, busy := l.held[name]
		if !busy {
			l.held[name] = make(chan struct{})
			l.mu.Unlock()
			return &localLease{locker: l, name: name}, nil
		}
		l.mu.Unlock()

		select {
		case <-wait:
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %w", ErrNotAcquired, name, ctx.Err())
		}
	}
}

type localLease struct {
	locker *LocalLocker
	name   string
	once   sync.Once
}

func (l *localLease) Name() string {
	return l.name
}

func (l *localLease) Release(ctx context.Context) error {
	released := false
	l.once.Do(func() {
		l.locker.mu.Lock()
		defer l.locker.mu.Unlock()

		if ch, ok := l.locker.held[l.name]; ok {
			delete(l.locker.held, l.name)
			close(ch)
			released = true
		}
	})
	if !released {
		return fmt.Errorf("%w: %s", ErrLockLost, l.name)
	}
	return nil
}
