package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Yulian302/lfusys-services-requests/lock"
	"github.com/Yulian302/lfusys-services-requests/logging"
)

const (
	SweepLockName = "requests:gc"

	defaultSweepInterval = time.Minute
	sweepAcquireTimeout  = 5 * time.Second
)

// SweeperImpl periodically removes expired Requests. Replicas share the work
// through a named lock so only one of them sweeps at a time.
type SweeperImpl struct {
	svc      RequestService
	locker   lock.Locker
	interval time.Duration

	logger logging.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewSweeperImpl(
	parent context.Context,
	svc RequestService,
	locker lock.Locker,
	interval time.Duration,
	l logging.Logger,
) *SweeperImpl {
	if interval <= 0 {
		interval = defaultSweepInterval
	}

	ctx, cancel := context.WithCancel(parent)

	return &SweeperImpl{
		svc:      svc,
		locker:   locker,
		interval: interval,
		logger:   l.With("component", "sweeper"),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (s *SweeperImpl) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.loop()
	}()
}

func (s *SweeperImpl) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.RunOnce(s.ctx); err != nil && !errors.Is(err, context.Canceled) {
				s.logger.Error("sweep failed", "error", err)
			}
		}
	}
}

// RunOnce performs a single sweep. It returns 0 without error when another
// holder keeps the lock past the acquire timeout.
func (s *SweeperImpl) RunOnce(ctx context.Context) (int, error) {
	var cleared int
	err := lock.WithLockTimeout(ctx, s.locker, SweepLockName, sweepAcquireTimeout, func(ctx context.Context) error {
		var err error
		cleared, err = s.svc.ClearExpired(ctx)
		return err
	})
	if errors.Is(err, lock.ErrNotAcquired) {
		s.logger.Debug("sweep skipped, lock held elsewhere")
		return 0, nil
	}
	return cleared, err
}

func (s *SweeperImpl) Shutdown(ctx context.Context) error {
	s.cancel()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
