package services

import (
	"context"
	"testing"
	"time"

	"github.com/Yulian302/lfusys-services-requests/lock"
	"github.com/Yulian302/lfusys-services-requests/logging"
	"github.com/Yulian302/lfusys-services-requests/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweeper_RunOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, models.FileSpec{Size: 10})
	f.advance(2 * time.Hour)

	s := NewSweeperImpl(ctx, f.svc, lock.NewLocalLocker(), time.Hour, logging.NewNopLogger())

	n, err := s.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSweeper_SkipsWhenLockHeld(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.create(t, models.FileSpec{Size: 10})
	f.advance(2 * time.Hour)

	locker := lock.NewLocalLocker()
	lease, err := locker.Acquire(ctx, SweepLockName)
	require.NoError(t, err)

	s := NewSweeperImpl(ctx, f.svc, locker, time.Hour, logging.NewNopLogger())

	short, cancel := context.WithTimeout(ctx, 50*time.Millisecond)
	defer cancel()
	n, err := s.RunOnce(short)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, lease.Release(ctx))

	n, err = s.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSweeper_StartShutdown(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := f.create(t, models.FileSpec{Size: 10})
	f.advance(2 * time.Hour)

	s := NewSweeperImpl(ctx, f.svc, lock.NewLocalLocker(), 10*time.Millisecond, logging.NewNopLogger())
	s.Start()

	require.Eventually(t, func() bool {
		_, err := f.repo.Get(ctx, req.ID)
		return err != nil
	}, 2*time.Second, 10*time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(shutdownCtx))
}
