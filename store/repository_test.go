package store

import (
	"context"
	"testing"
	"time"

	"github.com/Yulian302/lfusys-services-requests/apperror"
	"github.com/Yulian302/lfusys-services-requests/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClock struct {
	t time.Time
}

func (c *testClock) now() time.Time { return c.t }

func (c *testClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestRepository(t *testing.T) (*RequestRepositoryImpl, *testClock) {
	clock := &testClock{t: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}
	repo := NewRequestRepositoryImpl(newTestSQLiteStore(t)).WithClock(clock.now)
	return repo, clock
}

func TestRepository_Create(t *testing.T) {
	repo, clock := newTestRepository(t)
	ctx := context.Background()

	req, err := repo.Create(ctx, "alice", []models.FileSpec{{Size: 1000}, {Size: 2000}})
	require.NoError(t, err)

	assert.NotEmpty(t, req.ID)
	assert.Equal(t, "alice", req.Author)
	assert.Equal(t, clock.t, req.Created)
	assert.False(t, req.Processing)
	require.Len(t, req.Files, 2)
	assert.NotEqual(t, req.Files[0].ID, req.Files[1].ID)
	for _, f := range req.Files {
		assert.Zero(t, f.Seq)
		assert.Zero(t, f.Sent)
		assert.False(t, f.Closed)
	}

	stored, err := repo.Get(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, *req, *stored)
}

func TestRepository_GetWithAccessCheck(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	req, err := repo.Create(ctx, "alice", []models.FileSpec{{Size: 10}})
	require.NoError(t, err)

	_, err = repo.GetWithAccessCheck(ctx, "alice", req.ID)
	require.NoError(t, err)

	_, err = repo.GetWithAccessCheck(ctx, "mallory", req.ID)
	require.ErrorIs(t, err, apperror.ErrAccessDenied)

	_, err = repo.GetWithAccessCheck(ctx, "alice", "missing")
	require.ErrorIs(t, err, apperror.ErrRequestDoesNotExist)
}

func TestRepository_GetReadyForUser(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	req, err := repo.Create(ctx, "alice", []models.FileSpec{{Size: 10}})
	require.NoError(t, err)

	_, err = repo.GetReadyForUser(ctx, "alice", req.ID)
	require.ErrorIs(t, err, apperror.ErrRequestNotReadyYet)

	req, err = repo.AddChunk(ctx, req, 0, 10)
	require.NoError(t, err)
	_, err = repo.CommitFile(ctx, req, 0, 0)
	require.NoError(t, err)

	ready, err := repo.GetReadyForUser(ctx, "alice", req.ID)
	require.NoError(t, err)
	assert.True(t, ready.IsReady())
}

func TestRepository_AddChunkAndCommit(t *testing.T) {
	repo, clock := newTestRepository(t)
	ctx := context.Background()

	req, err := repo.Create(ctx, "alice", []models.FileSpec{{Size: 1024, ChecksumSize: 16}, {Size: 10}})
	require.NoError(t, err)

	clock.advance(time.Minute)
	next, err := repo.AddChunk(ctx, req, 0, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next.Files[0].Seq)
	assert.Equal(t, int64(100), next.Files[0].Sent)
	assert.Equal(t, clock.t, next.Modified)
	assert.Equal(t, req.Files[1], next.Files[1])
	assert.Zero(t, req.Files[0].Seq)

	committed, err := repo.CommitFile(ctx, next, 0, 16)
	require.NoError(t, err)
	assert.True(t, committed.Files[0].Closed)
	assert.Equal(t, int64(16), committed.Files[0].ChecksumSent)
	assert.Equal(t, int64(2), committed.Files[0].Seq)
	assert.False(t, committed.Files[1].Closed)

	// a write based on an outdated snapshot is refused
	_, err = repo.AddChunk(ctx, req, 1, 5)
	require.ErrorIs(t, err, ErrVersionConflict)
}

func TestRepository_MarkAsProcessing(t *testing.T) {
	repo, clock := newTestRepository(t)
	ctx := context.Background()

	req, err := repo.Create(ctx, "alice", []models.FileSpec{{Size: 10}})
	require.NoError(t, err)

	clock.advance(time.Hour)
	marked, err := repo.MarkAsProcessing(ctx, req.ID)
	require.NoError(t, err)
	assert.True(t, marked.Processing)
	assert.Equal(t, clock.t, marked.Modified)

	_, err = repo.MarkAsProcessing(ctx, "missing")
	require.ErrorIs(t, err, apperror.ErrRequestDoesNotExist)
}

func TestRepository_DeleteWithAccessCheck(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	req, err := repo.Create(ctx, "alice", []models.FileSpec{{Size: 10}})
	require.NoError(t, err)

	require.ErrorIs(t, repo.DeleteWithAccessCheck(ctx, "mallory", req.ID), apperror.ErrAccessDenied)
	require.NoError(t, repo.DeleteWithAccessCheck(ctx, "alice", req.ID))
	require.ErrorIs(t, repo.Delete(ctx, req.ID), apperror.ErrRequestDoesNotExist)
}

func TestRepository_ClearExpired(t *testing.T) {
	repo, clock := newTestRepository(t)
	ctx := context.Background()

	stale, err := repo.Create(ctx, "alice", []models.FileSpec{{Size: 10}})
	require.NoError(t, err)
	claimed, err := repo.Create(ctx, "alice", []models.FileSpec{{Size: 10}})
	require.NoError(t, err)
	_, err = repo.MarkAsProcessing(ctx, claimed.ID)
	require.NoError(t, err)

	clock.advance(2 * time.Hour)
	active, err := repo.Create(ctx, "bob", []models.FileSpec{{Size: 10}})
	require.NoError(t, err)

	clock.advance(30 * time.Minute)
	deleted, err := repo.ClearExpired(ctx, time.Hour)
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, stale.ID, deleted[0].ID)

	_, err = repo.Get(ctx, claimed.ID)
	require.NoError(t, err)
	_, err = repo.Get(ctx, active.ID)
	require.NoError(t, err)
}
