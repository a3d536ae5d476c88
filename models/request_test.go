package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRequest() Request {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return NewRequest("r1", "alice", []string{"f0", "f1"}, []FileSpec{
		{Size: 1000},
		{Size: 2000, ChecksumSize: 32, RandomWrite: true},
	}, now)
}

func TestNewRequest(t *testing.T) {
	r := newTestRequest()

	require.Len(t, r.Files, 2)
	assert.Equal(t, "f1", r.Files[1].ID)
	assert.True(t, r.Files[1].SupportsRandomWrite)
	assert.Zero(t, r.Files[0].Seq)
	assert.Zero(t, r.Files[0].Sent)
	assert.False(t, r.Processing)
	assert.Equal(t, r.Created, r.Modified)
	assert.False(t, r.IsReady())
}

func TestWithChunk_DoesNotMutateReceiver(t *testing.T) {
	r := newTestRequest()
	later := r.Modified.Add(time.Minute)

	next := r.WithChunk(0, 100, later)

	assert.Equal(t, int64(1), next.Files[0].Seq)
	assert.Equal(t, int64(100), next.Files[0].Sent)
	assert.Equal(t, later, next.Modified)
	assert.Equal(t, r.Files[1], next.Files[1])

	assert.Zero(t, r.Files[0].Seq)
	assert.Zero(t, r.Files[0].Sent)
	assert.NotEqual(t, later, r.Modified)
}

func TestWithCommittedFile(t *testing.T) {
	r := newTestRequest().WithChunk(1, 2000, time.Now())

	next := r.WithCommittedFile(1, 32, time.Now())

	assert.True(t, next.Files[1].Closed)
	assert.Equal(t, int64(32), next.Files[1].ChecksumSent)
	assert.Equal(t, int64(2), next.Files[1].Seq)
	assert.False(t, next.Files[0].Closed)
	assert.False(t, r.Files[1].Closed)
	assert.False(t, next.IsReady())

	ready := next.WithCommittedFile(0, 0, time.Now())
	assert.True(t, ready.IsReady())
}

func TestWithProcessing(t *testing.T) {
	r := newTestRequest()

	next := r.WithProcessing(time.Now())

	assert.True(t, next.Processing)
	assert.False(t, r.Processing)
}

func TestHasFile(t *testing.T) {
	r := newTestRequest()

	assert.True(t, r.HasFile(0))
	assert.True(t, r.HasFile(1))
	assert.False(t, r.HasFile(2))
	assert.False(t, r.HasFile(-1))
}

func TestProgress(t *testing.T) {
	r := newTestRequest()
	assert.Equal(t, uint8(0), r.Progress())

	r = r.WithChunk(1, 1016, time.Now())
	assert.Equal(t, uint8(33), r.Progress())

	empty := NewRequest("r2", "bob", []string{"x"}, []FileSpec{{}}, time.Now())
	assert.Equal(t, uint8(0), empty.Progress())
	assert.Equal(t, uint8(100), empty.WithCommittedFile(0, 0, time.Now()).Progress())
}
